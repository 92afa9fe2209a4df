package constants

// ContextKeyUserID is where middleware stores the authenticated user ID.
const ContextKeyUserID = "user_id"

const MinPasswordLength = 8

// Pagination bounds for list endpoints.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
