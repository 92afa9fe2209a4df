package services

import (
	"fmt"

	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
	"github.com/nvoloshyn/scrum-api/internal/repository"
)

// Guard is the membership-based authorization check. Access to a project and
// to everything it owns (sprints, tasks, comments) is granted iff a
// membership row exists for the principal. Entity lookups happen before the
// guard runs, so a missing entity surfaces as not-found rather than denied.
//
// There is no guard for user entities: profile access is scoped to the
// authenticated principal by the handlers.
type Guard struct {
	projects repository.ProjectRepository
}

// NewGuard creates a new Guard
func NewGuard(projects repository.ProjectRepository) *Guard {
	return &Guard{projects: projects}
}

// AuthorizeProject returns ErrAccessDenied unless the principal is a member
// of the project. Pure predicate, no side effects.
func (g *Guard) AuthorizeProject(principalID, projectID uint64) error {
	ok, err := g.projects.HasMember(projectID, principalID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		return apierrors.ErrAccessDenied
	}
	return nil
}
