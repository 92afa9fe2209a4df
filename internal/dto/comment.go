package dto

import "github.com/nvoloshyn/scrum-api/internal/models"

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID           uint64 `json:"id"`
	Task         uint64 `json:"task"`
	Author       string `json:"author"`
	CreationDate string `json:"creationDate"`
	Message      string `json:"message"`
}

// CommentPatch carries a partial update for a comment. Only the message is
// mutable.
type CommentPatch struct {
	Message Optional[string] `json:"message"`
}

// ToCommentDTO converts a Comment to CommentDTO. Author must be preloaded.
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:           comment.ID,
		Task:         comment.TaskID,
		Author:       comment.Author.Username,
		CreationDate: formatDateTime(comment.CreationDate),
		Message:      comment.Message,
	}
}

// ApplyCommentPatch merges supplied fields into the comment
func ApplyCommentPatch(comment *models.Comment, patch CommentPatch) error {
	if patch.Message.Set {
		if patch.Message.Value == nil {
			return requiredFieldErr("message")
		}
		comment.Message = *patch.Message.Value
	}
	return nil
}
