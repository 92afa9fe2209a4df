package dto

import (
	"time"

	"github.com/nvoloshyn/scrum-api/internal/models"
)

// TaskShortDTO is the summary form of a task used in listings
type TaskShortDTO struct {
	ID           uint64  `json:"id"`
	Project      string  `json:"project"`
	Sprint       *uint64 `json:"sprint,omitempty"`
	ParentTask   *uint64 `json:"parentTask,omitempty"`
	Author       string  `json:"author"`
	Title        string  `json:"title"`
	CreationDate string  `json:"creationDate"`
	Status       string  `json:"status"`
	Kind         string  `json:"kind"`
	Priority     int     `json:"priority"`
}

// TaskFullDTO is the detail form: the summary fields plus everything else
type TaskFullDTO struct {
	TaskShortDTO
	AcceptanceCriteria *string  `json:"acceptanceCriteria,omitempty"`
	UserStory          *string  `json:"userStory,omitempty"`
	InitialEstimate    *int     `json:"initialEstimate,omitempty"`
	VCSCommit          *string  `json:"vcsCommit,omitempty"`
	BTSTicket          *int     `json:"btsTicket,omitempty"`
	CompletionDate     *string  `json:"completionDate,omitempty"`
	TimeSpent          *int     `json:"timeSpent,omitempty"`
	Effort             *float64 `json:"effort,omitempty"`
}

// TaskPatch carries a partial update for a task. sprint and parentTask
// accept explicit null to clear the reference; the service layer resolves
// and validates the referenced IDs before they reach the model.
type TaskPatch struct {
	Sprint             Optional[uint64]  `json:"sprint"`
	ParentTask         Optional[uint64]  `json:"parentTask"`
	Title              Optional[string]  `json:"title"`
	Status             Optional[string]  `json:"status"`
	Kind               Optional[string]  `json:"kind"`
	Priority           Optional[int]     `json:"priority"`
	AcceptanceCriteria Optional[string]  `json:"acceptanceCriteria"`
	UserStory          Optional[string]  `json:"userStory"`
	InitialEstimate    Optional[int]     `json:"initialEstimate"`
	VCSCommit          Optional[string]  `json:"vcsCommit"`
	BTSTicket          Optional[int]     `json:"btsTicket"`
	CompletionDate     Optional[string]  `json:"completionDate"`
	TimeSpent          Optional[int]     `json:"timeSpent"`
	Effort             Optional[float64] `json:"effort"`
}

// ToTaskShortDTO converts a Task to its summary form. Project and Author
// must be preloaded.
func ToTaskShortDTO(task models.Task) TaskShortDTO {
	return TaskShortDTO{
		ID:           task.ID,
		Project:      task.Project.Alias,
		Sprint:       task.SprintID,
		ParentTask:   task.ParentTaskID,
		Author:       task.Author.Username,
		Title:        task.Title,
		CreationDate: formatDateTime(task.CreationDate),
		Status:       string(task.Status),
		Kind:         string(task.Kind),
		Priority:     task.Priority,
	}
}

// ToTaskFullDTO converts a Task to its detail form
func ToTaskFullDTO(task models.Task) TaskFullDTO {
	var completion *string
	if task.CompletionDate != nil {
		s := formatDateTime(*task.CompletionDate)
		completion = &s
	}

	return TaskFullDTO{
		TaskShortDTO:       ToTaskShortDTO(task),
		AcceptanceCriteria: task.AcceptanceCriteria,
		UserStory:          task.UserStory,
		InitialEstimate:    task.InitialEstimate,
		VCSCommit:          task.VCSCommit,
		BTSTicket:          task.BTSTicket,
		CompletionDate:     completion,
		TimeSpent:          task.TimeSpent,
		Effort:             task.Effort,
	}
}

// ApplyTaskPatch merges supplied non-reference fields into the task. Absent
// fields are left untouched. Status transitions maintain the completion
// date: entering DONE stamps it (at now), leaving DONE clears it, and an
// explicitly supplied completionDate wins over the stamp.
func ApplyTaskPatch(task *models.Task, patch TaskPatch, now time.Time) error {
	if patch.Title.Set {
		if patch.Title.Value == nil || *patch.Title.Value == "" {
			return requiredFieldErr("title")
		}
		task.Title = *patch.Title.Value
	}

	if patch.Status.Set {
		if patch.Status.Value == nil {
			return requiredFieldErr("status")
		}
		status, err := models.ParseTaskStatus(*patch.Status.Value)
		if err != nil {
			return validationErr(err)
		}
		if status == models.TaskStatusDone && task.Status != models.TaskStatusDone {
			completion := now.UTC()
			task.CompletionDate = &completion
		}
		if status != models.TaskStatusDone {
			task.CompletionDate = nil
		}
		task.Status = status
	}

	if patch.Kind.Set {
		if patch.Kind.Value == nil {
			return requiredFieldErr("kind")
		}
		kind, err := models.ParseTaskKind(*patch.Kind.Value)
		if err != nil {
			return validationErr(err)
		}
		task.Kind = kind
	}

	if patch.Priority.Set {
		if patch.Priority.Value == nil {
			return requiredFieldErr("priority")
		}
		task.Priority = *patch.Priority.Value
	}

	if patch.AcceptanceCriteria.Set {
		task.AcceptanceCriteria = patch.AcceptanceCriteria.Value
	}
	if patch.UserStory.Set {
		task.UserStory = patch.UserStory.Value
	}
	if patch.InitialEstimate.Set {
		task.InitialEstimate = patch.InitialEstimate.Value
	}
	if patch.VCSCommit.Set {
		task.VCSCommit = patch.VCSCommit.Value
	}
	if patch.BTSTicket.Set {
		task.BTSTicket = patch.BTSTicket.Value
	}
	if patch.TimeSpent.Set {
		task.TimeSpent = patch.TimeSpent.Value
	}
	if patch.Effort.Set {
		task.Effort = patch.Effort.Value
	}

	if patch.CompletionDate.Set {
		if patch.CompletionDate.Value == nil {
			task.CompletionDate = nil
		} else {
			completion, err := ParseDateTime(*patch.CompletionDate.Value)
			if err != nil {
				return err
			}
			task.CompletionDate = &completion
		}
	}

	return nil
}
