package dto

import "github.com/nvoloshyn/scrum-api/internal/models"

// SprintDTO represents a sprint in API responses
type SprintDTO struct {
	ID        uint64  `json:"id"`
	Number    int     `json:"number"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Goal      *string `json:"goal,omitempty"`
}

// SprintPatch carries a partial update for a sprint
type SprintPatch struct {
	StartDate Optional[string] `json:"startDate"`
	EndDate   Optional[string] `json:"endDate"`
	Goal      Optional[string] `json:"goal"`
}

// ToSprintDTO converts a Sprint model to SprintDTO. number is the sprint's
// 1-based ordinal within its project.
func ToSprintDTO(sprint models.Sprint, number int) SprintDTO {
	return SprintDTO{
		ID:        sprint.ID,
		Number:    number,
		StartDate: formatDate(sprint.StartDate),
		EndDate:   formatDate(sprint.EndDate),
		Goal:      sprint.Goal,
	}
}

// ApplySprintPatch merges supplied fields into the sprint. Absent fields are
// left untouched; the start/end ordering invariant is checked by the caller
// once both dates are settled.
func ApplySprintPatch(sprint *models.Sprint, patch SprintPatch) error {
	if patch.StartDate.Set {
		if patch.StartDate.Value == nil {
			return requiredFieldErr("startDate")
		}
		start, err := ParseDate(*patch.StartDate.Value)
		if err != nil {
			return err
		}
		sprint.StartDate = start
	}
	if patch.EndDate.Set {
		if patch.EndDate.Value == nil {
			return requiredFieldErr("endDate")
		}
		end, err := ParseDate(*patch.EndDate.Value)
		if err != nil {
			return err
		}
		sprint.EndDate = end
	}
	if patch.Goal.Set {
		sprint.Goal = patch.Goal.Value
	}
	return nil
}
