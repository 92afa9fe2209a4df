package dto

import "github.com/nvoloshyn/scrum-api/internal/models"

// ProjectDTO represents a project in API responses. Null-valued optional
// fields are omitted from the payload.
type ProjectDTO struct {
	Alias         string  `json:"alias"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	VCSLink       *string `json:"vcsLink,omitempty"`
	BTSLink       *string `json:"btsLink,omitempty"`
	CISLink       *string `json:"cisLink,omitempty"`
	CurrentSprint *uint64 `json:"currentSprint,omitempty"`
}

// ProjectSummaryDTO is the short form used in project listings
type ProjectSummaryDTO struct {
	Alias string `json:"alias"`
	Name  string `json:"name"`
}

// ToProjectDTO converts a Project model to ProjectDTO. currentSprintID is
// the sprint whose date range covers today, if any.
func ToProjectDTO(project models.Project, currentSprintID *uint64) ProjectDTO {
	return ProjectDTO{
		Alias:         project.Alias,
		Name:          project.Name,
		Description:   project.Description,
		VCSLink:       project.VCSLink,
		BTSLink:       project.BTSLink,
		CISLink:       project.CISLink,
		CurrentSprint: currentSprintID,
	}
}

// ToProjectSummaryDTO converts a Project model to its listing form
func ToProjectSummaryDTO(project models.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		Alias: project.Alias,
		Name:  project.Name,
	}
}
