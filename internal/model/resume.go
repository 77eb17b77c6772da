package model

import "time"

// ResumeSection is one editable block of the resume page (experience,
// education, skills, projects...). Body holds markdown; Kind selects the
// rendering template on the public page.
type ResumeSection struct {
	ID        uint64    `json:"id"`         // resume_sections.id
	Kind      string    `json:"kind"`       // resume_sections.kind (e.g. "experience", "project")
	Title     string    `json:"title"`      // resume_sections.title
	Body      string    `json:"body"`       // resume_sections.body
	Position  int       `json:"position"`   // resume_sections.position (sort order)
	IsVisible bool      `json:"is_visible"` // resume_sections.is_visible
	UpdatedAt time.Time `json:"updated_at"` // resume_sections.updated_at
}
