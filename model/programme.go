package model

import "encoding/json"

// Programme is a study programme, the result of services/progs/programme.
type Programme struct {
	ID                 string    `json:"id"`
	Name               *LangDict `json:"name"`
	Description        *LangDict `json:"description"`
	Faculty            *Faculty  `json:"faculty"`
	AllFaculties       []Faculty `json:"all_faculties"`
	ModeOfStudies      *LangDict `json:"mode_of_studies"`
	LevelOfStudies     *LangDict `json:"level_of_studies"`
	Duration           *LangDict `json:"duration"`
	ProfessionalStatus *LangDict `json:"professional_status"`
	Level              string    `json:"level"`
}

// StudentProgramme is a programme a student is enrolled in.
type StudentProgramme struct {
	ID            string     `json:"id"`
	User          *UserRef   `json:"user"`
	Programme     *Programme `json:"programme"`
	Status        string     `json:"status"`
	AdmissionDate *Date      `json:"admission_date"`
	// Stages are passed through undecoded, their shape depends on the
	// installation.
	Stages    []json.RawMessage `json:"stages"`
	IsPrimary *bool             `json:"is_primary"`
}

type Faculty struct {
	ID   string    `json:"id"`
	Name *LangDict `json:"name"`
}
