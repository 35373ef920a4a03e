package model

import "strings"

// User is the result of services/users/user. Only the fields requested with
// the call are set.
type User struct {
	ID                      UserID                   `json:"id"`
	FirstName               string                   `json:"first_name"`
	MiddleNames             string                   `json:"middle_names"`
	LastName                string                   `json:"last_name"`
	PreviousNames           []PreviousName           `json:"previous_names"`
	Sex                     *Sex                     `json:"sex"`
	Titles                  *Title                   `json:"titles"`
	StudentStatus           *StudentStatus           `json:"student_status"`
	StaffStatus             *StaffStatus             `json:"staff_status"`
	EmailAccess             *EmailAccess             `json:"email_access"`
	Email                   string                   `json:"email"`
	EmailURL                string                   `json:"email_url"`
	HasEmail                *bool                    `json:"has_email"`
	HomepageURL             string                   `json:"homepage_url"`
	ProfileURL              string                   `json:"profile_url"`
	PhoneNumbers            []string                 `json:"phone_numbers"`
	MobileNumbers           []string                 `json:"mobile_numbers"`
	OfficeHours             *LangDict                `json:"office_hours"`
	Interests               *LangDict                `json:"interests"`
	HasPhoto                *bool                    `json:"has_photo"`
	PhotoURLs               map[string]string        `json:"photo_urls"`
	StudentNumber           string                   `json:"student_number"`
	PESEL                   string                   `json:"pesel"`
	BirthDate               *Date                    `json:"birth_date"`
	RevenueOfficeID         string                   `json:"revenue_office_id"`
	Citizenship             *Country                 `json:"citizenship"`
	Room                    *Room                    `json:"room"`
	StudentProgrammes       []StudentProgramme       `json:"student_programmes"`
	EmploymentFunctions     []EmploymentFunction     `json:"employment_functions"`
	EmploymentPositions     []EmploymentPosition     `json:"employment_positions"`
	CourseEditionsConducted []CourseEditionConducted `json:"course_editions_conducted"`
	PostalAddresses         []PostalAddress          `json:"postal_addresses"`
	AltEmail                string                   `json:"alt_email"`
	CanIDebug               bool                     `json:"can_i_debug"`
	ExternalIDs             *ExternalIDs             `json:"external_ids"`
	PhDStudentStatus        *int                     `json:"phd_student_status"`
	LibraryCardID           string                   `json:"library_card_id"`
}

func (u User) String() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserRef is the short form of a user embedded in other records.
type UserRef struct {
	ID        UserID `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PreviousName is a name a user had until a given date.
type PreviousName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Until     *Date  `json:"until"`
}

// Title holds the academic titles shown before and after a user's name.
type Title struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Country struct {
	ID   string    `json:"id"`
	Name *LangDict `json:"name"`
}

type Room struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	BuildingID string `json:"building_id"`
}

type EmploymentFunction struct {
	Function   *LangDict `json:"function"`
	Faculty    *Faculty  `json:"faculty"`
	IsOfficial *bool     `json:"is_official"`
}

type Position struct {
	ID              string           `json:"id"`
	Name            *LangDict        `json:"name"`
	EmploymentGroup *EmploymentGroup `json:"employment_group"`
}

type EmploymentGroup struct {
	ID   string    `json:"id"`
	Name *LangDict `json:"name"`
}

type EmploymentPosition struct {
	Position *Position `json:"position"`
	Faculty  *Faculty  `json:"faculty"`
}

type PostalAddress struct {
	Type     string    `json:"type"`
	TypeName *LangDict `json:"type_name"`
	Address  string    `json:"address"`
}

type ExternalIDs struct {
	ORCID string `json:"orcid"`
	PBNID string `json:"pbn_id"`
}

// CourseEditionConducted is a course edition a staff member teaches.
type CourseEditionConducted struct {
	ID     string  `json:"id"`
	Course *Course `json:"course"`
	Term   *Term   `json:"term"`
}

type Course struct {
	ID   string    `json:"id"`
	Name *LangDict `json:"name"`
}
