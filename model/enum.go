package model

import (
	"encoding/json"
	"strconv"
)

type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

func (s *Sex) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch Sex(v) {
	case Male, Female:
		*s = Sex(v)
		return nil
	}
	return &UnknownValueError{Type: "sex", Value: strconv.Quote(v)}
}

// EmailAccess describes how the current user may see another user's email.
type EmailAccess string

const (
	NoEmail        EmailAccess = "no_email"
	NoAccess       EmailAccess = "no_access"
	RequireCaptcha EmailAccess = "require_captcha"
	Plaintext      EmailAccess = "plaintext"
)

func (e *EmailAccess) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch EmailAccess(v) {
	case NoEmail, NoAccess, RequireCaptcha, Plaintext:
		*e = EmailAccess(v)
		return nil
	}
	return &UnknownValueError{Type: "email access", Value: strconv.Quote(v)}
}

type StudentStatus int

const (
	NotStudent StudentStatus = iota
	InactiveStudent
	ActiveStudent
)

func (s *StudentStatus) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v < int(NotStudent) || v > int(ActiveStudent) {
		return &UnknownValueError{Type: "student status", Value: strconv.Itoa(v)}
	}

	*s = StudentStatus(v)
	return nil
}

func (s StudentStatus) String() string {
	switch s {
	case NotStudent:
		return "NOT_STUDENT"
	case InactiveStudent:
		return "INACTIVE_STUDENT"
	case ActiveStudent:
		return "ACTIVE_STUDENT"
	default:
		return "UNKNOWN"
	}
}

type StaffStatus int

const (
	NotStaff StaffStatus = iota
	NonAcademicStaff
	AcademicTeacher
)

func (s *StaffStatus) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v < int(NotStaff) || v > int(AcademicTeacher) {
		return &UnknownValueError{Type: "staff status", Value: strconv.Itoa(v)}
	}

	*s = StaffStatus(v)
	return nil
}

func (s StaffStatus) String() string {
	switch s {
	case NotStaff:
		return "NOT_STAFF"
	case NonAcademicStaff:
		return "NON_ACADEMIC_STAFF"
	case AcademicTeacher:
		return "ACADEMIC_TEACHER"
	default:
		return "UNKNOWN"
	}
}
