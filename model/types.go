package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// UnknownValueError is returned when an enumerated field holds a value outside
// its known set.
type UnknownValueError struct {
	Type  string
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("model: unknown %s %s", e.Type, e.Value)
}

var null = []byte("null")

// UserID identifies a user. USOS sends it as a string, but numbers are also
// accepted.
type UserID int64

func (id *UserID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, null) {
		return nil
	}

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("model: invalid user id %s: %w", data, err)
	}

	*id = UserID(n)
	return nil
}

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// Date is a calendar date. It is used for every date field so that records
// persist dates in one format.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, null) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("model: invalid date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return null, nil
	}
	return json.Marshal(d.String())
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// LangDict is a string translated into Polish and English.
type LangDict struct {
	PL string `json:"pl"`
	EN string `json:"en"`
}

// Get returns the translation for lang, either "pl" or "en", falling back to
// the other language when it is missing.
func (l LangDict) Get(lang string) string {
	if lang == "pl" {
		if l.PL != "" {
			return l.PL
		}
		return l.EN
	}

	if l.EN != "" {
		return l.EN
	}
	return l.PL
}

func (l LangDict) String() string {
	return l.Get("en")
}
