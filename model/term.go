package model

// Term is an academic term, the result of services/terms/term.
type Term struct {
	ID         string    `json:"id"`
	Name       *LangDict `json:"name"`
	StartDate  *Date     `json:"start_date"`
	EndDate    *Date     `json:"end_date"`
	FinishDate *Date     `json:"finish_date"`
	OrderKey   int       `json:"order_key"`
	IsActive   *bool     `json:"is_active"`
}
