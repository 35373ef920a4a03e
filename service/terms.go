package service

import (
	"context"

	"hawx.me/code/usos/connection"
	"hawx.me/code/usos/model"
)

type TermService struct {
	caller Caller
}

func NewTermService(caller Caller) *TermService {
	return &TermService{caller: caller}
}

// Term returns the term with id, for example "2023Z".
func (s *TermService) Term(ctx context.Context, id string) (model.Term, error) {
	var term model.Term
	err := s.caller.Call(ctx, "services/terms/term", connection.Params{
		"term_id": id,
	}, &term)

	return term, err
}

// Terms returns the terms with the given ids. Ids unknown to USOS map to nil.
func (s *TermService) Terms(ctx context.Context, ids []string) (map[string]*model.Term, error) {
	var terms map[string]*model.Term
	err := s.caller.Call(ctx, "services/terms/terms", connection.Params{
		"term_ids": ids,
	}, &terms)

	return terms, err
}
