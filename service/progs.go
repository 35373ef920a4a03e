package service

import (
	"context"

	"hawx.me/code/usos/connection"
	"hawx.me/code/usos/model"
)

// DefaultProgrammeFields are requested by Programme when no fields are given.
var DefaultProgrammeFields = []string{
	"id",
	"name",
	"mode_of_studies",
	"level_of_studies",
	"duration",
	"faculty",
}

type ProgrammeService struct {
	caller Caller
}

func NewProgrammeService(caller Caller) *ProgrammeService {
	return &ProgrammeService{caller: caller}
}

func (s *ProgrammeService) Programme(ctx context.Context, id string, fields []string) (model.Programme, error) {
	var programme model.Programme
	err := s.caller.Call(ctx, "services/progs/programme", connection.Params{
		"programme_id": id,
		"fields":       joinFields(fields, DefaultProgrammeFields),
	}, &programme)

	return programme, err
}
