package service

import (
	"context"

	"hawx.me/code/usos/connection"
	"hawx.me/code/usos/model"
)

// DefaultUserFields are requested by User when no fields are given.
var DefaultUserFields = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"student_number",
	"student_programmes",
	"student_status",
	"staff_status",
}

type UserService struct {
	caller Caller
}

func NewUserService(caller Caller) *UserService {
	return &UserService{caller: caller}
}

// User returns the user with userID, or the authorized user when userID is
// nil. The full list of fields is described at
// https://apps.usos.pwr.edu.pl/developers/api/services/users/#user.
func (s *UserService) User(ctx context.Context, userID *model.UserID, fields []string) (model.User, error) {
	var user model.User
	err := s.caller.Call(ctx, "services/users/user", connection.Params{
		"user_id": userID,
		"fields":  joinFields(fields, DefaultUserFields),
	}, &user)

	return user, err
}
