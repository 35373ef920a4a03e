package service

import (
	"context"
	"time"

	"hawx.me/code/usos/connection"
)

// Consumer describes the application the consumer key was issued to.
type Consumer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Email       string `json:"email"`
	DateCreated string `json:"date_created"`
	// TokenScopes lists the scopes granted to the access token used for the
	// call. It is only present when the call was signed with one.
	TokenScopes []string `json:"token_scopes"`
}

var DefaultConsumerFields = []string{"name", "url", "email", "date_created", "token_scopes"}

type APIServerService struct {
	caller Caller
}

func NewAPIServerService(caller Caller) *APIServerService {
	return &APIServerService{caller: caller}
}

// Now returns the current time of the API server.
func (s *APIServerService) Now(ctx context.Context) (time.Time, error) {
	var now string
	if err := s.caller.Call(ctx, "services/apisrv/now", nil, &now); err != nil {
		return time.Time{}, err
	}

	return time.Parse("2006-01-02 15:04:05.999999", now)
}

// ConsumerInfo describes the calling application. Being signed, it is a cheap
// way to check that the access token is still valid.
func (s *APIServerService) ConsumerInfo(ctx context.Context, fields []string) (Consumer, error) {
	var consumer Consumer
	err := s.caller.Call(ctx, "services/apisrv/consumer", connection.Params{
		"fields": joinFields(fields, DefaultConsumerFields),
	}, &consumer)

	return consumer, err
}
