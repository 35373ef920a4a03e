package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"hawx.me/code/usos/apierror"
	"hawx.me/code/usos/auth"
)

// DefaultPath is used when a File has no path.
const DefaultPath = "usos_api_access_token.json"

// File keeps the token as {"access_token": ..., "access_token_secret": ...} in
// a JSON file.
type File struct {
	Path string
}

func (f File) path() (string, error) {
	path := f.Path
	if path == "" {
		path = DefaultPath
	}

	if !strings.HasSuffix(path, ".json") {
		return "", &apierror.ValidationError{Path: path, Reason: "file must be a JSON file"}
	}

	return path, nil
}

func (f File) Load(ctx context.Context) (auth.Token, error) {
	path, err := f.path()
	if err != nil {
		return auth.Token{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return auth.Token{}, ErrNotFound
	}
	if err != nil {
		return auth.Token{}, err
	}

	return decodeToken(path, data)
}

func (f File) Save(ctx context.Context, token auth.Token) error {
	path, err := f.path()
	if err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}

func decodeToken(path string, data []byte) (auth.Token, error) {
	var v struct {
		Token  *string `json:"access_token"`
		Secret *string `json:"access_token_secret"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return auth.Token{}, &apierror.ValidationError{Path: path, Reason: "invalid json", Err: err}
	}

	if v.Token == nil || *v.Token == "" {
		return auth.Token{}, &apierror.ValidationError{Path: path, Reason: "missing access_token"}
	}
	if v.Secret == nil || *v.Secret == "" {
		return auth.Token{}, &apierror.ValidationError{Path: path, Reason: "missing access_token_secret"}
	}

	return auth.Token{Token: *v.Token, Secret: *v.Secret}, nil
}
