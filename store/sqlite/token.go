package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"hawx.me/code/usos/auth"
	"hawx.me/code/usos/store"
)

// Token is a saved access token. Name is chosen by the caller, typically the
// consumer key or an account label.
type Token struct {
	Name      string
	Token     string
	Secret    string
	Scopes    []string
	CreatedAt time.Time
}

func (d *Database) SaveToken(ctx context.Context, token Token) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO token(Name, Token, Secret, Scopes, CreatedAt) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(Name) DO UPDATE SET
			Token = excluded.Token,
			Secret = excluded.Secret,
			Scopes = excluded.Scopes,
			CreatedAt = excluded.CreatedAt`,
		token.Name,
		token.Token,
		token.Secret,
		strings.Join(token.Scopes, "|"),
		token.CreatedAt)

	return err
}

func (d *Database) Token(ctx context.Context, name string) (token Token, err error) {
	row := d.db.QueryRowContext(ctx, `SELECT Name, Token, Secret, Scopes, CreatedAt FROM token WHERE Name = ?`,
		name)

	var scopes string
	err = row.Scan(
		&token.Name,
		&token.Token,
		&token.Secret,
		&scopes,
		&token.CreatedAt)
	if scopes != "" {
		token.Scopes = strings.Split(scopes, "|")
	}
	return
}

func (d *Database) RevokeToken(ctx context.Context, name string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM token WHERE Name = ?`, name)

	return err
}

// Store returns a store.Store that keeps its token under name.
func (d *Database) Store(name string, scopes ...string) store.Store {
	return &namedStore{db: d, name: name, scopes: scopes}
}

type namedStore struct {
	db     *Database
	name   string
	scopes []string
}

func (s *namedStore) Load(ctx context.Context) (auth.Token, error) {
	token, err := s.db.Token(ctx, s.name)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Token{}, store.ErrNotFound
	}
	if err != nil {
		return auth.Token{}, err
	}

	return auth.Token{Token: token.Token, Secret: token.Secret}, nil
}

func (s *namedStore) Save(ctx context.Context, token auth.Token) error {
	return s.db.SaveToken(ctx, Token{
		Name:      s.name,
		Token:     token.Token,
		Secret:    token.Secret,
		Scopes:    s.scopes,
		CreatedAt: time.Now().UTC(),
	})
}
