// Package service wraps USOS API modules in typed calls.
package service

import (
	"context"
	"strings"

	"hawx.me/code/usos/connection"
)

// Caller performs one signed call and decodes its result into v.
// *connection.Connection implements it.
type Caller interface {
	Call(ctx context.Context, service string, params connection.Params, v interface{}) error
}

var _ Caller = (*connection.Connection)(nil)

// joinFields builds the "a|b|c" field selector, using defaults when fields is
// empty.
func joinFields(fields, defaults []string) string {
	if len(fields) == 0 {
		fields = defaults
	}
	return strings.Join(fields, "|")
}
