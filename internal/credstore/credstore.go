// Package credstore stores the three credentials the upstream AFL Fantasy
// API requires: team ID, session cookie, and API token. All keys live under
// a fixed service namespace so multiple deployments can share one Redis.
package credstore

import (
	"context"
	"errors"
)

// Namespace prefixes every credential key.
const Namespace = "aflcoach:credentials"

// ErrMissing is returned when one or more credentials have not been stored.
var ErrMissing = errors.New("credentials not found")

// Credentials holds the upstream auth material.
type Credentials struct {
	TeamID        string
	SessionCookie string
	APIToken      string
}

// Complete reports whether every field needed to authenticate is present.
// The API token is optional on some endpoints; team ID and cookie are not.
func (c Credentials) Complete() bool {
	return c.TeamID != "" && c.SessionCookie != ""
}

// Store is the credential storage contract.
type Store interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
