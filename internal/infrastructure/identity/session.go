// Package identity holds the operator's backend credentials for the
// lifetime of a console session.
package identity

import "strings"

type TokenSession struct {
	token string
}

func NewTokenSession(token string) *TokenSession {
	return &TokenSession{token: strings.TrimSpace(token)}
}

func (s *TokenSession) SignedIn() bool {
	return s.token != ""
}

func (s *TokenSession) Token() string {
	return s.token
}
