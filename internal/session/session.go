// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session manages the backend session cookie the CLI forwards.
//
// The CLI never logs in by itself: the user copies the sessionid cookie from
// a browser session into `askdb session set`, and it is kept in the OS
// keychain. ASKDB_SESSION_ID overrides the stored value for one-off runs.
package session

import (
	"errors"
	"os"
	"strings"

	"askdb/cli/internal/keychain"
)

// EnvSessionID overrides the keychain when set.
const EnvSessionID = "ASKDB_SESSION_ID"

// Source says where a session id came from.
type Source string

const (
	SourceNone     Source = ""
	SourceEnv      Source = "env"
	SourceKeychain Source = "keychain"
)

// Store is the persistence the session needs.
type Store interface {
	SaveSessionID(id string) error
	LoadSessionID() (string, error)
	ClearSessionID() error
}

// Service resolves and persists the session id.
type Service struct {
	store  Store
	getenv func(string) string
}

// NewService returns a Service over store. A nil store means the keychain is
// unavailable; only the environment is consulted then.
func NewService(store Store) *Service {
	return &Service{store: store, getenv: os.Getenv}
}

// Resolve returns the session id to send, or "" when there is none.
// A keychain failure other than a missing entry is returned so the caller
// can warn; the request can still go out without a session.
func (s *Service) Resolve() (string, Source, error) {
	if v := strings.TrimSpace(s.getenv(EnvSessionID)); v != "" {
		return v, SourceEnv, nil
	}
	if s.store == nil {
		return "", SourceNone, nil
	}
	id, err := s.store.LoadSessionID()
	if errors.Is(err, keychain.ErrNotFound) {
		return "", SourceNone, nil
	}
	if err != nil {
		return "", SourceNone, err
	}
	return id, SourceKeychain, nil
}

// Set stores id. Surrounding whitespace and a leading "sessionid=" are
// stripped so a pasted cookie header works.
func (s *Service) Set(id string) error {
	if s.store == nil {
		return errors.New("keychain unavailable")
	}
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "sessionid=")
	if i := strings.IndexByte(id, ';'); i >= 0 {
		id = id[:i]
	}
	return s.store.SaveSessionID(id)
}

// Clear removes the stored id.
func (s *Service) Clear() error {
	if s.store == nil {
		return errors.New("keychain unavailable")
	}
	return s.store.ClearSessionID()
}
