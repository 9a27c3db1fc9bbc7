// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the workflow can surface falls into one Kind, which lets the
// controller pick the right message without re-inspecting response payloads.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// so callers can still reach the transport cause with errors.As / errors.Is.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Application indicates the backend answered with success:false or a
	// well-formed body that lacks the fields the stage requires.
	Application Kind = "application"
	// Transport indicates a network failure or an unparseable response.
	Transport Kind = "transport"
	// NoSQL indicates chart generation was requested before any SQL was captured.
	NoSQL Kind = "no_sql"
	// Busy indicates the stage already has a request in flight.
	Busy Kind = "busy"
	// InvalidInput indicates a locally rejected argument.
	InvalidInput Kind = "invalid_input"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

// Is matches another *E by kind only, so sentinels like ErrBusy compare
// equal to any busy error regardless of message.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of the first *E in err's chain, or "" when none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the message carried by the first *E in err's chain.
func MessageOf(err error) string {
	var e *E
	if stderrors.As(err, &e) {
		return e.Message
	}
	return ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrBusy  = &E{Kind: Busy}
	ErrNoSQL = &E{Kind: NoSQL}
)
