// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vserr defines the closed set of typed error kinds every core
// operation fails with (§6/§7 of the specification), in the style of
// cogentcore's errors package: thin wrappers around the standard library's
// errors.Is/As/Join rather than a bespoke exception hierarchy.
package vserr

import (
	"errors"
	"fmt"
)

// Kind is a closed error-kind enum. New kinds are never added by callers;
// the set is fixed by the specification.
type Kind string

const (
	DuplicateId               Kind = "DuplicateId"
	DuplicateName              Kind = "DuplicateName"
	NotFound                  Kind = "NotFound"
	InvalidPath               Kind = "InvalidPath"
	ReferenceCycle             Kind = "ReferenceCycle"
	PrototypeInUse             Kind = "PrototypeInUse"
	BlockAlreadyOpen           Kind = "BlockAlreadyOpen"
	TypeMismatch               Kind = "TypeMismatch"
	InvalidOverridePath        Kind = "InvalidOverridePath"
	InstanceStructureMismatch  Kind = "InstanceStructureMismatch"
	SizeOutOfRange             Kind = "SizeOutOfRange"
	SchemaUnsupported          Kind = "SchemaUnsupported"
)

// Error is the typed error every core operation returns on failure. It
// always carries a human-readable context string identifying the
// offending node id or path, per §7.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "addVariable", "commit".
	Op string
	// Context identifies the offending node id or path.
	Context string
	// Err optionally wraps an underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error.
func New(kind Kind, op, context string) *Error {
	return &Error{Kind: kind, Op: op, Context: context}
}

// Wrap constructs an *Error wrapping an underlying cause.
func Wrap(kind Kind, op, context string, err error) *Error {
	return &Error{Kind: kind, Op: op, Context: context, Err: err}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
