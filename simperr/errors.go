// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package simperr defines the failure taxonomy shared by every stage of
// the SIMP engine (grid mapping, assembly, linear solve, OC update,
// extraction). It is kept as a leaf package so each stage can raise a
// typed error without importing the top-level engine façade.
package simperr

import "fmt"

// ErrorKind enumerates the fatal and non-fatal failure modes of the engine.
type ErrorKind string

// recognised error kinds
const (
	InvalidDomain        ErrorKind = "INVALID_DOMAIN"
	InvalidParam         ErrorKind = "INVALID_PARAM"
	ConstraintInfeasible ErrorKind = "CONSTRAINT_INFEASIBLE"
	FeDiverged           ErrorKind = "FE_DIVERGED"
	FeNumerical          ErrorKind = "FE_NUMERICAL"
	ExtractionEmpty      ErrorKind = "EXTRACTION_EMPTY"
	Cancelled            ErrorKind = "CANCELLED"
)

// EngineError is the public error type raised by every engine package.
// Cause, when set, holds the chk-wrapped error that triggered it.
type EngineError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *EngineError) Unwrap() error { return e.Cause }

// NewError builds an EngineError with an optional formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *EngineError {
	return &EngineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an EngineError carrying a lower-level cause.
func Wrap(kind ErrorKind, cause error, format string, args ...interface{}) *EngineError {
	return &EngineError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err is an *EngineError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ee, ok := err.(*EngineError)
	if !ok {
		return false
	}
	return ee.Kind == kind
}
