// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrOracle indicates the extraction oracle call failed
	// (timeout, network failure, quota or auth failure).
	ErrOracle = errors.New("oracle failure")

	// ErrParse indicates the oracle reply could not be understood.
	ErrParse = errors.New("parse failed")

	// ErrValidation indicates the parsed object lacked required structure.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// ParseErrorKind discriminates parse failures.
type ParseErrorKind string

const (
	// ParseNoObjectFound means no balanced JSON object exists in the reply.
	ParseNoObjectFound ParseErrorKind = "no_object_found"

	// ParseInvalidJSON means a brace-balanced region was found but failed
	// to decode as JSON.
	ParseInvalidJSON ParseErrorKind = "invalid_json"
)

// ParseError reports that an oracle reply could not be decoded.
// Raw optionally carries the offending reply for diagnostics; it is never
// substituted with an empty structure.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
	Raw    string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parsing oracle reply: %s: %s", e.Kind, e.Detail)
	}

	return fmt.Sprintf("parsing oracle reply: %s", e.Kind)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a parse error with context.
func NewParseError(kind ParseErrorKind, detail, raw string) error {
	return &ParseError{Kind: kind, Detail: detail, Raw: raw}
}

// ValidationKind discriminates validation failures so operators can tell
// "oracle ignored instructions" apart from "oracle returned malformed JSON".
type ValidationKind string

const (
	// ValidationMissingClient means the client name is absent or empty.
	ValidationMissingClient ValidationKind = "missing_client"

	// ValidationMissingItems means the items sequence is absent or empty.
	ValidationMissingItems ValidationKind = "missing_items"

	// ValidationInvalidLineItem means a line item entry lacked a required
	// field or carried an out-of-range value.
	ValidationInvalidLineItem ValidationKind = "invalid_line_item"
)

// ValidationError provides context for validation errors.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Index   int
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Kind == ValidationInvalidLineItem {
		return fmt.Sprintf("validation failed: items[%d].%s %s", e.Index, e.Field, e.Message)
	}

	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewMissingClientError creates the error for an absent client name.
func NewMissingClientError() error {
	return &ValidationError{
		Kind:    ValidationMissingClient,
		Field:   "client",
		Message: "is required",
	}
}

// NewMissingItemsError creates the error for an absent or empty item list.
func NewMissingItemsError() error {
	return &ValidationError{
		Kind:    ValidationMissingItems,
		Field:   "items",
		Message: "must contain at least one item",
	}
}

// NewValidationError creates a validation error for a named field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewInvalidLineItemError creates the error for a malformed line item.
func NewInvalidLineItemError(index int, field, message string) error {
	return &ValidationError{
		Kind:    ValidationInvalidLineItem,
		Index:   index,
		Field:   field,
		Message: message,
	}
}

// OracleError provides context for oracle failures.
type OracleError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *OracleError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("oracle %q failed: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("oracle %q failed", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *OracleError) Unwrap() error {
	return ErrOracle
}

// NewOracleError creates an oracle error with context.
func NewOracleError(service, reason string) error {
	return &OracleError{Service: service, Reason: reason}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsOracle checks if an error is an oracle error.
func IsOracle(err error) bool {
	return errors.Is(err, ErrOracle)
}

// IsParse checks if an error is a parse error.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
