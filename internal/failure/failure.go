// Package failure defines the closed error taxonomy returned by ingestion,
// extraction and generation. Callers switch on Kind rather than on
// provider- or transport-specific error types.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindInvalidLocator          Kind = "invalid_locator"
	KindAmbiguousSource         Kind = "ambiguous_source"
	KindSourceNotFound          Kind = "source_not_found"
	KindProviderError           Kind = "provider_error"
	KindMalformedProviderOutput Kind = "malformed_provider_output"
	KindEmptyExtractedText      Kind = "empty_extracted_text"
)

// MaxCandidates bounds the titles carried by an AmbiguousSource error.
const MaxCandidates = 5

// Error is the single concrete error type of the taxonomy.
type Error struct {
	Kind Kind

	// Message is human readable and safe to show to an end user.
	Message string

	// Candidates is only set for KindAmbiguousSource.
	Candidates []string

	// Err is the underlying cause, if any. It is never rendered to users
	// directly; Message already carries what they need.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidLocator reports a locator that could not be resolved.
func InvalidLocator(locator string) *Error {
	return &Error{
		Kind:    KindInvalidLocator,
		Message: fmt.Sprintf("invalid locator %q", locator),
	}
}

// UnsupportedUpload reports an upload whose file name does not name a PDF.
// Upload locators are invalid unless they point at a PDF.
func UnsupportedUpload(filename string) *Error {
	return &Error{
		Kind:    KindInvalidLocator,
		Message: "Only PDF files are supported",
		Err:     fmt.Errorf("unsupported upload %q", filename),
	}
}

// AmbiguousSource reports a title matching several articles. At most
// MaxCandidates titles are kept.
func AmbiguousSource(candidates []string) *Error {
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	return &Error{
		Kind:       KindAmbiguousSource,
		Message:    "Ambiguous title",
		Candidates: append([]string(nil), candidates...),
	}
}

// SourceNotFound reports that no article exists for the title.
func SourceNotFound(title string) *Error {
	return &Error{
		Kind:    KindSourceNotFound,
		Message: "Article not found",
		Err:     fmt.Errorf("no article titled %q", title),
	}
}

// ProviderError carries the raw message of a remote or provider failure.
func ProviderError(err error) *Error {
	msg := "unknown provider failure"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindProviderError, Message: msg, Err: err}
}

// MalformedProviderOutput reports structured output that failed to parse
// or validate.
func MalformedProviderOutput(err error) *Error {
	return &Error{
		Kind:    KindMalformedProviderOutput,
		Message: "provider returned malformed output",
		Err:     err,
	}
}

// EmptyExtractedText reports an upload that yielded no usable text.
func EmptyExtractedText(err error) *Error {
	return &Error{
		Kind:    KindEmptyExtractedText,
		Message: "No text could be extracted from the PDF",
		Err:     err,
	}
}

// KindOf returns the Kind of err, or "" when err is not part of the taxonomy.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Is reports whether err belongs to the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
