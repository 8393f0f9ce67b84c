/*
Copyright 2026 Koilabs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package iri

import "fmt"

// ErrorKind identifies the structural cause of a parse or resolution failure.
// The set is closed; callers can switch over it exhaustively.
type ErrorKind int

const (
	// EmptyInput is returned when the input string is empty.
	EmptyInput ErrorKind = iota
	// InvalidScheme is returned when an input begins with a colon, so an
	// absolute IRI was clearly intended but no scheme is present.
	InvalidScheme
	// InvalidPercentEncoding is returned when a "%" is not followed by two
	// hexadecimal digits, or percent-decoded octets do not form a valid
	// UTF-8 code point where one is required.
	InvalidPercentEncoding
	// InvalidHostLiteral is returned when a bracketed host is neither a
	// valid IPv6 address nor a valid IPvFuture literal, or a bracketed host
	// is followed by anything other than a port.
	InvalidHostLiteral
	// IllegalCodePoint is returned when a code point is not permitted by
	// the grammar production being parsed.
	IllegalCodePoint
	// UnterminatedIPv6Literal is returned when a "[" host literal has no
	// matching "]".
	UnterminatedIPv6Literal
	// BidiViolation is returned when a component breaks the structural
	// bidirectional-text rules of RFC 3987, Section 4.2.
	BidiViolation
	// BaseNotAbsolute is returned by Resolve when the base reference has
	// no scheme.
	BaseNotAbsolute
)

// errorMessages maps each kind to its diagnostic text.
var errorMessages = map[ErrorKind]string{
	EmptyInput:              "empty input",
	InvalidScheme:           "invalid scheme",
	InvalidPercentEncoding:  "invalid percent-encoding",
	InvalidHostLiteral:      "invalid host literal",
	IllegalCodePoint:        "illegal code point",
	UnterminatedIPv6Literal: "unterminated IPv6 literal",
	BidiViolation:           "bidirectional text violates component structure",
	BaseNotAbsolute:         "base IRI is not absolute",
}

// ParseError is the error type returned by parsing and resolution functions
// in this package. It carries the byte offset of the failure in the input and,
// for IllegalCodePoint, the offending code point, so a diagnostic can be built
// without re-scanning the input.
type ParseError struct {
	// Kind is the structural cause of the failure.
	Kind ErrorKind
	// Offset is the byte offset into the input at which the failure was
	// detected. It is zero for EmptyInput and BaseNotAbsolute.
	Offset int
	// Rune is the offending code point for IllegalCodePoint, zero otherwise.
	Rune rune
	// Detail optionally names the component text involved in the failure.
	Detail string
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("IRI parse error: %s at offset %d", errorMessages[e.Kind], e.Offset)
	if e.Rune != 0 {
		msg = fmt.Sprintf("%s: %q", msg, e.Rune)
	} else if e.Detail != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Detail)
	}
	return msg
}

// Is reports whether target is a *ParseError of the same kind, which makes
// kind-only sentinels usable with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}
