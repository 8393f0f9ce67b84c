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

// Package iri provides types and functions for working with Internationalized
// Resource Identifiers (IRIs) and IRI references as defined by RFC 3987.
//
// The central type is Ref, the structured result of parsing an IRI
// reference: scheme, authority (userinfo, host, port), path, query and
// fragment. A Ref is immutable; transformations such as Resolve and
// Normalize return new values, so a base IRI held by a caller is never
// aliased by a derived result.
//
// Key features include:
//   - Strict parsing and validation against RFC 3987, with structured
//     errors carrying the byte offset of the failure.
//   - Reference resolution (Resolve) per RFC 3986, Section 5.
//   - Policy-driven syntax normalization (Normalize) per RFC 3986,
//     Section 6.2.2.
//   - Conversion between IRIs and URIs (ToURI, ParseURI).
//   - JSON marshalling and unmarshalling.
//
// All operations are pure functions over immutable inputs and are safe for
// concurrent use.
package iri

import (
	"strings"

	// TODO: At some point implement my own NFC module.
	"golang.org/x/text/unicode/norm"
)

// Authority is the "//"-prefixed component of an IRI reference: optional
// userinfo, a host and an optional port. The zero value is an empty host
// with neither userinfo nor port.
type Authority struct {
	userinfo    string
	hasUserinfo bool
	host        Host
	port        string
	hasPort     bool
}

// Userinfo returns the userinfo subcomponent and whether it was present.
func (a Authority) Userinfo() (string, bool) {
	return a.userinfo, a.hasUserinfo
}

// Host returns the host subcomponent. A host is always present in an
// authority, though it may be an empty registered name.
func (a Authority) Host() Host {
	return a.host
}

// Port returns the port subcomponent and whether it was present. The port
// text may be empty even when present ("http://h:").
func (a Authority) Port() (string, bool) {
	return a.port, a.hasPort
}

// String serializes the authority without its leading "//".
func (a Authority) String() string {
	var b strings.Builder
	if a.hasUserinfo {
		b.WriteString(a.userinfo)
		b.WriteByte('@')
	}
	b.WriteString(a.host.String())
	if a.hasPort {
		b.WriteByte(':')
		b.WriteString(a.port)
	}
	return b.String()
}

// Ref is a parsed IRI reference, absolute or relative. The zero value is
// the empty reference, which resolves to the base it is resolved against.
// Ref values are immutable and comparable; use Equal for structural
// equality checks.
type Ref struct {
	scheme       string
	hasScheme    bool
	auth         Authority
	hasAuthority bool
	path         string
	query        string
	hasQuery     bool
	fragment     string
	hasFragment  bool
}

// Parse parses and validates s as an IRI reference. The input is taken
// as-is, without Unicode normalization, which preserves the exact character
// sequence for applications that use IRIs as opaque identifiers. Use
// ParseNormalized when canonical equivalence matters.
func Parse(s string) (*Ref, error) {
	ref, err := parseRef(s)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// ParseNormalized normalizes s to Unicode Normalization Form C (NFC) and
// then parses it. Per RFC 3987, Sections 3.1 and 5.3.2.2, this is the right
// entry point when the input does not come from a pre-normalized Unicode
// source. Error offsets refer to the NFC form of the input.
func ParseNormalized(s string) (*Ref, error) {
	ref, err := parseRef(norm.NFC.String(s))
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// MustParse is like Parse but panics on error. It simplifies variable
// initialization with known-valid literals.
func MustParse(s string) *Ref {
	ref, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ref
}

// SchemeOf cheaply extracts the scheme from an IRI reference string without
// a full parse. It returns false if s has no valid scheme prefix.
func SchemeOf(s string) (string, bool) {
	for i, r := range s {
		switch {
		case r == ':':
			if i == 0 {
				return "", false
			}
			return s[:i], true
		case isASCIILetter(r), i > 0 && (isASCIIDigit(r) || r == '+' || r == '-' || r == '.'):
		default:
			return "", false
		}
	}
	return "", false
}

// Scheme returns the scheme component and whether it was present.
func (r *Ref) Scheme() (string, bool) {
	return r.scheme, r.hasScheme
}

// Authority returns the authority component and whether it was present.
func (r *Ref) Authority() (Authority, bool) {
	return r.auth, r.hasAuthority
}

// Path returns the path component. A path is always present, though it may
// be the empty string.
func (r *Ref) Path() string {
	return r.path
}

// Segments returns the path split into its segments. The leading empty
// segment of an absolute path is not included; empty interior segments are.
// A nil slice is returned for the empty path.
func (r *Ref) Segments() []string {
	if r.path == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(r.path, "/"), "/")
}

// Query returns the query component and whether it was present.
func (r *Ref) Query() (string, bool) {
	return r.query, r.hasQuery
}

// Fragment returns the fragment component and whether it was present.
func (r *Ref) Fragment() (string, bool) {
	return r.fragment, r.hasFragment
}

// IsAbsolute reports whether the reference is an absolute IRI, i.e. has a
// scheme.
func (r *Ref) IsAbsolute() bool {
	return r.hasScheme
}

// IsSchemeRelative reports whether the reference is a network-path
// reference: no scheme, but an authority ("//example.org/x").
func (r *Ref) IsSchemeRelative() bool {
	return !r.hasScheme && r.hasAuthority
}

// IsRelative reports whether the reference is relative: neither a scheme
// nor an authority.
func (r *Ref) IsRelative() bool {
	return !r.hasScheme && !r.hasAuthority
}

// String recomposes the reference per RFC 3986, Section 5.3. For any Ref
// produced by Parse, the result parses back to a structurally equal Ref.
func (r *Ref) String() string {
	var b strings.Builder
	if r.hasScheme {
		b.WriteString(r.scheme)
		b.WriteByte(':')
	}
	if r.hasAuthority {
		b.WriteString("//")
		b.WriteString(r.auth.String())
	}
	b.WriteString(r.path)
	if r.hasQuery {
		b.WriteByte('?')
		b.WriteString(r.query)
	}
	if r.hasFragment {
		b.WriteByte('#')
		b.WriteString(r.fragment)
	}
	return b.String()
}

// Equal reports structural equality of two references: same components
// present with the same values. For IP hosts the comparison is over address
// bytes, so textual case differences in hex groups do not matter.
func (r *Ref) Equal(other *Ref) bool {
	if r == nil || other == nil {
		return r == other
	}
	return *r == *other
}

// WithoutFragment returns the reference with its fragment component, if
// any, removed. The receiver is unchanged.
func (r *Ref) WithoutFragment() *Ref {
	if !r.hasFragment {
		return r
	}
	out := *r
	out.fragment = ""
	out.hasFragment = false
	return &out
}

// Resolve resolves a relative reference string against r, which must be
// absolute. It is shorthand for ResolveReference(r, ref).
func (r *Ref) Resolve(ref string) (*Ref, error) {
	return ResolveReference(r, ref)
}

// Normalize applies syntax-based normalization under the given policy and
// returns a new reference. See the package-level Normalize.
func (r *Ref) Normalize(policy NormalizationPolicy) *Ref {
	return Normalize(r, policy)
}
