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

// Package urn converts between public identifiers and the "publicid" URN
// namespace of RFC 3151, and mints UUID URNs in the "uuid" namespace of
// RFC 4122.
package urn

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/koilabs/iri/iri"
)

// ErrNotPublicID is returned when a URN is not in the publicid namespace or
// does not follow the RFC 3151 transcription rules.
var ErrNotPublicID = errors.New("urn: not an RFC 3151 publicid URN")

var whitespaceRun = regexp.MustCompile(`[ \t\r\n]+`)

// FromPublicID converts a public identifier to its RFC 3151 URN form.
//
// Whitespace is first condensed to single spaces. The "//" and "::" field
// separators become ":" and ";", spaces become "+", and every other
// character outside the unreserved set is percent-encoded, so the result is
// always a valid URN.
//
//	FromPublicID("+//IDN example.org//DTD XML Bookmarks 1.0//EN//XML")
//	  = "urn:publicid:%2B:IDN+example.org:DTD+XML+Bookmarks+1.0:EN:XML"
func FromPublicID(publicid string) *iri.Ref {
	publicid = whitespaceRun.ReplaceAllString(strings.TrimSpace(publicid), " ")

	dsparts := strings.Split(publicid, "//")
	for i, dspart := range dsparts {
		dcparts := strings.Split(dspart, "::")
		for j, dcpart := range dcparts {
			dcparts[j] = encodeField(dcpart)
		}
		dsparts[i] = strings.Join(dcparts, ";")
	}
	return iri.MustParse("urn:publicid:" + strings.Join(dsparts, ":"))
}

// ToPublicID converts an RFC 3151 URN back to the public identifier it
// transcribes. Query and fragment components, if present, are ignored.
func ToPublicID(ref *iri.Ref) (string, error) {
	scheme, ok := ref.Scheme()
	if !ok || !strings.EqualFold(scheme, "urn") {
		return "", fmt.Errorf("%w: scheme is %q", ErrNotPublicID, scheme)
	}
	nid, nss, ok := strings.Cut(ref.Path(), ":")
	if !ok {
		return "", fmt.Errorf("%w: no namespace-specific string", ErrNotPublicID)
	}
	if percentDecode(nid) != "publicid" {
		return "", fmt.Errorf("%w: namespace is %q", ErrNotPublicID, nid)
	}

	// Reverse the transcription before decoding triplets, so encoded "+",
	// ":" and ";" data characters come back as themselves.
	s := strings.ReplaceAll(nss, "+", " ")
	s = strings.ReplaceAll(s, ":", "//")
	s = strings.ReplaceAll(s, ";", "::")
	return percentDecode(s), nil
}

// ParsePublicID parses a URN string and converts it to a public identifier
// in one step.
func ParsePublicID(urn string) (string, error) {
	ref, err := iri.Parse(urn)
	if err != nil {
		return "", err
	}
	return ToPublicID(ref)
}

// NewUUID mints a fresh random UUID URN, e.g.
// "urn:uuid:f81d4fae-7dec-11d0-a765-00a0c91e6bf6".
func NewUUID() *iri.Ref {
	return iri.MustParse(uuid.New().URN())
}

// FromUUID returns the URN form of an existing UUID.
func FromUUID(u uuid.UUID) *iri.Ref {
	return iri.MustParse(u.URN())
}

// UUIDFrom extracts the UUID from a URN in the uuid namespace.
func UUIDFrom(ref *iri.Ref) (uuid.UUID, error) {
	scheme, ok := ref.Scheme()
	if !ok || !strings.EqualFold(scheme, "urn") {
		return uuid.UUID{}, fmt.Errorf("urn: not a URN: %q", ref)
	}
	return uuid.Parse(ref.String())
}

// encodeField percent-encodes one data field of a public identifier per
// RFC 3151, Section 2: spaces become "+", unreserved characters pass, and
// everything else is encoded as its UTF-8 octets.
func encodeField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteByte('+')
		case isUnreserved(r):
			b.WriteRune(r)
		default:
			for _, octet := range []byte(string(r)) {
				fmt.Fprintf(&b, "%%%02X", octet)
			}
		}
	}
	return b.String()
}

// percentDecode replaces every well-formed triplet with its octet. Stray
// "%" signs pass through untouched; the transcription never produces them,
// but inputs arrive from outside.
func percentDecode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			b.WriteByte(hexValue(s[i+1])<<4 | hexValue(s[i+2]))
			i += 3
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isUnreserved(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') ||
		r == '-' || r == '.' || r == '_' || r == '~'
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c >= 'a':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
