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

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// ToURI maps the reference to a pure-ASCII URI string per RFC 3987,
// Section 3.1: each textual component is brought to NFC and its non-ASCII
// code points are percent-encoded as UTF-8 octets. A registered-name host is
// converted to its Punycode form when IDNA accepts it, so the result is
// usable as a hostname on the wire; hosts IDNA rejects fall back to percent
// encoding. Percent triplets already present are preserved as they are.
func (r *Ref) ToURI() string {
	var b strings.Builder
	if r.hasScheme {
		b.WriteString(r.scheme)
		b.WriteByte(':')
	}
	if r.hasAuthority {
		b.WriteString("//")
		if r.auth.hasUserinfo {
			percentEncodeNonASCII(norm.NFC.String(r.auth.userinfo), &b)
			b.WriteByte('@')
		}
		writeURIHost(r.auth.host, &b)
		if r.auth.hasPort {
			b.WriteByte(':')
			b.WriteString(r.auth.port)
		}
	}
	percentEncodeNonASCII(norm.NFC.String(r.path), &b)
	if r.hasQuery {
		b.WriteByte('?')
		percentEncodeNonASCII(norm.NFC.String(r.query), &b)
	}
	if r.hasFragment {
		b.WriteByte('#')
		percentEncodeNonASCII(norm.NFC.String(r.fragment), &b)
	}
	return b.String()
}

func writeURIHost(h Host, b *strings.Builder) {
	reg, ok := h.RegisteredName()
	if !ok {
		// IP literals and addresses serialize as ASCII already.
		b.WriteString(h.String())
		return
	}
	reg = norm.NFC.String(reg)
	if isASCIIString(reg) {
		b.WriteString(reg)
		return
	}
	if ascii, err := idna.ToASCII(reg); err == nil {
		b.WriteString(ascii)
		return
	}
	percentEncodeNonASCII(reg, b)
}

func isASCIIString(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// ParseURI parses a URI string into a Ref, converting it to IRI form per
// RFC 3987, Section 3.2: percent-encoded sequences of UTF-8 octets are
// decoded back to the characters they denote wherever the character is one
// an IRI may carry unescaped. Sequences that are not valid UTF-8, that
// decode to ASCII, or that decode to a character an IRI must keep escaped
// (such as bidi formatting characters) stay percent-encoded. The decoded
// text is then parsed with ParseNormalized.
func ParseURI(s string) (*Ref, error) {
	return ParseNormalized(decodeIRISequences(s))
}

// decodeIRISequences performs the octet-to-character unescaping step of the
// URI-to-IRI conversion. It works on whole UTF-8 sequences: the lead octet
// of each run of triplets fixes the expected length, and the sequence is
// decoded only if every continuation octet is present and the result is a
// permitted code point.
func decodeIRISequences(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '%' || !validTripletAt(s, i) {
			b.WriteByte(s[i])
			i++
			continue
		}
		lead := tripletOctet(s, i)
		need := utf8SequenceLen(lead)
		if need < 2 {
			// ASCII octets stay escaped: decoding them could change the
			// structure of the reference. Malformed lead octets stay
			// escaped too.
			b.WriteString(s[i : i+3])
			i += 3
			continue
		}
		octets := make([]byte, 0, utf8.UTFMax)
		octets = append(octets, lead)
		j := i + 3
		for len(octets) < need && j < len(s) && s[j] == '%' && validTripletAt(s, j) {
			octets = append(octets, tripletOctet(s, j))
			j += 3
		}
		cp, err := decodeUTF8Sequence(octets, i)
		if err != nil || !decodableInIRI(cp) {
			b.WriteString(s[i : i+3])
			i += 3
			continue
		}
		b.WriteRune(cp)
		i = j
	}
	return b.String()
}

// utf8SequenceLen returns the length of the UTF-8 sequence announced by a
// lead octet, or 0 when the octet cannot lead a multi-byte sequence.
func utf8SequenceLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// decodableInIRI reports whether a decoded code point may appear unescaped
// in some IRI component. Private-use characters qualify: they are legal in
// queries. Bidi formatting characters never qualify.
func decodableInIRI(cp rune) bool {
	if isForbiddenBidiFormatting(cp) {
		return false
	}
	return isUcschar(cp) || isIPrivate(cp)
}
