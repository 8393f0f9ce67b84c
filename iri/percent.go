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
	"fmt"
	"strings"
	"unicode/utf8"
)

// decodeTriplet consumes the two hexadecimal digits of a percent-encoded
// octet from the scanner. The "%" itself has already been consumed at byte
// offset pctOff. It returns the decoded octet.
func decodeTriplet(sc *scanner, pctOff int) (byte, *ParseError) {
	c1, ok1 := sc.next()
	c2, ok2 := sc.next()
	if !ok1 || !ok2 || !isASCIIHexDigit(c1) || !isASCIIHexDigit(c2) {
		return 0, &ParseError{Kind: InvalidPercentEncoding, Offset: pctOff}
	}
	return hexValue(c1)<<4 | hexValue(c2), nil
}

// validTripletAt reports whether s contains a full percent-encoded triplet
// starting at index i (s[i] must be '%').
func validTripletAt(s string, i int) bool {
	return i+2 < len(s) && isASCIIHexDigit(rune(s[i+1])) && isASCIIHexDigit(rune(s[i+2]))
}

// tripletOctet decodes the octet of the triplet starting at s[i]. The caller
// must have checked validTripletAt first.
func tripletOctet(s string, i int) byte {
	return hexValue(rune(s[i+1]))<<4 | hexValue(rune(s[i+2]))
}

// decodeUTF8Sequence reassembles a single code point from 1-4 percent-decoded
// octets. It rejects truncated sequences, stray continuation bytes, overlong
// encodings and surrogate code points, all of which utf8.DecodeRune reports
// as RuneError. The offset is only used for error reporting.
func decodeUTF8Sequence(octets []byte, off int) (rune, *ParseError) {
	r, size := utf8.DecodeRune(octets)
	if r == utf8.RuneError && size <= 1 {
		return 0, &ParseError{Kind: InvalidPercentEncoding, Offset: off}
	}
	if size != len(octets) {
		return 0, &ParseError{Kind: InvalidPercentEncoding, Offset: off}
	}
	return r, nil
}

// encodeCodePoint writes cp to b, percent-encoding its UTF-8 octets unless
// the allowed predicate admits the code point unescaped. Hex digits are
// always emitted in uppercase, the canonical case.
func encodeCodePoint(cp rune, allowed func(rune) bool, b *strings.Builder) {
	if allowed != nil && allowed(cp) {
		b.WriteRune(cp)
		return
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], cp)
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "%%%02X", buf[i])
	}
}

// percentEncodeNonASCII writes s to b, percent-encoding every non-ASCII
// code point via its UTF-8 octets. ASCII passes through untouched. This is
// the IRI-to-URI mapping of RFC 3987, Section 3.1, applied per component.
func percentEncodeNonASCII(s string, b *strings.Builder) {
	for _, ru := range s {
		if ru < utf8.RuneSelf {
			b.WriteRune(ru)
			continue
		}
		encodeCodePoint(ru, nil, b)
	}
}

// normalizePercent canonicalizes the percent-encoded triplets of a component
// per RFC 3986, Section 6.2.2. Triplets whose octet is an ASCII unreserved
// character are replaced by the literal character when decodeUnreserved is
// set; all remaining triplets get uppercase hex digits. The parser has
// already validated every triplet, so a bare "%" cannot occur here.
func normalizePercent(s string, decodeUnreserved bool) string {
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
		octet := tripletOctet(s, i)
		if decodeUnreserved && isUnreserved(rune(octet)) {
			b.WriteByte(octet)
		} else {
			fmt.Fprintf(&b, "%%%02X", octet)
		}
		i += 3
	}
	return b.String()
}
