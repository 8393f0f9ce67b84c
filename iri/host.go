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
	"net/netip"
	"strings"
)

// HostKind discriminates the closed set of host representations.
type HostKind int

const (
	// HostRegName is a registered name, possibly empty and possibly
	// containing percent-encoded triplets. Stored verbatim.
	HostRegName HostKind = iota
	// HostIPv4 is a dotted-quad IPv4 address.
	HostIPv4
	// HostIPv6 is a bracketed IPv6 literal, with an optional zone id.
	HostIPv6
	// HostIPvFuture is a bracketed version-tagged literal ("v1.x"), kept
	// as its raw text.
	HostIPvFuture
)

// Host is the tagged-union host component of an authority. The zero value is
// an empty registered name. Host values are immutable and comparable.
type Host struct {
	kind HostKind
	reg  string     // registered name, or the raw IPvFuture literal
	addr netip.Addr // IPv4 or IPv6 address bytes
	zone string     // IPv6 zone id, verbatim text after the "%25" introducer
}

// Kind returns the variant of the host.
func (h Host) Kind() HostKind {
	return h.kind
}

// RegisteredName returns the registered-name text and whether the host is a
// registered name.
func (h Host) RegisteredName() (string, bool) {
	if h.kind != HostRegName {
		return "", false
	}
	return h.reg, true
}

// IPv4 returns the four address octets and whether the host is an IPv4 address.
func (h Host) IPv4() ([4]byte, bool) {
	if h.kind != HostIPv4 {
		return [4]byte{}, false
	}
	return h.addr.As4(), true
}

// IPv6 returns the sixteen address bytes, the zone id (empty when absent) and
// whether the host is an IPv6 address. The zone id is exactly the text that
// followed the "%25" introducer in the literal; it is never case-folded or
// percent-decoded.
func (h Host) IPv6() ([16]byte, string, bool) {
	if h.kind != HostIPv6 {
		return [16]byte{}, "", false
	}
	return h.addr.As16(), h.zone, true
}

// IPvFuture returns the raw literal between the brackets (including the
// leading "v") and whether the host is an IPvFuture literal.
func (h Host) IPvFuture() (string, bool) {
	if h.kind != HostIPvFuture {
		return "", false
	}
	return h.reg, true
}

// String serializes the host for recomposition. IP literals are bracketed;
// the IPv6 form is the compressed canonical form, with the zone id restored
// behind its "%25" introducer.
func (h Host) String() string {
	switch h.kind {
	case HostIPv4:
		return h.addr.String()
	case HostIPv6:
		if h.zone != "" {
			return "[" + h.addr.String() + "%25" + h.zone + "]"
		}
		return "[" + h.addr.String() + "]"
	case HostIPvFuture:
		return "[" + h.reg + "]"
	default:
		return h.reg
	}
}

// parseHostText classifies and validates the host text of an authority.
// base is the byte offset of text within the full input, used for error
// reporting. Bracketed literals are dispatched to the IPv6/IPvFuture
// validators; a backtrack-free dotted-quad match yields IPv4; everything
// else must be a valid registered name.
func parseHostText(text string, base int) (Host, *ParseError) {
	if strings.HasPrefix(text, "[") {
		// The caller guarantees the closing bracket is present and last.
		return parseIPLiteral(text[1:len(text)-1], base+1)
	}
	if addr, ok := matchIPv4(text); ok {
		return Host{kind: HostIPv4, addr: addr}, nil
	}
	if err := validateRegName(text, base); err != nil {
		return Host{}, err
	}
	return Host{kind: HostRegName, reg: text}, nil
}

// matchIPv4 greedily matches a dotted-quad IPv4 address. Anything that is
// not exactly four decimal groups in 0-255 falls through to the
// registered-name grammar, which also admits digits and dots.
func matchIPv4(text string) (netip.Addr, bool) {
	if text == "" {
		return netip.Addr{}, false
	}
	for i := 0; i < len(text); i++ {
		if text[i] != '.' && !isASCIIDigit(rune(text[i])) {
			return netip.Addr{}, false
		}
	}
	addr, err := netip.ParseAddr(text)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, false
	}
	return addr, true
}

// parseIPLiteral validates the inside of a bracketed host literal: either an
// IPvFuture literal or an IPv6 address with an optional RFC 6874 zone id.
func parseIPLiteral(inner string, base int) (Host, *ParseError) {
	if strings.HasPrefix(inner, "v") || strings.HasPrefix(inner, "V") {
		if err := validateIPvFuture(inner, base); err != nil {
			return Host{}, err
		}
		return Host{kind: HostIPvFuture, reg: inner}, nil
	}

	addrText := inner
	var zone string
	if i := strings.IndexByte(inner, '%'); i >= 0 {
		// RFC 6874: the zone id is introduced by "%25" (the encoded "%").
		if !strings.HasPrefix(inner[i:], "%25") || len(inner) == i+3 {
			return Host{}, &ParseError{Kind: InvalidPercentEncoding, Offset: base + i}
		}
		addrText = inner[:i]
		zone = inner[i+3:]
		if err := validateZoneID(zone, base+i+3); err != nil {
			return Host{}, err
		}
	}

	addr, err := netip.ParseAddr(addrText)
	if err != nil || !addr.Is6() {
		return Host{}, &ParseError{Kind: InvalidHostLiteral, Offset: base, Detail: inner}
	}
	return Host{kind: HostIPv6, addr: addr, zone: zone}, nil
}

// validateZoneID checks the zone id against ZoneID = 1*(unreserved / pct-encoded).
// The text itself is preserved verbatim; validation is the only processing.
func validateZoneID(zone string, base int) *ParseError {
	i := 0
	for i < len(zone) {
		if zone[i] == '%' {
			if !validTripletAt(zone, i) {
				return &ParseError{Kind: InvalidPercentEncoding, Offset: base + i}
			}
			i += 3
			continue
		}
		r := rune(zone[i])
		if !isUnreserved(r) {
			return &ParseError{Kind: IllegalCodePoint, Offset: base + i, Rune: r}
		}
		i++
	}
	return nil
}

// validateIPvFuture validates an IPvFuture literal ("v" 1*HEXDIG "." 1*(...)).
func validateIPvFuture(lit string, base int) *ParseError {
	dot := strings.IndexByte(lit, '.')
	if dot < 0 {
		return &ParseError{Kind: InvalidHostLiteral, Offset: base, Detail: lit}
	}
	version, address := lit[1:dot], lit[dot+1:]
	if version == "" || address == "" {
		return &ParseError{Kind: InvalidHostLiteral, Offset: base, Detail: lit}
	}
	for i, r := range version {
		if !isASCIIHexDigit(r) {
			return &ParseError{Kind: IllegalCodePoint, Offset: base + 1 + i, Rune: r}
		}
	}
	for i, r := range address {
		if !isUnreserved(r) && !isSubDelim(r) && r != ':' {
			return &ParseError{Kind: IllegalCodePoint, Offset: base + dot + 1 + i, Rune: r}
		}
	}
	return nil
}

// validateRegName checks a registered name: iunreserved, sub-delims and
// percent-encoded triplets only.
func validateRegName(text string, base int) *ParseError {
	sc := newScanner(text)
	for {
		off := sc.offset()
		r, ok := sc.next()
		if !ok {
			return nil
		}
		if r == '%' {
			if _, err := decodeTriplet(sc, base+off); err != nil {
				return err
			}
			continue
		}
		if !isIUnreserved(r) && !isSubDelim(r) {
			return &ParseError{Kind: IllegalCodePoint, Offset: base + off, Rune: r}
		}
	}
}
