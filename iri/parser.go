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

import "strings"

// parser holds the state of a single parse: the input cursor and the
// reference under construction. The grammar is processed strictly left to
// right; the only saved position is the production boundary at the start of
// a scheme candidate, so work is bounded by the input length.
type parser struct {
	in  *scanner
	ref Ref
}

// parseRef parses and validates s as an IRI reference, producing its
// structured components.
func parseRef(s string) (*Ref, *ParseError) {
	if s == "" {
		return nil, &ParseError{Kind: EmptyInput}
	}
	p := &parser{in: newScanner(s)}
	if err := p.parseSchemeStart(); err != nil {
		return nil, err
	}
	if err := p.validateBidi(); err != nil {
		return nil, err
	}
	return &p.ref, nil
}

// parseSchemeStart is the initial state: dispatch on the first code point.
func (p *parser) parseSchemeStart() *ParseError {
	r, _ := p.in.peek()
	if r == ':' {
		return &ParseError{Kind: InvalidScheme, Offset: 0}
	}
	if isASCIILetter(r) && p.tryScheme() {
		return p.parseAfterScheme()
	}
	return p.parseRelative()
}

// tryScheme attempts to consume "scheme:" from the input. On any
// character outside the scheme grammar, or end of input before a colon, the
// cursor is restored and the input is reinterpreted as a relative reference.
func (p *parser) tryScheme() bool {
	m := p.in.mark()
	for {
		r, ok := p.in.next()
		if !ok {
			p.in.reset(m)
			return false
		}
		switch {
		case isASCIILetter(r) || isASCIIDigit(r) || r == '+' || r == '-' || r == '.':
		case r == ':':
			p.ref.scheme = p.in.text(m, p.in.offset()-1)
			p.ref.hasScheme = true
			return true
		default:
			p.in.reset(m)
			return false
		}
	}
}

// parseAfterScheme handles the hier-part following "scheme:".
func (p *parser) parseAfterScheme() *ParseError {
	if p.in.startsWithString("//") {
		p.in.skip(2)
		if err := p.parseAuthority(); err != nil {
			return err
		}
	}
	return p.parsePath()
}

// parseRelative handles a reference with no scheme: a network-path,
// absolute-path or relative-path reference.
func (p *parser) parseRelative() *ParseError {
	if p.in.startsWithString("//") {
		p.in.skip(2)
		if err := p.parseAuthority(); err != nil {
			return err
		}
	}
	return p.parsePath()
}

// parseAuthority consumes the authority component: the text up to the next
// "/", "?", "#" or end of input, split into userinfo, host and port.
func (p *parser) parseAuthority() *ParseError {
	start := p.in.offset()
	rest := p.in.rest()
	end := len(rest)
	for i, r := range rest {
		if r == '/' || r == '?' || r == '#' {
			end = i
			break
		}
	}
	text := rest[:end]
	p.in.skip(end)
	p.ref.hasAuthority = true

	hostport := text
	hostStart := start
	if at := strings.LastIndexByte(text, '@'); at >= 0 {
		ui, err := parseUserinfo(text[:at], start)
		if err != nil {
			return err
		}
		p.ref.auth.userinfo = ui
		p.ref.auth.hasUserinfo = true
		hostport = text[at+1:]
		hostStart = start + at + 1
	}

	hostText := hostport
	if strings.HasPrefix(hostport, "[") {
		rb := strings.IndexByte(hostport, ']')
		if rb < 0 {
			return &ParseError{Kind: UnterminatedIPv6Literal, Offset: hostStart}
		}
		hostText = hostport[:rb+1]
		after := hostport[rb+1:]
		if after != "" {
			if after[0] != ':' {
				return &ParseError{Kind: InvalidHostLiteral, Offset: hostStart + rb + 1, Detail: hostport}
			}
			if err := p.setPort(after[1:], hostStart+rb+2); err != nil {
				return err
			}
		}
	} else if colon := strings.LastIndexByte(hostport, ':'); colon >= 0 {
		hostText = hostport[:colon]
		if err := p.setPort(hostport[colon+1:], hostStart+colon+1); err != nil {
			return err
		}
	}

	h, err := parseHostText(hostText, hostStart)
	if err != nil {
		return err
	}
	p.ref.auth.host = h
	return nil
}

// parseUserinfo validates the userinfo text and returns its stored form.
// Characters from the lenient ASCII set are percent-encoded rather than
// rejected, matching the "MAY" of RFC 3987, Section 3.1.
func parseUserinfo(text string, base int) (string, *ParseError) {
	var b strings.Builder
	b.Grow(len(text))
	sc := newScanner(text)
	for {
		off := sc.offset()
		r, ok := sc.next()
		if !ok {
			return b.String(), nil
		}
		switch {
		case r == '%':
			if _, err := decodeTriplet(sc, base+off); err != nil {
				return "", err
			}
			b.WriteString(text[off:sc.offset()])
		case isIUnreserved(r) || isSubDelim(r) || r == ':':
			b.WriteRune(r)
		case isLaxASCII(r):
			encodeCodePoint(r, nil, &b)
		default:
			return "", &ParseError{Kind: IllegalCodePoint, Offset: base + off, Rune: r}
		}
	}
}

// setPort validates and records the port: digits only, possibly empty.
func (p *parser) setPort(port string, base int) *ParseError {
	for i, r := range port {
		if !isASCIIDigit(r) {
			return &ParseError{Kind: IllegalCodePoint, Offset: base + i, Rune: r}
		}
	}
	p.ref.auth.port = port
	p.ref.auth.hasPort = true
	return nil
}

// parsePath consumes the path component. Empty segments are preserved
// verbatim; collapsing them is a resolution and normalization concern, not
// a parse concern.
func (p *parser) parsePath() *ParseError {
	// After an authority the cursor sits on "/", "?", "#" or the end of
	// input, so the path is rooted by construction.
	var b strings.Builder
	// RFC 3986, Section 4.2: the first segment of a relative-path reference
	// must not contain a colon, or it would be mistaken for a scheme.
	firstSegment := !p.ref.hasScheme && !p.ref.hasAuthority && !p.in.startsWith('/')

	for {
		r, ok := p.in.peek()
		if !ok {
			break
		}
		if r == '?' {
			p.in.next()
			p.ref.path = b.String()
			return p.parseQuery()
		}
		if r == '#' {
			p.in.next()
			p.ref.path = b.String()
			return p.parseFragment()
		}

		off := p.in.offset()
		p.in.next()
		if r == '/' {
			firstSegment = false
			b.WriteByte('/')
			continue
		}
		if firstSegment && r == ':' {
			return &ParseError{Kind: IllegalCodePoint, Offset: off, Rune: ':'}
		}
		if err := p.writeComponentRune(&b, r, off, isIPChar); err != nil {
			return err
		}
	}
	p.ref.path = b.String()
	return nil
}

// isQueryRune is the allowed set for queries: ipchar plus "/" and "?" plus
// the iprivate ranges.
func isQueryRune(c rune) bool {
	return isIPChar(c) || c == '/' || c == '?' || isIPrivate(c)
}

// isFragmentRune is the allowed set for fragments: ipchar plus "/" and "?".
// iprivate is not permitted here.
func isFragmentRune(c rune) bool {
	return isIPChar(c) || c == '/' || c == '?'
}

// parseQuery consumes the query component, terminated by "#" or end of input.
func (p *parser) parseQuery() *ParseError {
	p.ref.hasQuery = true
	var b strings.Builder
	for {
		r, ok := p.in.peek()
		if !ok {
			break
		}
		if r == '#' {
			p.in.next()
			p.ref.query = b.String()
			return p.parseFragment()
		}
		off := p.in.offset()
		p.in.next()
		if err := p.writeComponentRune(&b, r, off, isQueryRune); err != nil {
			return err
		}
	}
	p.ref.query = b.String()
	return nil
}

// parseFragment consumes the fragment component through the end of input.
func (p *parser) parseFragment() *ParseError {
	p.ref.hasFragment = true
	var b strings.Builder
	for {
		off := p.in.offset()
		r, ok := p.in.next()
		if !ok {
			break
		}
		if err := p.writeComponentRune(&b, r, off, isFragmentRune); err != nil {
			return err
		}
	}
	p.ref.fragment = b.String()
	return nil
}

// writeComponentRune processes one code point of a component body: a "%"
// starts a percent-encoded triplet, valid code points pass through, the
// lenient ASCII set is percent-encoded, anything else is an error at its
// offset.
func (p *parser) writeComponentRune(b *strings.Builder, r rune, off int, valid func(rune) bool) *ParseError {
	switch {
	case r == '%':
		if _, err := decodeTriplet(p.in, off); err != nil {
			return err
		}
		b.WriteString(p.in.text(off, p.in.offset()))
	case valid(r):
		b.WriteRune(r)
	case isLaxASCII(r):
		encodeCodePoint(r, nil, b)
	default:
		return &ParseError{Kind: IllegalCodePoint, Offset: off, Rune: r}
	}
	return nil
}

// validateBidi applies the RFC 3987, Section 4.2 structural checks to every
// parsed component. Host labels are checked individually; the path is
// checked per segment.
func (p *parser) validateBidi() *ParseError {
	if p.ref.auth.hasUserinfo {
		if err := validateBidiComponent(p.ref.auth.userinfo); err != nil {
			return err
		}
	}
	if reg, ok := p.ref.auth.host.RegisteredName(); ok && p.ref.hasAuthority {
		if err := validateBidiHost(reg); err != nil {
			return err
		}
	}
	for _, seg := range strings.Split(p.ref.path, "/") {
		if err := validateBidiComponent(seg); err != nil {
			return err
		}
	}
	if p.ref.hasQuery {
		if err := validateBidiComponent(p.ref.query); err != nil {
			return err
		}
	}
	if p.ref.hasFragment {
		if err := validateBidiComponent(p.ref.fragment); err != nil {
			return err
		}
	}
	return nil
}
