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

	// TODO: At some point implement my own IDNA2003 module (RFC 3490).
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Normalize applies syntax-based normalization to a parsed reference
// according to RFC 3986, Section 6.2.2, under the given policy, and ensures
// the textual components are in Unicode Normalization Form C. It returns a
// new reference; the input is unchanged.
//
// Normalize is idempotent for any fixed policy and never fails on parser
// output: every percent triplet it touches was already validated.
func Normalize(ref *Ref, policy NormalizationPolicy) *Ref {
	out := *ref

	// 1. Case normalization. Folding the host before percent normalization
	// keeps already-folded escapes from being folded twice.
	if policy.CaseFoldSchemeHost {
		out.scheme = strings.ToLower(out.scheme)
		if out.hasAuthority {
			out.auth.host = foldHost(out.auth.host)
		}
	}

	// 2. Percent-encoding normalization: uppercase hex unconditionally,
	// unreserved decoding per policy. Octets decoded in the host are folded
	// again so a decoded letter cannot reintroduce case.
	out.auth.userinfo = normalizePercent(out.auth.userinfo, policy.DecodeUnreserved)
	if reg, ok := out.auth.host.RegisteredName(); ok {
		reg = normalizePercent(reg, policy.DecodeUnreserved)
		if policy.CaseFoldSchemeHost {
			reg = strings.ToLower(reg)
		}
		out.auth.host = Host{kind: HostRegName, reg: norm.NFC.String(reg)}
	}
	out.path = normalizePercent(out.path, policy.DecodeUnreserved)
	out.query = normalizePercent(out.query, policy.DecodeUnreserved)
	out.fragment = normalizePercent(out.fragment, policy.DecodeUnreserved)

	// 3. Scheme-based port normalization.
	if out.auth.hasPort {
		if port, ok := policy.RemoveDefaultPorts[strings.ToLower(out.scheme)]; ok && port == out.auth.port {
			out.auth.port = ""
			out.auth.hasPort = false
		}
	}

	// 4. Path segment normalization.
	if policy.RemoveDotSegments {
		out.path = removeDotSegments(out.path)
		if !out.hasAuthority {
			out.path = guardRootlessPath(out.path)
		}
	}

	// 5. An authority with an empty path serializes as "/".
	if out.hasAuthority && out.path == "" {
		out.path = "/"
	}

	out.auth.userinfo = norm.NFC.String(out.auth.userinfo)
	out.path = norm.NFC.String(out.path)
	out.query = norm.NFC.String(out.query)
	out.fragment = norm.NFC.String(out.fragment)
	return &out
}

// foldHost case-folds a registered-name host and maps it through IDNA to its
// canonical Unicode form. IP hosts pass through: their serialization is not
// case-sensitive. IPv6 zone ids are never folded.
func foldHost(h Host) Host {
	reg, ok := h.RegisteredName()
	if !ok {
		return h
	}
	folded := strings.ToLower(reg)

	// Round-tripping through ToASCII/ToUnicode canonicalizes both direct
	// Unicode and Punycode spellings. Hosts the mapping rejects (for
	// example ones carrying a malformed Punycode label) keep the plain
	// lower-cased form.
	if ascii, err := idna.ToASCII(folded); err == nil {
		if unicodeHost, err := idna.ToUnicode(ascii); err == nil {
			// Nameprep (RFC 3491, Table B.2) maps Eszett to "ss";
			// x/net/idna implements IDNA2008, which round-trips it back,
			// so apply the mapping to hosts the profile accepted.
			folded = strings.ReplaceAll(unicodeHost, "ß", "ss")
		}
	}

	return Host{kind: HostRegName, reg: folded}
}
