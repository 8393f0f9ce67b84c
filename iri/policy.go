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

// NormalizationPolicy selects which of the RFC 3986, Section 6.2.2 syntax
// normalizations Normalize applies. It is passed by value and must not be
// mutated after construction; the port table is shared, not copied.
//
// The struct carries json and yaml tags so a policy can be loaded from
// configuration.
type NormalizationPolicy struct {
	// CaseFoldSchemeHost lower-cases the scheme and registered-name host.
	// IP-address hosts are unaffected; their serialization is already
	// case-insensitive.
	CaseFoldSchemeHost bool `json:"case_fold_scheme_host" yaml:"case_fold_scheme_host"`
	// DecodeUnreserved replaces percent-encoded triplets whose octet is an
	// ASCII unreserved character with the literal character. Remaining
	// triplets are always re-encoded with uppercase hex digits, whatever
	// this flag says.
	DecodeUnreserved bool `json:"decode_unreserved" yaml:"decode_unreserved"`
	// RemoveDefaultPorts maps a scheme to the port that is dropped when
	// explicitly present, e.g. "http" to "80". Scheme lookup is
	// case-insensitive.
	RemoveDefaultPorts map[string]string `json:"remove_default_ports" yaml:"remove_default_ports"`
	// RemoveDotSegments collapses "." and ".." path segments, resolving the
	// path against an implicit absolute root.
	RemoveDotSegments bool `json:"remove_dot_segments" yaml:"remove_dot_segments"`
}

// DefaultPorts returns the well-known scheme/port table used by
// DefaultPolicy. The caller owns the returned map.
func DefaultPorts() map[string]string {
	return map[string]string{
		"http":  "80",
		"https": "443",
		"ftp":   "21",
		"ws":    "80",
		"wss":   "443",
	}
}

// DefaultPolicy returns the policy with every normalization enabled and the
// DefaultPorts table.
func DefaultPolicy() NormalizationPolicy {
	return NormalizationPolicy{
		CaseFoldSchemeHost: true,
		DecodeUnreserved:   true,
		RemoveDefaultPorts: DefaultPorts(),
		RemoveDotSegments:  true,
	}
}
