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
	// TODO: At some point implement my own Bidi module.
	"golang.org/x/text/unicode/bidi"
)

// validateBidiComponent checks a component string against the structural
// rules for bidirectional IRIs as defined in RFC 3987, Section 4.2.
//
// Rule 1: A component SHOULD NOT use both right-to-left and left-to-right
// characters.
// Rule 2: A component using right-to-left characters SHOULD start and end
// with right-to-left characters.
//
// Both rules are enforced as errors here, providing stricter validation than
// the SHOULD level of the RFC.
func validateBidiComponent(component string) *ParseError {
	if component == "" {
		return nil
	}

	runes := []rune(component)
	var hasLTR, hasRTL bool

	for _, r := range runes {
		switch bidiClass(r) {
		case bidi.R, bidi.AL:
			hasRTL = true
		case bidi.L:
			hasLTR = true
		default:
			// Neutral for the purpose of this validation.
		}
	}

	// Rule 1: no mixing of LTR and RTL characters in the same component.
	if hasLTR && hasRTL {
		return &ParseError{
			Kind:   BidiViolation,
			Detail: "mixed left-to-right and right-to-left characters in " + quoted(component),
		}
	}

	// Rule 2 applies only when the component contains RTL characters.
	if hasRTL && (!isRTLClass(bidiClass(runes[0])) || !isRTLClass(bidiClass(runes[len(runes)-1]))) {
		return &ParseError{
			Kind:   BidiViolation,
			Detail: "right-to-left component must start and end with right-to-left characters: " + quoted(component),
		}
	}

	return nil
}

// validateBidiHost checks a registered-name host against the Bidi rules.
// RFC 3987, Section 4.2 requires each dot-separated label to be treated as
// an individual component. IP literals are never passed here; their syntax
// admits no RTL characters.
func validateBidiHost(host string) *ParseError {
	start := 0
	for i := 0; i <= len(host); i++ {
		if i < len(host) && host[i] != '.' {
			continue
		}
		if err := validateBidiComponent(host[start:i]); err != nil {
			err.Detail += " in host " + quoted(host)
			return err
		}
		start = i + 1
	}
	return nil
}

func bidiClass(r rune) bidi.Class {
	prop, _ := bidi.LookupRune(r)
	return prop.Class()
}

func isRTLClass(c bidi.Class) bool {
	return c == bidi.R || c == bidi.AL
}

func quoted(s string) string {
	return "'" + s + "'"
}
