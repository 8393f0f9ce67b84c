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

// Resolve resolves the reference ref against the base IRI per the transform
// of RFC 3986, Section 5.2.2. The base must be absolute or the call fails
// with BaseNotAbsolute. A nil ref is treated as the empty reference.
//
// The result is a new Ref; neither input is modified. The fragment of the
// result always comes from ref, never from the base.
func Resolve(base, ref *Ref) (*Ref, error) {
	if base == nil || !base.hasScheme {
		return nil, &ParseError{Kind: BaseNotAbsolute}
	}
	if ref == nil {
		ref = &Ref{}
	}

	t := &Ref{}
	switch {
	case ref.hasScheme:
		t.scheme, t.hasScheme = ref.scheme, true
		t.auth, t.hasAuthority = ref.auth, ref.hasAuthority
		t.path = removeDotSegments(ref.path)
		t.query, t.hasQuery = ref.query, ref.hasQuery

	case ref.hasAuthority:
		t.scheme, t.hasScheme = base.scheme, true
		t.auth, t.hasAuthority = ref.auth, true
		t.path = removeDotSegments(ref.path)
		t.query, t.hasQuery = ref.query, ref.hasQuery

	case ref.path == "":
		t.scheme, t.hasScheme = base.scheme, true
		t.auth, t.hasAuthority = base.auth, base.hasAuthority
		t.path = base.path
		if ref.hasQuery {
			t.query, t.hasQuery = ref.query, true
		} else {
			t.query, t.hasQuery = base.query, base.hasQuery
		}

	default:
		t.scheme, t.hasScheme = base.scheme, true
		t.auth, t.hasAuthority = base.auth, base.hasAuthority
		if strings.HasPrefix(ref.path, "/") {
			t.path = removeDotSegments(ref.path)
		} else {
			t.path = removeDotSegments(mergePaths(base, ref.path))
		}
		t.query, t.hasQuery = ref.query, ref.hasQuery
	}

	if !t.hasAuthority {
		t.path = guardRootlessPath(t.path)
	}
	t.fragment, t.hasFragment = ref.fragment, ref.hasFragment
	return t, nil
}

// ResolveReference parses ref and resolves it against the base in one step.
// An empty string is the same-document reference: it yields the base with
// the fragment removed.
func ResolveReference(base *Ref, ref string) (*Ref, error) {
	if ref == "" {
		return Resolve(base, nil)
	}
	parsed, err := Parse(ref)
	if err != nil {
		return nil, err
	}
	return Resolve(base, parsed)
}
