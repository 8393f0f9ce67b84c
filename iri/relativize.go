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
	"errors"
	"strings"
)

// ErrRelativize is returned by Relativize when no relative reference can
// reproduce the target: the target is not absolute, or its path still
// carries "." or ".." segments.
var ErrRelativize = errors.New("the IRI cannot be made relative")

// Relativize computes a reference that yields target when resolved against
// base; it is the inverse of Resolve. The result is as short as the
// components allow: the empty reference or a fragment when only the
// fragment differs, a query-only reference, a relative path with "../"
// traversal, a scheme-relative reference when only the authority differs,
// and the full target when the schemes differ.
//
// The base must be absolute and the target path must already be free of dot
// segments; resolve or normalize first.
func Relativize(target, base *Ref) (*Ref, error) {
	if base == nil || !base.hasScheme {
		return nil, &ParseError{Kind: BaseNotAbsolute}
	}
	if target == nil || !target.hasScheme {
		return nil, ErrRelativize
	}
	for _, seg := range strings.Split(target.path, "/") {
		if seg == "." || seg == ".." {
			return nil, ErrRelativize
		}
	}

	if base.scheme != target.scheme {
		out := *target
		return &out, nil
	}

	if base.hasAuthority != target.hasAuthority || (base.hasAuthority && base.auth != target.auth) {
		if !target.hasAuthority {
			out := *target
			return &out, nil
		}
		return schemeRelative(target), nil
	}

	// An empty target path cannot be reached from a non-empty base path by
	// any relative path, only by restating the authority.
	if target.path == "" && base.path != "" {
		if !target.hasAuthority {
			out := *target
			return &out, nil
		}
		return schemeRelative(target), nil
	}

	if base.path == target.path {
		return relativizeSamePath(target, base), nil
	}
	if !base.hasAuthority {
		return relativizeNoAuthority(target, base), nil
	}
	return relativizeWithAuthority(target, base), nil
}

// Relativize computes a relative reference from the base r to the target.
// It is shorthand for the package-level Relativize(target, r).
func (r *Ref) Relativize(target *Ref) (*Ref, error) {
	return Relativize(target, r)
}

// relativizeSamePath handles identical paths: only the query and fragment
// can differ.
func relativizeSamePath(target, base *Ref) *Ref {
	if base.hasQuery == target.hasQuery && base.query == target.query {
		if target.hasFragment {
			return &Ref{fragment: target.fragment, hasFragment: true}
		}
		return &Ref{}
	}

	// A target without a query cannot be reached by a query-only reference:
	// the empty path would inherit the base query. Re-identify the last
	// path segment instead.
	if !target.hasQuery && base.hasQuery {
		if !target.hasAuthority {
			out := *target
			return &out
		}
		if target.path != "" {
			rel := target.path[strings.LastIndexByte(target.path, '/')+1:]
			if rel == "" {
				rel = "."
			}
			return relativeRef(rel, target)
		}
		return schemeRelative(target)
	}

	return relativeRef("", target)
}

// relativizeWithAuthority compares the two rooted paths directory by
// directory when base and target share their authority, and traverses up
// with "../" for every base directory outside the common prefix.
func relativizeWithAuthority(target, base *Ref) *Ref {
	basePath, targetPath := base.path, target.path
	if basePath == "" {
		basePath = "/"
	}
	if targetPath == "" {
		targetPath = "/"
	}

	// The directory of the base is everything up to its last slash.
	baseDir := basePath
	if i := strings.LastIndexByte(baseDir, '/'); i >= 0 {
		baseDir = baseDir[:i+1]
	}

	var baseSegs, targetSegs []string
	if baseDir != "/" {
		baseSegs = strings.Split(strings.Trim(baseDir, "/"), "/")
	}
	if targetPath != "/" {
		targetSegs = strings.Split(strings.TrimPrefix(targetPath, "/"), "/")
	}

	common := 0
	for common < len(baseSegs) && common < len(targetSegs) && baseSegs[common] == targetSegs[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(baseSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))
	rel := b.String()

	switch {
	case rel == "" && strings.HasSuffix(targetPath, "/"):
		// The target is the directory of the base.
		rel = "."
	case rel == "" && common > 0:
		// The target is the base directory minus its trailing slash.
		rel = "../" + targetSegs[common-1]
	case strings.HasPrefix(rel, "/"):
		// An empty first remaining segment must not root the path.
		rel = "." + rel
	}
	return relativeRef(rel, target)
}

// relativizeNoAuthority handles rootless paths ("mailto:a@b", "foo:a/b/c"):
// the same directory comparison without the leading-slash bookkeeping.
func relativizeNoAuthority(target, base *Ref) *Ref {
	baseSegs := strings.Split(base.path, "/")
	baseDirSegs := baseSegs[:len(baseSegs)-1]
	targetSegs := strings.Split(target.path, "/")

	common := 0
	for common < len(baseDirSegs) && common < len(targetSegs) && baseDirSegs[common] == targetSegs[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(baseDirSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))

	rel := b.String()
	if rel == "" && base.path != target.path {
		rel = "."
	}
	return relativeRef(rel, target)
}

// schemeRelative builds a network-path reference carrying everything of the
// target except its scheme.
func schemeRelative(target *Ref) *Ref {
	return &Ref{
		auth:         target.auth,
		hasAuthority: true,
		path:         target.path,
		query:        target.query,
		hasQuery:     target.hasQuery,
		fragment:     target.fragment,
		hasFragment:  target.hasFragment,
	}
}

// relativeRef pairs a computed relative path with the query and fragment of
// the target. A first segment containing a colon gets a "./" prefix so the
// result cannot reparse with a scheme.
func relativeRef(relPath string, target *Ref) *Ref {
	if first, _, _ := strings.Cut(relPath, "/"); strings.ContainsRune(first, ':') {
		relPath = "./" + relPath
	}
	return &Ref{
		path:        relPath,
		query:       target.query,
		hasQuery:    target.hasQuery,
		fragment:    target.fragment,
		hasFragment: target.hasFragment,
	}
}
