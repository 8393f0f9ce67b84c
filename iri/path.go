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

// removeDotSegments implements the "Remove Dot Segments" algorithm of
// RFC 3986, Section 5.2.4: a single left-to-right pass over the input with
// an output segment stack. The pop-before-append ordering is load-bearing;
// it is what clamps excess ".." at the root instead of erroring, matching
// the worked examples of Section 5.4.2.
func removeDotSegments(path string) string {
	var out []string
	in := path

	for in != "" {
		switch {
		// Rule 2A: a leading "../" or "./" is dropped.
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		// Rule 2B: "/./" and a final "/." become "/".
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
		// Rule 2C: "/../" and a final "/.." become "/" and pop the last
		// output segment, if any.
		case strings.HasPrefix(in, "/../"), in == "/..":
			if in == "/.." {
				in = "/"
			} else {
				in = "/" + in[4:]
			}
			if len(out) > 0 {
				last := out[len(out)-1]
				out = out[:len(out)-1]
				if len(out) == 0 && !strings.HasPrefix(last, "/") {
					in = strings.TrimPrefix(in, "/")
				}
			}
		// Rule 2D: a bare "." or ".." is dropped.
		case in == "." || in == "..":
			in = ""
		// Rule 2E: move the first segment (with its leading "/", if any)
		// to the output.
		default:
			var seg string
			seg, in = firstPathSegment(in)
			out = append(out, seg)
		}
	}
	return strings.Join(out, "")
}

// firstPathSegment splits off the first path segment, including its leading
// slash when present, and returns it with the remainder.
func firstPathSegment(in string) (string, string) {
	if strings.HasPrefix(in, "/") {
		if i := strings.IndexByte(in[1:], '/'); i >= 0 {
			return in[:i+1], in[i+1:]
		}
		return in, ""
	}
	if i := strings.IndexByte(in, '/'); i >= 0 {
		return in[:i], in[i:]
	}
	return in, ""
}

// guardRootlessPath keeps a path unambiguous when no authority precedes it:
// a path beginning with "//" would recompose into a string that reparses
// with an authority, so it gets the "/." prefix of RFC 3986, Section 5.3.
// The parser never produces such a path; dot-segment removal can.
func guardRootlessPath(path string) string {
	if strings.HasPrefix(path, "//") {
		return "/." + path
	}
	return path
}

// mergePaths merges a relative-path reference with a base path per RFC 3986,
// Section 5.2.3: a base with an authority and an empty path contributes a
// root; otherwise the reference replaces everything after the base path's
// last slash.
func mergePaths(base *Ref, refPath string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + refPath
	}
	i := strings.LastIndexByte(base.path, '/')
	if i < 0 {
		return refPath
	}
	return base.path[:i+1] + refPath
}
