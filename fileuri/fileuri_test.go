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

package fileuri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koilabs/iri/iri"
)

func TestFromPosixPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"Absolute", "/x/y/z", "file:///x/y/z"},
		{"Root", "/", "file:///"},
		{"Relative", "x/y", "file:x/y"},
		{"Space encoded", "/a b/c", "file:///a%20b/c"},
		{"Unicode encoded", "/a/\u2022", "file:///a/%E2%80%A2"},
		{"Dot segments collapsed", "/a/b/../c/./d", "file:///a/c/d"},
		{"Reserved characters encoded", "/a?b/c#d", "file:///a%3Fb/c%23d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPosixPath(tt.path).String())
		})
	}
}

func TestToPosixPath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"Plain", "file:///x/y/z", "/x/y/z"},
		{"Localhost authority", "file://localhost/x/y", "/x/y"},
		{"Decoded octets", "file:///a/b/%E2%80%A2", "/a/b/\u2022"},
		{"Space", "file:///a%20b", "/a b"},
		{"Encoded slash is escaped", "file:///a%2Fb", `/a\/b`},
		{"Relative reference", "x/y", "x/y"},
		{"Scheme-only relative", "file:x/y", "x/y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToPosixPath(iri.MustParse(tt.uri))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToPosixPathErrors(t *testing.T) {
	_, err := ToPosixPath(iri.MustParse("http://example.org/x"))
	assert.ErrorIs(t, err, ErrNotFileURI)

	_, err = ToPosixPath(iri.MustParse("file://otherhost/x"))
	assert.ErrorIs(t, err, ErrBadAuthority)
}

func TestFromWindowsPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"Drive absolute", `C:\x\y\z`, "file:///C:/x/y/z"},
		{"Lowercase drive upper-cased", `c:\x`, "file:///C:/x"},
		{"Forward slashes accepted", "C:/x/y", "file:///C:/x/y"},
		{"UNC path", `\\host\share\x`, "file://host/share/x"},
		{"Rooted without drive", `\x\y`, "file:///x/y"},
		{"Relative", `x\y`, "file:x/y"},
		{"Space in segment", `C:\a b\c`, "file:///C:/a%20b/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromWindowsPath(tt.path).String())
		})
	}
}

// TestToWindowsPath mirrors the interpretation table for "file" references
// on Windows: drive specifiers in the path or authority, UNC hosts, and the
// localhost equivalence.
func TestToWindowsPath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"Relative", "file:x/y/z", `x\y\z`},
		{"Rooted", "file:///x/y/z", `\x\y\z`},
		{"Drive in path", "file:///c:/x/y/z", `C:\x\y\z`},
		{"Legacy pipe drive", "file:///c%7C/x/y/z", `C:\x\y\z`},
		{"Drive in authority", "file://c:/x/y/z", `C:\x\y\z`},
		{"UNC host", "file://host/share/x", `\\host\share\x`},
		{"UNC via empty segments", "file:////host/share/x", `\\host\share\x`},
		{"Localhost", "file://localhost/x/y", `\x\y`},
		{"Localhost with drive", "file://localhost/c:/x", `C:\x`},
		{"Decoded segment", "file:///c:/a%20b", `C:\a b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToWindowsPath(iri.MustParse(tt.uri))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowsRoundTrip(t *testing.T) {
	paths := []string{
		`C:\x\y\z`,
		`\\host\share\x`,
		`x\y`,
		`C:\a b\c`,
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			got, err := ToWindowsPath(FromWindowsPath(path))
			require.NoError(t, err)
			assert.Equal(t, path, got)
		})
	}
}

func TestPosixRoundTrip(t *testing.T) {
	paths := []string{"/x/y/z", "/a b/\u2022", "x/y"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			got, err := ToPosixPath(FromPosixPath(path))
			require.NoError(t, err)
			assert.Equal(t, path, got)
		})
	}
}
