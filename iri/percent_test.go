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

//nolint:testpackage // This is a white-box test file for an internal package. It needs to be in the same package to test unexported functions.
package iri

import (
	"strings"
	"testing"
)

// TestDecodeTriplet tests consumption of the hex digits of a triplet.
func TestDecodeTriplet(t *testing.T) {
	tests := []struct {
		name    string
		after   string // input after the already-consumed "%"
		want    byte
		wantErr bool
	}{
		{"Uppercase", "41", 0x41, false},
		{"Lowercase", "2f", 0x2F, false},
		{"Mixed case", "aB", 0xAB, false},
		{"Non-hex first", "g1", 0, true},
		{"Non-hex second", "1g", 0, true},
		{"Truncated one", "1", 0, true},
		{"Truncated empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTriplet(newScanner(tt.after), 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeTriplet(%q) error = %v, wantErr %v", tt.after, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("decodeTriplet(%q) = %#x, want %#x", tt.after, got, tt.want)
			}
			if err != nil && err.Kind != InvalidPercentEncoding {
				t.Errorf("decodeTriplet(%q) kind = %v, want InvalidPercentEncoding", tt.after, err.Kind)
			}
		})
	}
}

// TestDecodeUTF8Sequence tests reassembly of a code point from decoded
// octets, rejecting malformed UTF-8.
func TestDecodeUTF8Sequence(t *testing.T) {
	tests := []struct {
		name    string
		octets  []byte
		want    rune
		wantErr bool
	}{
		{"Two-byte sequence", []byte{0xC3, 0xA9}, 'é', false},
		{"Three-byte sequence", []byte{0xE2, 0x82, 0xAC}, '€', false},
		{"Four-byte sequence", []byte{0xF0, 0x9F, 0x98, 0x80}, '\U0001F600', false},
		{"Overlong encoding", []byte{0xC0, 0xAF}, 0, true},
		{"Stray continuation", []byte{0x80}, 0, true},
		{"Truncated sequence", []byte{0xE2, 0x82}, 0, true},
		{"Surrogate half", []byte{0xED, 0xA0, 0x80}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeUTF8Sequence(tt.octets, 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeUTF8Sequence(% X) error = %v, wantErr %v", tt.octets, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("decodeUTF8Sequence(% X) = %q, want %q", tt.octets, got, tt.want)
			}
		})
	}
}

// TestNormalizePercent tests triplet canonicalization per RFC 3986,
// Section 6.2.2.1 and 6.2.2.2.
func TestNormalizePercent(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		decodeUnreserved bool
		want             string
	}{
		{"No triplets pass through", "abc", true, "abc"},
		{"Unreserved decoded", "%41%7e", true, "A~"},
		{"Unreserved kept but uppercased", "%41%7e", false, "%41%7E"},
		{"Reserved always uppercased", "a%2fb", true, "a%2Fb"},
		{"Non-ASCII octets uppercased", "%c3%a9", true, "%C3%A9"},
		{"Mixed", "%41/%3f%7E", true, "A/%3F~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePercent(tt.input, tt.decodeUnreserved); got != tt.want {
				t.Errorf("normalizePercent(%q, %v) = %q, want %q", tt.input, tt.decodeUnreserved, got, tt.want)
			}
		})
	}
}

// TestEncodeCodePoint tests selective percent-encoding of a code point.
func TestEncodeCodePoint(t *testing.T) {
	var b strings.Builder
	encodeCodePoint('a', isUnreserved, &b)
	encodeCodePoint(' ', isUnreserved, &b)
	encodeCodePoint('é', nil, &b)
	if got, want := b.String(), "a%20%C3%A9"; got != want {
		t.Errorf("encodeCodePoint output = %q, want %q", got, want)
	}
}

// TestPercentEncodeNonASCII tests the per-component IRI-to-URI octet
// encoding of RFC 3987, Section 3.1.
func TestPercentEncodeNonASCII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ASCII unchanged", "/a/b?c", "/a/b?c"},
		{"Latin-1 encoded", "café", "caf%C3%A9"},
		{"Existing triplets untouched", "%2F é", "%2F %C3%A9"},
		{"Astral plane", "\U0001F600", "%F0%9F%98%80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			percentEncodeNonASCII(tt.input, &b)
			if got := b.String(); got != tt.want {
				t.Errorf("percentEncodeNonASCII(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
