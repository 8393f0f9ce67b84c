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
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// TestRefJSONRoundTrip tests JSON encoding as the recomposed string form,
// with validation on decode.
func TestRefJSONRoundTrip(t *testing.T) {
	orig := MustParse("http://user@example.org:8080/a?x=1#f")
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal unexpected error: %v", err)
	}
	if string(data) != `"http://user@example.org:8080/a?x=1#f"` {
		t.Errorf("Marshal = %s, want the recomposed string", data)
	}

	var back Ref
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal unexpected error: %v", err)
	}
	if !orig.Equal(&back) {
		t.Errorf("round trip = %q, want %q", &back, orig)
	}
}

// TestRefJSONInvalid tests that decoding rejects malformed references.
func TestRefJSONInvalid(t *testing.T) {
	var ref Ref
	if err := json.Unmarshal([]byte(`"http://[::1"`), &ref); err == nil {
		t.Error("Unmarshal accepted an unterminated IPv6 literal")
	}
	if err := json.Unmarshal([]byte(`42`), &ref); err == nil {
		t.Error("Unmarshal accepted a non-string value")
	}
}

// TestRefJSONEmpty tests that the empty string decodes to the empty
// reference rather than failing.
func TestRefJSONEmpty(t *testing.T) {
	var ref Ref
	if err := json.Unmarshal([]byte(`""`), &ref); err != nil {
		t.Fatalf("Unmarshal(\"\") unexpected error: %v", err)
	}
	if ref != (Ref{}) {
		t.Errorf("Unmarshal(\"\") = %+v, want the zero Ref", ref)
	}
}

// TestRefInStruct tests Ref fields inside a larger JSON document, the usual
// configuration shape.
func TestRefInStruct(t *testing.T) {
	type endpoint struct {
		Name string `json:"name"`
		Base *Ref   `json:"base"`
	}
	var ep endpoint
	if err := json.Unmarshal([]byte(`{"name":"api","base":"https://api.example.org/v1"}`), &ep); err != nil {
		t.Fatalf("Unmarshal unexpected error: %v", err)
	}
	if ep.Base == nil || ep.Base.String() != "https://api.example.org/v1" {
		t.Errorf("base = %v, want https://api.example.org/v1", ep.Base)
	}
}

// TestRefYAMLRoundTrip tests YAML scalar encoding and decoding.
func TestRefYAMLRoundTrip(t *testing.T) {
	orig := MustParse("https://example.org/a#f")
	data, err := yaml.Marshal(orig)
	if err != nil {
		t.Fatalf("yaml.Marshal unexpected error: %v", err)
	}

	var back Ref
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("yaml.Unmarshal unexpected error: %v", err)
	}
	if !orig.Equal(&back) {
		t.Errorf("round trip = %q, want %q", &back, orig)
	}

	var invalid Ref
	if err := yaml.Unmarshal([]byte(`"http://[::1"`), &invalid); err == nil {
		t.Error("yaml.Unmarshal accepted an unterminated IPv6 literal")
	}
}
