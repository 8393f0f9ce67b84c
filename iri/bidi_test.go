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

import "testing"

// TestValidateBidiComponent tests the structural rules of RFC 3987,
// Section 4.2 for single components.
func TestValidateBidiComponent(t *testing.T) {
	tests := []struct {
		name      string
		component string
		wantErr   bool
	}{
		{"Empty", "", false},
		{"ASCII only", "abc-123", false},
		{"Left-to-right only", "resume", false},
		{"Right-to-left only", "שלום", false},
		{"Arabic only", "سلام", false},
		{"Mixed directions", "abcשלום", true},
		{"RTL starting with digit", "123שלום", true},
		{"RTL ending with digit", "שלום123", true},
		{"Neutral punctuation with LTR", "a-b.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBidiComponent(tt.component)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBidiComponent(%q) error = %v, wantErr %v", tt.component, err, tt.wantErr)
			}
			if err != nil && err.Kind != BidiViolation {
				t.Errorf("validateBidiComponent(%q) kind = %v, want BidiViolation", tt.component, err.Kind)
			}
		})
	}
}

// TestValidateBidiHost tests that each dot-separated label is an
// independent component, so direction may change between labels.
func TestValidateBidiHost(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		wantErr bool
	}{
		{"ASCII host", "www.example.com", false},
		{"RTL label between LTR labels", "www.שלום.com", false},
		{"Mixed single label", "abשlom.com", true},
		{"Empty labels", "a..b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBidiHost(tt.host)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBidiHost(%q) error = %v, wantErr %v", tt.host, err, tt.wantErr)
			}
		})
	}
}

// TestParseAppliesBidiRules tests that parsing enforces the component-level
// rules end to end.
func TestParseAppliesBidiRules(t *testing.T) {
	if _, err := Parse("http://example.org/שלום?שלום#שלום"); err != nil {
		t.Errorf("well-formed RTL components rejected: %v", err)
	}
	if _, err := Parse("http://example.org/abcשלום"); err == nil {
		t.Error("mixed-direction path segment accepted")
	}
	if _, err := Parse("http://abcשלום.org/"); err == nil {
		t.Error("mixed-direction host label accepted")
	}
}
