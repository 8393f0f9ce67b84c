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

package urn

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koilabs/iri/iri"
)

// TestFromPublicID covers the transcription examples of RFC 3151,
// Section 1.1.
func TestFromPublicID(t *testing.T) {
	tests := []struct {
		name     string
		publicid string
		want     string
	}{
		{
			"ISBN example",
			"ISO/IEC 10179:1996//DTD DSSSL Architecture//EN",
			"urn:publicid:ISO%2FIEC+10179%3A1996:DTD+DSSSL+Architecture:EN",
		},
		{
			"ISO entities",
			"ISO 8879:1986//ENTITIES Added Latin 1//EN",
			"urn:publicid:ISO+8879%3A1986:ENTITIES+Added+Latin+1:EN",
		},
		{
			"IDN example",
			"+//IDN example.org//DTD XML Bookmarks 1.0//EN//XML",
			"urn:publicid:%2B:IDN+example.org:DTD+XML+Bookmarks+1.0:EN:XML",
		},
		{
			"Registered minus prefix",
			"-//OASIS//DTD DocBook XML V4.1.2//EN",
			"urn:publicid:-:OASIS:DTD+DocBook+XML+V4.1.2:EN",
		},
		{
			"Double colon data",
			"a::b//c",
			"urn:publicid:a;b:c",
		},
		{
			"Whitespace condensed",
			"  -//X \t\r\n Y//EN  ",
			"urn:publicid:-:X+Y:EN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPublicID(tt.publicid).String())
		})
	}
}

// TestPublicIDRoundTrip verifies the transcription is reversible.
func TestPublicIDRoundTrip(t *testing.T) {
	publicids := []string{
		"ISO/IEC 10179:1996//DTD DSSSL Architecture//EN",
		"+//IDN example.org//DTD XML Bookmarks 1.0//EN//XML",
		"-//OASIS//DTD DocBook XML V4.1.2//EN",
		"a::b//c+d;e",
	}

	for _, publicid := range publicids {
		t.Run(publicid, func(t *testing.T) {
			got, err := ToPublicID(FromPublicID(publicid))
			require.NoError(t, err)
			assert.Equal(t, publicid, got)
		})
	}
}

// TestParsePublicID covers one-step parsing plus rejection cases.
func TestParsePublicID(t *testing.T) {
	got, err := ParsePublicID("urn:publicid:%2B:IDN+example.org:DTD+XML+Bookmarks+1.0:EN:XML")
	require.NoError(t, err)
	assert.Equal(t, "+//IDN example.org//DTD XML Bookmarks 1.0//EN//XML", got)

	// Scheme comparison is case-insensitive.
	got, err = ParsePublicID("URN:publicid:-:OASIS:DTD+DocBook+XML+V4.1.2:EN")
	require.NoError(t, err)
	assert.Equal(t, "-//OASIS//DTD DocBook XML V4.1.2//EN", got)

	_, err = ParsePublicID("http://example.org/")
	assert.ErrorIs(t, err, ErrNotPublicID)

	_, err = ParsePublicID("urn:isbn:0451450523")
	assert.ErrorIs(t, err, ErrNotPublicID)

	_, err = ParsePublicID("urn:publicid")
	assert.ErrorIs(t, err, ErrNotPublicID)
}

// TestUUIDURN covers minting and extraction of uuid-namespace URNs.
func TestUUIDURN(t *testing.T) {
	u := uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6")
	ref := FromUUID(u)
	assert.Equal(t, "urn:uuid:f81d4fae-7dec-11d0-a765-00a0c91e6bf6", ref.String())

	back, err := UUIDFrom(ref)
	require.NoError(t, err)
	assert.Equal(t, u, back)

	minted := NewUUID()
	scheme, ok := minted.Scheme()
	require.True(t, ok)
	assert.Equal(t, "urn", scheme)
	_, err = UUIDFrom(minted)
	assert.NoError(t, err)

	_, err = UUIDFrom(iri.MustParse("http://example.org/"))
	assert.Error(t, err)
}
