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

// Package fileuri converts between file system paths and "file" scheme
// references, for POSIX and Windows path conventions.
//
// The Windows flavor understands drive specifiers ("C:", and the legacy
// "C|" spelling on input) and UNC host/share paths. Per RFC 1738 and
// RFC 3986 an authority of "localhost" is equivalent to an empty one.
package fileuri

import (
	"errors"
	"fmt"
	"strings"

	"github.com/koilabs/iri/iri"
)

// ErrNotFileURI is returned when a reference has a scheme other than "file".
var ErrNotFileURI = errors.New("fileuri: not a file URI")

// ErrBadAuthority is returned when a file URI carries an authority that the
// target path convention cannot express.
var ErrBadAuthority = errors.New("fileuri: unsupported authority")

// FromPosixPath converts a POSIX path to a file reference. An absolute path
// yields "file:///..." with dot segments removed; a relative path yields a
// scheme-only reference ("file:a/b") and is kept verbatim.
func FromPosixPath(path string) *iri.Ref {
	abs := strings.HasPrefix(path, "/")
	encoded := encodeSegments(path, "/")
	if abs {
		return iri.MustParse("file://" + encoded).Normalize(iri.NormalizationPolicy{RemoveDotSegments: true})
	}
	return iri.MustParse("file:" + encoded)
}

// ToPosixPath converts a file reference back to a POSIX path. The reference
// must be relative or carry the "file" scheme, and any authority must be
// empty or "localhost". A percent-encoded slash in a segment comes back
// backslash-escaped, so it cannot be mistaken for a separator.
func ToPosixPath(ref *iri.Ref) (string, error) {
	if err := checkFileScheme(ref); err != nil {
		return "", err
	}
	if auth, ok := ref.Authority(); ok {
		if host := auth.Host().String(); host != "" && host != "localhost" {
			return "", fmt.Errorf("%w: %q", ErrBadAuthority, host)
		}
	}

	segs := strings.Split(ref.Path(), "/")
	for i, seg := range segs {
		seg = strings.ReplaceAll(seg, "%2F", `\/`)
		seg = strings.ReplaceAll(seg, "%2f", `\/`)
		segs[i] = decodeSegment(seg)
	}
	return strings.Join(segs, "/"), nil
}

// FromWindowsPath converts a Windows path to a file reference.
//
//	`C:\x\y`         becomes "file:///C:/x/y"
//	`\\host\share\x` becomes "file://host/share/x"
//	`x\y`            becomes "file:x/y"
//
// Forward slashes are accepted as separators too, matching what Windows
// itself tolerates.
func FromWindowsPath(path string) *iri.Ref {
	path = strings.ReplaceAll(path, "/", `\`)

	if host, rest, ok := splitUNC(path); ok {
		return iri.MustParse("file://" + encodeSegment(host) + encodeSegments(rest, `\`)).
			Normalize(iri.NormalizationPolicy{RemoveDotSegments: true})
	}

	if drive, rest, ok := splitDrive(path); ok {
		rest = strings.TrimPrefix(rest, `\`)
		return iri.MustParse("file:///" + strings.ToUpper(drive) + ":/" + encodeSegments(rest, `\`)).
			Normalize(iri.NormalizationPolicy{RemoveDotSegments: true})
	}

	if strings.HasPrefix(path, `\`) {
		return iri.MustParse("file://" + encodeSegments(path, `\`)).
			Normalize(iri.NormalizationPolicy{RemoveDotSegments: true})
	}
	return iri.MustParse("file:" + encodeSegments(path, `\`))
}

// ToWindowsPath converts a file reference to a Windows path. Drive
// specifiers are recognized in the first path segment or, tolerating a
// common malformation, in the authority; both "C:" and "C|" spellings are
// accepted and come back as "C:". A non-localhost authority becomes a UNC
// host.
func ToWindowsPath(ref *iri.Ref) (string, error) {
	if err := checkFileScheme(ref); err != nil {
		return "", err
	}

	var unchost, drive string
	path := ref.Path()
	if auth, ok := ref.Authority(); ok {
		host := decodeSegment(auth.Host().String())
		// In the malformed-but-seen "file://C:/x" spelling the drive colon
		// parses as a port separator; put it back before classifying.
		if port, hasPort := auth.Port(); hasPort {
			host += ":" + port
		}
		switch {
		case host == "" || host == "localhost":
		case driveLetter(host) != "":
			drive = driveLetter(host)
		default:
			unchost = host
		}
	}

	segs := strings.Split(path, "/")
	if unchost == "" && drive == "" && len(segs) > 1 && segs[0] == "" {
		// "//host/..." arrives as path segments when the authority was empty.
		if len(segs) > 2 && segs[1] == "" {
			unchost = decodeSegment(segs[2])
			segs = append([]string{""}, segs[3:]...)
		} else if d := driveLetter(decodeSegment(segs[1])); d != "" {
			drive = d
			segs = append([]string{""}, segs[2:]...)
		}
	} else if unchost == "" && drive == "" && len(segs) > 0 {
		if d := driveLetter(decodeSegment(segs[0])); d != "" {
			drive = d
			segs = segs[1:]
			segs = append([]string{""}, segs...)
		}
	}

	for i, seg := range segs {
		segs[i] = decodeSegment(seg)
	}
	p := strings.Join(segs, `\`)

	switch {
	case unchost != "":
		return `\\` + unchost + p, nil
	case drive != "":
		return drive + ":" + p, nil
	default:
		return p, nil
	}
}

func checkFileScheme(ref *iri.Ref) error {
	if scheme, ok := ref.Scheme(); ok && !strings.EqualFold(scheme, "file") {
		return fmt.Errorf("%w: scheme is %q", ErrNotFileURI, scheme)
	}
	return nil
}

// splitUNC splits `\\host\rest` into the host and the remaining absolute
// part (leading backslash included).
func splitUNC(path string) (host, rest string, ok bool) {
	if !strings.HasPrefix(path, `\\`) {
		return "", "", false
	}
	body := path[2:]
	i := strings.IndexByte(body, '\\')
	if i < 0 {
		return body, "", body != ""
	}
	return body[:i], body[i:], body[:i] != ""
}

// splitDrive splits a leading drive specifier ("C:" or "C|") from the rest
// of the path.
func splitDrive(path string) (drive, rest string, ok bool) {
	if len(path) >= 2 && isDriveLetterByte(path[0]) && (path[1] == ':' || path[1] == '|') {
		return strings.ToUpper(path[:1]), path[2:], true
	}
	return "", path, false
}

// driveLetter returns the upper-cased drive letter when s is exactly a
// drive specifier, or the empty string.
func driveLetter(s string) string {
	if len(s) == 2 && isDriveLetterByte(s[0]) && (s[1] == ':' || s[1] == '|') {
		return strings.ToUpper(s[:1])
	}
	return ""
}

func isDriveLetterByte(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// encodeSegments splits path on sep and percent-encodes each segment,
// joining with "/".
func encodeSegments(path, sep string) string {
	segs := strings.Split(path, sep)
	for i, seg := range segs {
		segs[i] = encodeSegment(seg)
	}
	return strings.Join(segs, "/")
}

// encodeSegment percent-encodes everything in a path segment outside the
// unreserved set, so separators and reserved characters in file names
// cannot alter the URI structure.
func encodeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') ||
			r == '-' || r == '.' || r == '_' || r == '~' {
			b.WriteRune(r)
			continue
		}
		for _, octet := range []byte(string(r)) {
			fmt.Fprintf(&b, "%%%02X", octet)
		}
	}
	return b.String()
}

// decodeSegment replaces every well-formed percent triplet with its octet.
func decodeSegment(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 3
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c >= 'a':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
