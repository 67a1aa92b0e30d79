package profiles

import (
	"regexp"
	"strings"
)

// buildIDPattern matches the dotted build identifier segment of a build
// fingerprint, e.g. "AP2A.240805.005.S4". Three-segment IDs without a
// trailing suffix do not match and yield an empty build ID.
var buildIDPattern = regexp.MustCompile(`([A-Za-z0-9]+\.\d+\.\d+\.\w+)`)

// BuildID extracts the build identifier from a fingerprint, or returns ""
// when the fingerprint carries none in the recognized shape.
func BuildID(fingerprint string) string {
	m := buildIDPattern.FindStringSubmatch(fingerprint)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// DeviceName extracts the device code name from a fingerprint. Fingerprints
// follow brand/product/device:release/..., so the name is the second
// slash-separated segment. Returns "" for fingerprints with fewer segments.
func DeviceName(fingerprint string) string {
	parts := strings.Split(fingerprint, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
