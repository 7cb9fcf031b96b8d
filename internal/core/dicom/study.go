package dicom

import (
	"strings"
	"unicode"
)

// StudyDescription is a value object wrapping the DICOM StudyDescription tag
// value (0008,1030). Matching between files and routes happens on the
// normalized form, never on the raw tag value.
type StudyDescription struct {
	raw string
}

// NewStudyDescription creates a StudyDescription from a raw tag value.
// An empty value is allowed: files without the tag simply match no route.
func NewStudyDescription(raw string) StudyDescription {
	return StudyDescription{raw: raw}
}

// Raw returns the tag value as read from the file.
func (s StudyDescription) Raw() string {
	return s.raw
}

// Normalized returns the canonical matching form of the description.
func (s StudyDescription) Normalized() string {
	return Normalize(s.raw)
}

// IsEmpty reports whether the description normalizes to nothing.
func (s StudyDescription) IsEmpty() bool {
	return s.Normalized() == ""
}

// Matches reports whether two descriptions are equal after normalization.
// Two empty descriptions never match: an absent tag must not be routed.
func (s StudyDescription) Matches(other StudyDescription) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return false
	}
	return s.Normalized() == other.Normalized()
}

// String implements the Stringer interface
func (s StudyDescription) String() string {
	if s.raw == "" {
		return "<empty>"
	}
	return s.raw
}

// Normalize strips every character outside [a-zA-Z0-9] and lowercases the
// remainder, so "CT Thorax / Abdomen" and "ct-thorax-abdomen" compare equal.
func Normalize(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IsDICOMFile reports whether path looks like a DICOM file by extension.
// The monitor only ever considers .dcm files, case-insensitively, matching
// the watcher's acceptance rule.
func IsDICOMFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".dcm")
}
