package header

import "errors"

var (
	// ErrMissingHeaderField is returned when a required key is absent.
	ErrMissingHeaderField = errors.New("missing header field")
	// ErrMalformedHeaderLine is returned for a header line that is not "key: value".
	ErrMalformedHeaderLine = errors.New("malformed header line")
	// ErrDuplicateHeaderField is returned when a key appears twice in one header.
	ErrDuplicateHeaderField = errors.New("duplicate header field")
	// ErrMalformedDate is returned when a date does not match DateLayout.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedTags is returned for an empty tag list or an empty tag.
	ErrMalformedTags = errors.New("malformed tag list")
	// ErrUpdatedBeforeCreated is returned when updated precedes created.
	ErrUpdatedBeforeCreated = errors.New("updated date is before created date")
)
