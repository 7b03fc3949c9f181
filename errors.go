package m3u8

import (
	"errors"
	"fmt"
)

// Attribute-list and tag decode errors. Decode errors reach the caller
// wrapped in a LineError carrying the 1-based source line.
var (
	ErrMalformedAttribute = errors.New("attribute is not a KEY=VALUE pair")
	ErrUnterminatedQuote  = errors.New("unterminated quoted-string")
	ErrDuplicateAttribute = errors.New("duplicate attribute key")
)

// Whole-playlist validation errors, reported by Playlist.Validate and
// Builder.Build.
var (
	ErrMissingHeader         = errors.New(`playlist must start with "#EXTM3U"`)
	ErrMixedPlaylistKind     = errors.New("playlist mixes master and media playlist tags")
	ErrMissingTargetDuration = errors.New("media segments present but EXT-X-TARGETDURATION is missing")
	ErrDanglingSegmentInfo   = errors.New("EXTINF is not followed by a segment URI")
)

// LineError attaches the source line number to a decode error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// ValueError reports a tag field whose value does not parse as the type
// the protocol mandates.
type ValueError struct {
	Tag   string
	Field string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: invalid %s value %q", e.Tag, e.Field, e.Value)
}

// MissingAttributeError reports an attribute a tag requires but the
// attribute list does not carry.
type MissingAttributeError struct {
	Tag string
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: missing required attribute %s", e.Tag, e.Key)
}

// VersionError reports a tag that needs a later protocol version than the
// playlist declares.
type VersionError struct {
	Tag      string
	Required int
	Declared int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s requires protocol version %d but playlist declares %d", e.Tag, e.Required, e.Declared)
}
