package m3u8

import (
	"io"
	"strings"
)

// Playlist is an ordered sequence of decoded entries plus the scalar
// state validation needs. It is read-only once produced; concurrent
// readers need no locking.
type Playlist struct {
	entries []Entry

	version   int // 0 when no EXT-X-VERSION tag is present
	hasMaster bool
	hasMedia  bool
	hasEnd    bool
}

// requiredVersion gates tags introduced in later protocol revisions
// (Section 7). Immutable after init.
var requiredVersion = map[string]int{
	"EXT-X-BYTERANGE":     4,
	"EXT-X-I-FRAMES-ONLY": 4,
	"EXT-X-MAP":           5,
}

func newPlaylist(entries []Entry) *Playlist {
	p := &Playlist{entries: entries}
	for _, entry := range entries {
		tag, ok := entry.(Tag)
		if !ok {
			continue
		}
		switch t := tag.(type) {
		case Version:
			if p.version == 0 {
				p.version = t.Value
			}
		case EndList:
			p.hasEnd = true
		}
		switch tagKind(tag) {
		case kindMaster:
			p.hasMaster = true
		case kindMedia:
			p.hasMedia = true
		}
	}
	return p
}

// Entries returns the playlist's entries in document order.
func (p *Playlist) Entries() []Entry { return p.entries }

// Version returns the declared protocol version, if any.
func (p *Playlist) Version() (int, bool) { return p.version, p.version != 0 }

// IsMaster reports whether any master-playlist-only tag is present.
func (p *Playlist) IsMaster() bool { return p.hasMaster }

// IsMedia reports whether any media-playlist-only tag is present.
func (p *Playlist) IsMedia() bool { return p.hasMedia }

// HasEndList reports whether the end marker is present.
func (p *Playlist) HasEndList() bool { return p.hasEnd }

// Lines encodes the playlist back to its logical lines, one per entry.
func (p *Playlist) Lines() []string {
	lines := make([]string, 0, len(p.entries))
	for _, entry := range p.entries {
		lines = append(lines, entry.String())
	}
	return lines
}

// String encodes the playlist as a document with trailing newline.
func (p *Playlist) String() string {
	var b strings.Builder
	for _, entry := range p.entries {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Encode writes the playlist document to w.
func (p *Playlist) Encode(w io.Writer) error {
	_, err := io.WriteString(w, p.String())
	return err
}

// Validate checks the whole-playlist rules of RFC 8216: header first,
// master and media tag sets not mixed, target duration present when
// segments are, version-gated tags within the declared version, and
// every EXTINF followed by its segment URI.
func (p *Playlist) Validate() error {
	if len(p.entries) == 0 {
		return ErrMissingHeader
	}
	if _, ok := p.entries[0].(Header); !ok {
		return ErrMissingHeader
	}
	if p.hasMaster && p.hasMedia {
		return ErrMixedPlaylistKind
	}

	hasSegments := false
	hasTarget := false
	pendingInf := false
	for _, entry := range p.entries {
		switch entry.(type) {
		case Inf, ByteRange, Discontinuity, Key, Map, ProgramDateTime:
			hasSegments = true
		case TargetDuration:
			hasTarget = true
		}

		switch entry.(type) {
		case Inf:
			if pendingInf {
				return ErrDanglingSegmentInfo
			}
			pendingInf = true
		case URI:
			pendingInf = false
		case EndList:
			if pendingInf {
				return ErrDanglingSegmentInfo
			}
		}

		if tag, ok := entry.(Tag); ok && p.version != 0 {
			if required := requiredVersion[tag.Name()]; required > p.version {
				return &VersionError{Tag: tag.Name(), Required: required, Declared: p.version}
			}
		}
	}

	if pendingInf {
		return ErrDanglingSegmentInfo
	}
	if hasSegments && !hasTarget {
		return ErrMissingTargetDuration
	}
	return nil
}

const (
	kindNeutral = iota
	kindMaster
	kindMedia
)

// tagKind classifies a tag by the playlist kind it is restricted to.
// Section 4.3.3: "A Media Playlist tag MUST NOT appear in a Master
// Playlist", and vice versa for Section 4.3.4 tags.
func tagKind(tag Tag) int {
	switch tag.(type) {
	case Media, StreamInf, IFrameStreamInf, SessionData, SessionKey:
		return kindMaster
	case TargetDuration, MediaSequence, DiscontinuitySequence, Inf, ByteRange,
		Discontinuity, Key, Map, ProgramDateTime, DateRange, PlaylistType,
		IFramesOnly, EndList:
		return kindMedia
	default:
		return kindNeutral
	}
}
