package m3u8

// Builder accumulates playlist entries one at a time and validates the
// whole document once at Build. Insertion never fails: constraints such
// as tag ordering and playlist kind can only be judged when the full
// sequence is known.
//
// A Builder is a single-owner accumulator and is not safe for concurrent
// use. A failed Build leaves the builder intact, so the caller can
// correct the entries and build again.
//
//	playlist, err := m3u8.NewBuilder().
//		Header().
//		Version(3).
//		TargetDuration(10).
//		Inf(9.009, "").
//		URI("http://media.example.com/first.ts").
//		EndList().
//		Build()
type Builder struct {
	entries []Entry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends any entry, including Unknown tags.
func (b *Builder) Add(entry Entry) *Builder {
	b.entries = append(b.entries, entry)
	return b
}

// Header appends the #EXTM3U marker.
func (b *Builder) Header() *Builder { return b.Add(Header{}) }

// Version appends an EXT-X-VERSION tag.
func (b *Builder) Version(version int) *Builder { return b.Add(Version{Value: version}) }

// TargetDuration appends an EXT-X-TARGETDURATION tag.
func (b *Builder) TargetDuration(seconds int64) *Builder {
	return b.Add(TargetDuration{Seconds: seconds})
}

// MediaSequence appends an EXT-X-MEDIA-SEQUENCE tag.
func (b *Builder) MediaSequence(number int64) *Builder {
	return b.Add(MediaSequence{Number: number})
}

// DiscontinuitySequence appends an EXT-X-DISCONTINUITY-SEQUENCE tag.
func (b *Builder) DiscontinuitySequence(number int64) *Builder {
	return b.Add(DiscontinuitySequence{Number: number})
}

// Inf appends an EXTINF tag. An empty title is omitted from the encoding.
func (b *Builder) Inf(duration float64, title string) *Builder {
	return b.Add(Inf{Duration: duration, Title: title})
}

// ByteRange appends an EXT-X-BYTERANGE tag.
func (b *Builder) ByteRange(r ByteRange) *Builder { return b.Add(r) }

// Discontinuity appends an EXT-X-DISCONTINUITY tag.
func (b *Builder) Discontinuity() *Builder { return b.Add(Discontinuity{}) }

// Key appends an EXT-X-KEY tag.
func (b *Builder) Key(k Key) *Builder { return b.Add(k) }

// Map appends an EXT-X-MAP tag.
func (b *Builder) Map(m Map) *Builder { return b.Add(m) }

// ProgramDateTime appends an EXT-X-PROGRAM-DATE-TIME tag.
func (b *Builder) ProgramDateTime(timestamp string) *Builder {
	return b.Add(ProgramDateTime{Value: timestamp})
}

// DateRange appends an EXT-X-DATERANGE tag.
func (b *Builder) DateRange(d DateRange) *Builder { return b.Add(d) }

// PlaylistType appends an EXT-X-PLAYLIST-TYPE tag.
func (b *Builder) PlaylistType(value string) *Builder { return b.Add(PlaylistType{Value: value}) }

// IFramesOnly appends an EXT-X-I-FRAMES-ONLY tag.
func (b *Builder) IFramesOnly() *Builder { return b.Add(IFramesOnly{}) }

// IndependentSegments appends an EXT-X-INDEPENDENT-SEGMENTS tag.
func (b *Builder) IndependentSegments() *Builder { return b.Add(IndependentSegments{}) }

// Start appends an EXT-X-START tag.
func (b *Builder) Start(s Start) *Builder { return b.Add(s) }

// Media appends an EXT-X-MEDIA tag.
func (b *Builder) Media(m Media) *Builder { return b.Add(m) }

// StreamInf appends an EXT-X-STREAM-INF tag.
func (b *Builder) StreamInf(s StreamInf) *Builder { return b.Add(s) }

// IFrameStreamInf appends an EXT-X-I-FRAME-STREAM-INF tag.
func (b *Builder) IFrameStreamInf(s IFrameStreamInf) *Builder { return b.Add(s) }

// SessionData appends an EXT-X-SESSION-DATA tag.
func (b *Builder) SessionData(d SessionData) *Builder { return b.Add(d) }

// SessionKey appends an EXT-X-SESSION-KEY tag.
func (b *Builder) SessionKey(k SessionKey) *Builder { return b.Add(k) }

// EndList appends the EXT-X-ENDLIST marker.
func (b *Builder) EndList() *Builder { return b.Add(EndList{}) }

// URI appends a media segment or variant stream reference.
func (b *Builder) URI(uri string) *Builder { return b.Add(URI(uri)) }

// Build validates the accumulated entries and returns the playlist. On
// a validation error the builder keeps its entries, so the caller can
// fix them and call Build again.
func (b *Builder) Build() (*Playlist, error) {
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)

	playlist := newPlaylist(entries)
	if err := playlist.Validate(); err != nil {
		return nil, err
	}
	return playlist, nil
}
