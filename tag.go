package m3u8

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Entry is one logical line of a playlist: a directive tag or a URI
// reference. Its String form is the canonical line, without terminator.
type Entry interface {
	fmt.Stringer
	entry()
}

// Tag is a directive Entry, a "#EXT..." line.
type Tag interface {
	Entry
	Name() string
}

// URI is a plain media segment or variant stream reference line.
type URI string

func (URI) entry() {}

func (u URI) String() string { return string(u) }

// Header is the #EXTM3U marker. It must be the first line of every
// playlist (Section 4.3.1.1).
type Header struct{}

func (Header) entry() {}

func (Header) Name() string { return "EXTM3U" }

func (Header) String() string { return "#EXTM3U" }

// Version declares the protocol compatibility version (Section 4.3.1.2).
type Version struct {
	Value int
}

func (Version) entry() {}

func (Version) Name() string { return "EXT-X-VERSION" }

func (t Version) String() string { return "#EXT-X-VERSION:" + strconv.Itoa(t.Value) }

// Inf describes the next media segment: its duration in seconds and an
// optional human-readable title (Section 4.3.2.1).
type Inf struct {
	Duration float64
	Title    string
}

func (Inf) entry() {}

func (Inf) Name() string { return "EXTINF" }

func (t Inf) String() string { return "#EXTINF:" + formatDecimal(t.Duration) + "," + t.Title }

// TargetDuration is the upper bound on segment durations (Section 4.3.3.1).
type TargetDuration struct {
	Seconds int64
}

func (TargetDuration) entry() {}

func (TargetDuration) Name() string { return "EXT-X-TARGETDURATION" }

func (t TargetDuration) String() string {
	return "#EXT-X-TARGETDURATION:" + strconv.FormatInt(t.Seconds, 10)
}

// MediaSequence is the sequence number of the first segment (Section 4.3.3.2).
type MediaSequence struct {
	Number int64
}

func (MediaSequence) entry() {}

func (MediaSequence) Name() string { return "EXT-X-MEDIA-SEQUENCE" }

func (t MediaSequence) String() string {
	return "#EXT-X-MEDIA-SEQUENCE:" + strconv.FormatInt(t.Number, 10)
}

// DiscontinuitySequence allows synchronization between variant streams
// (Section 4.3.3.3).
type DiscontinuitySequence struct {
	Number int64
}

func (DiscontinuitySequence) entry() {}

func (DiscontinuitySequence) Name() string { return "EXT-X-DISCONTINUITY-SEQUENCE" }

func (t DiscontinuitySequence) String() string {
	return "#EXT-X-DISCONTINUITY-SEQUENCE:" + strconv.FormatInt(t.Number, 10)
}

// Discontinuity marks an encoding discontinuity before the next segment
// (Section 4.3.2.3).
type Discontinuity struct{}

func (Discontinuity) entry() {}

func (Discontinuity) Name() string { return "EXT-X-DISCONTINUITY" }

func (Discontinuity) String() string { return "#EXT-X-DISCONTINUITY" }

// EndList marks that no more segments will be added (Section 4.3.3.4).
type EndList struct{}

func (EndList) entry() {}

func (EndList) Name() string { return "EXT-X-ENDLIST" }

func (EndList) String() string { return "#EXT-X-ENDLIST" }

// ByteRange restricts the next segment to a sub-range of its resource
// (Section 4.3.2.2). The offset is optional in the n@o form.
type ByteRange struct {
	Length    int64
	Offset    int64
	HasOffset bool
}

func (ByteRange) entry() {}

func (ByteRange) Name() string { return "EXT-X-BYTERANGE" }

func (t ByteRange) String() string {
	s := "#EXT-X-BYTERANGE:" + strconv.FormatInt(t.Length, 10)
	if t.HasOffset {
		s += "@" + strconv.FormatInt(t.Offset, 10)
	}
	return s
}

// ProgramDateTime associates the next segment with an absolute date and
// time (Section 4.3.2.6). The timestamp is kept verbatim.
type ProgramDateTime struct {
	Value string
}

func (ProgramDateTime) entry() {}

func (ProgramDateTime) Name() string { return "EXT-X-PROGRAM-DATE-TIME" }

func (t ProgramDateTime) String() string { return "#EXT-X-PROGRAM-DATE-TIME:" + t.Value }

// PlaylistType is the mutability hint of a media playlist (Section 4.3.3.5).
type PlaylistType struct {
	Value string // PlaylistVOD or PlaylistEvent
}

func (PlaylistType) entry() {}

func (PlaylistType) Name() string { return "EXT-X-PLAYLIST-TYPE" }

func (t PlaylistType) String() string { return "#EXT-X-PLAYLIST-TYPE:" + t.Value }

// IFramesOnly marks a playlist describing only I-frames (Section 4.3.3.6).
type IFramesOnly struct{}

func (IFramesOnly) entry() {}

func (IFramesOnly) Name() string { return "EXT-X-I-FRAMES-ONLY" }

func (IFramesOnly) String() string { return "#EXT-X-I-FRAMES-ONLY" }

// IndependentSegments signals that segments can be decoded on their own
// (Section 4.3.5.1).
type IndependentSegments struct{}

func (IndependentSegments) entry() {}

func (IndependentSegments) Name() string { return "EXT-X-INDEPENDENT-SEGMENTS" }

func (IndependentSegments) String() string { return "#EXT-X-INDEPENDENT-SEGMENTS" }

// Start indicates the preferred playback start point (Section 4.3.5.2).
type Start struct {
	TimeOffset float64
	Precise    bool
	Extra      *AttributeList
}

func (Start) entry() {}

func (Start) Name() string { return "EXT-X-START" }

func (t Start) String() string {
	attrs := NewAttributeList()
	attrs.Set("TIME-OFFSET", NumberValue(t.TimeOffset))
	if t.Precise {
		attrs.Set("PRECISE", TokenValue(BoolYES))
	}
	mergeExtra(attrs, t.Extra)
	return "#EXT-X-START:" + attrs.String()
}

// Unknown carries a well-formed directive this package does not
// recognize, so newer protocol revisions round-trip instead of failing.
type Unknown struct {
	Keyword string
	Payload string
}

func (Unknown) entry() {}

func (t Unknown) Name() string { return t.Keyword }

func (t Unknown) String() string {
	if t.Payload == "" {
		return "#" + t.Keyword
	}
	return "#" + t.Keyword + ":" + t.Payload
}

// decodeTag decodes one "#EXT..." line into its Tag variant.
func decodeTag(line string) (Tag, error) {
	name, payload, _ := strings.Cut(line[1:], ":")
	switch name {
	case "EXTM3U":
		return Header{}, nil
	case "EXT-X-VERSION":
		v, err := strconv.Atoi(payload)
		if err != nil {
			return nil, &ValueError{Tag: name, Field: "version", Value: payload}
		}
		return Version{Value: v}, nil
	case "EXTINF":
		raw, title, _ := strings.Cut(payload, ",")
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &ValueError{Tag: name, Field: "duration", Value: raw}
		}
		return Inf{Duration: duration, Title: title}, nil
	case "EXT-X-TARGETDURATION":
		seconds, err := parseIntField(name, "duration", payload)
		if err != nil {
			return nil, err
		}
		return TargetDuration{Seconds: seconds}, nil
	case "EXT-X-MEDIA-SEQUENCE":
		n, err := parseIntField(name, "sequence", payload)
		if err != nil {
			return nil, err
		}
		return MediaSequence{Number: n}, nil
	case "EXT-X-DISCONTINUITY-SEQUENCE":
		n, err := parseIntField(name, "sequence", payload)
		if err != nil {
			return nil, err
		}
		return DiscontinuitySequence{Number: n}, nil
	case "EXT-X-DISCONTINUITY":
		return Discontinuity{}, nil
	case "EXT-X-ENDLIST":
		return EndList{}, nil
	case "EXT-X-BYTERANGE":
		return decodeByteRange(payload)
	case "EXT-X-PROGRAM-DATE-TIME":
		return ProgramDateTime{Value: payload}, nil
	case "EXT-X-PLAYLIST-TYPE":
		if payload != PlaylistVOD && payload != PlaylistEvent {
			return nil, &ValueError{Tag: name, Field: "type", Value: payload}
		}
		return PlaylistType{Value: payload}, nil
	case "EXT-X-I-FRAMES-ONLY":
		return IFramesOnly{}, nil
	case "EXT-X-INDEPENDENT-SEGMENTS":
		return IndependentSegments{}, nil
	case "EXT-X-START":
		return decodeStart(payload)
	case "EXT-X-KEY":
		return decodeKey(payload)
	case "EXT-X-MAP":
		return decodeMap(payload)
	case "EXT-X-DATERANGE":
		return decodeDateRange(payload)
	case "EXT-X-MEDIA":
		return decodeMedia(payload)
	case "EXT-X-STREAM-INF":
		return decodeStreamInf(payload)
	case "EXT-X-I-FRAME-STREAM-INF":
		return decodeIFrameStreamInf(payload)
	case "EXT-X-SESSION-DATA":
		return decodeSessionData(payload)
	case "EXT-X-SESSION-KEY":
		return decodeSessionKey(payload)
	default:
		return Unknown{Keyword: name, Payload: payload}, nil
	}
}

func decodeByteRange(payload string) (Tag, error) {
	raw, rawOffset, hasOffset := strings.Cut(payload, "@")
	length, err := parseIntField("EXT-X-BYTERANGE", "length", raw)
	if err != nil {
		return nil, err
	}

	r := ByteRange{Length: length}
	if hasOffset {
		r.Offset, err = parseIntField("EXT-X-BYTERANGE", "offset", rawOffset)
		if err != nil {
			return nil, err
		}
		r.HasOffset = true
	}
	return r, nil
}

func decodeStart(payload string) (Tag, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return nil, fmt.Errorf("EXT-X-START: %w", err)
	}

	var t Start
	seen := false
	for _, key := range attrs.Keys() {
		v, _ := attrs.Get(key)
		switch key {
		case "TIME-OFFSET":
			t.TimeOffset, err = attrFloat("EXT-X-START", key, v)
			if err != nil {
				return nil, err
			}
			seen = true
		case "PRECISE":
			t.Precise = v.Text() == BoolYES
		default:
			t.Extra = addExtra(t.Extra, key, v)
		}
	}
	if !seen {
		return nil, &MissingAttributeError{Tag: "EXT-X-START", Key: "TIME-OFFSET"}
	}
	return t, nil
}

func parseIntField(tag, field, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValueError{Tag: tag, Field: field, Value: raw}
	}
	return n, nil
}

// attrInt and attrFloat reject values that are not decimal on the wire,
// so BANDWIDTH="high" fails rather than silently becoming zero. Integer
// fields also reject fractional values rather than truncating them.
func attrInt(tag, key string, v AttrValue) (int64, error) {
	if v.Kind != AttrNumber || v.Num != math.Trunc(v.Num) {
		return 0, &ValueError{Tag: tag, Field: key, Value: v.String()}
	}
	return int64(v.Num), nil
}

func attrFloat(tag, key string, v AttrValue) (float64, error) {
	if v.Kind != AttrNumber {
		return 0, &ValueError{Tag: tag, Field: key, Value: v.String()}
	}
	return v.Num, nil
}

func attrResolution(tag, key string, v AttrValue) (Resolution, error) {
	if v.Kind != AttrResolution {
		return Resolution{}, &ValueError{Tag: tag, Field: key, Value: v.String()}
	}
	return Resolution{Width: v.Width, Height: v.Height}, nil
}

func addExtra(extra *AttributeList, key string, v AttrValue) *AttributeList {
	if extra == nil {
		extra = NewAttributeList()
	}
	extra.Set(key, v)
	return extra
}

func mergeExtra(attrs, extra *AttributeList) {
	if extra == nil {
		return
	}
	for _, key := range extra.Keys() {
		v, _ := extra.Get(key)
		attrs.Set(key, v)
	}
}
