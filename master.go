package m3u8

import "fmt"

// Resolution is the decimal-resolution of a variant stream (Section 4.3.4.2).
type Resolution struct {
	Width  int64
	Height int64
}

// Media selects an alternative rendition of the same content, such as an
// audio track or subtitles (Section 4.3.4.1).
type Media struct {
	Type            string // MediaAudio, MediaVideo, MediaSubtitles or MediaCaptions
	URI             string
	GroupID         string
	Language        string
	AssocLanguage   string
	MediaName       string
	Default         bool
	AutoSelect      bool
	Forced          bool
	InstreamID      string
	Characteristics string
	Channels        string
	Extra           *AttributeList
}

func (Media) entry() {}

func (Media) Name() string { return "EXT-X-MEDIA" }

func (t Media) String() string {
	attrs := NewAttributeList()
	attrs.Set("TYPE", TokenValue(t.Type))
	if t.URI != "" {
		attrs.Set("URI", QuotedValue(t.URI))
	}
	attrs.Set("GROUP-ID", QuotedValue(t.GroupID))
	if t.Language != "" {
		attrs.Set("LANGUAGE", QuotedValue(t.Language))
	}
	if t.AssocLanguage != "" {
		attrs.Set("ASSOC-LANGUAGE", QuotedValue(t.AssocLanguage))
	}
	attrs.Set("NAME", QuotedValue(t.MediaName))
	if t.Default {
		attrs.Set("DEFAULT", TokenValue(BoolYES))
	}
	if t.AutoSelect {
		attrs.Set("AUTOSELECT", TokenValue(BoolYES))
	}
	if t.Forced {
		attrs.Set("FORCED", TokenValue(BoolYES))
	}
	if t.InstreamID != "" {
		attrs.Set("INSTREAM-ID", QuotedValue(t.InstreamID))
	}
	if t.Characteristics != "" {
		attrs.Set("CHARACTERISTICS", QuotedValue(t.Characteristics))
	}
	if t.Channels != "" {
		attrs.Set("CHANNELS", QuotedValue(t.Channels))
	}
	mergeExtra(attrs, t.Extra)
	return "#EXT-X-MEDIA:" + attrs.String()
}

// StreamInf describes a variant stream; the URI entry that follows it
// names the variant's media playlist (Section 4.3.4.2).
type StreamInf struct {
	Bandwidth        int64
	AverageBandwidth int64
	Codecs           string
	Resolution       Resolution
	FrameRate        float64
	HDCPLevel        string
	Audio            string
	Video            string
	Subtitles        string
	ClosedCaptions   string
	ProgramID        int64 // removed in protocol version 6, still seen in the wild
	Extra            *AttributeList
}

func (StreamInf) entry() {}

func (StreamInf) Name() string { return "EXT-X-STREAM-INF" }

func (t StreamInf) String() string {
	attrs := NewAttributeList()
	if t.ProgramID != 0 {
		attrs.Set("PROGRAM-ID", NumberValue(float64(t.ProgramID)))
	}
	attrs.Set("BANDWIDTH", NumberValue(float64(t.Bandwidth)))
	if t.AverageBandwidth != 0 {
		attrs.Set("AVERAGE-BANDWIDTH", NumberValue(float64(t.AverageBandwidth)))
	}
	if t.Codecs != "" {
		attrs.Set("CODECS", QuotedValue(t.Codecs))
	}
	if t.Resolution != (Resolution{}) {
		attrs.Set("RESOLUTION", ResolutionValue(t.Resolution.Width, t.Resolution.Height))
	}
	if t.FrameRate != 0 {
		attrs.Set("FRAME-RATE", NumberValue(t.FrameRate))
	}
	if t.HDCPLevel != "" {
		attrs.Set("HDCP-LEVEL", TokenValue(t.HDCPLevel))
	}
	if t.Audio != "" {
		attrs.Set("AUDIO", QuotedValue(t.Audio))
	}
	if t.Video != "" {
		attrs.Set("VIDEO", QuotedValue(t.Video))
	}
	if t.Subtitles != "" {
		attrs.Set("SUBTITLES", QuotedValue(t.Subtitles))
	}
	if t.ClosedCaptions == CCNone {
		attrs.Set("CLOSED-CAPTIONS", TokenValue(CCNone))
	} else if t.ClosedCaptions != "" {
		attrs.Set("CLOSED-CAPTIONS", QuotedValue(t.ClosedCaptions))
	}
	mergeExtra(attrs, t.Extra)
	return "#EXT-X-STREAM-INF:" + attrs.String()
}

// IFrameStreamInf describes a variant stream containing only I-frames.
// Unlike StreamInf, its playlist URI is an attribute (Section 4.3.4.3).
type IFrameStreamInf struct {
	URI              string
	Bandwidth        int64
	AverageBandwidth int64
	Codecs           string
	Resolution       Resolution
	HDCPLevel        string
	Video            string
	Extra            *AttributeList
}

func (IFrameStreamInf) entry() {}

func (IFrameStreamInf) Name() string { return "EXT-X-I-FRAME-STREAM-INF" }

func (t IFrameStreamInf) String() string {
	attrs := NewAttributeList()
	attrs.Set("BANDWIDTH", NumberValue(float64(t.Bandwidth)))
	if t.AverageBandwidth != 0 {
		attrs.Set("AVERAGE-BANDWIDTH", NumberValue(float64(t.AverageBandwidth)))
	}
	if t.Codecs != "" {
		attrs.Set("CODECS", QuotedValue(t.Codecs))
	}
	if t.Resolution != (Resolution{}) {
		attrs.Set("RESOLUTION", ResolutionValue(t.Resolution.Width, t.Resolution.Height))
	}
	if t.HDCPLevel != "" {
		attrs.Set("HDCP-LEVEL", TokenValue(t.HDCPLevel))
	}
	if t.Video != "" {
		attrs.Set("VIDEO", QuotedValue(t.Video))
	}
	attrs.Set("URI", QuotedValue(t.URI))
	mergeExtra(attrs, t.Extra)
	return "#EXT-X-I-FRAME-STREAM-INF:" + attrs.String()
}

// SessionData carries arbitrary session-level data; VALUE and URI are
// mutually exclusive carriers (Section 4.3.4.4).
type SessionData struct {
	DataID   string
	Value    string
	URI      string
	Language string
	Extra    *AttributeList
}

func (SessionData) entry() {}

func (SessionData) Name() string { return "EXT-X-SESSION-DATA" }

func (t SessionData) String() string {
	attrs := NewAttributeList()
	attrs.Set("DATA-ID", QuotedValue(t.DataID))
	if t.Value != "" {
		attrs.Set("VALUE", QuotedValue(t.Value))
	}
	if t.URI != "" {
		attrs.Set("URI", QuotedValue(t.URI))
	}
	if t.Language != "" {
		attrs.Set("LANGUAGE", QuotedValue(t.Language))
	}
	mergeExtra(attrs, t.Extra)
	return "#EXT-X-SESSION-DATA:" + attrs.String()
}

// SessionKey lets a client preload an encryption key from the master
// playlist. Its attribute set is that of Key (Section 4.3.4.5).
type SessionKey struct {
	Key
}

func (SessionKey) Name() string { return "EXT-X-SESSION-KEY" }

func (t SessionKey) String() string { return "#EXT-X-SESSION-KEY:" + t.attrs().String() }

func decodeMedia(payload string) (Tag, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return nil, fmt.Errorf("EXT-X-MEDIA: %w", err)
	}

	var t Media
	for _, name := range attrs.Keys() {
		v, _ := attrs.Get(name)
		switch name {
		case "TYPE":
			mediaType := v.Text()
			if mediaType != MediaAudio && mediaType != MediaVideo && mediaType != MediaSubtitles && mediaType != MediaCaptions {
				return nil, &ValueError{Tag: "EXT-X-MEDIA", Field: name, Value: mediaType}
			}
			t.Type = mediaType
		case "URI":
			t.URI = v.Text()
		case "GROUP-ID":
			t.GroupID = v.Text()
		case "LANGUAGE":
			t.Language = v.Text()
		case "ASSOC-LANGUAGE":
			t.AssocLanguage = v.Text()
		case "NAME":
			t.MediaName = v.Text()
		case "DEFAULT":
			t.Default = v.Text() == BoolYES
		case "AUTOSELECT":
			t.AutoSelect = v.Text() == BoolYES
		case "FORCED":
			t.Forced = v.Text() == BoolYES
		case "INSTREAM-ID":
			t.InstreamID = v.Text()
		case "CHARACTERISTICS":
			t.Characteristics = v.Text()
		case "CHANNELS":
			t.Channels = v.Text()
		default:
			t.Extra = addExtra(t.Extra, name, v)
		}
	}

	if t.Type == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-MEDIA", Key: "TYPE"}
	}
	if t.GroupID == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-MEDIA", Key: "GROUP-ID"}
	}
	if t.MediaName == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-MEDIA", Key: "NAME"}
	}
	return t, nil
}

func decodeStreamInf(payload string) (Tag, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return nil, fmt.Errorf("EXT-X-STREAM-INF: %w", err)
	}

	var t StreamInf
	seenBandwidth := false
	for _, name := range attrs.Keys() {
		v, _ := attrs.Get(name)
		switch name {
		case "PROGRAM-ID":
			t.ProgramID, err = attrInt("EXT-X-STREAM-INF", name, v)
		case "BANDWIDTH":
			t.Bandwidth, err = attrInt("EXT-X-STREAM-INF", name, v)
			seenBandwidth = err == nil
		case "AVERAGE-BANDWIDTH":
			t.AverageBandwidth, err = attrInt("EXT-X-STREAM-INF", name, v)
		case "CODECS":
			t.Codecs = v.Text()
		case "RESOLUTION":
			t.Resolution, err = attrResolution("EXT-X-STREAM-INF", name, v)
		case "FRAME-RATE":
			t.FrameRate, err = attrFloat("EXT-X-STREAM-INF", name, v)
		case "HDCP-LEVEL":
			level := v.Text()
			if level != HDCPLevel0 && level != HDCPLevelNone {
				return nil, &ValueError{Tag: "EXT-X-STREAM-INF", Field: name, Value: level}
			}
			t.HDCPLevel = level
		case "AUDIO":
			t.Audio = v.Text()
		case "VIDEO":
			t.Video = v.Text()
		case "SUBTITLES":
			t.Subtitles = v.Text()
		case "CLOSED-CAPTIONS":
			t.ClosedCaptions = v.Text()
		default:
			t.Extra = addExtra(t.Extra, name, v)
		}
		if err != nil {
			return nil, err
		}
	}

	if !seenBandwidth {
		return nil, &MissingAttributeError{Tag: "EXT-X-STREAM-INF", Key: "BANDWIDTH"}
	}
	return t, nil
}

func decodeIFrameStreamInf(payload string) (Tag, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return nil, fmt.Errorf("EXT-X-I-FRAME-STREAM-INF: %w", err)
	}

	var t IFrameStreamInf
	seenBandwidth := false
	for _, name := range attrs.Keys() {
		v, _ := attrs.Get(name)
		switch name {
		case "URI":
			t.URI = v.Text()
		case "BANDWIDTH":
			t.Bandwidth, err = attrInt("EXT-X-I-FRAME-STREAM-INF", name, v)
			seenBandwidth = err == nil
		case "AVERAGE-BANDWIDTH":
			t.AverageBandwidth, err = attrInt("EXT-X-I-FRAME-STREAM-INF", name, v)
		case "CODECS":
			t.Codecs = v.Text()
		case "RESOLUTION":
			t.Resolution, err = attrResolution("EXT-X-I-FRAME-STREAM-INF", name, v)
		case "HDCP-LEVEL":
			level := v.Text()
			if level != HDCPLevel0 && level != HDCPLevelNone {
				return nil, &ValueError{Tag: "EXT-X-I-FRAME-STREAM-INF", Field: name, Value: level}
			}
			t.HDCPLevel = level
		case "VIDEO":
			t.Video = v.Text()
		default:
			t.Extra = addExtra(t.Extra, name, v)
		}
		if err != nil {
			return nil, err
		}
	}

	if !seenBandwidth {
		return nil, &MissingAttributeError{Tag: "EXT-X-I-FRAME-STREAM-INF", Key: "BANDWIDTH"}
	}
	if t.URI == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-I-FRAME-STREAM-INF", Key: "URI"}
	}
	return t, nil
}

func decodeSessionData(payload string) (Tag, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return nil, fmt.Errorf("EXT-X-SESSION-DATA: %w", err)
	}

	var t SessionData
	for _, name := range attrs.Keys() {
		v, _ := attrs.Get(name)
		switch name {
		case "DATA-ID":
			t.DataID = v.Text()
		case "VALUE":
			t.Value = v.Text()
		case "URI":
			t.URI = v.Text()
		case "LANGUAGE":
			t.Language = v.Text()
		default:
			t.Extra = addExtra(t.Extra, name, v)
		}
	}

	if t.DataID == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-SESSION-DATA", Key: "DATA-ID"}
	}
	// Exactly one of VALUE and URI must carry the data.
	if t.Value != "" && t.URI != "" {
		return nil, &ValueError{Tag: "EXT-X-SESSION-DATA", Field: "VALUE", Value: "VALUE and URI are mutually exclusive"}
	}
	if t.Value == "" && t.URI == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-SESSION-DATA", Key: "VALUE"}
	}
	return t, nil
}

func decodeSessionKey(payload string) (Tag, error) {
	key, err := decodeKeyAttrs("EXT-X-SESSION-KEY", payload)
	if err != nil {
		return nil, err
	}
	return SessionKey{Key: key}, nil
}
