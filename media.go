package m3u8

import "fmt"

// Key describes how the following media segments are encrypted
// (Section 4.3.2.4).
type Key struct {
	Method            string // CryptNone, CryptAES or CryptSampleAES
	URI               string
	IV                string // hexadecimal-sequence, kept verbatim
	KeyFormat         string
	KeyFormatVersions string
	Extra             *AttributeList
}

func (Key) entry() {}

func (Key) Name() string { return "EXT-X-KEY" }

func (t Key) String() string { return "#EXT-X-KEY:" + t.attrs().String() }

func (t Key) attrs() *AttributeList {
	attrs := NewAttributeList()
	attrs.Set("METHOD", TokenValue(t.Method))
	if t.URI != "" {
		attrs.Set("URI", QuotedValue(t.URI))
	}
	if t.IV != "" {
		attrs.Set("IV", HexValue(t.IV))
	}
	if t.KeyFormat != "" {
		attrs.Set("KEYFORMAT", QuotedValue(t.KeyFormat))
	}
	if t.KeyFormatVersions != "" {
		attrs.Set("KEYFORMATVERSIONS", QuotedValue(t.KeyFormatVersions))
	}
	mergeExtra(attrs, t.Extra)
	return attrs
}

// Map identifies the media initialization section for the segments that
// follow (Section 4.3.2.5).
type Map struct {
	URI       string
	ByteRange string
	Extra     *AttributeList
}

func (Map) entry() {}

func (Map) Name() string { return "EXT-X-MAP" }

func (t Map) String() string {
	attrs := NewAttributeList()
	attrs.Set("URI", QuotedValue(t.URI))
	if t.ByteRange != "" {
		attrs.Set("BYTERANGE", QuotedValue(t.ByteRange))
	}
	mergeExtra(attrs, t.Extra)
	return "#EXT-X-MAP:" + attrs.String()
}

// DateRange associates a range of time with attributes, typically for ad
// insertion via SCTE35 (Section 4.3.2.7).
type DateRange struct {
	ID              string
	StartDate       string
	EndDate         string
	Duration        *float64
	PlannedDuration *float64
	SCTE35Cmd       string
	SCTE35Out       string
	SCTE35In        string
	EndOnNext       *bool
	Extra           *AttributeList
}

func (DateRange) entry() {}

func (DateRange) Name() string { return "EXT-X-DATERANGE" }

func (t DateRange) String() string {
	attrs := NewAttributeList()
	attrs.Set("ID", QuotedValue(t.ID))
	attrs.Set("START-DATE", QuotedValue(t.StartDate))
	if t.EndDate != "" {
		attrs.Set("END-DATE", QuotedValue(t.EndDate))
	}
	if t.Duration != nil {
		attrs.Set("DURATION", NumberValue(*t.Duration))
	}
	if t.PlannedDuration != nil {
		attrs.Set("PLANNED-DURATION", NumberValue(*t.PlannedDuration))
	}
	if t.SCTE35Cmd != "" {
		attrs.Set("SCTE35-CMD", HexValue(t.SCTE35Cmd))
	}
	if t.SCTE35Out != "" {
		attrs.Set("SCTE35-OUT", HexValue(t.SCTE35Out))
	}
	if t.SCTE35In != "" {
		attrs.Set("SCTE35-IN", HexValue(t.SCTE35In))
	}
	if t.EndOnNext != nil {
		value := BoolNO
		if *t.EndOnNext {
			value = BoolYES
		}
		attrs.Set("END-ON-NEXT", TokenValue(value))
	}
	mergeExtra(attrs, t.Extra)
	return "#EXT-X-DATERANGE:" + attrs.String()
}

func decodeKey(payload string) (Tag, error) {
	key, err := decodeKeyAttrs("EXT-X-KEY", payload)
	if err != nil {
		return nil, err
	}
	return key, nil
}

// decodeKeyAttrs is shared with EXT-X-SESSION-KEY, which carries the
// same attribute set.
func decodeKeyAttrs(tag, payload string) (Key, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return Key{}, fmt.Errorf("%s: %w", tag, err)
	}

	var key Key
	for _, name := range attrs.Keys() {
		v, _ := attrs.Get(name)
		switch name {
		case "METHOD":
			method := v.Text()
			if method != CryptNone && method != CryptAES && method != CryptSampleAES {
				return Key{}, &ValueError{Tag: tag, Field: name, Value: method}
			}
			key.Method = method
		case "URI":
			key.URI = v.Text()
		case "IV":
			if v.Kind != AttrHex {
				return Key{}, &ValueError{Tag: tag, Field: name, Value: v.String()}
			}
			key.IV = v.Str
		case "KEYFORMAT":
			key.KeyFormat = v.Text()
		case "KEYFORMATVERSIONS":
			key.KeyFormatVersions = v.Text()
		default:
			key.Extra = addExtra(key.Extra, name, v)
		}
	}

	if key.Method == "" {
		return Key{}, &MissingAttributeError{Tag: tag, Key: "METHOD"}
	}
	if key.Method != CryptNone && key.URI == "" {
		return Key{}, &MissingAttributeError{Tag: tag, Key: "URI"}
	}
	return key, nil
}

func decodeMap(payload string) (Tag, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return nil, fmt.Errorf("EXT-X-MAP: %w", err)
	}

	var t Map
	for _, name := range attrs.Keys() {
		v, _ := attrs.Get(name)
		switch name {
		case "URI":
			t.URI = v.Text()
		case "BYTERANGE":
			t.ByteRange = v.Text()
		default:
			t.Extra = addExtra(t.Extra, name, v)
		}
	}
	if t.URI == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-MAP", Key: "URI"}
	}
	return t, nil
}

func decodeDateRange(payload string) (Tag, error) {
	attrs, err := ParseAttributes(payload)
	if err != nil {
		return nil, fmt.Errorf("EXT-X-DATERANGE: %w", err)
	}

	var t DateRange
	for _, name := range attrs.Keys() {
		v, _ := attrs.Get(name)
		switch name {
		case "ID":
			t.ID = v.Text()
		case "START-DATE":
			t.StartDate = v.Text()
		case "END-DATE":
			t.EndDate = v.Text()
		case "DURATION":
			f, err := attrFloat("EXT-X-DATERANGE", name, v)
			if err != nil {
				return nil, err
			}
			t.Duration = &f
		case "PLANNED-DURATION":
			f, err := attrFloat("EXT-X-DATERANGE", name, v)
			if err != nil {
				return nil, err
			}
			t.PlannedDuration = &f
		case "SCTE35-CMD":
			t.SCTE35Cmd = v.Text()
		case "SCTE35-OUT":
			t.SCTE35Out = v.Text()
		case "SCTE35-IN":
			t.SCTE35In = v.Text()
		case "END-ON-NEXT":
			set := v.Text() == BoolYES
			t.EndOnNext = &set
		default:
			t.Extra = addExtra(t.Extra, name, v)
		}
	}

	if t.ID == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-DATERANGE", Key: "ID"}
	}
	if t.StartDate == "" {
		return nil, &MissingAttributeError{Tag: "EXT-X-DATERANGE", Key: "START-DATE"}
	}
	return t, nil
}
