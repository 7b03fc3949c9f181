package m3u8

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AttrKind discriminates the value forms of Section 4.2.
type AttrKind int

const (
	AttrQuoted     AttrKind = iota // quoted-string, quotes stripped
	AttrToken                      // enumerated or otherwise opaque token
	AttrNumber                     // decimal-integer or decimal-floating-point
	AttrHex                        // hexadecimal-sequence, digits kept verbatim
	AttrResolution                 // decimal-resolution WxH
)

var (
	numberPattern     = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
	hexPattern        = regexp.MustCompile(`^0[xX][0-9A-Fa-f]+$`)
	resolutionPattern = regexp.MustCompile(`^([0-9]+)x([0-9]+)$`)
)

// AttrValue is a single typed attribute value.
type AttrValue struct {
	Kind   AttrKind
	Str    string // AttrQuoted, AttrToken, AttrHex
	Num    float64
	Width  int64
	Height int64
}

// QuotedValue returns s as a quoted-string value.
func QuotedValue(s string) AttrValue { return AttrValue{Kind: AttrQuoted, Str: s} }

// TokenValue returns s as an enumerated-string value, emitted verbatim.
func TokenValue(s string) AttrValue { return AttrValue{Kind: AttrToken, Str: s} }

// NumberValue returns f as a decimal value.
func NumberValue(f float64) AttrValue { return AttrValue{Kind: AttrNumber, Num: f} }

// HexValue returns s (including its 0x prefix) as a hexadecimal-sequence.
func HexValue(s string) AttrValue { return AttrValue{Kind: AttrHex, Str: s} }

// ResolutionValue returns a decimal-resolution value.
func ResolutionValue(width, height int64) AttrValue {
	return AttrValue{Kind: AttrResolution, Width: width, Height: height}
}

// Text returns the value content without any quoting, for callers that
// treat the attribute as free text.
func (v AttrValue) Text() string {
	switch v.Kind {
	case AttrNumber:
		return formatDecimal(v.Num)
	case AttrResolution:
		return fmt.Sprintf("%dx%d", v.Width, v.Height)
	default:
		return v.Str
	}
}

// String encodes the value with the quoting rules its kind requires.
func (v AttrValue) String() string {
	if v.Kind == AttrQuoted {
		return `"` + v.Str + `"`
	}
	return v.Text()
}

// formatDecimal keeps the minimal representation: integral values carry
// no fractional part, fractional values keep their precision.
func formatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AttributeList is an insertion-ordered KEY=VALUE mapping. Keys are
// case-sensitive and unique.
type AttributeList struct {
	keys   []string
	values map[string]AttrValue
}

// NewAttributeList returns an empty attribute list.
func NewAttributeList() *AttributeList {
	return &AttributeList{values: make(map[string]AttrValue)}
}

// Set inserts or replaces the value for key, keeping first-insertion order.
func (l *AttributeList) Set(key string, v AttrValue) {
	if _, ok := l.values[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.values[key] = v
}

// Get returns the value for key.
func (l *AttributeList) Get(key string) (AttrValue, bool) {
	v, ok := l.values[key]
	return v, ok
}

// Keys returns the attribute names in insertion order.
func (l *AttributeList) Keys() []string { return l.keys }

// Len returns the number of attributes.
func (l *AttributeList) Len() int { return len(l.keys) }

// String encodes the list in insertion order.
func (l *AttributeList) String() string {
	parts := make([]string, 0, len(l.keys))
	for _, key := range l.keys {
		parts = append(parts, key+"="+l.values[key].String())
	}
	return strings.Join(parts, ",")
}

// ParseAttributes decodes a Section 4.2 attribute list. Duplicate keys
// are rejected; unrecognized unquoted values stay opaque tokens.
func ParseAttributes(payload string) (*AttributeList, error) {
	parts, err := splitAttrs(payload)
	if err != nil {
		return nil, err
	}

	list := NewAttributeList()
	for _, part := range parts {
		part = strings.TrimSpace(part)
		key, raw, found := strings.Cut(part, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%q: %w", part, ErrMalformedAttribute)
		}

		if _, ok := list.Get(key); ok {
			return nil, fmt.Errorf("%q: %w", key, ErrDuplicateAttribute)
		}

		value, err := decodeAttrValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		list.Set(key, value)
	}
	return list, nil
}

// splitAttrs splits on commas outside double quotes. A naive split would
// corrupt values such as CODECS="mp4a.40.5,avc1.42801e".
func splitAttrs(payload string) ([]string, error) {
	var parts []string
	var buf strings.Builder
	inQuote := false

	for _, r := range payload {
		switch {
		case r == '"':
			inQuote = !inQuote
			buf.WriteRune(r)
		case r == ',' && !inQuote:
			parts = append(parts, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	return append(parts, buf.String()), nil
}

func decodeAttrValue(raw string) (AttrValue, error) {
	if strings.HasPrefix(raw, `"`) {
		if len(raw) < 2 || !strings.HasSuffix(raw, `"`) {
			return AttrValue{}, ErrUnterminatedQuote
		}
		return QuotedValue(raw[1 : len(raw)-1]), nil
	}

	switch {
	case hexPattern.MatchString(raw):
		return HexValue(raw), nil
	case resolutionPattern.MatchString(raw):
		m := resolutionPattern.FindStringSubmatch(raw)
		width, _ := strconv.ParseInt(m[1], 10, 64)
		height, _ := strconv.ParseInt(m[2], 10, 64)
		return ResolutionValue(width, height), nil
	case numberPattern.MatchString(raw):
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return AttrValue{}, fmt.Errorf("parsing decimal %q: %w", raw, err)
		}
		return NumberValue(f), nil
	default:
		return TokenValue(raw), nil
	}
}
