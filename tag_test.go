package m3u8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestDecodeScalarTags(t *testing.T) {
	cases := []struct {
		line string
		want Tag
	}{
		{"#EXTM3U", Header{}},
		{"#EXT-X-VERSION:7", Version{Value: 7}},
		{"#EXTINF:5.009,", Inf{Duration: 5.009}},
		{"#EXTINF:10,Sample Title", Inf{Duration: 10, Title: "Sample Title"}},
		{"#EXT-X-TARGETDURATION:6", TargetDuration{Seconds: 6}},
		{"#EXT-X-MEDIA-SEQUENCE:7794", MediaSequence{Number: 7794}},
		{"#EXT-X-DISCONTINUITY-SEQUENCE:3", DiscontinuitySequence{Number: 3}},
		{"#EXT-X-DISCONTINUITY", Discontinuity{}},
		{"#EXT-X-ENDLIST", EndList{}},
		{"#EXT-X-BYTERANGE:75232", ByteRange{Length: 75232}},
		{"#EXT-X-BYTERANGE:82112@752321", ByteRange{Length: 82112, Offset: 752321, HasOffset: true}},
		{"#EXT-X-PROGRAM-DATE-TIME:2020-01-01T00:00:00Z", ProgramDateTime{Value: "2020-01-01T00:00:00Z"}},
		{"#EXT-X-PLAYLIST-TYPE:VOD", PlaylistType{Value: PlaylistVOD}},
		{"#EXT-X-I-FRAMES-ONLY", IFramesOnly{}},
		{"#EXT-X-INDEPENDENT-SEGMENTS", IndependentSegments{}},
	}

	for _, c := range cases {
		tag, err := decodeTag(c.line)
		require.NoError(t, err, c.line)
		assert.Equal(t, c.want, tag, c.line)
	}
}

func TestEncodeIsInverseOfDecode(t *testing.T) {
	lines := []string{
		"#EXTM3U",
		"#EXT-X-VERSION:7",
		"#EXTINF:5.009,",
		"#EXTINF:10,Sample Title",
		"#EXT-X-TARGETDURATION:6",
		"#EXT-X-MEDIA-SEQUENCE:7794",
		"#EXT-X-BYTERANGE:82112@752321",
		"#EXT-X-DISCONTINUITY",
		`#EXT-X-KEY:METHOD=AES-128,URI="https://priv.example.com/key.php?r=52"`,
		`#EXT-X-MAP:URI="init.mp4"`,
		"#EXT-X-PROGRAM-DATE-TIME:2020-01-01T00:00:00Z",
		`#EXT-X-DATERANGE:ID="ad-break",START-DATE="2020-01-01T00:00:00Z",DURATION=60.6`,
		"#EXT-X-START:TIME-OFFSET=-2,PRECISE=YES",
		`#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English"`,
		`#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS="mp4a.40.5,avc1.42801e",RESOLUTION=1920x1080`,
		`#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=86000,URI="low/iframe.m3u8"`,
		`#EXT-X-SESSION-DATA:DATA-ID="com.example.title",VALUE="This is an example"`,
		`#EXT-X-SESSION-KEY:METHOD=SAMPLE-AES,URI="https://priv.example.com/key.php?r=52"`,
		"#EXT-X-ENDLIST",
	}

	for _, line := range lines {
		tag, err := decodeTag(line)
		require.NoError(t, err, line)
		assert.Equal(t, line, tag.String(), line)
	}
}

func TestDecodeKey(t *testing.T) {
	tag, err := decodeTag(`#EXT-X-KEY:METHOD=AES-128,URI="https://priv.example.com/key.php?r=52",IV=0x9c7db8778570d05c3177c349fd9236aa`)
	require.NoError(t, err)

	assert.Equal(t, Key{
		Method: CryptAES,
		URI:    "https://priv.example.com/key.php?r=52",
		IV:     "0x9c7db8778570d05c3177c349fd9236aa",
	}, tag)
}

func TestDecodeKeyErrors(t *testing.T) {
	_, err := decodeTag(`#EXT-X-KEY:URI="https://priv.example.com/key.php"`)
	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "EXT-X-KEY", missing.Tag)
	assert.Equal(t, "METHOD", missing.Key)

	_, err = decodeTag(`#EXT-X-KEY:METHOD=ROT13,URI="key"`)
	var value *ValueError
	require.ErrorAs(t, err, &value)
	assert.Equal(t, "METHOD", value.Field)

	// METHOD=NONE is the one method that needs no URI.
	_, err = decodeTag(`#EXT-X-KEY:METHOD=AES-128`)
	assert.Error(t, err)
	_, err = decodeTag(`#EXT-X-KEY:METHOD=NONE`)
	assert.NoError(t, err)
}

func TestDecodeDateRange(t *testing.T) {
	tag, err := decodeTag(`#EXT-X-DATERANGE:ID="splice-6FFFFFF0",START-DATE="2014-03-05T11:15:00Z",PLANNED-DURATION=59.993,SCTE35-OUT=0xFC002F0000000000FF000014056F`)
	require.NoError(t, err)

	assert.Equal(t, DateRange{
		ID:              "splice-6FFFFFF0",
		StartDate:       "2014-03-05T11:15:00Z",
		PlannedDuration: floatPtr(59.993),
		SCTE35Out:       "0xFC002F0000000000FF000014056F",
	}, tag)
}

func TestDecodeMediaRequiredAttributes(t *testing.T) {
	tag, err := decodeTag(`#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English",DEFAULT=YES,AUTOSELECT=YES,LANGUAGE="en",URI="main/english-audio.m3u8"`)
	require.NoError(t, err)
	assert.Equal(t, Media{
		Type:       MediaAudio,
		GroupID:    "aac",
		MediaName:  "English",
		Default:    true,
		AutoSelect: true,
		Language:   "en",
		URI:        "main/english-audio.m3u8",
	}, tag)

	_, err = decodeTag(`#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac"`)
	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "NAME", missing.Key)

	_, err = decodeTag(`#EXT-X-MEDIA:TYPE=TELETEXT,GROUP-ID="x",NAME="x"`)
	var value *ValueError
	require.ErrorAs(t, err, &value)
	assert.Equal(t, "TYPE", value.Field)
}

func TestDecodeStreamInf(t *testing.T) {
	tag, err := decodeTag(`#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=65000,AVERAGE-BANDWIDTH=63005,CODECS="mp4a.40.5,avc1.42801e",RESOLUTION=416x234,FRAME-RATE=29.97`)
	require.NoError(t, err)

	assert.Equal(t, StreamInf{
		ProgramID:        1,
		Bandwidth:        65000,
		AverageBandwidth: 63005,
		Codecs:           "mp4a.40.5,avc1.42801e",
		Resolution:       Resolution{Width: 416, Height: 234},
		FrameRate:        29.97,
	}, tag)

	_, err = decodeTag(`#EXT-X-STREAM-INF:CODECS="mp4a.40.5"`)
	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "BANDWIDTH", missing.Key)
}

func TestDecodeInvalidValues(t *testing.T) {
	cases := []struct {
		line  string
		field string
	}{
		{"#EXT-X-VERSION:seven", "version"},
		{"#EXTINF:abc,", "duration"},
		{"#EXT-X-TARGETDURATION:6.5", "duration"},
		{"#EXT-X-BYTERANGE:75232@", "offset"},
		{"#EXT-X-PLAYLIST-TYPE:LIVE", "type"},
		{`#EXT-X-STREAM-INF:BANDWIDTH="high"`, "BANDWIDTH"},
		// Fractional values in integer fields are rejected, not truncated.
		{"#EXT-X-STREAM-INF:BANDWIDTH=1280000.75", "BANDWIDTH"},
		{"#EXT-X-STREAM-INF:PROGRAM-ID=1.5,BANDWIDTH=65000", "PROGRAM-ID"},
		{`#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=86000,AVERAGE-BANDWIDTH=85999.5,URI="low/iframe.m3u8"`, "AVERAGE-BANDWIDTH"},
	}

	for _, c := range cases {
		_, err := decodeTag(c.line)
		var value *ValueError
		require.ErrorAs(t, err, &value, c.line)
		assert.Equal(t, c.field, value.Field, c.line)
	}
}

func TestDecodeSessionDataCarrier(t *testing.T) {
	// Exactly one of VALUE and URI must be present.
	_, err := decodeTag(`#EXT-X-SESSION-DATA:DATA-ID="com.example.title",VALUE="Example",URI="title.json"`)
	var value *ValueError
	require.ErrorAs(t, err, &value)
	assert.Equal(t, "EXT-X-SESSION-DATA", value.Tag)

	_, err = decodeTag(`#EXT-X-SESSION-DATA:DATA-ID="com.example.title"`)
	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "VALUE", missing.Key)

	_, err = decodeTag(`#EXT-X-SESSION-DATA:DATA-ID="com.example.title",URI="title.json"`)
	assert.NoError(t, err)
}

func TestDecodeUnknownTag(t *testing.T) {
	tag, err := decodeTag("#EXT-X-FUTURE-TAG:123")
	require.NoError(t, err)

	assert.Equal(t, Unknown{Keyword: "EXT-X-FUTURE-TAG", Payload: "123"}, tag)
	assert.Equal(t, "#EXT-X-FUTURE-TAG:123", tag.String())

	tag, err = decodeTag("#EXT-X-GAP")
	require.NoError(t, err)
	assert.Equal(t, Unknown{Keyword: "EXT-X-GAP"}, tag)
	assert.Equal(t, "#EXT-X-GAP", tag.String())
}

func TestUnknownAttributesPreserved(t *testing.T) {
	line := `#EXT-X-KEY:METHOD=AES-128,URI="key",X-CUSTOM="opaque"`
	tag, err := decodeTag(line)
	require.NoError(t, err)

	key := tag.(Key)
	require.NotNil(t, key.Extra)
	custom, ok := key.Extra.Get("X-CUSTOM")
	require.True(t, ok)
	assert.Equal(t, "opaque", custom.Str)

	// The opaque attribute survives re-encoding after the known ones.
	assert.Equal(t, line, tag.String())
}
