package m3u8

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSimpleMediaPlaylist(t *testing.T) {
	playlist, err := DecodeString(`
		#EXTM3U
		#EXT-X-VERSION:7
		#EXT-X-TARGETDURATION:6
		#EXTINF:5.009,
		https://media.example.com/first.ts
		#EXT-X-ENDLIST
	`)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		Header{},
		Version{Value: 7},
		TargetDuration{Seconds: 6},
		Inf{Duration: 5.009},
		URI("https://media.example.com/first.ts"),
		EndList{},
	}, playlist.Entries())

	version, ok := playlist.Version()
	require.True(t, ok)
	assert.Equal(t, 7, version)
	assert.True(t, playlist.IsMedia())
	assert.False(t, playlist.IsMaster())
	assert.True(t, playlist.HasEndList())
	assert.NoError(t, playlist.Validate())
}

func TestDecodeEncryptedMediaPlaylist(t *testing.T) {
	playlist, err := DecodeString(`
		#EXTM3U
		#EXT-X-MEDIA-SEQUENCE:7794
		#EXT-X-TARGETDURATION:15
		#EXT-X-KEY:METHOD=AES-128,URI="https://priv.example.com/key.php?r=52"
		#EXTINF:15,
		http://media.example.com/fileSequence52-1.ts
		#EXTINF:15,
		http://media.example.com/fileSequence52-2.ts
	`)
	require.NoError(t, err)

	entries := playlist.Entries()
	require.Len(t, entries, 8)
	assert.Equal(t, MediaSequence{Number: 7794}, entries[1])
	assert.Equal(t, Key{
		Method: CryptAES,
		URI:    "https://priv.example.com/key.php?r=52",
	}, entries[3])
}

func TestDecodeMasterPlaylist(t *testing.T) {
	playlist, err := DecodeString(`
		#EXTM3U
		#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=1280000
		http://example.com/low.m3u8
		#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=65000,CODECS="mp4a.40.5,avc1.42801e"
		http://example.com/audio-only.m3u8
	`)
	require.NoError(t, err)

	assert.True(t, playlist.IsMaster())
	assert.False(t, playlist.IsMedia())
	assert.Equal(t, []Entry{
		Header{},
		StreamInf{ProgramID: 1, Bandwidth: 1280000},
		URI("http://example.com/low.m3u8"),
		StreamInf{ProgramID: 1, Bandwidth: 65000, Codecs: "mp4a.40.5,avc1.42801e"},
		URI("http://example.com/audio-only.m3u8"),
	}, playlist.Entries())
}

func TestDecodeSkipsCommentsAndBlankLines(t *testing.T) {
	playlist, err := DecodeString(`
		#EXTM3U

		# generated by packager v2
		#EXT-X-TARGETDURATION:10
		#EXTINF:9.009,
		http://media.example.com/first.ts
	`)
	require.NoError(t, err)
	require.Len(t, playlist.Entries(), 4)
}

func TestDecodeUnknownTagLine(t *testing.T) {
	playlist, err := DecodeString("#EXTM3U\n#EXT-X-FUTURE-TAG:123\n")
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		Header{},
		Unknown{Keyword: "EXT-X-FUTURE-TAG", Payload: "123"},
	}, playlist.Entries())
}

func TestDecodeReportsLineNumber(t *testing.T) {
	_, err := DecodeString("#EXTM3U\n#EXT-X-TARGETDURATION:10\n#EXT-X-VERSION:seven\n")

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 3, lineErr.Line)

	var value *ValueError
	assert.ErrorAs(t, err, &value)
	assert.Equal(t, "EXT-X-VERSION", value.Tag)
}

func TestRoundTrip(t *testing.T) {
	documents := []string{
		`
		#EXTM3U
		#EXT-X-VERSION:7
		#EXT-X-TARGETDURATION:6
		#EXTINF:5.009,
		https://media.example.com/first.ts
		#EXT-X-ENDLIST
		`,
		`
		#EXTM3U
		#EXT-X-VERSION:6
		#EXT-X-TARGETDURATION:10
		#EXT-X-MAP:URI="init.mp4"
		#EXT-X-KEY:METHOD=SAMPLE-AES,URI="skd://key",KEYFORMAT="com.apple.streamingkeydelivery"
		#EXTINF:9.009,First Segment
		http://media.example.com/first.ts
		#EXT-X-BYTERANGE:75232@0
		#EXTINF:9.009,
		http://media.example.com/second.ts
		#EXT-X-DATERANGE:ID="ad-break",START-DATE="2020-01-01T00:00:00Z",DURATION=60.6
		#EXT-X-ENDLIST
		`,
		`
		#EXTM3U
		#EXT-X-INDEPENDENT-SEGMENTS
		#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English",DEFAULT=YES,URI="main/english-audio.m3u8"
		#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS="mp4a.40.5,avc1.42801e",RESOLUTION=1920x1080,AUDIO="aac"
		http://example.com/hi.m3u8
		#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=86000,URI="low/iframe.m3u8"
		#EXT-X-SESSION-DATA:DATA-ID="com.example.title",VALUE="Example"
		`,
	}

	for _, document := range documents {
		first, err := DecodeString(document)
		require.NoError(t, err)

		second, err := DecodeString(first.String())
		require.NoError(t, err)
		assert.Equal(t, first.Entries(), second.Entries())
	}
}

func TestEncodeDocument(t *testing.T) {
	playlist, err := NewBuilder().
		Header().
		Version(3).
		TargetDuration(10).
		Inf(9.009, "").
		URI("http://media.example.com/first.ts").
		Inf(3.003, "").
		URI("http://media.example.com/second.ts").
		EndList().
		Build()
	require.NoError(t, err)

	expected := "#EXTM3U\n" +
		"#EXT-X-VERSION:3\n" +
		"#EXT-X-TARGETDURATION:10\n" +
		"#EXTINF:9.009,\n" +
		"http://media.example.com/first.ts\n" +
		"#EXTINF:3.003,\n" +
		"http://media.example.com/second.ts\n" +
		"#EXT-X-ENDLIST\n"
	assert.Equal(t, expected, playlist.String())

	var buf strings.Builder
	require.NoError(t, playlist.Encode(&buf))
	assert.Equal(t, expected, buf.String())

	assert.Equal(t, strings.Split(strings.TrimSuffix(expected, "\n"), "\n"), playlist.Lines())

	// Lines is restartable: a second call yields the same sequence.
	assert.Equal(t, playlist.Lines(), playlist.Lines())
}

func TestValidateMissingHeader(t *testing.T) {
	playlist, err := DecodeString("#EXT-X-VERSION:7\n#EXTM3U\n")
	require.NoError(t, err)
	assert.ErrorIs(t, playlist.Validate(), ErrMissingHeader)

	empty, err := DecodeString("")
	require.NoError(t, err)
	assert.ErrorIs(t, empty.Validate(), ErrMissingHeader)
}

func TestValidateMissingTargetDuration(t *testing.T) {
	// Key and ProgramDateTime are media segment tags too; either alone
	// makes EXT-X-TARGETDURATION mandatory.
	playlist, err := DecodeString(`
		#EXTM3U
		#EXT-X-KEY:METHOD=AES-128,URI="https://priv.example.com/key.php?r=52"
		http://media.example.com/first.ts
	`)
	require.NoError(t, err)
	assert.ErrorIs(t, playlist.Validate(), ErrMissingTargetDuration)

	playlist, err = DecodeString(`
		#EXTM3U
		#EXT-X-PROGRAM-DATE-TIME:2020-01-01T00:00:00Z
		http://media.example.com/first.ts
	`)
	require.NoError(t, err)
	assert.ErrorIs(t, playlist.Validate(), ErrMissingTargetDuration)
}

func TestValidateMixedPlaylistKind(t *testing.T) {
	playlist, err := DecodeString(`
		#EXTM3U
		#EXT-X-TARGETDURATION:10
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		http://example.com/low.m3u8
	`)
	require.NoError(t, err)
	assert.ErrorIs(t, playlist.Validate(), ErrMixedPlaylistKind)
}
