package m3u8

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// Playlist mutability hints for EXT-X-PLAYLIST-TYPE.
	PlaylistVOD   string = "VOD"
	PlaylistEvent string = "EVENT"

	// Encryption methods for EXT-X-KEY and EXT-X-SESSION-KEY.
	CryptNone      string = "NONE"
	CryptAES       string = "AES-128"
	CryptSampleAES string = "SAMPLE-AES"

	// HDCP levels for variant streams.
	HDCPLevel0    string = "TYPE-0"
	HDCPLevelNone string = "NONE"

	// Media types for EXT-X-MEDIA.
	MediaAudio     string = "AUDIO"
	MediaVideo     string = "VIDEO"
	MediaSubtitles string = "SUBTITLES"
	MediaCaptions  string = "CLOSED-CAPTIONS"

	// Enumerated boolean values.
	BoolYES string = "YES"
	BoolNO  string = "NO"

	// CCNone is the enumerated CLOSED-CAPTIONS value meaning none.
	CCNone string = "NONE"
)

// Decode reads a playlist document from reader. The whole input is
// consumed before decoding so line numbers in errors match the source.
func Decode(reader io.Reader) (*Playlist, error) {
	var lines []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	return DecodeLines(lines)
}

// DecodeString decodes a playlist document held in memory.
func DecodeString(text string) (*Playlist, error) {
	return Decode(strings.NewReader(text))
}

// DecodeLines decodes a playlist from its logical lines. Blank lines are
// skipped and plain comments discarded; any "#EXT" line must decode as a
// tag. The first failing line aborts the decode, wrapped in a LineError
// with its 1-based position.
func DecodeLines(lines []string) (*Playlist, error) {
	entries := make([]Entry, 0, len(lines))
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if !strings.HasPrefix(line, "#EXT") {
				continue
			}
			tag, err := decodeTag(line)
			if err != nil {
				return nil, &LineError{Line: i + 1, Err: err}
			}
			entries = append(entries, tag)
			continue
		}
		entries = append(entries, URI(line))
	}
	return newPlaylist(entries), nil
}

// MustDecodeString implements DecodeString, but panics if an error occurs.
func MustDecodeString(text string) *Playlist {
	playlist, err := DecodeString(text)
	if err != nil {
		panic(err)
	}
	return playlist
}
