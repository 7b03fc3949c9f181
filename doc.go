// Package m3u8 decodes and encodes HTTP Live Streaming playlists.
//
// All Section references are from RFC 8216 Protocol Version 7.
//
// A playlist is an ordered sequence of entries, where each entry is either
// a directive tag (a "#EXT..." line) or a plain URI line. Decoding keeps
// that sequence intact so that a decoded playlist re-encodes to an
// equivalent document. Tags the package does not recognize decode to an
// opaque Unknown tag instead of failing, since newer protocol versions add
// tags freely.
//
// Several tags carry an attribute list (Section 4.2): comma-separated
// KEY=VALUE pairs where a VALUE is one of
//
//   - quoted-string: characters within a pair of double quotes. Line
//     feed, carriage return and double quote must not appear inside.
//   - enumerated-string: an unquoted token from a set defined by the
//     attribute name. Never contains quotes, commas or whitespace.
//   - decimal-integer / decimal-floating-point: unquoted base-10
//     numbers, optionally signed and fractional.
//   - hexadecimal-sequence: 0x or 0X followed by hex digits. These can
//     run far past 64 bits (SCTE35 payloads), so the digits are kept
//     verbatim.
//   - decimal-resolution: two decimal-integers separated by "x".
//
// The comma split is quote-aware: CODECS="mp4a.40.5,avc1.42801e" is a
// single attribute.
//
// Playlists can be built programmatically with a Builder, which accepts
// tags in any order and validates the whole document once at Build.
package m3u8
