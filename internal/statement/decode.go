package statement

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF16       = "utf-16"
	EncodingWindows1252 = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode sniffs the charset of a statement export and returns its text.
// Byte order marks win, then valid UTF-8; anything else is read as
// Windows-1252, which every byte sequence decodes under.
func Decode(raw []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return string(raw[len(bomUTF8):]), EncodingUTF8, nil
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		text, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), raw)
		return text, EncodingUTF16, err
	case utf8.Valid(raw):
		return string(raw), EncodingUTF8, nil
	default:
		text, err := decodeWith(charmap.Windows1252, raw)
		return text, EncodingWindows1252, err
	}
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Lines splits decoded text into trimmed lines, starting a new line at every
// tag so single-line exports parse like multi-line ones. Semicolons are
// rewritten as commas.
func Lines(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.ReplaceAll(raw, ";", ",")
		for _, part := range splitTags(raw) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func splitTags(line string) []string {
	var parts []string
	for {
		i := strings.IndexByte(line[min(1, len(line)):], '<')
		if i < 0 {
			return append(parts, line)
		}
		i++
		parts = append(parts, line[:i])
		line = line[i:]
	}
}
