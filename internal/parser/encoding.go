package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const byteOrderMark = "\uFEFF"

// decodeLine returns line as UTF-8. A line that is not valid UTF-8 is
// taken to be Windows-1252, the usual encoding of older PGN databases.
// The byte order mark is dropped from the first line.
func decodeLine(line string, first bool) string {
	if first {
		line = strings.TrimPrefix(line, byteOrderMark)
	}
	if utf8.ValidString(line) {
		return line
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(line)
	if err != nil {
		return strings.ToValidUTF8(line, "\uFFFD")
	}
	return decoded
}
