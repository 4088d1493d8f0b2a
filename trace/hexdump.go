package trace

import (
	"strconv"
	"strings"
)

// DefaultColumns is the number of bytes per row used by [RenderHexDump] when
// a non-positive column count is given.
const DefaultColumns = 32

// NullMarker replaces the byte rows of a hex dump of nil data.
const NullMarker = "==NULL=="

const (
	dumpBorder = '='
	hexDigits  = "0123456789ABCDEF"
)

// RenderHexDump renders data as a bordered block of two-digit uppercase
// hexadecimal values, columns values per row, each followed by a space.
// The block has no trailing newline:
//
//	<border>
//	<title> {Bytes[<len>]}
//	<border>
//	<rows, or NullMarker when data is nil>
//	<border>
//
// Borders are columns*3 delimiter characters wide.
func RenderHexDump(title string, data []byte, columns int) string {
	if columns <= 0 {
		columns = DefaultColumns
	}

	border := strings.Repeat(string(dumpBorder), columns*3)
	rows := (len(data) + columns - 1) / columns

	var b strings.Builder

	b.Grow(len(border)*3 + len(title) + 32 + len(data)*3 + rows)

	b.WriteString(border)
	b.WriteByte('\n')
	b.WriteString(title)
	b.WriteString(" {Bytes[")
	b.WriteString(strconv.Itoa(len(data)))
	b.WriteString("]}\n")
	b.WriteString(border)

	if data == nil {
		b.WriteByte('\n')
		b.WriteString(NullMarker)
	}

	for i, c := range data {
		if i%columns == 0 {
			b.WriteByte('\n')
		}

		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
		b.WriteByte(' ')
	}

	b.WriteByte('\n')
	b.WriteString(border)

	return b.String()
}
