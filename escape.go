package cat

import "bytes"

// AppendShowEnds appends line to dst with a '$' inserted before its
// terminating line feed. A line without a terminator is appended unchanged.
func AppendShowEnds(dst, line []byte) []byte {
	n := len(line)
	if n == 0 || line[n-1] != '\n' {
		return append(dst, line...)
	}
	dst = append(dst, line[:n-1]...)
	return append(dst, '$', '\n')
}

// AppendNonPrinting appends line to dst with control and high-bit bytes in
// caret and meta notation. Line feed and tab are left alone.
func AppendNonPrinting(dst, line []byte) []byte {
	start := 0
	for i, c := range line {
		if isPlainByte(c) {
			continue
		}
		dst = append(dst, line[start:i]...)
		dst = EscapeByte(dst, c)
		start = i + 1
	}
	return append(dst, line[start:]...)
}

// AppendTabs appends line to dst with every tab rendered as "^I".
func AppendTabs(dst, line []byte) []byte {
	for {
		i := bytes.IndexByte(line, '\t')
		if i < 0 {
			return append(dst, line...)
		}
		dst = append(dst, line[:i]...)
		dst = append(dst, '^', 'I')
		line = line[i+1:]
	}
}

// EscapeByte appends the display form of c used by AppendNonPrinting.
//
//	0x00-0x1F (not LF or TAB)  ^@ .. ^_
//	0x7F                       ^?
//	0x80-0x9F (not 0x8A)       M-^@ .. M-^_
//	0xA0-0xFE and 0x8A         M- followed by c-128
//	0xFF                       M-^?
func EscapeByte(dst []byte, c byte) []byte {
	switch {
	case c < 32 && c != '\n' && c != '\t':
		return append(dst, '^', c+64)
	case c == 127:
		return append(dst, '^', '?')
	case c > 127:
		m := c - 128
		switch {
		case m < 32 && m != '\n':
			return append(dst, 'M', '-', '^', m+64)
		case m == 127:
			return append(dst, 'M', '-', '^', '?')
		// 0x8A is not caret-escaped; it renders as M- followed by a raw LF.
		default:
			return append(dst, 'M', '-', m)
		}
	default:
		return append(dst, c)
	}
}

func isPlainByte(c byte) bool {
	return (c >= 32 && c < 127) || c == '\n' || c == '\t'
}
