package masscsv

import (
	"strings"

	"github.com/rowdex/masscsv/internal/csverr"
	"github.com/rowdex/masscsv/internal/simdscan"
)

// candidateDelimiters lists the delimiters considered during inference, in
// tie-break order: earliest wins a scoring tie.
var candidateDelimiters = []byte{',', '\t', ';', '|'}

// maxSampleLines bounds how much of the file delimiter inference looks at.
const maxSampleLines = 20

// InferDelimiter picks the most likely field delimiter for buf, typically
// the first maxSampleLines logical lines of a file. It never fails: on
// empty input, or when no candidate scores above zero, it returns comma.
func InferDelimiter(buf []byte) byte {
	lines := sampleLines(buf, maxSampleLines)
	if len(lines) == 0 {
		return ','
	}

	best := byte(',')
	bestScore := 0
	for _, cand := range candidateDelimiters {
		firstCount := unquotedFieldCount(lines[0], cand)
		if firstCount <= 1 {
			continue
		}
		consistency := 0
		for _, line := range lines {
			if unquotedFieldCount(line, cand) == firstCount {
				consistency++
			}
		}
		score := consistency * firstCount
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	if bestScore == 0 {
		return ','
	}
	return best
}

// sampleLines splits buf into up to n logical lines on '\n', stripping a
// trailing '\r' from each. A trailing partial line (no terminating '\n') is
// included if non-empty.
func sampleLines(buf []byte, n int) [][]byte {
	var lines [][]byte
	start := 0
	for start < len(buf) && len(lines) < n {
		nl := indexByte(buf[start:], '\n')
		if nl < 0 {
			rest := buf[start:]
			if len(rest) > 0 {
				lines = append(lines, stripCR(rest))
			}
			break
		}
		lines = append(lines, stripCR(buf[start:start+nl]))
		start += nl + 1
	}
	return lines
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func stripCR(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}
	return line
}

// unquotedFieldCount returns one plus the number of occurrences of sep in
// line that lie outside a double-quote region, using the
// internal/simdscan quote/separator bitmap classifier.
func unquotedFieldCount(line []byte, sep byte) int {
	bm := simdscan.NewBitmaps(len(line))
	simdscan.Scan(line, sep, bm)
	return 1 + simdscan.CountUnquoted(len(line), bm)
}

// ParseRow splits a single logical line (no trailing newline) into fields
// per RFC-4180-style quoting: a field wrapped in double quotes may contain
// delimiter bytes and embedded "" pairs meaning a literal quote; an
// unquoted field ends at the next delimiter. An empty line yields an empty
// field slice.
func ParseRow(line string, delim byte) []string {
	if len(line) == 0 {
		return nil
	}

	var fields []string
	var field strings.Builder
	inQuotes := false
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					field.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			field.WriteByte(c)
			i++
		case c == '"' && field.Len() == 0:
			inQuotes = true
			i++
		case c == delim:
			fields = append(fields, field.String())
			field.Reset()
			i++
		default:
			field.WriteByte(c)
			i++
		}
	}
	fields = append(fields, field.String())
	return fields
}

// SerializeRow joins fields into a single line (no trailing newline) using
// delim. Any field containing delim, a double quote, or a line terminator
// is wrapped in double quotes with embedded quotes doubled. A row made of
// a single empty field is written as "" so that ParseRow reads it back as
// one empty field rather than as an empty line.
func SerializeRow(fields []string, delim byte) string {
	if len(fields) == 1 && fields[0] == "" {
		return `""`
	}
	var out strings.Builder
	for i, f := range fields {
		if i > 0 {
			out.WriteByte(delim)
		}
		if needsQuoting(f, delim) {
			out.WriteByte('"')
			out.WriteString(strings.ReplaceAll(f, `"`, `""`))
			out.WriteByte('"')
		} else {
			out.WriteString(f)
		}
	}
	return out.String()
}

func needsQuoting(f string, delim byte) bool {
	return strings.IndexByte(f, delim) >= 0 ||
		strings.ContainsAny(f, "\"\r\n")
}

// parseHeader parses the first logical line of buf (up to the first '\n',
// or all of buf if there is none) as a header row. It fails EmptyFile on
// an empty buffer and InvalidUtf8 if the header bytes are not valid UTF-8.
func parseHeader(buf []byte, delim byte) ([]string, int, error) {
	if len(buf) == 0 {
		return nil, 0, csverr.NewEmptyFile()
	}
	nl := indexByte(buf, '\n')
	var headerEnd, dataStart int
	if nl < 0 {
		headerEnd = len(buf)
		dataStart = len(buf)
	} else {
		headerEnd = nl
		dataStart = nl + 1
	}
	headerBytes := stripCR(buf[:headerEnd])
	if pos := invalidUtf8Pos(headerBytes); pos >= 0 {
		return nil, 0, csverr.NewInvalidUtf8(pos)
	}
	fields := ParseRow(string(headerBytes), delim)
	if len(fields) == 0 {
		return nil, 0, csverr.NewEmptyFile()
	}
	return fields, dataStart, nil
}
