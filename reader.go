package masscsv

import (
	"os"
	"path/filepath"

	"github.com/rowdex/masscsv/internal/csverr"
	"github.com/rowdex/masscsv/internal/mmapio"
)

// Reader gives O(1) random-access reads over a memory-mapped delimited
// text file. It owns the mapping and the row offset index built at Open
// and is safe for concurrent reads by multiple goroutines; it is invalid
// to use after the backing file has been replaced (see Editor.Save).
type Reader struct {
	path      string
	data      []byte
	file      *os.File
	delim     byte
	headers   []string
	dataStart int
	index     []uint64 // index[i] is the byte offset of data row i
	workers   int      // 0 means Search picks runtime.NumCPU(), capped
}

// OpenOption configures a call to Open. See WithWorkers.
type OpenOption func(*Reader)

// WithWorkers overrides the worker count Search uses for this Reader,
// matching entreya-csvquery's Scanner.SetWorkers. n <= 0 is ignored and
// leaves the default (runtime.NumCPU(), capped) in place.
func WithWorkers(n int) OpenOption {
	return func(r *Reader) {
		if n > 0 {
			r.workers = n
		}
	}
}

// Open memory-maps path read-only, infers the delimiter, parses the
// header, and builds the row offset index. It fails with EmptyFile on a
// zero-length file, Io on filesystem/mmap errors, and InvalidUtf8 if the
// header line cannot be decoded.
func Open(path string, opts ...OpenOption) (*Reader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, csverr.NewIo(err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, csverr.NewIo(err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, csverr.NewIo(err)
	}
	if stat.Size() == 0 {
		_ = f.Close()
		return nil, csverr.NewEmptyFile()
	}

	data, err := mmapio.Map(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, csverr.NewIo(err)
	}

	r, err := newReader(abs, f, data)
	if err != nil {
		_ = mmapio.Unmap(data)
		_ = f.Close()
		return nil, err
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func newReader(abs string, f *os.File, data []byte) (*Reader, error) {
	delim := InferDelimiter(sampleHead(data))
	headers, dataStart, err := parseHeader(data, delim)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		path:      abs,
		data:      data,
		file:      f,
		delim:     delim,
		headers:   headers,
		dataStart: dataStart,
	}
	r.index = buildRowIndex(data, dataStart)
	return r, nil
}

// sampleHead returns the first maxSampleLines lines' worth of bytes of
// data for delimiter inference, capped so inference never scans the whole
// file on a file with very long lines.
func sampleHead(data []byte) []byte {
	const capBytes = 64 * 1024
	n := 0
	lines := 0
	for n < len(data) && lines < maxSampleLines {
		if n >= capBytes {
			break
		}
		if data[n] == '\n' {
			lines++
		}
		n++
	}
	if n > len(data) {
		n = len(data)
	}
	return data[:n]
}

// buildRowIndex scans data[dataStart:] for newline-following byte
// positions, producing one offset per data row. The trailing entry is
// dropped if the row it would address is empty or all-whitespace.
func buildRowIndex(data []byte, dataStart int) []uint64 {
	index := []uint64{uint64(dataStart)}
	for i := dataStart; i < len(data); i++ {
		if data[i] == '\n' && i+1 < len(data) {
			index = append(index, uint64(i+1))
		}
	}

	if len(index) == 0 {
		return index
	}
	last := index[len(index)-1]
	slice := data[last:]
	if isBlank(stripCR(trimTrailingNewline(slice))) {
		index = index[:len(index)-1]
	}
	return index
}

func trimTrailingNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return stripCR(b)
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}

// Close releases the underlying memory mapping and closes the file
// handle. The Reader must not be used afterward.
func (r *Reader) Close() error {
	if err := mmapio.Unmap(r.data); err != nil {
		return csverr.NewIo(err)
	}
	if err := r.file.Close(); err != nil {
		return csverr.NewIo(err)
	}
	return nil
}

// RowCount returns the number of data rows (excluding the header).
func (r *Reader) RowCount() int { return len(r.index) }

// Headers returns the parsed header fields.
func (r *Reader) Headers() []string { return r.headers }

// Delimiter returns the inferred delimiter byte.
func (r *Reader) Delimiter() byte { return r.delim }

// Path returns the absolute path the Reader was opened from.
func (r *Reader) Path() string { return r.path }

func (r *Reader) rowBounds(i int) (int, int, error) {
	if i < 0 || i >= len(r.index) {
		return 0, 0, csverr.NewRowOutOfRange(i, len(r.index))
	}
	start := int(r.index[i])
	var end int
	if i == len(r.index)-1 {
		end = len(r.data)
	} else {
		end = int(r.index[i+1])
	}
	return start, end, nil
}

// GetRowRaw returns a zero-copy text slice of row i with one trailing
// \r?\n stripped. It fails RowOutOfRange when i is at or beyond RowCount,
// InvalidUtf8 if the slice is not valid UTF-8.
func (r *Reader) GetRowRaw(i int) (string, error) {
	start, end, err := r.rowBounds(i)
	if err != nil {
		return "", err
	}
	raw := trimTrailingNewline(r.data[start:end])
	if pos := invalidUtf8Pos(raw); pos >= 0 {
		return "", csverr.NewInvalidUtf8(start + pos)
	}
	return string(raw), nil
}

// GetRow returns the parsed fields of row i.
func (r *Reader) GetRow(i int) ([]string, error) {
	raw, err := r.GetRowRaw(i)
	if err != nil {
		return nil, err
	}
	return ParseRow(raw, r.delim), nil
}

// GetRows returns parsed rows for [start, min(end, RowCount)). It never
// fails for an over-large end and returns an empty slice when start >= end.
func (r *Reader) GetRows(start, end int) ([][]string, error) {
	if end > len(r.index) {
		end = len(r.index)
	}
	if start >= end {
		return nil, nil
	}
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		row, err := r.GetRow(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
