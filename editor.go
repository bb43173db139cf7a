package masscsv

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rowdex/masscsv/internal/csverr"
	"github.com/rowdex/masscsv/internal/mmapio"
)

// Editor layers a pending-edit map over a Reader, giving O(1) edits with a
// trivial revert, and a crash-safe Save that rewrites the file through a
// sibling temp file and renames it into place. Editor is a single-writer
// structure: callers sharing it across goroutines must serialize set/revert/
// save calls externally.
type Editor struct {
	reader *Reader
	edits  map[int][]string
}

// OpenEditor opens path for reading and editing.
func OpenEditor(path string) (*Editor, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Editor{reader: r, edits: make(map[int][]string)}, nil
}

// Reader returns the Editor's current Reader. The returned value becomes
// stale after a successful Save; callers should re-fetch it.
func (e *Editor) Reader() *Reader { return e.reader }

// HasChanges reports whether any row has a pending edit.
func (e *Editor) HasChanges() bool { return len(e.edits) > 0 }

// EditCount returns the number of rows with a pending edit.
func (e *Editor) EditCount() int { return len(e.edits) }

// GetRow returns the edited fields for row i if present, else the
// Reader's parsed row.
func (e *Editor) GetRow(i int) ([]string, error) {
	if fields, ok := e.edits[i]; ok {
		return fields, nil
	}
	return e.reader.GetRow(i)
}

// SetRow replaces the edit entry for row i with fields. It fails
// RowOutOfRange when i is at or beyond RowCount; the field count is not
// validated, since Save serializes whatever is provided.
func (e *Editor) SetRow(i int, fields []string) error {
	if i < 0 || i >= e.reader.RowCount() {
		return csverr.NewRowOutOfRange(i, e.reader.RowCount())
	}
	e.edits[i] = fields
	return nil
}

// SetCell reads the current state of row i (edited or original), replaces
// the field at col, and writes the result back into the edit map. It
// fails RowOutOfRange when i is at or beyond RowCount, ColumnNotFound when
// col is beyond the row's current field count.
func (e *Editor) SetCell(i, col int, value string) error {
	current, err := e.GetRow(i)
	if err != nil {
		return err
	}
	if col < 0 || col >= len(current) {
		return csverr.NewColumnNotFound(indexColumnKey(col))
	}
	fields := append([]string(nil), current...)
	fields[col] = value
	e.edits[i] = fields
	return nil
}

func indexColumnKey(col int) string {
	return "index " + strconv.Itoa(col)
}

// RevertRow removes any pending edit for row i. It is silent if absent.
func (e *Editor) RevertRow(i int) {
	delete(e.edits, i)
}

// RevertAll clears every pending edit.
func (e *Editor) RevertAll() {
	e.edits = make(map[int][]string)
}

// Save rewrites the backing file: the header line followed by every row
// 0..RowCount, edited rows re-serialized via SerializeRow and untouched
// rows copied byte-for-byte from the original mapping, each terminated by
// \n. On success the edit map is cleared and the Reader is replaced by one
// opened on the new file. On any failure before the rename, the original
// file and the editor's state are untouched; a rename failure is reported
// as Io. Save is a no-op when there are no pending edits.
func (e *Editor) Save() error {
	if len(e.edits) == 0 {
		return nil
	}

	r := e.reader
	dir := filepath.Dir(r.path)

	tmp, err := os.CreateTemp(dir, ".masscsv-*.tmp")
	if err != nil {
		return csverr.NewIo(err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	// Best-effort: a failed advisory lock does not block the save.
	_ = mmapio.LockExclusive(r.file)
	defer func() { _ = mmapio.Unlock(r.file) }()

	w := bufio.NewWriterSize(tmp, 256*1024)
	headerLine := SerializeRow(r.headers, r.delim)
	if _, err := w.WriteString(headerLine); err != nil {
		return csverr.NewIo(err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return csverr.NewIo(err)
	}

	for i := 0; i < r.RowCount(); i++ {
		if fields, ok := e.edits[i]; ok {
			line := SerializeRow(fields, r.delim)
			if _, err := w.WriteString(line); err != nil {
				return csverr.NewIo(err)
			}
		} else {
			start, end, err := r.rowBounds(i)
			if err != nil {
				return err
			}
			raw := trimTrailingNewline(r.data[start:end])
			if _, err := w.Write(raw); err != nil {
				return csverr.NewIo(err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return csverr.NewIo(err)
		}
	}

	if err := w.Flush(); err != nil {
		return csverr.NewIo(err)
	}
	if err := tmp.Close(); err != nil {
		return csverr.NewIo(err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		return csverr.NewIo(err)
	}
	success = true

	syncDir(dir)

	if err := mmapio.Unmap(r.data); err != nil {
		return csverr.NewIo(err)
	}
	if err := r.file.Close(); err != nil {
		return csverr.NewIo(err)
	}

	fresh, err := Open(r.path)
	if err != nil {
		return err
	}
	e.reader = fresh
	e.edits = make(map[int][]string)
	return nil
}

// syncDir best-effort fsyncs dir so the rename's directory entry is
// flushed; failures are not reported, matching Save's documented
// after-rename guarantees (the rename itself already succeeded).
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer func() { _ = d.Close() }()
	_ = d.Sync()
}
