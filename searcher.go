package masscsv

import (
	"runtime"
	"strings"
	"sync"

	"github.com/rowdex/masscsv/internal/csverr"
)

// maxSearchWorkers bounds the worker pool for the embarrassingly-parallel
// byte-bound scan, the same way entreya-csvquery's full-scan count path
// caps worker count for this class of work.
const maxSearchWorkers = 16

// SearchOptions configures a Search call. Column restricts matching to a
// single field (by exact header name); CaseInsensitive folds both the
// pre-filter and the column check; MaxResults caps the returned count (0
// means unlimited).
type SearchOptions struct {
	Column          string
	CaseInsensitive bool
	MaxResults      uint
}

// SearchResult is one matching row: its zero-based row index and parsed
// fields.
type SearchResult struct {
	RowNum int
	Fields []string
}

// Search scans every row of r for query, using a raw-byte substring test
// to discard non-matching rows before paying to parse them. Results are
// returned in ascending RowNum order regardless of worker interleaving.
// It fails ColumnNotFound if options.Column is set and not a header name;
// a per-row parse failure discards that row silently rather than aborting
// the scan.
func Search(r *Reader, query string, options SearchOptions) ([]SearchResult, error) {
	colIdx := -1
	if options.Column != "" {
		idx, ok := columnIndex(r.Headers(), options.Column)
		if !ok {
			return nil, csverr.NewColumnNotFound(options.Column)
		}
		colIdx = idx
	}

	needle := query
	if options.CaseInsensitive {
		needle = strings.ToLower(needle)
	}

	rowCount := r.RowCount()
	workers := r.workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxSearchWorkers {
		workers = maxSearchWorkers
	}
	if workers < 1 {
		workers = 1
	}
	if workers > rowCount {
		workers = rowCount
	}
	if workers == 0 {
		return nil, nil
	}

	boundaries := partitionRows(rowCount, workers)
	perWorker := make([][]SearchResult, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := boundaries[w], boundaries[w+1]
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			perWorker[w] = scanRange(r, start, end, needle, colIdx, options.CaseInsensitive)
		}(w, start, end)
	}
	wg.Wait()

	var results []SearchResult
	for _, chunk := range perWorker {
		results = append(results, chunk...)
	}

	if options.MaxResults > 0 && uint(len(results)) > options.MaxResults {
		results = results[:options.MaxResults]
	}
	return results, nil
}

// partitionRows splits [0, rowCount) into workers contiguous, gap-free
// ranges, returning workers+1 boundaries.
func partitionRows(rowCount, workers int) []int {
	boundaries := make([]int, workers+1)
	chunk := rowCount / workers
	for i := 0; i < workers; i++ {
		boundaries[i] = i * chunk
	}
	boundaries[workers] = rowCount
	return boundaries
}

func scanRange(r *Reader, start, end int, needle string, colIdx int, caseInsensitive bool) []SearchResult {
	var out []SearchResult
	for i := start; i < end; i++ {
		raw, err := r.GetRowRaw(i)
		if err != nil {
			continue
		}

		haystack := raw
		if caseInsensitive {
			haystack = strings.ToLower(haystack)
		}
		if !strings.Contains(haystack, needle) {
			continue
		}

		fields := ParseRow(raw, r.delim)

		if colIdx >= 0 {
			if colIdx >= len(fields) {
				continue
			}
			field := fields[colIdx]
			if caseInsensitive {
				field = strings.ToLower(field)
			}
			if !strings.Contains(field, needle) {
				continue
			}
		}

		out = append(out, SearchResult{RowNum: i, Fields: fields})
	}
	return out
}

func columnIndex(headers []string, name string) (int, bool) {
	for i, h := range headers {
		if h == name {
			return i, true
		}
	}
	return -1, false
}
