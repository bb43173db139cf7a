// Command csvbench reports open/search/edit throughput for masscsv against
// a generated CSV of a given size. It exists to exercise the engine's
// public API the way a caller would, not to be a feature-complete CLI
// (that front end is out of scope for this module).
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rowdex/masscsv"
	"github.com/rowdex/masscsv/internal/simdscan"
)

func main() {
	sizeMB := 500
	if len(os.Args) > 1 {
		fmt.Sscanf(os.Args[1], "%d", &sizeMB)
	}

	tmpDir, err := os.MkdirTemp("", "masscsv_bench")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	csvPath := filepath.Join(tmpDir, "bench.csv")
	rows, bytesWritten := generateCSV(csvPath, int64(sizeMB)*1024*1024)
	fmt.Printf("generated %d rows (%.2f MB)\n", rows, float64(bytesWritten)/1024/1024)
	fmt.Printf("accelerated scan available: %v\n", simdscan.HasAccel)

	start := time.Now()
	r, err := masscsv.Open(csvPath)
	if err != nil {
		panic(err)
	}
	openElapsed := time.Since(start)
	fmt.Printf("open:   %v (%d rows indexed)\n", openElapsed, r.RowCount())

	start = time.Now()
	results, err := masscsv.Search(r, "US-42", masscsv.SearchOptions{})
	if err != nil {
		panic(err)
	}
	searchElapsed := time.Since(start)
	fmt.Printf("search: %v (%d matches)\n", searchElapsed, len(results))

	if err := r.Close(); err != nil {
		panic(err)
	}

	e, err := masscsv.OpenEditor(csvPath)
	if err != nil {
		panic(err)
	}
	for i := 0; i < 1000 && i < e.Reader().RowCount(); i++ {
		if err := e.SetCell(i, 2, "999"); err != nil {
			panic(err)
		}
	}
	edited := e.EditCount()
	start = time.Now()
	if err := e.Save(); err != nil {
		panic(err)
	}
	saveElapsed := time.Since(start)
	fmt.Printf("save:   %v (%d edited rows)\n", saveElapsed, edited)

	mbPerSec := float64(bytesWritten) / 1024 / 1024 / openElapsed.Seconds()
	fmt.Println("--------------------------------------------------")
	fmt.Printf("open throughput: %.2f MB/s\n", mbPerSec)
}

// generateCSV writes a synthetic "id,code,value,description" file of at
// least minBytes to path, returning the row count and bytes written.
func generateCSV(path string, minBytes int64) (int, int64) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 64*1024)
	hdr, _ := w.WriteString("id,code,value,description\n")

	rng := rand.New(rand.NewSource(1))
	written := int64(hdr)
	rows := 0
	buf := make([]byte, 0, 256)
	for written < minBytes {
		rows++
		buf = buf[:0]
		buf = fmt.Appendf(buf, "%d,US-%d,%d,\"item %d with some padding to make the row longer\"\n",
			rows, rng.Intn(1000), rng.Intn(10000), rows)
		n, _ := w.Write(buf)
		written += int64(n)
	}
	if err := w.Flush(); err != nil {
		panic(err)
	}
	return rows, written
}
