package simdscan

import "testing"

func TestScanBasic(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		sep          byte
		wantQuotes   []int
		wantSeps     []int
		wantNewlines []int
	}{
		{
			name:         "simple csv line",
			input:        "a,b,c\n",
			sep:          ',',
			wantSeps:     []int{1, 3},
			wantNewlines: []int{5},
		},
		{
			name:         "quoted field",
			input:        `"hello",world` + "\n",
			sep:          ',',
			wantQuotes:   []int{0, 6},
			wantSeps:     []int{7},
			wantNewlines: []int{13},
		},
		{
			name:         "quoted separator",
			input:        `"a,b",c` + "\n",
			sep:          ',',
			wantQuotes:   []int{0, 4},
			wantSeps:     []int{2, 5},
			wantNewlines: []int{7},
		},
		{
			name:         "tab separator",
			input:        "a\tb\n",
			sep:          '\t',
			wantSeps:     []int{1},
			wantNewlines: []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.input)
			b := NewBitmaps(len(data))
			Scan(data, tt.sep, b)

			gotQuotes := positions(b.Quotes, len(data))
			gotSeps := positions(b.Seps, len(data))
			gotNewlines := positions(b.Newlines, len(data))

			if !equalInts(gotQuotes, tt.wantQuotes) {
				t.Errorf("quotes = %v, want %v", gotQuotes, tt.wantQuotes)
			}
			if !equalInts(gotSeps, tt.wantSeps) {
				t.Errorf("seps = %v, want %v", gotSeps, tt.wantSeps)
			}
			if !equalInts(gotNewlines, tt.wantNewlines) {
				t.Errorf("newlines = %v, want %v", gotNewlines, tt.wantNewlines)
			}
		})
	}
}

func TestCountUnquoted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   byte
		want  int
	}{
		{"no quotes", "a,b,c", ',', 2},
		{"quoted comma", `"a,b",c`, ',', 1},
		{"escaped quote pair", `"a""b",c,d`, ',', 2},
		{"no separator", "abc", ',', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.input)
			b := NewBitmaps(len(data))
			Scan(data, tt.sep, b)
			got := CountUnquoted(len(data), b)
			if got != tt.want {
				t.Errorf("CountUnquoted() = %d, want %d", got, tt.want)
			}
		})
	}
}

func positions(m []uint64, n int) []int {
	var out []int
	for i := 0; i < n; i++ {
		if Set(m, i) {
			out = append(out, i)
		}
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
