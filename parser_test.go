package masscsv

import "testing"

func TestInferDelimiter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want byte
	}{
		{"comma", "name,age\nAlice,30\nBob,25\n", ','},
		{"tab", "a\tb\tc\n1\t2\t3\n4\t5\t6\n", '\t'},
		{"semicolon", "a;b;c\n1;2;3\n4;5;6\n", ';'},
		{"pipe", "a|b\n1|2\n3|4\n", '|'},
		{"empty input falls back to comma", "", ','},
		{"single column falls back to comma", "onlyone\nrow1\nrow2\n", ','},
		{"quoted comma does not confuse inference", "name,description,value\ntest,\"hello, world\",42\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferDelimiter([]byte(tt.in))
			if got != tt.want {
				t.Errorf("InferDelimiter(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInferDelimiterStable(t *testing.T) {
	base := "name,age\nAlice,30\nBob,25\n"
	more := base + "Carol,40\nDave,50\n"
	if InferDelimiter([]byte(base)) != InferDelimiter([]byte(more)) {
		t.Errorf("inference changed when adding identical well-formed rows")
	}
}

func TestParseRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		sep  byte
		want []string
	}{
		{"empty", "", ',', nil},
		{"simple", "a,b,c", ',', []string{"a", "b", "c"}},
		{"quoted with delimiter", `test,"hello, world",42`, ',', []string{"test", "hello, world", "42"}},
		{"escaped quote", `a,"say ""hi""",c`, ',', []string{"a", `say "hi"`, "c"}},
		{"tab separated", "1\t2\t3", '\t', []string{"1", "2", "3"}},
		{"trailing empty field", "a,b,", ',', []string{"a", "b", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRow(tt.line, tt.sep)
			if !equalStrings(got, tt.want) {
				t.Errorf("ParseRow(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	cases := [][]string{
		{"a", "b", "c"},
		{"hello, world", "plain", "42"},
		{`say "hi"`, "x"},
		{"line\nbreak", "y"},
		{""},
		{"", "", ""},
	}
	for _, fields := range cases {
		line := SerializeRow(fields, ',')
		got := ParseRow(line, ',')
		if !equalStrings(got, fields) {
			t.Errorf("round trip: serialize(%v) -> %q -> parse -> %v", fields, line, got)
		}
	}
}

func equalStrings(a, b []string) bool {
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
