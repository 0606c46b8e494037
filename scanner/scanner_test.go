package scanner

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestScannerPos(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		actions  []string // "pop", "peek", "pos"
		expected []TextPosition
	}{
		{
			name:     "initial position",
			input:    "abc",
			actions:  []string{"pos"},
			expected: []TextPosition{{Idx: 0, Line: 1, Col: 1}},
		},
		{
			name:     "after single pop",
			input:    "abc",
			actions:  []string{"pop", "pos"},
			expected: []TextPosition{{Idx: 1, Line: 1, Col: 2}},
		},
		{
			name:     "after multiple pops",
			input:    "hello",
			actions:  []string{"pop", "pop", "pop", "pos"},
			expected: []TextPosition{{Idx: 3, Line: 1, Col: 4}},
		},
		{
			name:     "after line break",
			input:    "a\nb",
			actions:  []string{"pop", "pop", "pos"},
			expected: []TextPosition{{Idx: 2, Line: 2, Col: 1}},
		},
		{
			name:     "after CR normalization",
			input:    "a\rb",
			actions:  []string{"pop", "pop", "pos"},
			expected: []TextPosition{{Idx: 2, Line: 2, Col: 1}},
		},
		{
			name:     "after CRLF normalization",
			input:    "a\r\nb",
			actions:  []string{"pop", "pop", "pos"},
			expected: []TextPosition{{Idx: 3, Line: 2, Col: 1}},
		},
		{
			name:     "after UTF-8 character",
			input:    "αβγ",
			actions:  []string{"pop", "pos"},
			expected: []TextPosition{{Idx: 2, Line: 1, Col: 2}},
		},
		{
			name:     "tab counts as one column",
			input:    "\tx",
			actions:  []string{"pop", "pos"},
			expected: []TextPosition{{Idx: 1, Line: 1, Col: 2}},
		},
		{
			name:     "peek doesn't change position",
			input:    "abc",
			actions:  []string{"peek", "pos"},
			expected: []TextPosition{{Idx: 0, Line: 1, Col: 1}},
		},
		{
			name:     "at EOF",
			input:    "a",
			actions:  []string{"pop", "pop", "pos"},
			expected: []TextPosition{{Idx: 1, Line: 1, Col: 2}},
		},
		{
			name:     "empty input",
			input:    "",
			actions:  []string{"pos"},
			expected: []TextPosition{{Idx: 0, Line: 1, Col: 1}},
		},
		{
			name:     "multiple line breaks",
			input:    "a\n\nb",
			actions:  []string{"pop", "pop", "pop", "pos"},
			expected: []TextPosition{{Idx: 3, Line: 3, Col: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewScanner(strings.NewReader(tt.input))
			expectedIdx := 0

			for _, action := range tt.actions {
				switch action {
				case "pop":
					scanner.Pop()
				case "peek":
					scanner.Peek()
				case "pos":
					if expectedIdx >= len(tt.expected) {
						t.Errorf("unexpected pos call at action %s", action)
						continue
					}
					pos := scanner.Pos()
					expected := tt.expected[expectedIdx]
					if pos != expected {
						t.Errorf("position: expected %+v, got %+v", expected, pos)
					}
					expectedIdx++
				}
			}
		})
	}
}

func TestScannerPop(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []rune
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []rune{EOF},
		},
		{
			name:     "simple ASCII",
			input:    "abc",
			expected: []rune{'a', 'b', 'c', EOF},
		},
		{
			name:     "UTF-8 characters",
			input:    "αβγ",
			expected: []rune{'α', 'β', 'γ', EOF},
		},
		{
			name:     "LF normalization",
			input:    "a\nb",
			expected: []rune{'a', '\n', 'b', EOF},
		},
		{
			name:     "CR normalization",
			input:    "a\rb",
			expected: []rune{'a', '\n', 'b', EOF},
		},
		{
			name:     "CRLF normalization",
			input:    "a\r\nb",
			expected: []rune{'a', '\n', 'b', EOF},
		},
		{
			name:     "backslash is kept",
			input:    "a\\\nb",
			expected: []rune{'a', '\\', '\n', 'b', EOF},
		},
		{
			name:     "multiple line breaks",
			input:    "a\n\r\n\rb",
			expected: []rune{'a', '\n', '\n', '\n', 'b', EOF},
		},
		{
			name:     "trailing CR",
			input:    "a\r",
			expected: []rune{'a', '\n', EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewScanner(strings.NewReader(tt.input))
			var result []rune

			for {
				r := scanner.Pop()
				result = append(result, r)
				if r == EOF {
					break
				}
			}

			if len(result) != len(tt.expected) {
				t.Errorf("expected %d runes, got %d", len(tt.expected), len(result))
				return
			}

			for i, expected := range tt.expected {
				if result[i] != expected {
					t.Errorf("at position %d: expected %q, got %q", i, expected, result[i])
				}
			}
		})
	}
}

func TestScannerPopAfterEOF(t *testing.T) {
	scanner := NewScanner(strings.NewReader("a"))
	scanner.Pop()

	for i := 0; i < 3; i++ {
		if r := scanner.Pop(); r != EOF {
			t.Errorf("pop %d: expected EOF, got %q", i, r)
		}
	}
	if !scanner.IsEOF() {
		t.Error("expected IsEOF after the input is exhausted")
	}
}

func TestScannerPeek(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []rune
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []rune{EOF},
		},
		{
			name:     "simple ASCII",
			input:    "abc",
			expected: []rune{'a', 'a', 'a'}, // peek should return same rune multiple times
		},
		{
			name:     "UTF-8 characters",
			input:    "αβγ",
			expected: []rune{'α', 'α', 'α'},
		},
		{
			name:     "line break",
			input:    "\n",
			expected: []rune{'\n', '\n'},
		},
		{
			name:     "CR normalization",
			input:    "\r",
			expected: []rune{'\n', '\n'},
		},
		{
			name:     "CRLF normalization",
			input:    "\r\n",
			expected: []rune{'\n', '\n'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewScanner(strings.NewReader(tt.input))

			for i, expected := range tt.expected {
				r := scanner.Peek()
				if r != expected {
					t.Errorf("peek %d: expected %q, got %q", i, expected, r)
				}
			}
		})
	}
}

func TestScannerPeekVsPop(t *testing.T) {
	inputs := []string{"abc", "a\r\nb", "αβ\rγ", "x\n\ny"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			scanner := NewScanner(strings.NewReader(input))
			for {
				peeked := scanner.Peek()
				popped := scanner.Pop()
				if peeked != popped {
					t.Errorf("peek returned %q but pop returned %q", peeked, popped)
				}
				if popped == EOF {
					break
				}
			}
		})
	}
}

func TestScannerMark(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		actions  []string // "mark", "pop", "peek", "slice"
		expected []string // expected slice results
	}{
		{
			name:     "simple mark and slice",
			input:    "abc",
			actions:  []string{"mark", "pop", "pop", "slice"},
			expected: []string{"ab"},
		},
		{
			name:     "mark after some pops",
			input:    "hello",
			actions:  []string{"pop", "mark", "pop", "pop", "slice"},
			expected: []string{"el"},
		},
		{
			name:     "multiple marks",
			input:    "abcdef",
			actions:  []string{"mark", "pop", "pop", "slice", "mark", "pop", "slice"},
			expected: []string{"ab", "c"},
		},
		{
			name:     "empty slice",
			input:    "abc",
			actions:  []string{"mark", "slice"},
			expected: []string{""},
		},
		{
			name:     "peek is not part of the slice",
			input:    "abc",
			actions:  []string{"mark", "pop", "peek", "slice"},
			expected: []string{"a"},
		},
		{
			name:     "mark at end",
			input:    "ab",
			actions:  []string{"pop", "pop", "mark", "slice"},
			expected: []string{""},
		},
		{
			name:     "UTF-8 characters",
			input:    "αβγδ",
			actions:  []string{"mark", "pop", "pop", "slice"},
			expected: []string{"αβ"},
		},
		{
			name:     "line break normalization",
			input:    "a\nb\rc\r\nd",
			actions:  []string{"mark", "pop", "pop", "pop", "pop", "pop", "pop", "slice"},
			expected: []string{"a\nb\nc\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewScanner(strings.NewReader(tt.input))
			var results []string

			for _, action := range tt.actions {
				switch action {
				case "mark":
					scanner.Mark()
				case "pop":
					scanner.Pop()
				case "peek":
					scanner.Peek()
				case "slice":
					results = append(results, scanner.Slice())
				}
			}

			if len(results) != len(tt.expected) {
				t.Errorf("expected %d results, got %d", len(tt.expected), len(results))
				return
			}

			for i, expected := range tt.expected {
				if results[i] != expected {
					t.Errorf("result %d: expected %q, got %q", i, expected, results[i])
				}
			}
		})
	}
}

func TestScannerMarked(t *testing.T) {
	scanner := NewScanner(strings.NewReader("a\nbc"))
	if got := scanner.Marked(); got != (TextPosition{Idx: 0, Line: 1, Col: 1}) {
		t.Errorf("initial marked position: got %+v", got)
	}

	scanner.Pop()
	scanner.Pop()
	scanner.Mark()
	scanner.Pop()

	expected := TextPosition{Idx: 2, Line: 2, Col: 1}
	if got := scanner.Marked(); got != expected {
		t.Errorf("marked position: expected %+v, got %+v", expected, got)
	}
}

func TestScannerReadError(t *testing.T) {
	boom := errors.New("boom")
	scanner := NewScanner(io.MultiReader(strings.NewReader("ab"), iotest.ErrReader(boom)))

	var got []rune
	for r := scanner.Pop(); r != EOF; r = scanner.Pop() {
		got = append(got, r)
	}
	if string(got) != "ab" {
		t.Errorf("expected runes before the error, got %q", string(got))
	}
	if !errors.Is(scanner.Err(), boom) {
		t.Errorf("expected read error, got %v", scanner.Err())
	}
}

func TestScannerCleanEOFHasNoError(t *testing.T) {
	scanner := NewScanner(strings.NewReader("abc"))
	for scanner.Pop() != EOF {
	}
	if err := scanner.Err(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
