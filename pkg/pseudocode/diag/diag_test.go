package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	source := "foo():\n    return 1\r\nbar():\r    return 2"

	tests := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{"start", 0, 1, 1},
		{"first line", 3, 1, 4},
		{"after LF", 7, 2, 1},
		{"inside second line", 11, 2, 5},
		{"after CRLF", 21, 3, 1},
		{"after lone CR", 28, 4, 1},
		{"clamped past end", 1000, 4, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, column := Position(source, tt.offset)
			if line != tt.line || column != tt.column {
				t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, column, tt.line, tt.column)
			}
		})
	}
}

func TestLineText(t *testing.T) {
	source := "a\nbb cc\r\nddd"
	assert.Equal(t, "a", LineText(source, 0))
	assert.Equal(t, "bb cc", LineText(source, 4))
	assert.Equal(t, "ddd", LineText(source, 9))
	assert.Equal(t, "ddd", LineText(source, len(source)))
}

type testDiagnostic struct {
	Location
}

func (testDiagnostic) Explanation() string { return "something is wrong" }

func TestFormat(t *testing.T) {
	source := "f():\n    return X[0]\n"
	d := testDiagnostic{At(source, 16)}

	assert.Equal(t, 2, d.Line())
	assert.Equal(t, 12, d.Column())
	assert.Equal(t, "    return X[0]", d.Snippet())

	want := "2:12:     return X[0]\n" +
		"                 ^\n" +
		"something is wrong"
	assert.Equal(t, want, Format(d))
}

func TestFormat_Tabs(t *testing.T) {
	source := "\tx = 1"
	d := testDiagnostic{At(source, 1)}
	assert.Equal(t, "1:2: \tx = 1\n     \t^\nsomething is wrong", Format(d))
}
