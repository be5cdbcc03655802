package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain words", `ls -a /tmp`, []string{"ls", "-a", "/tmp"}},
		{"double quotes", `find "summer photos"`, []string{"find", "summer photos"}},
		{"single quotes", `rm 'a b.txt'`, []string{"rm", "a b.txt"}},
		{"escaped space", `touch my\ file`, []string{"touch", "my file"}},
		{"escape inside double quotes", `find "say \"hi\""`, []string{"find", `say "hi"`}},
		{"backslash literal in single quotes", `find 'a\b'`, []string{"find", `a\b`}},
		{"quoted empty argument", `rename old ""`, []string{"rename", "old", ""}},
		{"adjacent quoted parts", `cd "a"'b'`, []string{"cd", "ab"}},
		{"surrounding whitespace", "  ls   -a\t", []string{"ls", "-a"}},
		{"empty line", "", nil},
		{"only whitespace", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitCommandUnterminatedQuote(t *testing.T) {
	_, err := SplitCommand(`find "unterminated`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")

	_, err = SplitCommand(`find 'still open`)
	require.Error(t, err)
}

func TestSplitCommandTrailingBackslash(t *testing.T) {
	_, err := SplitCommand(`touch broken\`)
	require.Error(t, err)
}
