package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		minLength int
		want      []string
	}{
		{
			name:      "normalizes case and whitespace",
			content:   "  Apple \nBANANA\ncherry\n",
			minLength: 3,
			want:      []string{"apple", "banana", "cherry"},
		},
		{
			name:      "drops short words and non-letters",
			content:   "go\nit's\nword2\nhello\n\n",
			minLength: 3,
			want:      []string{"hello"},
		},
		{
			name:      "deduplicates preserving first-seen order",
			content:   "delta\nalpha\nDelta\nalpha\nbeta\n",
			minLength: 3,
			want:      []string{"delta", "alpha", "beta"},
		},
		{
			name:      "custom minimum length",
			content:   "an\nis\nonto\n",
			minLength: 2,
			want:      []string{"an", "is", "onto"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "words.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := Read(path, tt.minLength)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "absent.txt"), 3)
		assert.Error(t, err)
	})
}

func TestKnownWords(t *testing.T) {
	t.Run("missing file means nothing known", func(t *testing.T) {
		known, err := LoadKnownWords(filepath.Join(t.TempDir(), "known.txt"))
		require.NoError(t, err)
		assert.False(t, known.Contains("apple"))
		assert.Equal(t, []string{"apple", "banana"}, known.Filter([]string{"apple", "banana"}))
	})

	t.Run("filter drops known words", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "known.txt")
		require.NoError(t, os.WriteFile(path, []byte("apple\nCherry\n"), 0644))

		known, err := LoadKnownWords(path)
		require.NoError(t, err)
		assert.True(t, known.Contains("apple"))
		assert.True(t, known.Contains("cherry"))
		assert.Equal(t, []string{"banana"}, known.Filter([]string{"apple", "banana", "cherry"}))
	})

	t.Run("append persists and survives reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "known.txt")

		known, err := LoadKnownWords(path)
		require.NoError(t, err)
		require.NoError(t, known.Append([]string{"apple", "banana"}))
		require.NoError(t, known.Append([]string{"banana", "cherry"}))

		reloaded, err := LoadKnownWords(path)
		require.NoError(t, err)
		assert.True(t, reloaded.Contains("apple"))
		assert.True(t, reloaded.Contains("banana"))
		assert.True(t, reloaded.Contains("cherry"))
		assert.Empty(t, reloaded.Filter([]string{"apple", "cherry"}))
	})
}
