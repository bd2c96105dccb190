// Package testutil provides shared test helpers for creating config files and
// word-list fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file with all directories rooted in tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"word_cache", "media_cache", "notes"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`dictionary:
  cache_directory: %s
media:
  cache_directory: %s
outputs:
  notes_directory: %s
wordlist:
  known_words_file: %s
`,
		filepath.Join(tmpDir, "word_cache"),
		filepath.Join(tmpDir, "media_cache"),
		filepath.Join(tmpDir, "notes"),
		filepath.Join(tmpDir, "known_words.txt"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateWordList writes a word-list file with one word per line and returns its path.
func CreateWordList(t *testing.T, tmpDir string, words []string) string {
	t.Helper()

	path := filepath.Join(tmpDir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0644))
	return path
}
