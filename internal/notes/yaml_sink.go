// Package notes exports resolved dictionary entries as YAML note files, the
// handoff artifact consumed by the deck renderer outside this pipeline.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/bookdeck/internal/deck"
	"github.com/at-ishikawa/bookdeck/internal/dictionary"
)

// Note is one word's flashcard note: its entries plus the cached audio files
// the entries reference.
type Note struct {
	Word      string      `yaml:"word"`
	Entries   []noteEntry `yaml:"entries"`
	CreatedAt time.Time   `yaml:"created_at"`
}

type noteEntry struct {
	dictionary.Entry `yaml:",inline"`
	AudioFiles       map[string]string `yaml:"audio_files,omitempty"`
}

// Index lists every note file written in one run, with the aggregate counts.
type Index struct {
	NotePaths    []string `yaml:"note_paths"`
	ValidWords   int      `yaml:"valid_words"`
	SkippedWords int      `yaml:"skipped_words"`
	Warnings     int      `yaml:"warnings,omitempty"`
}

// YAMLSink writes one note file per word plus an index file.
type YAMLSink struct {
	outputDir string
}

func NewYAMLSink(outputDir string) *YAMLSink {
	return &YAMLSink{outputDir: outputDir}
}

// Write exports the batch result. Note files are named after their word so
// re-runs overwrite rather than accumulate.
func (sink *YAMLSink) Write(result *deck.Result) (string, error) {
	if err := os.MkdirAll(sink.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll > %w", err)
	}

	now := time.Now()
	notePaths := make([]string, 0, len(result.Words))
	for _, wordEntries := range result.Words {
		note := Note{
			Word:      wordEntries.Word,
			CreatedAt: now,
		}
		for _, entry := range wordEntries.Entries {
			audioFiles := map[string]string{}
			for _, url := range entry.AudioURLs() {
				if filename, ok := result.AudioFiles[url]; ok {
					audioFiles[url] = filename
				}
			}
			if len(audioFiles) == 0 {
				audioFiles = nil
			}
			note.Entries = append(note.Entries, noteEntry{
				Entry:      entry,
				AudioFiles: audioFiles,
			})
		}

		data, err := yaml.Marshal(note)
		if err != nil {
			return "", fmt.Errorf("yaml.Marshal note for %q > %w", wordEntries.Word, err)
		}
		noteFile := wordEntries.Word + ".yml"
		if err := os.WriteFile(filepath.Join(sink.outputDir, noteFile), data, 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile %s > %w", noteFile, err)
		}
		notePaths = append(notePaths, noteFile)
	}

	index := Index{
		NotePaths:    notePaths,
		ValidWords:   result.ValidWords,
		SkippedWords: result.SkippedWords,
		Warnings:     result.Warnings,
	}
	indexData, err := yaml.Marshal(index)
	if err != nil {
		return "", fmt.Errorf("yaml.Marshal index > %w", err)
	}
	indexPath := filepath.Join(sink.outputDir, "index.yml")
	if err := os.WriteFile(indexPath, indexData, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile index > %w", err)
	}
	return indexPath, nil
}
