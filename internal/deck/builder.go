// Package deck fans a word list out to concurrent dictionary lookups and fans
// the resolved entries and their audio back in to one collection. Each word
// succeeds or fails alone: a failed word is counted and skipped, never fatal.
package deck

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/bookdeck/internal/dictionary"
	"github.com/at-ishikawa/bookdeck/internal/ratelimit"
)

// WordResolver resolves one word into dictionary entries.
type WordResolver interface {
	Resolve(ctx context.Context, word string) dictionary.LookupResult
}

// AudioResolver resolves an audio URL to a locally cached filename.
type AudioResolver interface {
	Resolve(ctx context.Context, url string) (string, bool)
	Files() []string
}

// WordEntries groups the resolved entries of one originating word.
type WordEntries struct {
	Word    string             `yaml:"word"`
	Entries []dictionary.Entry `yaml:"entries"`
}

// Result is the aggregate outcome of one batch run.
type Result struct {
	// Words holds per-word entry groups in input order, words that resolved
	// to nothing omitted.
	Words []WordEntries
	// AudioFiles maps each resolved audio URL to its cached filename.
	AudioFiles map[string]string
	// MediaFiles lists the absolute paths of all cached audio files.
	MediaFiles []string
	// ValidWords counts words that yielded at least one entry.
	ValidWords int
	// SkippedWords counts words that resolved to nothing or failed.
	SkippedWords int
	// Warnings counts sub-structures that were degraded during parsing.
	Warnings int
}

// Builder schedules word lookups under a shared concurrency gate.
type Builder struct {
	resolver WordResolver
	media    AudioResolver
	wordGate *ratelimit.Gate
}

func NewBuilder(resolver WordResolver, media AudioResolver, wordGate *ratelimit.Gate) *Builder {
	return &Builder{
		resolver: resolver,
		media:    media,
		wordGate: wordGate,
	}
}

// Build resolves every word concurrently and downloads the audio referenced by
// the resolved entries. It returns an error only when the context is
// cancelled; individual word failures are reflected in the counts.
func (b *Builder) Build(ctx context.Context, words []string) (*Result, error) {
	resolved := make([]*WordEntries, len(words))
	result := &Result{AudioFiles: map[string]string{}}

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	for i, word := range words {
		group.Go(func() error {
			if err := b.wordGate.Enter(ctx); err != nil {
				return fmt.Errorf("wordGate.Enter > %w", err)
			}
			lookup := b.resolver.Resolve(ctx, word)
			b.wordGate.Leave()

			switch lookup.Status {
			case dictionary.StatusFound:
				resolved[i] = &WordEntries{Word: word, Entries: lookup.Entries}
				mu.Lock()
				result.ValidWords++
				result.Warnings += lookup.Warnings
				mu.Unlock()
				b.resolveAudio(ctx, group, &mu, result, lookup.Entries)
			case dictionary.StatusNotFound:
				mu.Lock()
				result.SkippedWords++
				mu.Unlock()
			case dictionary.StatusFailed:
				if ctx.Err() != nil {
					return fmt.Errorf("resolve %q > %w", word, lookup.Err)
				}
				slog.Default().Warn("failed to resolve word, skipping",
					"word", word,
					"error", lookup.Err)
				mu.Lock()
				result.SkippedWords++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, entries := range resolved {
		if entries != nil {
			result.Words = append(result.Words, *entries)
		}
	}
	result.MediaFiles = b.media.Files()
	return result, nil
}

// resolveAudio schedules one download per discovered audio URL. Download
// failures are already downgraded to "absent" by the media fetcher.
func (b *Builder) resolveAudio(ctx context.Context, group *errgroup.Group, mu *sync.Mutex, result *Result, entries []dictionary.Entry) {
	for _, entry := range entries {
		for _, url := range entry.AudioURLs() {
			group.Go(func() error {
				filename, ok := b.media.Resolve(ctx, url)
				if !ok {
					return ctx.Err()
				}
				mu.Lock()
				result.AudioFiles[url] = filename
				mu.Unlock()
				return nil
			})
		}
	}
}
