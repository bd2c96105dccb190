package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/bookdeck/internal/ratelimit"
)

// DefaultMaxEntries bounds how many numbered variation pages are probed per
// word, and therefore how many homograph entries a word can resolve to.
const DefaultMaxEntries = 5

// Status tags a lookup outcome so call sites must handle the expected
// "word absent" case explicitly instead of catching errors.
type Status int

const (
	// StatusFound means at least one valid entry was resolved.
	StatusFound Status = iota
	// StatusNotFound means no variation page yielded a valid entry. It is an
	// expected outcome, not an error: the orchestrator skips the word quietly.
	StatusNotFound
	// StatusFailed means the lookup was aborted, e.g. by cancellation.
	StatusFailed
)

// LookupResult is the tagged result of resolving one word.
type LookupResult struct {
	Status  Status
	Entries []Entry
	// Warnings counts degraded sub-structures (e.g. phrasal-verb pages that
	// failed to fetch) that were silently dropped from the entries.
	Warnings int
	// Err is set only when Status is StatusFailed.
	Err error
}

// Resolver turns a word into its dictionary entries: cache check, concurrent
// rate-limited variation fetches, parse, nested phrasal-verb fetches, cache
// write. Failure of any single variation or sub-fetch never fails the word.
type Resolver struct {
	fetcher    PageFetcher
	parser     PageParser
	cache      *FileCache
	subGate    *ratelimit.Gate
	baseURL    string
	maxEntries int
}

type ResolverConfig struct {
	// BaseURL is the entry page URL prefix; "{word}_{n}" is appended.
	BaseURL    string
	MaxEntries int
}

func NewResolver(fetcher PageFetcher, parser PageParser, cache *FileCache, subGate *ratelimit.Gate, config ResolverConfig) (*Resolver, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL must not be empty")
	}
	if config.MaxEntries < 1 {
		return nil, fmt.Errorf("max entries must be at least 1, got %d", config.MaxEntries)
	}
	return &Resolver{
		fetcher:    fetcher,
		parser:     parser,
		cache:      cache,
		subGate:    subGate,
		baseURL:    config.BaseURL,
		maxEntries: config.MaxEntries,
	}, nil
}

// Resolve looks up one word. The word is normalized before it is used as a
// cache key or URL component.
func (r *Resolver) Resolve(ctx context.Context, word string) LookupResult {
	word = NormalizeWord(word)

	if entries, ok := r.cache.Get(word); ok {
		return LookupResult{Status: StatusFound, Entries: entries}
	}

	pages := r.fetchVariations(ctx, word)
	if err := ctx.Err(); err != nil {
		return LookupResult{Status: StatusFailed, Err: err}
	}

	var (
		entries  []Entry
		warnings int
	)
	for _, page := range pages {
		if page == nil {
			continue
		}
		parsed, err := r.parser.ParseEntry(page)
		if err != nil {
			// Not recognizable as an entry; the variation is absent.
			continue
		}

		entry := parsed.Entry
		pvs, pvWarnings := r.fetchPhrasalVerbs(ctx, parsed.PhrasalVerbLinks)
		entry.PhrasalVerbs = pvs
		warnings += pvWarnings
		entries = append(entries, entry)
	}

	if err := ctx.Err(); err != nil {
		return LookupResult{Status: StatusFailed, Err: err}
	}
	if len(entries) == 0 {
		return LookupResult{Status: StatusNotFound}
	}

	r.cache.Put(word, entries)
	return LookupResult{Status: StatusFound, Entries: entries, Warnings: warnings}
}

// fetchVariations probes the numbered variation pages concurrently. A fetch
// failure leaves a nil page in its slot: one broken variation must not block
// the others, and variation fetches are not retried because another variation
// number may still succeed.
func (r *Resolver) fetchVariations(ctx context.Context, word string) [][]byte {
	pages := make([][]byte, r.maxEntries)
	var wg sync.WaitGroup
	for i := 0; i < r.maxEntries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf("%s%s_%d", r.baseURL, word, i+1)
			body, err := r.fetcher.FetchPage(ctx, url)
			if err != nil {
				slog.Default().Debug("variation page absent",
					"word", word,
					"variation", i+1,
					"error", err)
				return
			}
			pages[i] = body
		}(i)
	}
	wg.Wait()
	return pages
}

// fetchPhrasalVerbs follows the discovered links under the sub-fetch gate so a
// single word's fan-out cannot exhaust the global concurrency budget. A failed
// link drops that one phrasal verb and counts a warning.
func (r *Resolver) fetchPhrasalVerbs(ctx context.Context, links []PhrasalVerbLink) ([]PhrasalVerb, int) {
	if len(links) == 0 {
		return nil, 0
	}

	results := make([]*PhrasalVerb, len(links))
	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, link PhrasalVerbLink) {
			defer wg.Done()
			if err := r.subGate.Enter(ctx); err != nil {
				return
			}
			defer r.subGate.Leave()

			body, err := r.fetcher.FetchPage(ctx, link.URL)
			if err != nil {
				slog.Default().Warn("failed to fetch phrasal verb page",
					"verb", link.Verb,
					"url", link.URL,
					"error", err)
				return
			}
			senses := r.parser.ParseSubSenses(body)
			if len(senses) == 0 {
				return
			}
			results[i] = &PhrasalVerb{Verb: link.Verb, Senses: senses}
		}(i, link)
	}
	wg.Wait()

	var (
		pvs      []PhrasalVerb
		warnings int
	)
	for _, pv := range results {
		if pv == nil {
			warnings++
			continue
		}
		pvs = append(pvs, *pv)
	}
	return pvs, warnings
}
