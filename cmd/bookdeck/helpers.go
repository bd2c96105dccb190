package main

import (
	"fmt"

	"github.com/at-ishikawa/bookdeck/internal/config"
	"github.com/at-ishikawa/bookdeck/internal/dictionary"
	"github.com/at-ishikawa/bookdeck/internal/dictionary/oald"
	"github.com/at-ishikawa/bookdeck/internal/ratelimit"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newResolver wires the dictionary lookup pipeline from the configuration:
// one shared rate limiter for entry pages, a gate for nested phrasal-verb
// fetches, the page cache, and the OALD page adapter.
func newResolver(cfg *config.Config) (*dictionary.Resolver, *dictionary.HTTPFetcher, error) {
	limiter, err := ratelimit.NewLimiter(cfg.Dictionary.Rate.MaxCalls, cfg.Dictionary.Rate.Period)
	if err != nil {
		return nil, nil, fmt.Errorf("ratelimit.NewLimiter > %w", err)
	}
	subGate, err := ratelimit.NewGate(cfg.Deck.MaxSubFetches)
	if err != nil {
		return nil, nil, fmt.Errorf("ratelimit.NewGate > %w", err)
	}

	fetcher := dictionary.NewHTTPFetcher(limiter)
	resolver, err := dictionary.NewResolver(
		fetcher,
		oald.NewParser(),
		dictionary.NewFileCache(cfg.Dictionary.CacheDirectory),
		subGate,
		dictionary.ResolverConfig{
			BaseURL:    cfg.Dictionary.BaseURL,
			MaxEntries: cfg.Dictionary.MaxEntries,
		},
	)
	if err != nil {
		if closeErr := fetcher.Close(); closeErr != nil {
			return nil, nil, fmt.Errorf("dictionary.NewResolver > %w (fetcher.Close > %w)", err, closeErr)
		}
		return nil, nil, fmt.Errorf("dictionary.NewResolver > %w", err)
	}
	return resolver, fetcher, nil
}
