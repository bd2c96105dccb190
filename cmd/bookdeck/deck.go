package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/bookdeck/internal/deck"
	"github.com/at-ishikawa/bookdeck/internal/media"
	"github.com/at-ishikawa/bookdeck/internal/notes"
	"github.com/at-ishikawa/bookdeck/internal/ratelimit"
	"github.com/at-ishikawa/bookdeck/internal/wordlist"
)

func newDeckCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use: "deck",
	}

	var wordsFile string
	var includeKnown bool
	buildCommand := cobra.Command{
		Use:   "build",
		Short: "Resolve a word list into flashcard notes with cached audio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			words, err := wordlist.Read(wordsFile, cfg.WordList.MinLength)
			if err != nil {
				return fmt.Errorf("wordlist.Read > %w", err)
			}
			known, err := wordlist.LoadKnownWords(cfg.WordList.KnownWordsFile)
			if err != nil {
				return fmt.Errorf("wordlist.LoadKnownWords > %w", err)
			}
			if !includeKnown {
				words = known.Filter(words)
			}
			if len(words) == 0 {
				color.Yellow("No words to process")
				return nil
			}

			resolver, fetcher, err := newResolver(cfg)
			if err != nil {
				return fmt.Errorf("newResolver > %w", err)
			}
			defer func() {
				if err := fetcher.Close(); err != nil {
					slog.Default().Warn("Failed to close the page fetcher", "error", err)
				}
			}()

			mediaLimiter, err := ratelimit.NewLimiter(cfg.Media.Rate.MaxCalls, cfg.Media.Rate.Period)
			if err != nil {
				return fmt.Errorf("ratelimit.NewLimiter > %w", err)
			}
			mediaGate, err := ratelimit.NewGate(cfg.Deck.MaxSubFetches)
			if err != nil {
				return fmt.Errorf("ratelimit.NewGate > %w", err)
			}
			mediaFetcher := media.NewFetcher(cfg.Media.CacheDirectory, mediaLimiter, mediaGate)
			defer func() {
				if err := mediaFetcher.Close(); err != nil {
					slog.Default().Warn("Failed to close the media fetcher", "error", err)
				}
			}()

			wordGate, err := ratelimit.NewGate(cfg.Deck.MaxConcurrent)
			if err != nil {
				return fmt.Errorf("ratelimit.NewGate > %w", err)
			}
			builder := deck.NewBuilder(resolver, mediaFetcher, wordGate)

			result, err := builder.Build(cmd.Context(), words)
			if err != nil {
				return fmt.Errorf("builder.Build > %w", err)
			}

			sink := notes.NewYAMLSink(cfg.Outputs.NotesDirectory)
			indexPath, err := sink.Write(result)
			if err != nil {
				return fmt.Errorf("sink.Write > %w", err)
			}

			processed := make([]string, 0, len(result.Words))
			for _, wordEntries := range result.Words {
				processed = append(processed, wordEntries.Word)
			}
			if err := known.Append(processed); err != nil {
				return fmt.Errorf("known.Append > %w", err)
			}

			color.Green("Resolved %d of %d words (%d skipped)", result.ValidWords, len(words), result.SkippedWords)
			if result.Warnings > 0 {
				color.Yellow("%d entries were degraded during parsing", result.Warnings)
			}
			fmt.Printf("Notes: %s (index: %s)\n", cfg.Outputs.NotesDirectory, indexPath)
			fmt.Printf("Audio files cached: %d\n", len(result.MediaFiles))
			return nil
		},
	}
	flags := buildCommand.Flags()
	flags.StringVar(&wordsFile, "words", "", "word list file, one word per line")
	flags.BoolVar(&includeKnown, "include-known", false, "Also process words already in the known-words file")
	if err := buildCommand.MarkFlagRequired("words"); err != nil {
		panic(fmt.Errorf("failed to mark words flag required: %w", err))
	}

	rootCommand.AddCommand(&buildCommand)
	return &rootCommand
}
