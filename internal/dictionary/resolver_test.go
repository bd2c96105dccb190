package dictionary_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/bookdeck/internal/dictionary"
	mock_dictionary "github.com/at-ishikawa/bookdeck/internal/mocks/dictionary"
	"github.com/at-ishikawa/bookdeck/internal/ratelimit"
)

const testBaseURL = "https://dictionary.test/define/"

func newTestResolver(t *testing.T, fetcher dictionary.PageFetcher, parser dictionary.PageParser, maxEntries int) *dictionary.Resolver {
	t.Helper()

	subGate, err := ratelimit.NewGate(10)
	require.NoError(t, err)
	resolver, err := dictionary.NewResolver(fetcher, parser, dictionary.NewFileCache(t.TempDir()), subGate, dictionary.ResolverConfig{
		BaseURL:    testBaseURL,
		MaxEntries: maxEntries,
	})
	require.NoError(t, err)
	return resolver
}

func TestNewResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_dictionary.NewMockPageFetcher(ctrl)
	parser := mock_dictionary.NewMockPageParser(ctrl)
	subGate, err := ratelimit.NewGate(1)
	require.NoError(t, err)
	cache := dictionary.NewFileCache(t.TempDir())

	tests := []struct {
		name    string
		config  dictionary.ResolverConfig
		wantErr string
	}{
		{
			name:   "valid config",
			config: dictionary.ResolverConfig{BaseURL: testBaseURL, MaxEntries: 5},
		},
		{
			name:    "empty base URL",
			config:  dictionary.ResolverConfig{MaxEntries: 5},
			wantErr: "base URL must not be empty",
		},
		{
			name:    "max entries below one",
			config:  dictionary.ResolverConfig{BaseURL: testBaseURL, MaxEntries: 0},
			wantErr: "max entries must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dictionary.NewResolver(fetcher, parser, cache, subGate, tt.config)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	notAnEntry := errors.New("page is not a dictionary entry")
	entryPage := []byte("<html>entry</html>")
	absentPage := []byte("<html>absent</html>")
	wantEntry := dictionary.Entry{
		Headword:     "example",
		PartOfSpeech: "noun",
		Senses:       []dictionary.Sense{{Definition: "a representative case"}},
	}

	t.Run("cache miss fetches, second resolve hits the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_dictionary.NewMockPageFetcher(ctrl)
		parser := mock_dictionary.NewMockPageParser(ctrl)

		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"example_1").Return(entryPage, nil)
		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"example_2").Return(absentPage, nil)
		parser.EXPECT().ParseEntry(entryPage).Return(dictionary.ParsedEntry{Entry: wantEntry}, nil)
		parser.EXPECT().ParseEntry(absentPage).Return(dictionary.ParsedEntry{}, notAnEntry)

		resolver := newTestResolver(t, fetcher, parser, 2)

		got := resolver.Resolve(context.Background(), " Example ")
		require.Equal(t, dictionary.StatusFound, got.Status)
		assert.Equal(t, []dictionary.Entry{wantEntry}, got.Entries)
		assert.Zero(t, got.Warnings)

		// No further fetch expectations: the second resolve must be served
		// from the cache.
		cached := resolver.Resolve(context.Background(), "example")
		require.Equal(t, dictionary.StatusFound, cached.Status)
		assert.Equal(t, []dictionary.Entry{wantEntry}, cached.Entries)
	})

	t.Run("no valid variation is not found and not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_dictionary.NewMockPageFetcher(ctrl)
		parser := mock_dictionary.NewMockPageParser(ctrl)

		fetcher.EXPECT().FetchPage(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("response error 404")).Times(4)

		resolver := newTestResolver(t, fetcher, parser, 2)

		got := resolver.Resolve(context.Background(), "xyzzynotaword")
		assert.Equal(t, dictionary.StatusNotFound, got.Status)
		assert.Empty(t, got.Entries)

		// A not-found word is re-probed on the next resolve.
		again := resolver.Resolve(context.Background(), "xyzzynotaword")
		assert.Equal(t, dictionary.StatusNotFound, again.Status)
	})

	t.Run("one broken variation does not block the others", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_dictionary.NewMockPageFetcher(ctrl)
		parser := mock_dictionary.NewMockPageParser(ctrl)

		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"example_1").
			Return(nil, errors.New("connection reset"))
		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"example_2").Return(entryPage, nil)
		parser.EXPECT().ParseEntry(entryPage).Return(dictionary.ParsedEntry{Entry: wantEntry}, nil)

		resolver := newTestResolver(t, fetcher, parser, 2)

		got := resolver.Resolve(context.Background(), "example")
		require.Equal(t, dictionary.StatusFound, got.Status)
		assert.Equal(t, []dictionary.Entry{wantEntry}, got.Entries)
	})

	t.Run("phrasal verb links are followed, failed links become warnings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_dictionary.NewMockPageFetcher(ctrl)
		parser := mock_dictionary.NewMockPageParser(ctrl)

		links := []dictionary.PhrasalVerbLink{
			{Verb: "give up", URL: testBaseURL + "give-up"},
			{Verb: "give in", URL: testBaseURL + "give-in"},
			{Verb: "give out", URL: testBaseURL + "give-out"},
		}
		giveUpPage := []byte("<html>give up</html>")
		giveOutPage := []byte("<html>give out</html>")

		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"give_1").Return(entryPage, nil)
		parser.EXPECT().ParseEntry(entryPage).Return(dictionary.ParsedEntry{
			Entry:            dictionary.Entry{Headword: "give", PartOfSpeech: "verb"},
			PhrasalVerbLinks: links,
		}, nil)

		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"give-up").Return(giveUpPage, nil)
		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"give-in").
			Return(nil, errors.New("response error 500"))
		fetcher.EXPECT().FetchPage(gomock.Any(), testBaseURL+"give-out").Return(giveOutPage, nil)
		parser.EXPECT().ParseSubSenses(giveUpPage).
			Return([]dictionary.Sense{{Definition: "to stop trying"}})
		parser.EXPECT().ParseSubSenses(giveOutPage).
			Return([]dictionary.Sense{{Definition: "to distribute"}})

		resolver := newTestResolver(t, fetcher, parser, 1)

		got := resolver.Resolve(context.Background(), "give")
		require.Equal(t, dictionary.StatusFound, got.Status)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, []dictionary.PhrasalVerb{
			{Verb: "give up", Senses: []dictionary.Sense{{Definition: "to stop trying"}}},
			{Verb: "give out", Senses: []dictionary.Sense{{Definition: "to distribute"}}},
		}, got.Entries[0].PhrasalVerbs)
		assert.Equal(t, 1, got.Warnings)
	})

	t.Run("cancelled context fails the lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_dictionary.NewMockPageFetcher(ctrl)
		parser := mock_dictionary.NewMockPageParser(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher.EXPECT().FetchPage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, url string) ([]byte, error) {
				return nil, fmt.Errorf("limiter.Wait > %w", ctx.Err())
			}).AnyTimes()

		resolver := newTestResolver(t, fetcher, parser, 2)

		got := resolver.Resolve(ctx, "example")
		assert.Equal(t, dictionary.StatusFailed, got.Status)
		assert.ErrorIs(t, got.Err, context.Canceled)
	})
}
