package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/bookdeck/internal/dictionary"
	"github.com/at-ishikawa/bookdeck/internal/wordlist"
)

type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Media      MediaConfig      `mapstructure:"media"`
	Deck       DeckConfig       `mapstructure:"deck"`
	WordList   WordListConfig   `mapstructure:"wordlist"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
}

type DictionaryConfig struct {
	BaseURL        string     `mapstructure:"base_url" validate:"required,url"`
	CacheDirectory string     `mapstructure:"cache_directory"`
	MaxEntries     int        `mapstructure:"max_entries" validate:"min=1"`
	Rate           RateConfig `mapstructure:"rate"`
}

type RateConfig struct {
	MaxCalls int           `mapstructure:"max_calls" validate:"min=1"`
	Period   time.Duration `mapstructure:"period" validate:"gt=0"`
}

type MediaConfig struct {
	CacheDirectory string     `mapstructure:"cache_directory"`
	Rate           RateConfig `mapstructure:"rate"`
}

type DeckConfig struct {
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"min=1"`
	MaxSubFetches int `mapstructure:"max_sub_fetches" validate:"min=1"`
}

type WordListConfig struct {
	MinLength      int    `mapstructure:"min_length" validate:"min=1"`
	KnownWordsFile string `mapstructure:"known_words_file"`
}

type OutputsConfig struct {
	NotesDirectory string `mapstructure:"notes_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bookdeck")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	cacheRoot := cacheDirectory()
	v.SetDefault("dictionary.base_url", "https://www.oxfordlearnersdictionaries.com/definition/english/")
	v.SetDefault("dictionary.cache_directory", filepath.Join(cacheRoot, "word_cache"))
	v.SetDefault("dictionary.max_entries", dictionary.DefaultMaxEntries)
	v.SetDefault("dictionary.rate.max_calls", 100)
	v.SetDefault("dictionary.rate.period", time.Second)
	v.SetDefault("media.cache_directory", filepath.Join(cacheRoot, "media_cache"))
	v.SetDefault("media.rate.max_calls", 20)
	v.SetDefault("media.rate.period", time.Second)
	v.SetDefault("deck.max_concurrent", 20)
	v.SetDefault("deck.max_sub_fetches", 10)
	v.SetDefault("wordlist.min_length", wordlist.DefaultMinLength)
	v.SetDefault("wordlist.known_words_file", filepath.Join("config", "known_words.txt"))
	v.SetDefault("outputs.notes_directory", filepath.Join("outputs", "notes"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

func cacheDirectory() string {
	root, err := os.UserCacheDir()
	if err != nil {
		root = ".cache"
	}
	return filepath.Join(root, "bookdeck")
}
