// Package wordlist reads candidate-word files and tracks words that have
// already been processed in earlier runs.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const DefaultMinLength = 3

// Read loads one word per line from path, lower-casing and trimming each line,
// dropping lines containing non-letters or shorter than minLength, and
// de-duplicating while preserving first-seen order.
func Read(path string, minLength int) ([]string, error) {
	if minLength < 1 {
		minLength = DefaultMinLength
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer file.Close()

	seen := make(map[string]struct{})
	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if len(word) < minLength || !isLetters(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Err > %w", err)
	}

	return words, nil
}

func isLetters(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// KnownWords is the append-only record of words already turned into notes.
// A missing file means no words are known yet.
type KnownWords struct {
	path  string
	words map[string]struct{}
}

func LoadKnownWords(path string) (*KnownWords, error) {
	known := &KnownWords{
		path:  path,
		words: make(map[string]struct{}),
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return known, nil
		}
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		known.words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Err > %w", err)
	}

	return known, nil
}

func (known *KnownWords) Contains(word string) bool {
	_, ok := known.words[strings.ToLower(word)]
	return ok
}

// Filter drops words already known, preserving order.
func (known *KnownWords) Filter(words []string) []string {
	var remaining []string
	for _, word := range words {
		if !known.Contains(word) {
			remaining = append(remaining, word)
		}
	}
	return remaining
}

// Append records words as known and persists them at the end of the file.
// Words already known are skipped.
func (known *KnownWords) Append(words []string) error {
	var added []string
	for _, word := range words {
		word = strings.ToLower(word)
		if _, ok := known.words[word]; ok {
			continue
		}
		known.words[word] = struct{}{}
		added = append(added, word)
	}
	if len(added) == 0 {
		return nil
	}

	if dir := filepath.Dir(known.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll > %w", err)
		}
	}
	file, err := os.OpenFile(known.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("os.OpenFile > %w", err)
	}
	defer file.Close()

	for _, word := range added {
		if _, err := fmt.Fprintln(file, word); err != nil {
			return fmt.Errorf("fmt.Fprintln > %w", err)
		}
	}

	return nil
}
