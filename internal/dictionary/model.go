package dictionary

import (
	"fmt"
	"strings"
)

// Region identifies a pronunciation variant on an entry page.
type Region string

const (
	RegionUK Region = "uk"
	RegionUS Region = "us"
)

// Entry is one parsed dictionary sense-group for a word variant. A word may
// resolve to several entries (homographs), bounded by the resolver's
// MaxEntries.
type Entry struct {
	Headword       string                   `json:"headword" yaml:"headword"`
	PartOfSpeech   string                   `json:"part_of_speech" yaml:"part_of_speech"`
	Pronunciations map[Region]Pronunciation `json:"pronunciations" yaml:"pronunciations"`
	Senses         []Sense                  `json:"meanings" yaml:"meanings"`
	Idioms         []Idiom                  `json:"idioms,omitempty" yaml:"idioms,omitempty"`
	PhrasalVerbs   []PhrasalVerb            `json:"phrasal_verbs,omitempty" yaml:"phrasal_verbs,omitempty"`
}

// Pronunciation holds a phonetic transcription and the URL of its audio
// recording. Either may be empty when the page lacks them.
type Pronunciation struct {
	IPA   string `json:"ipa" yaml:"ipa"`
	Audio string `json:"audio" yaml:"audio"`
}

type Sense struct {
	Definition string   `json:"definition" yaml:"definition"`
	Examples   []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Level      string   `json:"level,omitempty" yaml:"level,omitempty"`
}

type Idiom struct {
	Idiom      string   `json:"idiom" yaml:"idiom"`
	Definition string   `json:"definition" yaml:"definition"`
	Examples   []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// PhrasalVerb holds the sub-senses fetched from a verb's own page, discovered
// through a link on the parent entry.
type PhrasalVerb struct {
	Verb   string  `json:"phrasal_verb" yaml:"phrasal_verb"`
	Senses []Sense `json:"senses" yaml:"senses"`
}

// AudioURLs returns the non-empty audio URLs across all pronunciations.
func (e Entry) AudioURLs() []string {
	urls := make([]string, 0, len(e.Pronunciations))
	for _, region := range []Region{RegionUS, RegionUK} {
		if p, ok := e.Pronunciations[region]; ok && p.Audio != "" {
			urls = append(urls, p.Audio)
		}
	}
	return urls
}

// ToFlashCard renders the entry as plain text for the lookup command.
func (e Entry) ToFlashCard() string {
	builder := strings.Builder{}
	header := e.Headword
	if us, ok := e.Pronunciations[RegionUS]; ok && us.IPA != "" {
		header = fmt.Sprintf("%s %s", header, us.IPA)
	}
	builder.WriteString(fmt.Sprintf("%s [%s]\n", header, e.PartOfSpeech))
	for i, sense := range e.Senses {
		line := fmt.Sprintf("%d. %s", i+1, sense.Definition)
		if sense.Level != "" {
			line = fmt.Sprintf("%s (%s)", line, sense.Level)
		}
		builder.WriteString(line + "\n")
		for _, example := range sense.Examples {
			builder.WriteString(fmt.Sprintf("   e.g. %s\n", example))
		}
	}
	for _, idiom := range e.Idioms {
		builder.WriteString(fmt.Sprintf("IDM %s: %s\n", idiom.Idiom, idiom.Definition))
	}
	for _, pv := range e.PhrasalVerbs {
		definitions := make([]string, 0, len(pv.Senses))
		for _, sense := range pv.Senses {
			definitions = append(definitions, sense.Definition)
		}
		builder.WriteString(fmt.Sprintf("PV %s: %s\n", pv.Verb, strings.Join(definitions, "; ")))
	}
	return builder.String()
}

// NormalizeWord turns user input into the canonical lookup key.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
