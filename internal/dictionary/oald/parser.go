// Package oald parses entry pages from the Oxford Advanced Learner's
// Dictionary. It is the one concrete page-structure adapter behind the
// resolver's parsing capability; markup changes stay contained here.
package oald

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/at-ishikawa/bookdeck/internal/dictionary"
)

// Class names used by the OALD markup.
const (
	headwordClass     = "headword"
	posClass          = "pos"
	phonsUKClass      = "phons_br"
	phonsUSClass      = "phons_n_am"
	phonClass         = "phon"
	soundClass        = "sound"
	senseClass        = "sense"
	defClass          = "def"
	exampleClass      = "x"
	idiomsClass       = "idioms"
	idiomClass        = "idm"
	idiomSensesClass  = "sense_single"
	phrasalLinksClass = "phrasal_verb_links"
	symbolsClass      = "symbols"

	audioAttr = "data-src-mp3"
)

var cefrSymbolPattern = regexp.MustCompile(`^ox3ksym_([a-c][0-9])$`)

// ErrNotAnEntry reports a page that parsed as HTML but lacks the headword and
// part-of-speech markers that identify a dictionary entry.
var ErrNotAnEntry = errors.New("page is not a dictionary entry")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var _ dictionary.PageParser = (*Parser)(nil)

// ParseEntry extracts one entry and its phrasal-verb links from a page.
// Missing sub-structures degrade to empty fields; only a missing headword or
// part of speech makes the page invalid.
func (p *Parser) ParseEntry(rawHTML []byte) (dictionary.ParsedEntry, error) {
	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return dictionary.ParsedEntry{}, ErrNotAnEntry
	}

	headword := textOf(findByClass(doc, "h1", headwordClass))
	partOfSpeech := textOf(findByClass(doc, "span", posClass))
	if headword == "" || partOfSpeech == "" {
		return dictionary.ParsedEntry{}, ErrNotAnEntry
	}

	return dictionary.ParsedEntry{
		Entry: dictionary.Entry{
			Headword:     headword,
			PartOfSpeech: partOfSpeech,
			Pronunciations: map[dictionary.Region]dictionary.Pronunciation{
				dictionary.RegionUK: parsePronunciation(doc, phonsUKClass),
				dictionary.RegionUS: parsePronunciation(doc, phonsUSClass),
			},
			Senses: parseSenses(findFirst(doc, "ol")),
			Idioms: parseIdioms(doc),
		},
		PhrasalVerbLinks: parsePhrasalVerbLinks(doc),
	}, nil
}

// ParseSubSenses extracts every sense on a phrasal verb's own page.
func (p *Parser) ParseSubSenses(rawHTML []byte) []dictionary.Sense {
	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var senses []dictionary.Sense
	for _, node := range findAllByClass(doc, "li", senseClass) {
		senses = append(senses, parseSense(node))
	}
	return senses
}

func parsePronunciation(doc *html.Node, regionClass string) dictionary.Pronunciation {
	region := findByClass(doc, "div", regionClass)
	if region == nil {
		return dictionary.Pronunciation{}
	}
	return dictionary.Pronunciation{
		IPA:   textOf(findByClass(region, "span", phonClass)),
		Audio: attrOf(findByClass(region, "div", soundClass), audioAttr),
	}
}

func parseSenses(container *html.Node) []dictionary.Sense {
	if container == nil {
		return nil
	}
	var senses []dictionary.Sense
	for _, node := range findAllByClass(container, "li", senseClass) {
		senses = append(senses, parseSense(node))
	}
	return senses
}

func parseSense(node *html.Node) dictionary.Sense {
	sense := dictionary.Sense{
		Definition: textOf(findByClass(node, "span", defClass)),
		Level:      parseCEFRLevel(node),
	}
	for _, example := range findAllByClass(node, "span", exampleClass) {
		sense.Examples = append(sense.Examples, textOf(example))
	}
	return sense
}

func parseCEFRLevel(sense *html.Node) string {
	symbols := findByClass(sense, "div", symbolsClass)
	if symbols == nil {
		return ""
	}
	var level string
	walk(symbols, func(n *html.Node) {
		if level != "" || !isElement(n, "span") {
			return
		}
		for _, class := range classesOf(n) {
			if m := cefrSymbolPattern.FindStringSubmatch(class); m != nil {
				level = strings.ToUpper(m[1])
				return
			}
		}
	})
	return level
}

// parseIdioms pairs each idm span in the idioms section with the sense list
// that follows it in document order.
func parseIdioms(doc *html.Node) []dictionary.Idiom {
	section := findByClass(doc, "div", idiomsClass)
	if section == nil {
		return nil
	}

	var idioms []dictionary.Idiom
	walk(section, func(n *html.Node) {
		switch {
		case isElement(n, "span") && hasClass(n, idiomClass):
			idioms = append(idioms, dictionary.Idiom{Idiom: textOf(n)})
		case isElement(n, "ol") && hasClass(n, idiomSensesClass) && len(idioms) > 0:
			idiom := &idioms[len(idioms)-1]
			if idiom.Definition != "" {
				return
			}
			idiom.Definition = textOf(findByClass(n, "span", defClass))
			for _, example := range findAllByClass(n, "span", exampleClass) {
				idiom.Examples = append(idiom.Examples, textOf(example))
			}
		}
	})
	return idioms
}

func parsePhrasalVerbLinks(doc *html.Node) []dictionary.PhrasalVerbLink {
	section := findByClass(doc, "aside", phrasalLinksClass)
	if section == nil {
		return nil
	}

	var links []dictionary.PhrasalVerbLink
	for _, anchor := range findAllByClass(section, "a", "Ref") {
		verb := textOf(findByClass(anchor, "span", "xh"))
		href := attrOf(anchor, "href")
		if verb == "" || href == "" {
			continue
		}
		links = append(links, dictionary.PhrasalVerbLink{Verb: verb, URL: href})
	}
	return links
}

// Node helpers.

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

func classesOf(n *html.Node) []string {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classesOf(n) {
		if c == class {
			return true
		}
	}
	return false
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	if isElement(n, tag) && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func findAllByClass(n *html.Node, tag, class string) []*html.Node {
	var nodes []*html.Node
	walk(n, func(node *html.Node) {
		if isElement(node, tag) && hasClass(node, class) {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

func findFirst(n *html.Node, tag string) *html.Node {
	if isElement(n, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attrOf(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

var whitespacePattern = regexp.MustCompile(`\s+`)

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var builder strings.Builder
	walk(n, func(node *html.Node) {
		if node.Type == html.TextNode {
			builder.WriteString(node.Data)
		}
	})
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(builder.String(), " "))
}
