// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tajwid highlights a few recitation rules in Arabic verse text.

It is a visual approximation, not a phonetic implementation. Each verse is
split on whitespace and every word is matched against an ordered rule list:

  - Major rules look one word ahead. A word ending in nun-sukun or tanwin is
    wrapped whole as idgham (iqlab shares that category) or ikhfa, depending
    on the first letter of the next word. The last word of a verse has no
    next word and never takes a major tag.
  - Minor rules run only on words without a major tag and wrap the matched
    substrings: lafz al-jalalah, madd, ghunnah and qalqalah.

The output is HTML markup for display. It is never parsed back, and
annotating already-annotated text wraps it twice.
*/
package tajwid

import (
	"html"
	"sort"
	"strings"
	"unicode/utf8"
)

// # Categories

// Category is one highlighted recitation rule.
type Category string

const (
	Idgham      Category = "idgham"
	Ikhfa       Category = "ikhfa"
	LafzJalalah Category = "lafsalah"
	Madd        Category = "madd"
	Ghunnah     Category = "ghunnah"
	Qalqalah    Category = "qalqalah"
)

// Class returns the CSS class rendered for the category.
func (category Category) Class() string {
	return "tajwid-" + string(category)
}

// Categories lists every category in rule order.
func Categories() []Category {
	return []Category{Idgham, Ikhfa, LafzJalalah, Madd, Ghunnah, Qalqalah}
}

// # Annotator

// Annotator applies the rule lists. It is immutable and safe for concurrent use.
type Annotator struct {
	major []majorRule
	minor []minorRule
}

// New returns an Annotator over the built-in rule lists.
func New() *Annotator {
	return &Annotator{major: majorRules, minor: minorRules}
}

var defaultAnnotator = New()

// Annotate annotates text with the built-in rules. See [Annotator.Annotate].
func Annotate(text string) string {
	return defaultAnnotator.Annotate(text)
}

// Annotate returns text with each word wrapped in category spans and the
// words rejoined by single spaces.
func (annotator *Annotator) Annotate(text string) string {
	words := strings.Fields(text)

	var builder strings.Builder
	builder.Grow(len(text) * 2)

	for index, word := range words {
		if index > 0 {
			builder.WriteByte(' ')
		}

		next := ""
		if index+1 < len(words) {
			next = words[index+1]
		}

		if category := annotator.Classify(word, next); category != "" {
			writeSpan(&builder, category, html.EscapeString(word))
			continue
		}

		render(&builder, word, annotator.matches(word))
	}

	return builder.String()
}

// Classify returns the major category for word given the following word, or
// "" when no major rule applies.
func (annotator *Annotator) Classify(word, next string) Category {
	if next == "" || !triggersMajor([]rune(word)) {
		return ""
	}

	lookahead, _ := utf8.DecodeRuneInString(next)
	for _, rule := range annotator.major {
		if strings.ContainsRune(rule.letters, lookahead) {
			return rule.category
		}
	}
	return ""
}

// # Span Rendering

// match is a tagged byte range inside one word.
type match struct {
	start    int
	end      int
	category Category
}

// matches collects minor-rule matches in rule order. A match that partially
// overlaps one already kept is dropped; disjoint and nested matches are kept.
func (annotator *Annotator) matches(word string) []match {
	var kept []match

	for _, rule := range annotator.minor {
		for _, location := range rule.pattern.FindAllStringIndex(word, -1) {
			candidate := match{start: location[0], end: location[1], category: rule.category}
			if candidate.start < candidate.end && fits(candidate, kept) {
				kept = append(kept, candidate)
			}
		}
	}
	return kept
}

func fits(candidate match, kept []match) bool {
	for _, other := range kept {
		disjoint := candidate.end <= other.start || candidate.start >= other.end
		inside := candidate.start >= other.start && candidate.end <= other.end
		around := candidate.start <= other.start && candidate.end >= other.end
		if !disjoint && !inside && !around {
			return false
		}
	}
	return true
}

// render writes word with its matches as nested spans.
func render(builder *strings.Builder, word string, matches []match) {
	if len(matches) == 0 {
		builder.WriteString(html.EscapeString(word))
		return
	}

	// Outer spans first: by start, then longest. Equal ranges keep rule order.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].end > matches[j].end
	})

	var open []match
	position := 0

	closeUntil := func(limit int) {
		for len(open) > 0 && open[len(open)-1].end <= limit {
			top := open[len(open)-1]
			builder.WriteString(html.EscapeString(word[position:top.end]))
			builder.WriteString("</span>")
			position = top.end
			open = open[:len(open)-1]
		}
	}

	for _, current := range matches {
		closeUntil(current.start)

		builder.WriteString(html.EscapeString(word[position:current.start]))
		builder.WriteString(`<span class="`)
		builder.WriteString(current.category.Class())
		builder.WriteString(`">`)

		position = current.start
		open = append(open, current)
	}

	closeUntil(len(word))
	builder.WriteString(html.EscapeString(word[position:]))
}

func writeSpan(builder *strings.Builder, category Category, escaped string) {
	builder.WriteString(`<span class="`)
	builder.WriteString(category.Class())
	builder.WriteString(`">`)
	builder.WriteString(escaped)
	builder.WriteString("</span>")
}
