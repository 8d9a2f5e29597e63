// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tajwid

import (
	"regexp"
	"strings"
)

// # Marks

const (
	sukun    = '\u0652'
	nun      = '\u0646'
	fathatan = '\u064B'
	dammatan = '\u064C'
	kasratan = '\u064D'
)

// # Letter Sets

const (
	// idghamLetters covers idgham with ghunnah (ي ن م و) and without (ل ر).
	idghamLetters = "ينمو" + "لر"

	// iqlabLetters is the single letter ba.
	iqlabLetters = "ب"

	// ikhfaLetters are the fifteen letters of ikhfa haqiqi.
	ikhfaLetters = "تثجدذزسشصضطظفقك"

	// qalqalahLetters are ق ط ب ج د.
	qalqalahLetters = "قطبجد"
)

// lafzForms are the three case endings of the divine name written with alif wasla.
var lafzForms = []string{
	"\u0671\u0644\u0644\u0651\u064E\u0647\u0650",
	"\u0671\u0644\u0644\u0651\u064E\u0647\u064E",
	"\u0671\u0644\u0644\u0651\u064E\u0647\u064F",
}

// # Rule Lists

// majorRule tags a whole word from the first letter of the following word.
// It only runs when the word ends in nun-sukun or tanwin.
type majorRule struct {
	name     string
	category Category
	letters  string
}

// minorRule tags every non-overlapping pattern match inside a word.
type minorRule struct {
	category Category
	pattern  *regexp.Regexp
}

// majorRules are tried in order; the first whose letters contain the lookahead wins.
// Iqlab shares the idgham display category.
var majorRules = []majorRule{
	{name: "idgham", category: Idgham, letters: idghamLetters},
	{name: "iqlab", category: Idgham, letters: iqlabLetters},
	{name: "ikhfa", category: Ikhfa, letters: ikhfaLetters},
}

// minorRules run in order when no major rule tagged the word.
var minorRules = []minorRule{
	{category: LafzJalalah, pattern: regexp.MustCompile(alternation(lafzForms))},
	{category: Madd, pattern: regexp.MustCompile(`\x{0622}|[^\s]+\x{0653}[^\s]*`)},
	{category: Ghunnah, pattern: regexp.MustCompile(`[\x{0646}\x{0645}]\x{0651}`)},
	{category: Qalqalah, pattern: regexp.MustCompile(`[` + qalqalahLetters + `]\x{0652}`)},
}

func alternation(literals []string) string {
	quoted := make([]string, len(literals))
	for index, literal := range literals {
		quoted[index] = regexp.QuoteMeta(literal)
	}
	return strings.Join(quoted, "|")
}

// triggersMajor reports whether word ends in nun followed by sukun, or in a tanwin mark.
func triggersMajor(word []rune) bool {
	count := len(word)
	if count == 0 {
		return false
	}

	switch last := word[count-1]; last {
	case fathatan, dammatan, kasratan:
		return true
	case sukun:
		return count >= 2 && word[count-2] == nun
	}
	return false
}
