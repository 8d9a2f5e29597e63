// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var defaultAliasesYAML []byte

// # Alias Table

// Aliases maps every canonical field to its ordered alternate-key list.
//
// It is data, not logic: supporting a new provider shape means adding keys
// here (or in a file loaded with [LoadAliasesFile]).
type Aliases struct {
	DefaultLanguage string         `yaml:"default_language"`
	Wrappers        []string       `yaml:"wrappers"`
	Chapter         ChapterAliases `yaml:"chapter"`
	Verse           VerseAliases   `yaml:"verse"`
	Medinan         []string       `yaml:"medinan"`
}

// ChapterAliases lists alternate keys for chapter fields.
type ChapterAliases struct {
	Number      []string `yaml:"number"`
	Name        []string `yaml:"name"`
	ArabicName  []string `yaml:"arabic_name"`
	Translation []string `yaml:"translation"`
	Revelation  []string `yaml:"revelation"`
	VerseCount  []string `yaml:"verse_count"`
	Verses      []string `yaml:"verses"`
	Bismillah   []string `yaml:"bismillah"`
}

// VerseAliases lists alternate keys for verse fields. Translations are keyed
// by language code.
type VerseAliases struct {
	Number          []string            `yaml:"number"`
	Arabic          []string            `yaml:"arabic"`
	Transliteration []string            `yaml:"transliteration"`
	Translations    map[string][]string `yaml:"translations"`
}

// # Loading

// DefaultAliases returns the embedded alias table.
func DefaultAliases() Aliases {
	aliases, err := decodeAliases(bytes.NewReader(defaultAliasesYAML), Aliases{})
	if err != nil {
		// The embedded table is part of the binary; a decode failure is a build defect.
		panic(fmt.Sprintf("normalize: embedded alias table is invalid: %v", err))
	}
	return aliases
}

// LoadAliases decodes a YAML alias table on top of the embedded defaults.
//
// Fields absent from the document keep their default lists, and translation
// languages are merged, so a custom file only needs to list what it changes.
func LoadAliases(reader io.Reader) (Aliases, error) {
	return decodeAliases(reader, DefaultAliases())
}

// LoadAliasesFile reads an alias table from disk. See [LoadAliases].
func LoadAliasesFile(path string) (Aliases, error) {
	file, err := os.Open(path)
	if err != nil {
		return Aliases{}, fmt.Errorf("normalize: open alias table: %w", err)
	}
	defer file.Close()

	return LoadAliases(file)
}

func decodeAliases(reader io.Reader, base Aliases) (Aliases, error) {
	aliases := base.clone()

	if err := yaml.NewDecoder(reader).Decode(&aliases); err != nil && !errors.Is(err, io.EOF) {
		return Aliases{}, fmt.Errorf("normalize: decode alias table: %w", err)
	}

	if err := aliases.validate(); err != nil {
		return Aliases{}, err
	}
	return aliases, nil
}

func (aliases Aliases) validate() error {
	switch {
	case len(aliases.Chapter.Number) == 0:
		return errors.New("normalize: alias table has no chapter.number keys")
	case len(aliases.Chapter.Verses) == 0:
		return errors.New("normalize: alias table has no chapter.verses keys")
	case len(aliases.Verse.Arabic) == 0:
		return errors.New("normalize: alias table has no verse.arabic keys")
	case aliases.DefaultLanguage == "":
		return errors.New("normalize: alias table has no default_language")
	}
	return nil
}

// clone copies the translation map so decoding into the copy leaves the
// receiver untouched.
func (aliases Aliases) clone() Aliases {
	copied := aliases
	if aliases.Verse.Translations != nil {
		copied.Verse.Translations = make(map[string][]string, len(aliases.Verse.Translations))
		for lang, keys := range aliases.Verse.Translations {
			copied.Verse.Translations[lang] = keys
		}
	}
	return copied
}
