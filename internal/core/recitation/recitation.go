// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recitation knows the reciters, where their verse recordings live and
what plays after a verse ends.

Audio is never proxied. The service only hands out locators of the form

	{base}/{reciter path}/{SSS}{AAA}.mp3

where SSS and AAA are the chapter and verse numbers padded to three digits.
*/
package recitation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultReciterID is the reciter selected when a reader has not chosen one.
const DefaultReciterID = 1

// DefaultBaseURL serves per-verse recordings for every reciter in the catalogue.
const DefaultBaseURL = "https://everyayah.com/data"

//go:embed reciters.json
var recitersJSON []byte

// ErrUnknownReciter is returned when a reciter id is not in the catalogue.
var ErrUnknownReciter = errors.New("recitation: unknown reciter")

// # Reciters

// Reciter is one voice whose recordings can be played per verse.
type Reciter struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Catalog is the immutable list of reciters plus the audio host they share.
type Catalog struct {
	reciters []Reciter
	byID     map[int]Reciter
	baseURL  string
}

/*
NewCatalog validates reciters and indexes them by id.

Parameters:
  - reciters: []Reciter (display order is preserved)
  - baseURL: string (audio host, DefaultBaseURL when empty)

Returns:
  - *Catalog: The catalogue
  - error: On duplicate ids, blank paths or a missing default reciter
*/
func NewCatalog(reciters []Reciter, baseURL string) (*Catalog, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	byID := make(map[int]Reciter, len(reciters))
	for _, reciter := range reciters {
		if reciter.ID < 1 {
			return nil, fmt.Errorf("recitation: reciter %q has no id", reciter.Name)
		}
		if strings.TrimSpace(reciter.Path) == "" {
			return nil, fmt.Errorf("recitation: reciter %d has no path", reciter.ID)
		}
		if _, exists := byID[reciter.ID]; exists {
			return nil, fmt.Errorf("recitation: duplicate reciter id %d", reciter.ID)
		}
		byID[reciter.ID] = reciter
	}

	if _, ok := byID[DefaultReciterID]; !ok {
		return nil, fmt.Errorf("recitation: default reciter %d missing", DefaultReciterID)
	}

	return &Catalog{
		reciters: append([]Reciter(nil), reciters...),
		byID:     byID,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// DefaultCatalog returns the built-in reciter list served from baseURL.
func DefaultCatalog(baseURL string) (*Catalog, error) {
	reciters, err := decodeReciters(bytes.NewReader(recitersJSON))
	if err != nil {
		return nil, err
	}
	return NewCatalog(reciters, baseURL)
}

// LoadCatalogFile reads a reciter list in the same JSON form as the built-in one.
func LoadCatalogFile(path, baseURL string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recitation: open reciters: %w", err)
	}
	defer file.Close()

	reciters, err := decodeReciters(file)
	if err != nil {
		return nil, err
	}
	return NewCatalog(reciters, baseURL)
}

func decodeReciters(reader io.Reader) ([]Reciter, error) {
	var reciters []Reciter
	if err := json.NewDecoder(reader).Decode(&reciters); err != nil {
		return nil, fmt.Errorf("recitation: decode reciters: %w", err)
	}
	return reciters, nil
}

// List returns the reciters in display order.
func (catalog *Catalog) List() []Reciter {
	return append([]Reciter(nil), catalog.reciters...)
}

// Get looks a reciter up by id.
func (catalog *Catalog) Get(id int) (Reciter, bool) {
	reciter, ok := catalog.byID[id]
	return reciter, ok
}

// Default returns the reciter with [DefaultReciterID].
func (catalog *Catalog) Default() Reciter {
	return catalog.byID[DefaultReciterID]
}

// Select resolves an optional reciter id. Zero selects the default reciter.
func (catalog *Catalog) Select(id int) (Reciter, error) {
	if id == 0 {
		return catalog.Default(), nil
	}
	reciter, ok := catalog.byID[id]
	if !ok {
		return Reciter{}, fmt.Errorf("%w: %d", ErrUnknownReciter, id)
	}
	return reciter, nil
}

// BaseURL returns the audio host without a trailing slash.
func (catalog *Catalog) BaseURL() string {
	return catalog.baseURL
}

// Locator returns the recording of one verse by reciter on this catalogue's host.
func (catalog *Catalog) Locator(reciter Reciter, chapter, verse int) string {
	return Locator(catalog.baseURL, reciter, chapter, verse)
}
