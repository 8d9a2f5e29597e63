// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/taibuivan/tilawa/internal/adapter/provider"
	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/platform/constants"
	"github.com/taibuivan/tilawa/internal/quran"
	"github.com/taibuivan/tilawa/internal/quran/normalize"
	"github.com/taibuivan/tilawa/internal/quran/tajwid"
	"github.com/taibuivan/tilawa/pkg/slice"
)

// # normalize

// NormalizeCmd prints the canonical form of a payload file.
type NormalizeCmd struct {
	File    string `arg:"" help:"Payload file, or - for stdin"`
	Pretty  bool   `name:"pretty" help:"Indent the JSON output"`
	Summary bool   `name:"summary" help:"Print chapter summaries without verses"`
	Aliases string `name:"aliases" type:"existingfile" help:"Alias table overriding the built-in one"`
}

func (c *NormalizeCmd) Run(globals *Globals) error {
	normalizer, err := normalizer(c.Aliases)
	if err != nil {
		return err
	}

	payload, err := decodeFile(c.File)
	if err != nil {
		return err
	}

	result := normalizer.Normalize(payload)
	if result.Fallback {
		globals.Logger.Warn("normalize_fallback", slog.String("file", c.File))
	}

	if c.Summary {
		summaries := slice.Map(result.Chapters, quran.Chapter.Summary)
		return writeJSON(globals.Stdout, summaries, c.Pretty)
	}
	return writeJSON(globals.Stdout, result, c.Pretty)
}

// # annotate

// AnnotateCmd annotates text given as arguments or every verse of a chapter.
type AnnotateCmd struct {
	Text    []string `arg:"" optional:"" help:"Arabic words to annotate"`
	File    string   `name:"file" short:"f" help:"Payload file to read verses from"`
	Chapter int      `name:"chapter" short:"c" help:"Chapter to annotate from --file"`
}

func (c *AnnotateCmd) Validate() error {
	if c.File == "" && len(c.Text) == 0 {
		return errors.New("either text arguments or --file is required")
	}
	if c.File != "" && c.Chapter == 0 {
		return errors.New("--chapter is required with --file")
	}
	return nil
}

func (c *AnnotateCmd) Run(globals *Globals) error {
	annotator := tajwid.New()

	if c.File == "" {
		_, err := fmt.Fprintln(globals.Stdout, annotator.Annotate(strings.Join(c.Text, " ")))
		return err
	}

	payload, err := decodeFile(c.File)
	if err != nil {
		return err
	}

	byNumber := slice.Index(normalize.Default().Normalize(payload).Chapters, func(chapter quran.Chapter) int {
		return chapter.Number
	})
	chapter, ok := byNumber[c.Chapter]
	if !ok {
		return fmt.Errorf("chapter %d not found in %s", c.Chapter, c.File)
	}

	for _, verse := range chapter.Verses {
		if _, err := fmt.Fprintf(globals.Stdout, "%d\t%s\n", verse.Number, annotator.Annotate(verse.Arabic)); err != nil {
			return err
		}
	}
	return nil
}

// # audio

// AudioCmd prints one verse's audio locator.
type AudioCmd struct {
	Chapter int    `arg:"" help:"Chapter number (1-114)"`
	Verse   int    `arg:"" help:"Verse number"`
	Reciter  int    `name:"reciter" short:"r" help:"Reciter id (default: the catalogue default)"`
	BaseURL  string `name:"base-url" default:"${audio_base_url}" help:"Audio host"`
	Reciters string `name:"reciters" type:"existingfile" help:"Reciter list overriding the built-in one"`
}

func (c *AudioCmd) Validate() error {
	if !quran.ValidChapter(c.Chapter) {
		return fmt.Errorf("chapter must be between 1 and %d", quran.ChapterCount)
	}
	if c.Verse < 1 {
		return errors.New("verse must be positive")
	}
	return nil
}

func (c *AudioCmd) Run(globals *Globals) error {
	catalog, err := reciters(c.Reciters, c.BaseURL)
	if err != nil {
		return err
	}

	reciter, err := catalog.Select(c.Reciter)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(globals.Stdout, catalog.Locator(reciter, c.Chapter, c.Verse))
	return err
}

// # reciters

// RecitersCmd lists the reciters.
type RecitersCmd struct {
	JSON     bool   `name:"json" help:"Print JSON instead of a table"`
	BaseURL  string `name:"base-url" default:"${audio_base_url}" help:"Audio host"`
	Reciters string `name:"reciters" type:"existingfile" help:"Reciter list overriding the built-in one"`
}

func (c *RecitersCmd) Run(globals *Globals) error {
	catalog, err := reciters(c.Reciters, c.BaseURL)
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(globals.Stdout, catalog.List(), true)
	}

	table := tabwriter.NewWriter(globals.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "ID\tNAME\tPATH")
	for _, reciter := range catalog.List() {
		fmt.Fprintf(table, "%d\t%s\t%s\n", reciter.ID, reciter.Name, reciter.Path)
	}
	return table.Flush()
}

// # fetch

// FetchCmd fetches chapters through a source and prints what arrived.
type FetchCmd struct {
	Source      string        `name:"source" enum:"http,file,embedded" default:"http" help:"Source kind (http, file, embedded)"`
	Chapters    []int         `name:"chapters" sep:"," required:"" help:"Chapter numbers, comma separated"`
	BaseURL     string        `name:"base-url" default:"https://api.quran.gading.dev" help:"Upstream API base"`
	ListPath    string        `name:"list-path" default:"/surah" help:"Listing path"`
	ChapterPath string        `name:"chapter-path" default:"/surah/{number}" help:"Chapter path with {number}"`
	File        string        `name:"file" help:"Payload file for --source=file"`
	Timeout     time.Duration `name:"timeout" default:"15s" help:"Per-request timeout"`
	Concurrency int           `name:"concurrency" default:"4" help:"Chapters fetched at once"`
}

func (c *FetchCmd) Run(globals *Globals) error {
	source, err := provider.Open(c.Source, provider.HTTPOptions{
		BaseURL:     c.BaseURL,
		ListPath:    c.ListPath,
		ChapterPath: c.ChapterPath,
		Timeout:     c.Timeout,
	}, c.File, globals.Logger)
	if err != nil {
		return err
	}

	service, err := catalog.NewService(catalog.Dependencies{
		Source:      source,
		Cache:       catalog.NewMemoryCache(constants.DefaultCatalogCacheTTL),
		Logger:      globals.Logger,
		Concurrency: c.Concurrency,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	cached, err := service.Prefetch(ctx, c.Chapters)
	if err != nil {
		return err
	}

	table := tabwriter.NewWriter(globals.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "NUMBER\tNAME\tVERSES\tLOADED")
	for _, number := range c.Chapters {
		chapter, err := service.GetChapter(ctx, number, catalog.View{})
		if err != nil {
			fmt.Fprintf(table, "%d\t-\t-\t%s\n", number, err)
			continue
		}
		fmt.Fprintf(table, "%d\t%s\t%d\t%d\n", chapter.Number, chapter.Name, chapter.VerseCount, len(chapter.Verses))
	}
	fmt.Fprintf(table, "\ncached %d of %d\n", cached, len(c.Chapters))
	return table.Flush()
}
