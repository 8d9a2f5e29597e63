// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli holds the commands of the tilawa binary.

Every command works offline except fetch, which reads through the configured
upstream. Output goes to [Globals.Stdout] so the commands can be driven from
tests.
*/
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/quran/normalize"
)

// Globals are bound into every command's Run method.
type Globals struct {
	Stdout io.Writer
	Logger *slog.Logger
}

// CLI is the kong command tree.
type CLI struct {
	Debug bool `name:"debug" help:"Log at debug level to stderr"`

	Normalize NormalizeCmd `cmd:"" help:"Normalize a chapter payload file into canonical JSON"`
	Annotate  AnnotateCmd  `cmd:"" help:"Annotate Arabic text with tajwid markup"`
	Audio     AudioCmd     `cmd:"" help:"Print the audio locator of a verse"`
	Reciters  RecitersCmd  `cmd:"" help:"List the reciter catalogue"`
	Fetch     FetchCmd     `cmd:"" help:"Fetch chapters from the upstream and print a summary"`
}

// New builds the kong parser over cli. Extra options are appended last.
func New(cli *CLI, globals *Globals, options ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("tilawa"),
		kong.Description("Quran chapter normalizer, tajwid annotator and recitation tooling"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Bind(globals),
		kong.Vars{"audio_base_url": recitation.DefaultBaseURL},
	}
	return kong.New(cli, append(base, options...)...)
}

// # Shared Helpers

func writeJSON(writer io.Writer, value any, pretty bool) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(value)
}

// normalizer returns the default normalizer or one over an alias file.
func normalizer(aliasesPath string) (*normalize.Normalizer, error) {
	if aliasesPath == "" {
		return normalize.Default(), nil
	}
	aliases, err := normalize.LoadAliasesFile(aliasesPath)
	if err != nil {
		return nil, err
	}
	return normalize.New(aliases), nil
}

// reciters returns the built-in reciter list or the one in path.
func reciters(path, baseURL string) (*recitation.Catalog, error) {
	if path == "" {
		return recitation.DefaultCatalog(baseURL)
	}
	return recitation.LoadCatalogFile(path, baseURL)
}

// decodeFile reads one JSON payload from path, or stdin for "-".
func decodeFile(path string) (any, error) {
	if path == "-" {
		return normalize.Decode(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payload: %w", err)
	}
	defer file.Close()

	return normalize.Decode(file)
}
