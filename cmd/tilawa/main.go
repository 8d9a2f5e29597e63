// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command tilawa is the offline companion of the API: it normalizes payload
// files, annotates text, prints audio locators and probes the upstream.
package main

import (
	"log/slog"
	"os"

	"github.com/taibuivan/tilawa/internal/cli"
	"github.com/taibuivan/tilawa/internal/platform/constants"
)

func main() {
	var command cli.CLI
	globals := &cli.Globals{Stdout: os.Stdout}

	parser, err := cli.New(&command, globals)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	level := slog.LevelWarn
	if command.Debug {
		level = slog.LevelDebug
	}
	globals.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, "tilawa-cli"))

	ctx.FatalIfErrorf(ctx.Run())
}
