// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data embeds the SQL migrations so the binary can migrate without
// a checkout of this directory.
package data

import "embed"

// MigrationsDir is the directory of [Migrations] holding the .sql files.
const MigrationsDir = "migrations"

// Migrations holds the golang-migrate files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
