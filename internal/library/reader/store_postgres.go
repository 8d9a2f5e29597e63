// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/platform/database/schema"
	"github.com/taibuivan/tilawa/internal/platform/dberr"
	"github.com/taibuivan/tilawa/internal/platform/postgres"
)

// psql builds statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] over a pgx pool or transaction.
type PostgresRepository struct {
	db postgres.Querier

	// pool is nil when the repository is already bound to a transaction.
	pool postgres.TxQuerier
}

// NewPostgresRepository constructs a reader store on a pool.
func NewPostgresRepository(pool postgres.TxQuerier) *PostgresRepository {
	return &PostgresRepository{db: pool, pool: pool}
}

// WithTx implements [Repository]. Nested calls reuse the open transaction.
func (repository *PostgresRepository) WithTx(context context.Context, fn func(Repository) error) error {
	if repository.pool == nil {
		return fn(repository)
	}
	return postgres.WithTx(context, repository.pool, func(tx postgres.Querier) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// exec runs a built statement and returns the affected row count.
func (repository *PostgresRepository) exec(context context.Context, builder squirrel.Sqlizer, action string) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, dberr.Wrap(err, action)
	}

	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return tag.RowsAffected(), nil
}

// # Bookmarks

func (repository *PostgresRepository) AddBookmark(context context.Context, sessionID string, ref VerseRef) (bool, error) {
	table := schema.ReaderBookmark

	insert := psql.Insert(table.Table).
		Columns(table.SessionID, table.Chapter, table.Verse).
		Values(sessionID, ref.Chapter, ref.Verse).
		Suffix("ON CONFLICT (" + table.SessionID + ", " + table.Chapter + ", " + table.Verse + ") DO NOTHING")

	affected, err := repository.exec(context, insert, "add_bookmark")
	return affected == 1, err
}

func (repository *PostgresRepository) RemoveBookmark(context context.Context, sessionID string, ref VerseRef) (bool, error) {
	table := schema.ReaderBookmark

	remove := psql.Delete(table.Table).
		Where(squirrel.Eq{
			table.SessionID: sessionID,
			table.Chapter:   ref.Chapter,
			table.Verse:     ref.Verse,
		})

	affected, err := repository.exec(context, remove, "remove_bookmark")
	return affected == 1, err
}

/*
ListBookmarks returns one page of a session's bookmarks.

Description: The total is computed with a window function in the same
round-trip, so a page past the end reports a total of zero.
*/
func (repository *PostgresRepository) ListBookmarks(context context.Context, sessionID string, limit, offset int) ([]Bookmark, int, error) {
	table := schema.ReaderBookmark

	query, args, err := psql.Select(table.Columns()...).
		Column("COUNT(*) OVER() AS total_count").
		From(table.Table).
		Where(squirrel.Eq{table.SessionID: sessionID}).
		OrderBy(table.ID + " ASC").
		Limit(uint64(max(limit, 0))).
		Offset(uint64(max(offset, 0))).
		ToSql()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_bookmarks")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_bookmarks")
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	total := 0
	for rows.Next() {
		var bookmark Bookmark
		if err := rows.Scan(&bookmark.Chapter, &bookmark.Verse, &bookmark.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_bookmark")
		}
		bookmarks = append(bookmarks, bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_bookmarks")
	}

	return bookmarks, total, nil
}

// # Reading Positions

func (repository *PostgresRepository) SavePosition(context context.Context, sessionID string, ref VerseRef) (Position, error) {
	table := schema.ReaderReadingPosition

	query, args, err := psql.Insert(table.Table).
		Columns(table.SessionID, table.Chapter, table.Verse, table.UpdatedAt).
		Values(sessionID, ref.Chapter, ref.Verse, squirrel.Expr("now()")).
		Suffix("ON CONFLICT (" + table.SessionID + ", " + table.Chapter + ") DO UPDATE SET " +
			excluded(table.Verse, table.UpdatedAt) + " RETURNING " + table.UpdatedAt).
		ToSql()
	if err != nil {
		return Position{}, dberr.Wrap(err, "save_position")
	}

	var updatedAt time.Time
	if err := repository.db.QueryRow(context, query, args...).Scan(&updatedAt); err != nil {
		return Position{}, dberr.Wrap(err, "save_position")
	}
	return Position{Chapter: ref.Chapter, Verse: ref.Verse, UpdatedAt: &updatedAt}, nil
}

func (repository *PostgresRepository) ListPositions(context context.Context, sessionID string) ([]Position, error) {
	table := schema.ReaderReadingPosition

	query, args, err := psql.Select(table.Chapter, table.Verse, table.UpdatedAt).
		From(table.Table).
		Where(squirrel.Eq{table.SessionID: sessionID}).
		OrderBy(table.Chapter + " ASC").
		ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "list_positions")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_positions")
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var (
			position  Position
			updatedAt time.Time
		)
		if err := rows.Scan(&position.Chapter, &position.Verse, &updatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_position")
		}
		position.UpdatedAt = &updatedAt
		positions = append(positions, position)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_positions")
	}

	return positions, nil
}

func (repository *PostgresRepository) FindPosition(context context.Context, sessionID string, chapter int) (Position, error) {
	table := schema.ReaderReadingPosition

	query, args, err := psql.Select(table.Verse, table.UpdatedAt).
		From(table.Table).
		Where(squirrel.Eq{table.SessionID: sessionID, table.Chapter: chapter}).
		ToSql()
	if err != nil {
		return Position{}, dberr.Wrap(err, "find_position")
	}

	position := Position{Chapter: chapter}
	var updatedAt time.Time
	if err := repository.db.QueryRow(context, query, args...).Scan(&position.Verse, &updatedAt); err != nil {
		return Position{}, dberr.Wrap(err, "find_position")
	}
	position.UpdatedAt = &updatedAt
	return position, nil
}

// # Settings

func (repository *PostgresRepository) FindSettings(context context.Context, sessionID string) (Settings, error) {
	table := schema.ReaderSetting

	query, args, err := psql.Select(table.Columns()...).
		From(table.Table).
		Where(squirrel.Eq{table.SessionID: sessionID}).
		ToSql()
	if err != nil {
		return Settings{}, dberr.Wrap(err, "find_settings")
	}

	var (
		settings Settings
		repeat   string
	)
	err = repository.db.QueryRow(context, query, args...).Scan(
		&settings.Theme,
		&settings.ArabicSize,
		&settings.TranslationSize,
		&settings.ReciterID,
		&settings.ShowTranslation,
		&settings.AutoplayNext,
		&repeat,
	)
	if err != nil {
		return Settings{}, dberr.Wrap(err, "find_settings")
	}

	settings.Repeat = recitation.RepeatMode(repeat)
	return settings, nil
}

func (repository *PostgresRepository) SaveSettings(context context.Context, sessionID string, settings Settings) error {
	table := schema.ReaderSetting

	columns := append([]string{table.SessionID}, table.Columns()...)
	columns = append(columns, table.UpdatedAt)

	upsert := psql.Insert(table.Table).
		Columns(columns...).
		Values(
			sessionID,
			settings.Theme,
			settings.ArabicSize,
			settings.TranslationSize,
			settings.ReciterID,
			settings.ShowTranslation,
			settings.AutoplayNext,
			string(settings.Repeat),
			squirrel.Expr("now()"),
		).
		Suffix("ON CONFLICT (" + table.SessionID + ") DO UPDATE SET " +
			excluded(append(table.Columns(), table.UpdatedAt)...))

	_, err := repository.exec(context, upsert, "save_settings")
	return err
}

// excluded renders "col = EXCLUDED.col" assignments for an upsert.
func excluded(columns ...string) string {
	assignments := make([]string, len(columns))
	for index, column := range columns {
		assignments[index] = column + " = EXCLUDED." + column
	}
	return strings.Join(assignments, ", ")
}
