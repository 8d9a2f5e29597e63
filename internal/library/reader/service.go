// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/dberr"
	"github.com/taibuivan/tilawa/internal/platform/validate"
	"github.com/taibuivan/tilawa/internal/quran"
	"github.com/taibuivan/tilawa/pkg/pagination"
)

// # Service Layer

// Service orchestrates bookmarks, reading positions and settings of a session.
type Service struct {
	repository Repository
	verses     VerseResolver
	reciters   ReciterDirectory
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its collaborators.
func NewService(repository Repository, verses VerseResolver, reciters ReciterDirectory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repository: repository,
		verses:     verses,
		reciters:   reciters,
		logger:     logger,
	}
}

// validateVerseRef checks the shape of a reference. No chapter is longer than
// [quran.MaxVerseCount]; whether the verse exists in its own chapter is
// resolved when bookmarks are listed.
func validateVerseRef(ref VerseRef) error {
	validator := &validate.Validator{}
	validator.Range("chapter", ref.Chapter, 1, quran.ChapterCount).
		Range("verse", ref.Verse, 1, quran.MaxVerseCount)
	return validator.Err()
}

// # Bookmarks

/*
ToggleBookmark adds the bookmark when absent and removes it when present.

Returns:
  - BookmarkState: The state after the toggle
  - error: Validation or storage failures
*/
func (service *Service) ToggleBookmark(context context.Context, sessionID string, ref VerseRef) (BookmarkState, error) {
	if err := validateVerseRef(ref); err != nil {
		return BookmarkState{}, err
	}

	state := BookmarkState{Chapter: ref.Chapter, Verse: ref.Verse}
	err := service.repository.WithTx(context, func(repository Repository) error {
		removed, err := repository.RemoveBookmark(context, sessionID, ref)
		if err != nil || removed {
			return err
		}

		state.Bookmarked, err = repository.AddBookmark(context, sessionID, ref)
		return err
	})
	if err != nil {
		return BookmarkState{}, fmt.Errorf("reader_toggle_bookmark_failed: %w", err)
	}

	return state, nil
}

/*
ListBookmarks returns a page of bookmarks in the order they were saved.

Description: Each bookmark carries its status against the current catalogue.
A lookup failure marks the bookmark unknown instead of failing the page.
*/
func (service *Service) ListBookmarks(context context.Context, sessionID string, page pagination.Params) ([]Bookmark, int, error) {
	bookmarks, total, err := service.repository.ListBookmarks(context, sessionID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("reader_list_bookmarks_failed: %w", err)
	}

	for index := range bookmarks {
		status, err := service.verses.VerseExists(context, bookmarks[index].Chapter, bookmarks[index].Verse)
		if err != nil {
			service.logger.WarnContext(context, "bookmark_resolve_failed",
				slog.Int("chapter", bookmarks[index].Chapter),
				slog.Any("error", err),
			)
			status = catalog.ResolutionUnknown
		}
		bookmarks[index].Status = status
	}

	return bookmarks, total, nil
}

// RemoveBookmark deletes one bookmark. A missing bookmark is a not found error.
func (service *Service) RemoveBookmark(context context.Context, sessionID string, ref VerseRef) error {
	if err := validateVerseRef(ref); err != nil {
		return err
	}

	removed, err := service.repository.RemoveBookmark(context, sessionID, ref)
	if err != nil {
		return fmt.Errorf("reader_remove_bookmark_failed: %w", err)
	}
	if !removed {
		return apperr.NotFound("Bookmark")
	}
	return nil
}

// # Reading Positions

// RecordPosition overwrites the last read verse of a chapter.
func (service *Service) RecordPosition(context context.Context, sessionID string, ref VerseRef) (Position, error) {
	if err := validateVerseRef(ref); err != nil {
		return Position{}, err
	}

	position, err := service.repository.SavePosition(context, sessionID, ref)
	if err != nil {
		return Position{}, fmt.Errorf("reader_record_position_failed: %w", err)
	}
	return position, nil
}

// Positions returns the last read verse keyed by chapter number.
func (service *Service) Positions(context context.Context, sessionID string) (map[int]int, error) {
	positions, err := service.repository.ListPositions(context, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reader_list_positions_failed: %w", err)
	}

	verses := make(map[int]int, len(positions))
	for _, position := range positions {
		verses[position.Chapter] = position.Verse
	}
	return verses, nil
}

// Position returns the last read verse of one chapter, or verse 1 when the
// chapter was never opened.
func (service *Service) Position(context context.Context, sessionID string, chapter int) (Position, error) {
	validator := &validate.Validator{}
	if err := validator.Range("chapter", chapter, 1, quran.ChapterCount).Err(); err != nil {
		return Position{}, err
	}

	position, err := service.repository.FindPosition(context, sessionID, chapter)
	if errors.Is(err, dberr.ErrNotFound) {
		return Position{Chapter: chapter, Verse: 1}, nil
	}
	if err != nil {
		return Position{}, fmt.Errorf("reader_find_position_failed: %w", err)
	}
	return position, nil
}

// # Settings

// Settings returns the stored preferences, or the defaults when none were saved.
func (service *Service) Settings(context context.Context, sessionID string) (Settings, error) {
	return service.settings(context, service.repository, sessionID)
}

func (service *Service) settings(context context.Context, repository Repository, sessionID string) (Settings, error) {
	settings, err := repository.FindSettings(context, sessionID)
	if errors.Is(err, dberr.ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reader_find_settings_failed: %w", err)
	}
	return settings, nil
}

/*
UpdateSettings applies a partial patch over the current preferences.

Description: The merged object is validated as a whole, so a stored value that
became invalid (a reciter removed from the catalogue) must be fixed in the
same patch.
*/
func (service *Service) UpdateSettings(context context.Context, sessionID string, patch SettingsPatch) (Settings, error) {
	var updated Settings

	err := service.repository.WithTx(context, func(repository Repository) error {
		current, err := service.settings(context, repository, sessionID)
		if err != nil {
			return err
		}

		updated = patch.Apply(current)
		if err := validateSettings(updated, service.reciters); err != nil {
			return err
		}

		return repository.SaveSettings(context, sessionID, updated)
	})
	if err != nil {
		return Settings{}, err
	}

	return updated, nil
}

// ResetSettings replaces the preferences with the defaults.
func (service *Service) ResetSettings(context context.Context, sessionID string) (Settings, error) {
	defaults := DefaultSettings()
	if err := service.repository.SaveSettings(context, sessionID, defaults); err != nil {
		return Settings{}, fmt.Errorf("reader_reset_settings_failed: %w", err)
	}
	return defaults, nil
}

// CycleRepeat advances the repeat mode: none, all, one, then none again.
func (service *Service) CycleRepeat(context context.Context, sessionID string) (Settings, error) {
	var updated Settings

	err := service.repository.WithTx(context, func(repository Repository) error {
		current, err := service.settings(context, repository, sessionID)
		if err != nil {
			return err
		}

		updated = current
		updated.Repeat = current.Repeat.Next()
		return repository.SaveSettings(context, sessionID, updated)
	})
	if err != nil {
		return Settings{}, fmt.Errorf("reader_cycle_repeat_failed: %w", err)
	}

	return updated, nil
}

// # Import

/*
Import merges a browser storage snapshot into the session.

Description: Bookmarks already saved are left alone, positions in the
snapshot overwrite stored ones and settings are patched. Everything is
written in one transaction.

Returns:
  - ImportReport: What was written and how many values were skipped
  - error: Storage failures
*/
func (service *Service) Import(context context.Context, sessionID string, snapshot Snapshot) (ImportReport, error) {
	plan := snapshot.Plan()

	if reciter := plan.Settings.ReciterID; reciter != nil {
		if _, ok := service.reciters.Get(*reciter); !ok {
			plan.Settings.ReciterID = nil
			plan.Skipped++
		}
	}

	report := ImportReport{Skipped: plan.Skipped}

	err := service.repository.WithTx(context, func(repository Repository) error {
		for _, ref := range plan.Bookmarks {
			added, err := repository.AddBookmark(context, sessionID, ref)
			if err != nil {
				return err
			}
			if added {
				report.Bookmarks++
			}
		}

		for _, ref := range plan.Positions {
			if _, err := repository.SavePosition(context, sessionID, ref); err != nil {
				return err
			}
			report.Positions++
		}

		if plan.Settings.Empty() {
			return nil
		}

		current, err := service.settings(context, repository, sessionID)
		if err != nil {
			return err
		}
		if err := repository.SaveSettings(context, sessionID, plan.Settings.Apply(current)); err != nil {
			return err
		}
		report.Settings = true
		return nil
	})
	if err != nil {
		return ImportReport{}, fmt.Errorf("reader_import_failed: %w", err)
	}

	service.logger.InfoContext(context, "reader_import_applied",
		slog.Int("bookmarks", report.Bookmarks),
		slog.Int("positions", report.Positions),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}
