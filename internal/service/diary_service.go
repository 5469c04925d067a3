package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/repository"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

const (
	defaultDiaryListLimit = 30
	maxDiaryListLimit     = 366
	statsRecentEntries    = 7
)

// DiaryInput is an unvalidated diary submission. TimeOnline holds the raw
// decoded JSON value (number or string).
type DiaryInput struct {
	UserID     int64
	Date       string
	TimeOnline any
	Mood       string
	Triggers   string
	Activities []string
}

// SubmitResult tells whether the entry was inserted or overwritten and
// which achievements the write unlocked.
type SubmitResult struct {
	Entry    schema.DiaryEntry
	Created  bool
	Unlocked []schema.Achievement
}

// DiaryStats summarizes a user's diary.
type DiaryStats struct {
	TotalEntries     int                 `json:"total_entries"`
	AvgTimeOnline    float64             `json:"avg_time_online"`
	MoodDistribution map[string]int      `json:"mood_distribution"`
	RecentEntries    []schema.DiaryEntry `json:"recent_entries"`
}

// DiaryService keeps one entry per user per calendar day.
type DiaryService struct {
	repo      DiaryRepository
	evaluator Evaluator
	pub       Publisher
}

// NewDiaryService creates the service. evaluator and pub may be nil.
func NewDiaryService(repo DiaryRepository, evaluator Evaluator, pub Publisher) *DiaryService {
	return &DiaryService{repo: repo, evaluator: evaluator, pub: pub}
}

func (in DiaryInput) validate() (schema.DiaryEntry, error) {
	verr := &ValidationError{}
	entry := schema.DiaryEntry{
		UserID:     in.UserID,
		Triggers:   in.Triggers,
		Activities: copyActivities(in.Activities),
	}

	if in.UserID <= 0 {
		verr.add("user_id", "must be a positive integer")
	}
	if d, err := ParseDate(in.Date); err != nil {
		verr.add("date", err.Error())
	} else {
		entry.Date = d
	}
	if h, err := ParseTimeOnline(in.TimeOnline); err != nil {
		verr.add("time_online", err.Error())
	} else {
		entry.TimeOnline = h
	}
	if m, err := ParseMood(in.Mood); err != nil {
		verr.add("mood", err.Error())
	} else {
		entry.Mood = m
	}

	return entry, verr.orNil()
}

// SubmitEntry creates or overwrites the (user, date) entry, then runs the
// achievement evaluator. Evaluation never fails the write.
func (s *DiaryService) SubmitEntry(ctx context.Context, in DiaryInput) (*SubmitResult, error) {
	entry, err := in.validate()
	if err != nil {
		return nil, err
	}

	created, err := s.upsert(ctx, &entry)
	if err != nil {
		return nil, err
	}

	slog.Debug("diary entry saved", "user_id", entry.UserID, "date", entry.Date, "created", created)
	if s.pub != nil {
		s.pub.Publish(eventbus.Event{
			Type: eventbus.TypeDiarySaved,
			Data: map[string]any{"user_id": entry.UserID, "date": entry.Date, "created": created},
		})
	}

	unlocked := []schema.Achievement{}
	if s.evaluator != nil {
		unlocked = s.evaluator.Evaluate(ctx, entry.UserID)
	}

	return &SubmitResult{Entry: entry, Created: created, Unlocked: unlocked}, nil
}

func (s *DiaryService) upsert(ctx context.Context, entry *schema.DiaryEntry) (bool, error) {
	existing, err := s.repo.FindByUserAndDate(ctx, entry.UserID, entry.Date)
	if err != nil {
		return false, persistence("find diary entry", err)
	}
	if existing != nil {
		return false, s.overwrite(ctx, existing, entry)
	}

	createErr := s.repo.Create(ctx, entry)
	if createErr == nil {
		return true, nil
	}
	if !errors.Is(createErr, repository.ErrDuplicate) {
		return false, persistence("create diary entry", createErr)
	}

	// lost the race for this date: update the winner's row instead
	existing, err = s.repo.FindByUserAndDate(ctx, entry.UserID, entry.Date)
	if err != nil {
		return false, persistence("find diary entry", err)
	}
	if existing == nil {
		return false, persistence("create diary entry", createErr)
	}
	return false, s.overwrite(ctx, existing, entry)
}

func (s *DiaryService) overwrite(ctx context.Context, existing, entry *schema.DiaryEntry) error {
	existing.TimeOnline = entry.TimeOnline
	existing.Mood = entry.Mood
	existing.Triggers = entry.Triggers
	existing.Activities = entry.Activities
	if err := s.repo.UpdateContent(ctx, existing); err != nil {
		return persistence("update diary entry", err)
	}
	*entry = *existing
	return nil
}

// UpdateEntry replaces the date and content of an existing entry under the
// same rules as SubmitEntry. The owner never changes; moving onto a date the
// owner already has is a ConflictError.
func (s *DiaryService) UpdateEntry(ctx context.Context, id int64, in DiaryInput) (*SubmitResult, error) {
	if id <= 0 {
		return nil, newValidationError("id", "must be a positive integer")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistence("find diary entry", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Resource: "diary entry", ID: strconv.FormatInt(id, 10)}
	}

	in.UserID = existing.UserID
	entry, err := in.validate()
	if err != nil {
		return nil, err
	}
	entry.ID = existing.ID

	if err := s.repo.Update(ctx, &entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Msg: fmt.Sprintf("user %d already has a diary entry on %s", entry.UserID, entry.Date)}
		}
		return nil, persistence("update diary entry", err)
	}

	if s.pub != nil {
		s.pub.Publish(eventbus.Event{
			Type: eventbus.TypeDiarySaved,
			Data: map[string]any{"user_id": entry.UserID, "date": entry.Date, "created": false},
		})
	}

	unlocked := []schema.Achievement{}
	if s.evaluator != nil {
		unlocked = s.evaluator.Evaluate(ctx, entry.UserID)
	}
	return &SubmitResult{Entry: entry, Unlocked: unlocked}, nil
}

// ListEntries returns the user's entries, newest first. limit <= 0 means
// the default page size.
func (s *DiaryService) ListEntries(ctx context.Context, userID int64, limit int) ([]schema.DiaryEntry, error) {
	if userID <= 0 {
		return nil, newValidationError("user_id", "must be a positive integer")
	}
	if limit <= 0 {
		limit = defaultDiaryListLimit
	}
	if limit > maxDiaryListLimit {
		limit = maxDiaryListLimit
	}
	entries, err := s.repo.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, persistence("list diary entries", err)
	}
	if entries == nil {
		entries = []schema.DiaryEntry{}
	}
	return entries, nil
}

// GetEntryByDate returns the entry for one day or a NotFoundError.
func (s *DiaryService) GetEntryByDate(ctx context.Context, userID int64, date string) (*schema.DiaryEntry, error) {
	verr := &ValidationError{}
	if userID <= 0 {
		verr.add("user_id", "must be a positive integer")
	}
	d, err := ParseDate(date)
	if err != nil {
		verr.add("date", err.Error())
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByUserAndDate(ctx, userID, d)
	if err != nil {
		return nil, persistence("find diary entry", err)
	}
	if entry == nil {
		return nil, &NotFoundError{Resource: "diary entry", ID: d}
	}
	return entry, nil
}

// DeleteEntry removes an entry by id. The ledger is untouched.
func (s *DiaryService) DeleteEntry(ctx context.Context, id int64) error {
	if id <= 0 {
		return newValidationError("id", "must be a positive integer")
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return persistence("delete diary entry", err)
	}
	if !ok {
		return &NotFoundError{Resource: "diary entry", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Stats aggregates the user's whole diary.
func (s *DiaryService) Stats(ctx context.Context, userID int64) (*DiaryStats, error) {
	if userID <= 0 {
		return nil, newValidationError("user_id", "must be a positive integer")
	}
	entries, err := s.repo.ListRecentByUser(ctx, userID, 0)
	if err != nil {
		return nil, persistence("list diary entries", err)
	}

	stats := &DiaryStats{
		MoodDistribution: make(map[string]int),
		RecentEntries:    []schema.DiaryEntry{},
	}
	if len(entries) == 0 {
		return stats, nil
	}

	total := 0
	for _, e := range entries {
		total += e.TimeOnline
		stats.MoodDistribution[string(e.Mood)]++
	}
	stats.TotalEntries = len(entries)
	stats.AvgTimeOnline = math.Round(float64(total)/float64(len(entries))*100) / 100

	n := statsRecentEntries
	if len(entries) < n {
		n = len(entries)
	}
	stats.RecentEntries = entries[:n]
	return stats, nil
}
