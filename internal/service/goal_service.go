package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

// GoalInput is an unvalidated goal definition.
type GoalInput struct {
	UserID      int64
	Title       string
	Description string
	TargetValue int
	Frequency   string
	StartDate   string
	EndDate     string
}

// GoalResult is a goal after a progress update plus what it unlocked.
type GoalResult struct {
	Goal     schema.Goal
	Unlocked []schema.Achievement
}

var goalFrequencies = map[string]struct{}{
	"":        {},
	"daily":   {},
	"weekly":  {},
	"monthly": {},
}

// GoalService manages goals and their one-way completion.
type GoalService struct {
	repo      GoalRepository
	evaluator Evaluator
	pub       Publisher
	now       func() time.Time
}

// NewGoalService creates the service. evaluator and pub may be nil.
func NewGoalService(repo GoalRepository, evaluator Evaluator, pub Publisher) *GoalService {
	return &GoalService{repo: repo, evaluator: evaluator, pub: pub, now: time.Now}
}

// CreateGoal validates and stores a new goal with zero progress.
func (s *GoalService) CreateGoal(ctx context.Context, in GoalInput) (*schema.Goal, error) {
	verr := &ValidationError{}
	goal := schema.Goal{
		UserID:      in.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		TargetValue: in.TargetValue,
		Frequency:   strings.ToLower(strings.TrimSpace(in.Frequency)),
	}

	if in.UserID <= 0 {
		verr.add("user_id", "must be a positive integer")
	}
	if goal.Title == "" {
		verr.add("title", "is required")
	}
	if in.TargetValue <= 0 {
		verr.add("target_value", "must be greater than 0")
	}
	if _, ok := goalFrequencies[goal.Frequency]; !ok {
		verr.add("frequency", "must be daily, weekly or monthly")
	}

	goal.StartDate = s.now().Format(schema.DateLayout)
	if strings.TrimSpace(in.StartDate) != "" {
		d, err := ParseDate(in.StartDate)
		if err != nil {
			verr.add("start_date", err.Error())
		} else {
			goal.StartDate = d
		}
	}
	if strings.TrimSpace(in.EndDate) != "" {
		d, err := ParseDate(in.EndDate)
		switch {
		case err != nil:
			verr.add("end_date", err.Error())
		case d < goal.StartDate:
			verr.add("end_date", "must not be before start_date")
		default:
			goal.EndDate = d
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &goal); err != nil {
		return nil, persistence("create goal", err)
	}
	return &goal, nil
}

// ListGoals returns the user's goals, newest first.
func (s *GoalService) ListGoals(ctx context.Context, userID int64) ([]schema.Goal, error) {
	if userID <= 0 {
		return nil, newValidationError("user_id", "must be a positive integer")
	}
	goals, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistence("list goals", err)
	}
	if goals == nil {
		goals = []schema.Goal{}
	}
	return goals, nil
}

// UpdateProgress stores a new current value. Reaching the target marks the
// goal completed once; falling back below it keeps the completion.
func (s *GoalService) UpdateProgress(ctx context.Context, goalID int64, currentValue int) (*GoalResult, error) {
	if goalID <= 0 {
		return nil, newValidationError("id", "must be a positive integer")
	}
	if currentValue < 0 {
		return nil, newValidationError("current_value", "must not be negative")
	}

	goal, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return nil, persistence("find goal", err)
	}
	if goal == nil {
		return nil, &NotFoundError{Resource: "goal", ID: strconv.FormatInt(goalID, 10)}
	}

	goal.CurrentValue = currentValue
	justCompleted := false
	if !goal.IsCompleted && currentValue >= goal.TargetValue {
		now := s.now()
		goal.IsCompleted = true
		goal.CompletedAt = &now
		justCompleted = true
	}

	if err := s.repo.SaveProgress(ctx, goal); err != nil {
		return nil, persistence("update goal progress", err)
	}

	if s.pub != nil {
		s.pub.Publish(eventbus.Event{
			Type: eventbus.TypeGoalUpdated,
			Data: map[string]any{
				"user_id":        goal.UserID,
				"goal_id":        goal.ID,
				"current_value":  goal.CurrentValue,
				"just_completed": justCompleted,
			},
		})
	}

	unlocked := []schema.Achievement{}
	if s.evaluator != nil {
		unlocked = s.evaluator.Evaluate(ctx, goal.UserID)
	}
	return &GoalResult{Goal: *goal, Unlocked: unlocked}, nil
}
