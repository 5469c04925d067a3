package httpapi

import (
	"github.com/devsantx/Lacos-Digitais-Backend/internal/dto"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleCreateGoal(c *fiber.Ctx) error {
	var req dto.GoalRequest
	if err := decodeBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	userID, err := resolveUser(c, req.UserID)
	if err != nil {
		return s.fail(c, err)
	}

	goal, err := s.core.Services.Goals.CreateGoal(c.UserContext(), service.GoalInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
		Frequency:   req.Frequency,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return writeJSON(c, fiber.StatusCreated, dto.Envelope{Data: goalToDTO(*goal), Created: true})
}

func (s *Server) handleListGoals(c *fiber.Ctx) error {
	userID, err := pathInt64(c, "userId")
	if err != nil {
		return s.fail(c, err)
	}
	goals, err := s.core.Services.Goals.ListGoals(c.UserContext(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, goalsToDTO(goals))
}

func (s *Server) handleGoalProgress(c *fiber.Ctx) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req dto.GoalProgressRequest
	if err := decodeBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	if req.CurrentValue == nil {
		return s.fail(c, &service.ValidationError{Fields: map[string]string{"current_value": "is required"}})
	}

	res, err := s.core.Services.Goals.UpdateProgress(c.UserContext(), id, *req.CurrentValue)
	if err != nil {
		return s.fail(c, err)
	}
	return writeJSON(c, fiber.StatusOK, dto.Envelope{
		Data:                 goalToDTO(res.Goal),
		Updated:              true,
		UnlockedAchievements: achievementsToDTO(res.Unlocked),
	})
}
