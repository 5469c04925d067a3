package httpapi

import (
	"strconv"
	"strings"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/dto"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleSubmitDiary(c *fiber.Ctx) error {
	var req dto.DiaryEntryRequest
	if err := decodeBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	userID, err := resolveUser(c, req.UserID)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.core.Services.Diary.SubmitEntry(c.UserContext(), service.DiaryInput{
		UserID:     userID,
		Date:       req.Date,
		TimeOnline: req.TimeOnline,
		Mood:       req.Mood,
		Triggers:   req.Triggers,
		Activities: req.Activities,
	})
	if err != nil {
		return s.fail(c, err)
	}

	env := dto.Envelope{
		Data:                 diaryEntryToDTO(res.Entry),
		UnlockedAchievements: achievementsToDTO(res.Unlocked),
	}
	if res.Created {
		env.Created = true
		env.Message = "diary entry created"
		return writeJSON(c, fiber.StatusCreated, env)
	}
	env.Updated = true
	env.Message = "diary entry updated"
	return writeJSON(c, fiber.StatusOK, env)
}

// handleUpdateDiary rewrites an entry by id. The owner is fixed; any
// user_id in the body is ignored.
func (s *Server) handleUpdateDiary(c *fiber.Ctx) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req dto.DiaryEntryRequest
	if err := decodeBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	res, err := s.core.Services.Diary.UpdateEntry(c.UserContext(), id, service.DiaryInput{
		Date:       req.Date,
		TimeOnline: req.TimeOnline,
		Mood:       req.Mood,
		Triggers:   req.Triggers,
		Activities: req.Activities,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return writeJSON(c, fiber.StatusOK, dto.Envelope{
		Message:              "diary entry updated",
		Data:                 diaryEntryToDTO(res.Entry),
		Updated:              true,
		UnlockedAchievements: achievementsToDTO(res.Unlocked),
	})
}

func (s *Server) handleListDiary(c *fiber.Ctx) error {
	userID, err := pathInt64(c, "userId")
	if err != nil {
		return s.fail(c, err)
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n <= 0 {
			return s.fail(c, &service.ValidationError{Fields: map[string]string{"limit": "must be a positive integer"}})
		}
		limit = n
	}

	entries, err := s.core.Services.Diary.ListEntries(c.UserContext(), userID, limit)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, diaryEntriesToDTO(entries))
}

func (s *Server) handleDiaryByDate(c *fiber.Ctx) error {
	userID, err := pathInt64(c, "userId")
	if err != nil {
		return s.fail(c, err)
	}
	entry, err := s.core.Services.Diary.GetEntryByDate(c.UserContext(), userID, c.Params("date"))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, diaryEntryToDTO(*entry))
}

func (s *Server) handleDiaryStats(c *fiber.Ctx) error {
	userID, err := pathInt64(c, "userId")
	if err != nil {
		return s.fail(c, err)
	}
	stats, err := s.core.Services.Diary.Stats(c.UserContext(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, diaryStatsToDTO(stats))
}

func (s *Server) handleDeleteDiary(c *fiber.Ctx) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.core.Services.Diary.DeleteEntry(c.UserContext(), id); err != nil {
		return s.fail(c, err)
	}
	return writeJSON(c, fiber.StatusOK, dto.Envelope{Message: "diary entry deleted"})
}
