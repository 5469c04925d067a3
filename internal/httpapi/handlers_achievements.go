package httpapi

import (
	"github.com/devsantx/Lacos-Digitais-Backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleCatalog(c *fiber.Ctx) error {
	items, err := s.core.Services.Achievements.Catalog(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, achievementsToDTO(items))
}

// handleCheckAchievements runs the evaluator on demand. The body is optional
// when a principal header is present.
func (s *Server) handleCheckAchievements(c *fiber.Ctx) error {
	var req dto.CheckAchievementsRequest
	if len(c.Body()) > 0 {
		if err := decodeBody(c, &req); err != nil {
			return s.fail(c, err)
		}
	}
	userID, err := resolveUser(c, req.UserID)
	if err != nil {
		return s.fail(c, err)
	}

	unlocked := s.core.Services.Achievements.Evaluate(c.UserContext(), userID)
	return ok(c, achievementsToDTO(unlocked))
}

func (s *Server) handleUserAchievements(c *fiber.Ctx) error {
	userID, err := pathInt64(c, "userId")
	if err != nil {
		return s.fail(c, err)
	}
	rows, err := s.core.Services.Achievements.ListUnlocked(c.UserContext(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, unlockedToDTO(rows))
}
