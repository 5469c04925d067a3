package httpapi

import (
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/dto"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/service"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func diaryEntryToDTO(e schema.DiaryEntry) dto.DiaryEntryDTO {
	activities := []string(e.Activities)
	if activities == nil {
		activities = []string{}
	}
	return dto.DiaryEntryDTO{
		ID:         e.ID,
		UserID:     e.UserID,
		Date:       e.Date,
		TimeOnline: e.TimeOnline,
		Mood:       string(e.Mood),
		Triggers:   e.Triggers,
		Activities: activities,
		CreatedAt:  formatTime(e.CreatedAt),
		UpdatedAt:  formatTime(e.UpdatedAt),
	}
}

func diaryEntriesToDTO(in []schema.DiaryEntry) []dto.DiaryEntryDTO {
	out := make([]dto.DiaryEntryDTO, 0, len(in))
	for _, e := range in {
		out = append(out, diaryEntryToDTO(e))
	}
	return out
}

func diaryStatsToDTO(st *service.DiaryStats) dto.DiaryStatsDTO {
	return dto.DiaryStatsDTO{
		TotalEntries:     st.TotalEntries,
		AvgTimeOnline:    st.AvgTimeOnline,
		MoodDistribution: st.MoodDistribution,
		RecentEntries:    diaryEntriesToDTO(st.RecentEntries),
	}
}

func achievementToDTO(a schema.Achievement) dto.AchievementDTO {
	return dto.AchievementDTO{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Requirement: dto.RequirementDTO{Type: a.Requirement.Type, Value: a.Requirement.Value},
	}
}

func achievementsToDTO(in []schema.Achievement) []dto.AchievementDTO {
	out := make([]dto.AchievementDTO, 0, len(in))
	for _, a := range in {
		out = append(out, achievementToDTO(a))
	}
	return out
}

func unlockedToDTO(in []schema.UnlockedAchievement) []dto.UnlockedAchievementDTO {
	out := make([]dto.UnlockedAchievementDTO, 0, len(in))
	for _, u := range in {
		item := dto.UnlockedAchievementDTO{
			ID:            u.ID,
			UserID:        u.UserID,
			AchievementID: u.AchievementID,
			UnlockedAt:    formatTime(u.UnlockedAt),
		}
		if u.Achievement != nil {
			a := achievementToDTO(*u.Achievement)
			item.Achievement = &a
		}
		out = append(out, item)
	}
	return out
}

func goalToDTO(g schema.Goal) dto.GoalDTO {
	out := dto.GoalDTO{
		ID:           g.ID,
		UserID:       g.UserID,
		Title:        g.Title,
		Description:  g.Description,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Frequency:    g.Frequency,
		StartDate:    g.StartDate,
		EndDate:      g.EndDate,
		IsCompleted:  g.IsCompleted,
	}
	if g.CompletedAt != nil {
		out.CompletedAt = formatTime(*g.CompletedAt)
	}
	return out
}

func goalsToDTO(in []schema.Goal) []dto.GoalDTO {
	out := make([]dto.GoalDTO, 0, len(in))
	for _, g := range in {
		out = append(out, goalToDTO(g))
	}
	return out
}
