package services

import (
	"math"
	"strings"
	"time"

	"task-gamification-system/models"
)

// Point bases and multiplier tables. These are tunable configuration, not
// engine logic: the calculator only chains whatever the tables say.
const (
	BaseTaskPoints           = 10.0
	BaseFocusPointsPerMinute = 1.0
	BaseDailyLoginPoints     = 5.0
	StreakMaintenanceBonus   = 2 // flat addend on daily-login claims
)

// Difficulty scale task priority is mapped onto
type Difficulty string

const (
	DifficultyLow      Difficulty = "low"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHigh     Difficulty = "high"
	DifficultyCritical Difficulty = "critical"
	DifficultyExpert   Difficulty = "expert"
)

var DifficultyMultipliers = map[Difficulty]float64{
	DifficultyLow:      0.8,
	DifficultyMedium:   1.0,
	DifficultyHigh:     1.3,
	DifficultyCritical: 1.6,
	DifficultyExpert:   2.0,
}

// Separate table: priority is what the task carries, difficulty is what it
// maps onto. Both factors apply.
var PriorityMultipliers = map[string]float64{
	"low":      0.9,
	"medium":   1.0,
	"high":     1.2,
	"urgent":   1.4,
	"critical": 1.5,
}

const (
	earlyCompletionFactor = 1.2
	lateCompletionFactor  = 0.8
	earlyBirdFactor       = 1.1  // before 09:00 UTC
	nightOwlFactor        = 1.15 // at/after 22:00 UTC
	collaborationFactor   = 1.25 // task linked to a family
	weekendFactor         = 1.1
	newYearFactor         = 1.15 // all of January
	maxStreakMultiplier   = 1.5
	maxLoginMultiplier    = 2.0
)

// TaskPointContext carries everything the task-completion chain needs.
type TaskPointContext struct {
	Priority         string
	DueDate          *time.Time
	CompletedAt      time.Time
	HasFamilyLink    bool
	CurrentStreak    int
	WeeklyActiveDays int
}

// priorityToDifficulty maps the task priority scale onto the difficulty
// scale; unknown values land on medium.
func priorityToDifficulty(priority string) Difficulty {
	switch strings.ToLower(priority) {
	case "critical":
		return DifficultyExpert
	case "high":
		return DifficultyHigh
	case "low":
		return DifficultyLow
	case "medium":
		return DifficultyMedium
	default:
		return DifficultyMedium
	}
}

func streakMultiplier(streak int) float64 {
	m := 1.0 + 0.05*float64(streak)
	if m > maxStreakMultiplier {
		return maxStreakMultiplier
	}
	return m
}

func weeklyConsistencyMultiplier(activeDays int) float64 {
	switch {
	case activeDays >= 7:
		return 1.2
	case activeDays >= 5:
		return 1.15
	case activeDays >= 3:
		return 1.1
	default:
		return 1.0
	}
}

// seasonalMultiplier applies calendar bonuses regardless of activity type.
func seasonalMultiplier(at time.Time) float64 {
	m := 1.0
	switch at.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		m *= weekendFactor
	}
	if at.UTC().Month() == time.January {
		m *= newYearFactor
	}
	return m
}

func timeOfDayMultiplier(at time.Time) float64 {
	hour := at.UTC().Hour()
	if hour < 9 {
		return earlyBirdFactor
	}
	if hour >= 22 {
		return nightOwlFactor
	}
	return 1.0
}

// ComputeTaskPoints runs the full multiplier chain for a completed task.
// Factors accumulate on a float and round once at the end.
func ComputeTaskPoints(ctx TaskPointContext) int64 {
	pts := BaseTaskPoints

	pts *= DifficultyMultipliers[priorityToDifficulty(ctx.Priority)]
	if m, ok := PriorityMultipliers[strings.ToLower(ctx.Priority)]; ok {
		pts *= m
	}

	if ctx.DueDate != nil {
		due := ctx.DueDate.UTC()
		done := ctx.CompletedAt.UTC()
		if done.Before(due) {
			pts *= earlyCompletionFactor
		} else if done.After(due) {
			pts *= lateCompletionFactor
		}
	}

	pts *= timeOfDayMultiplier(ctx.CompletedAt)

	if ctx.HasFamilyLink {
		pts *= collaborationFactor
	}

	pts *= streakMultiplier(ctx.CurrentStreak)
	pts *= weeklyConsistencyMultiplier(ctx.WeeklyActiveDays)
	pts *= seasonalMultiplier(ctx.CompletedAt)

	return int64(math.Round(pts))
}

// FocusPointContext carries the focus-session chain inputs.
type FocusPointContext struct {
	DurationMinutes    int
	Completed          bool
	CompletedYesterday bool // a completed session on the previous UTC day
	CurrentStreak      int
	WeeklyActiveDays   int
	EndedAt            time.Time
}

func focusDurationMultiplier(minutes int) float64 {
	switch {
	case minutes >= 50:
		return 1.5
	case minutes >= 25:
		return 1.2
	case minutes >= 15:
		return 1.0
	default:
		return 0.8
	}
}

// ComputeFocusPoints values a finished focus session. Abandoned sessions
// award nothing.
func ComputeFocusPoints(ctx FocusPointContext) int64 {
	if !ctx.Completed || ctx.DurationMinutes <= 0 {
		return 0
	}

	pts := BaseFocusPointsPerMinute * float64(ctx.DurationMinutes)
	pts *= focusDurationMultiplier(ctx.DurationMinutes)
	if ctx.CompletedYesterday {
		pts *= 1.1
	}
	pts *= streakMultiplier(ctx.CurrentStreak)
	pts *= weeklyConsistencyMultiplier(ctx.WeeklyActiveDays)
	pts *= seasonalMultiplier(ctx.EndedAt)

	return int64(math.Round(pts))
}

// ComputeDailyLoginPoints uses only the streak multiplier, capped lower than
// the general chain, plus a flat maintenance addend. Long streaks get
// deliberate haircuts so a low-effort activity cannot dominate the reward
// curve.
func ComputeDailyLoginPoints(streak int) int64 {
	if streak < 1 {
		streak = 1
	}

	m := 1.0 + 0.05*float64(streak)
	if m > maxLoginMultiplier {
		m = maxLoginMultiplier
	}

	pts := BaseDailyLoginPoints * m
	switch {
	case streak > 100:
		pts *= 0.25
	case streak > 30:
		pts *= 0.5
	}

	return int64(math.Round(pts)) + StreakMaintenanceBonus
}

// Achievement unlock values come from an independent difficulty table, with
// a small category factor on top — not from the activity chain.
var achievementDifficultyValues = map[models.AchievementDifficulty]float64{
	models.DifficultyBronze:   50,
	models.DifficultySilver:   100,
	models.DifficultyGold:     200,
	models.DifficultyPlatinum: 350,
	models.DifficultyDiamond:  600,
	models.DifficultyOnyx:     1000,
}

var achievementCategoryFactors = map[models.AchievementCategory]float64{
	models.CategorySeasonal:  1.25,
	models.CategoryMilestone: 1.1,
}

// AchievementPointValue returns the explicit catalog value when set,
// otherwise the difficulty table value scaled by the category factor.
func AchievementPointValue(a *models.Achievement) int64 {
	if a.PointValue > 0 {
		return a.PointValue
	}
	v := achievementDifficultyValues[a.Difficulty]
	if f, ok := achievementCategoryFactors[a.Category]; ok {
		v *= f
	}
	return int64(math.Round(v))
}

var badgeRarityValues = map[models.BadgeRarity]int64{
	models.RarityCommon:    25,
	models.RarityRare:      75,
	models.RarityEpic:      150,
	models.RarityLegendary: 300,
}

// BadgePointValue returns the explicit badge value when set, otherwise the
// rarity table value.
func BadgePointValue(b *models.Badge) int64 {
	if b.PointValue > 0 {
		return b.PointValue
	}
	return badgeRarityValues[b.Rarity]
}
