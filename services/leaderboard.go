package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"task-gamification-system/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Leaderboard dimensions
const (
	BoardPoints = "points" // lifetime points earned
	BoardStreak = "streak" // current streak
	BoardTasks  = "tasks"  // completed-task count
)

// LeaderboardEntry is one ranked row. Ranks are dense, 1..N in sort order;
// ties keep their stable input order.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int64  `json:"score"`
}

// LeaderboardService builds read-only ranking views over UserProgress. The
// optional Redis client caches the global boards for a short window; with a
// nil client every read goes to the database.
type LeaderboardService struct {
	DB    *gorm.DB
	Redis *redis.Client
}

const leaderboardCacheTTL = 30 * time.Second

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{DB: db, Redis: rdb}
}

func boardColumn(board string) (string, error) {
	switch board {
	case BoardPoints:
		return "total_points_earned", nil
	case BoardStreak:
		return "current_streak", nil
	case BoardTasks:
		return "tasks_completed", nil
	default:
		return "", ErrUnknownBoard
	}
}

func scoreOf(board string, prog *models.UserProgress) int64 {
	switch board {
	case BoardStreak:
		return int64(prog.CurrentStreak)
	case BoardTasks:
		return prog.TasksCompleted
	default:
		return prog.TotalPointsEarned
	}
}

// Global returns the top-N across all users.
func (s *LeaderboardService) Global(board string, limit int) ([]LeaderboardEntry, error) {
	col, err := boardColumn(board)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	if cached, ok := s.cacheGet(board, limit); ok {
		return cached, nil
	}

	var rows []models.UserProgress
	if err := s.DB.Order(col + " DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := s.rank(board, rows)
	s.cacheSet(board, limit, entries)
	return entries, nil
}

// Family returns the ranking within one family. Callers outside the family
// get an authorization failure, never an empty list.
func (s *LeaderboardService) Family(callerID, familyID, board string, limit int) ([]LeaderboardEntry, error) {
	col, err := boardColumn(board)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var membership int64
	s.DB.Model(&models.FamilyMember{}).
		Where("family_id = ? AND external_user_id = ?", familyID, callerID).
		Count(&membership)
	if membership == 0 {
		return nil, ErrNotFamilyMember
	}

	var memberIDs []string
	if err := s.DB.Model(&models.FamilyMember{}).
		Where("family_id = ?", familyID).
		Pluck("external_user_id", &memberIDs).Error; err != nil {
		return nil, err
	}

	var rows []models.UserProgress
	if err := s.DB.Where("external_user_id IN ?", memberIDs).
		Order(col + " DESC").Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return s.rank(board, rows), nil
}

// MyFamilies ranks the union of members across every family the caller
// belongs to, deduplicated per user.
func (s *LeaderboardService) MyFamilies(callerID, board string, limit int) ([]LeaderboardEntry, error) {
	if _, err := boardColumn(board); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var familyIDs []string
	if err := s.DB.Model(&models.FamilyMember{}).
		Where("external_user_id = ?", callerID).
		Pluck("family_id", &familyIDs).Error; err != nil {
		return nil, err
	}
	if len(familyIDs) == 0 {
		return []LeaderboardEntry{}, nil
	}

	var memberIDs []string
	if err := s.DB.Model(&models.FamilyMember{}).
		Where("family_id IN ?", familyIDs).
		Distinct("external_user_id").
		Pluck("external_user_id", &memberIDs).Error; err != nil {
		return nil, err
	}

	var rows []models.UserProgress
	if err := s.DB.Where("external_user_id IN ?", memberIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	// Stable sort keeps tie order deterministic for dense ranking.
	sort.SliceStable(rows, func(i, j int) bool {
		return scoreOf(board, &rows[i]) > scoreOf(board, &rows[j])
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return s.rank(board, rows), nil
}

// rank assigns dense ranks in input order and resolves display names from
// the mirrored user directory.
func (s *LeaderboardService) rank(board string, rows []models.UserProgress) []LeaderboardEntry {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ExternalUserID)
	}

	names := map[string]string{}
	if len(ids) > 0 {
		var users []models.DirectoryUser
		if err := s.DB.Where("external_user_id IN ?", ids).Find(&users).Error; err == nil {
			for _, u := range users {
				names[u.ExternalUserID] = u.Username
			}
		}
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		username := names[r.ExternalUserID]
		if username == "" {
			username = r.ExternalUserID // directory lag: fall back to the raw ID
		}
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			UserID:   r.ExternalUserID,
			Username: username,
			Score:    scoreOf(board, &r),
		})
	}
	return entries
}

func (s *LeaderboardService) cacheKey(board string, limit int) string {
	return fmt.Sprintf("leaderboard:global:%s:%d", board, limit)
}

func (s *LeaderboardService) cacheGet(board string, limit int) ([]LeaderboardEntry, bool) {
	if s.Redis == nil {
		return nil, false
	}
	data, err := s.Redis.Get(context.Background(), s.cacheKey(board, limit)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *LeaderboardService) cacheSet(board string, limit int, entries []LeaderboardEntry) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), s.cacheKey(board, limit), data, leaderboardCacheTTL).Err(); err != nil {
		log.Printf("[LEADERBOARD] cache write failed: %v", err)
	}
}
