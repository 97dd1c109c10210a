package services

import (
	"testing"

	"task-gamification-system/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB spins up an in-memory SQLite database with the full schema.
// Single connection: every goroutine sees the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.UserProgress{},
		&models.PointTransaction{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Reward{},
		&models.UserReward{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.ChallengeProgress{},
		&models.Task{},
		&models.FocusSession{},
		&models.Family{},
		&models.FamilyMember{},
		&models.DirectoryUser{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// testEngine wires the full service graph against one test database, with
// notifications disabled.
type testEngine struct {
	db           *gorm.DB
	tier         *TierService
	ledger       *LedgerService
	achievements *AchievementService
	streak       *StreakService
	badges       *BadgeService
	challenges   *ChallengeService
	rewards      *RewardService
	leaderboard  *LeaderboardService
	character    *CharacterService
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	db := newTestDB(t)
	if err := SeedCatalogs(db); err != nil {
		t.Fatalf("failed to seed catalogs: %v", err)
	}

	tier := NewTierService(db, nil)
	ledger := NewLedgerService(db, tier, nil)
	achievements := NewAchievementService(db, ledger, nil)
	badges := NewBadgeService(db, ledger, nil)

	return &testEngine{
		db:           db,
		tier:         tier,
		ledger:       ledger,
		achievements: achievements,
		streak:       NewStreakService(db, nil, achievements),
		badges:       badges,
		challenges:   NewChallengeService(db, ledger, badges, achievements),
		rewards:      NewRewardService(db, nil),
		leaderboard:  NewLeaderboardService(db, nil),
		character:    NewCharacterService(db, ledger, nil),
	}
}

func (e *testEngine) progress(t *testing.T, userID string) *models.UserProgress {
	t.Helper()
	prog, err := e.ledger.EnsureProgress(userID)
	if err != nil {
		t.Fatalf("failed to load progress for %s: %v", userID, err)
	}
	return prog
}

func (e *testEngine) txCount(t *testing.T, userID string, txType models.TransactionType) int64 {
	t.Helper()
	var count int64
	e.db.Model(&models.PointTransaction{}).
		Where("external_user_id = ? AND transaction_type = ?", userID, txType).
		Count(&count)
	return count
}
