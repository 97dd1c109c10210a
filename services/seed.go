package services

import (
	"log"
	"time"

	"task-gamification-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCatalogs upserts the static achievement/badge/reward/challenge seeds.
// Safe to run on every boot: existing rows are refreshed in place, user
// unlock records are untouched.
func SeedCatalogs(db *gorm.DB) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}

	if err := db.Clauses(upsert).Create(&models.AchievementCatalog).Error; err != nil {
		return err
	}
	if err := db.Clauses(upsert).Create(&models.BadgeSeed).Error; err != nil {
		return err
	}
	if err := db.Clauses(upsert).Create(&models.RewardSeed).Error; err != nil {
		return err
	}

	// Challenge seeds get a rolling two-week window only on first insert;
	// re-seeding must not reopen windows an admin already closed.
	for _, c := range models.ChallengeSeed {
		var existing int64
		db.Model(&models.Challenge{}).Where("id = ?", c.ID).Count(&existing)
		if existing > 0 {
			continue
		}
		now := time.Now().UTC()
		c.StartDate = now
		c.EndDate = now.AddDate(0, 0, 14)
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d achievements, %d badges, %d rewards",
		len(models.AchievementCatalog), len(models.BadgeSeed), len(models.RewardSeed))
	return nil
}
