// workers/family_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FamilySyncClient mirrors family memberships from the family service so the
// family leaderboard can scope queries locally.
type FamilySyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewFamilySyncClient(db *gorm.DB) *FamilySyncClient {
	baseURL := os.Getenv("FAMILY_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("FAMILY_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("GAMIFICATION_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("GAMIFICATION_SERVICE_TOKEN environment variable is required for family sync")
	}

	return &FamilySyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *FamilySyncClient) GetChangedMemberships(ctx context.Context, since time.Time) ([]models.RemoteFamilyMember, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/memberships", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call family service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("family service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Memberships []models.RemoteFamilyMember `json:"memberships"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode family service response: %w", err)
	}

	return response.Memberships, nil
}

// PollFamilyMemberships keeps families and family_members in step with the
// family service. Removals delete the local membership row; the mirror is
// not authoritative and carries no history.
func PollFamilyMemberships(ctx context.Context, client *FamilySyncClient, pollInterval time.Duration) {
	log.Println("Starting family membership polling (DB-backed)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Family membership polling stopped.")
			return
		case <-ticker.C:
			logTime := time.Now().UTC()

			memberships, err := client.GetChangedMemberships(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling family memberships: %v", err)
				continue
			}

			count := len(memberships)
			if count == 0 {
				continue
			}
			log.Printf("📥 Received %d membership change(s) from family service.", count)

			failed := false
			for _, remote := range memberships {
				if remote.RemovedAt != nil {
					if err := client.DB.Where("family_id = ? AND external_user_id = ?",
						remote.FamilyID, remote.ExternalUserID).
						Delete(&models.FamilyMember{}).Error; err != nil {
						log.Printf("❌ Failed to remove membership (family=%s, user=%s): %v",
							remote.FamilyID, remote.ExternalUserID, err)
						failed = true
					}
					continue
				}

				family := models.Family{
					ID:        remote.FamilyID,
					Name:      remote.FamilyName,
					CreatedAt: remote.JoinedAt,
				}
				if err := client.DB.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{"name"}),
				}).Create(&family).Error; err != nil {
					log.Printf("❌ Failed to upsert family %s: %v", remote.FamilyID, err)
					failed = true
					continue
				}

				member := models.FamilyMember{
					ID:             uuid.NewString(),
					FamilyID:       remote.FamilyID,
					ExternalUserID: remote.ExternalUserID,
					Role:           remote.Role,
					JoinedAt:       remote.JoinedAt,
					UpdatedAt:      remote.UpdatedAt,
				}
				if err := client.DB.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "family_id"}, {Name: "external_user_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
				}).Create(&member).Error; err != nil {
					log.Printf("❌ Failed to upsert membership (family=%s, user=%s): %v",
						remote.FamilyID, remote.ExternalUserID, err)
					failed = true
				}
			}

			if failed {
				// Retry the same window next tick rather than losing changes.
				continue
			}
			lastSyncTime = logTime
			log.Printf("✅ Applied %d membership change(s).", count)
		}
	}
}
