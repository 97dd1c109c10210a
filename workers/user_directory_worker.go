// workers/user_directory_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userChangesResponse is the top-level structure of the identity service feed.
type userChangesResponse struct {
	Users []models.RemoteUser `json:"users"`
}

// UserDirectoryWorker mirrors identity-service profiles into directory_users
// so leaderboards can show usernames without a cross-service call per row.
type UserDirectoryWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string // e.g. "http://localhost:8500"
	endpointPath string // e.g. "/api/v1/public/profiles"
	serviceToken string
	httpClient   *http.Client
}

func NewUserDirectoryWorker(db *gorm.DB, identityServiceBaseURL, endpointPath, serviceToken string) *UserDirectoryWorker {
	return &UserDirectoryWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      identityServiceBaseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *UserDirectoryWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting User Directory Worker (identity-service → directory_users)…")
	go w.run(ctx)
}

func (w *UserDirectoryWorker) run(ctx context.Context) {
	// Initial backfill from the beginning of time.
	if err := w.syncBatch(ctx, time.Time{}); err != nil {
		log.Printf("⚠️ Initial directory sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncBatch(ctx, w.getLastSyncTime()); err != nil {
				log.Printf("❌ Directory sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ User Directory Worker stopped")
			return
		}
	}
}

// getLastSyncTime finds the most recent UpdatedAt in the local mirror.
func (w *UserDirectoryWorker) getLastSyncTime() time.Time {
	var lastTime time.Time
	err := w.db.Raw("SELECT MAX(updated_at) FROM directory_users WHERE deleted_at IS NULL").Scan(&lastTime).Error
	if err != nil || lastTime.IsZero() {
		return time.Unix(0, 0)
	}
	return lastTime
}

func (w *UserDirectoryWorker) syncBatch(ctx context.Context, since time.Time) error {
	sinceStr := since.UTC().Format(time.RFC3339)

	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid identity service URL '%s': %w", w.baseURL, err)
	}
	endpointURL := base.JoinPath(w.endpointPath)
	q := endpointURL.Query()
	q.Set("since", sinceStr)
	endpointURL.RawQuery = q.Encode()
	finalURL := endpointURL.String()

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request to identity service failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[DIRECTORY] ❌ Identity service returned %d for %s: %s", resp.StatusCode, finalURL, string(body))
		return fmt.Errorf("identity service non-200 response: %d", resp.StatusCode)
	}

	var response userChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode identity service response: %w", err)
	}

	if len(response.Users) == 0 {
		return nil
	}

	log.Printf("[DIRECTORY] 📥 Processing %d profile(s)…", len(response.Users))

	var upsertCount, errorCount int
	for _, remote := range response.Users {
		local := models.DirectoryUser{
			ID:             uuid.NewString(),
			ExternalUserID: remote.ExternalID,
			Username:       remote.Username,
			DisplayName:    remote.DisplayName,
			AvatarURL:      remote.AvatarURL,
			UpdatedAt:      remote.UpdatedAt,
		}
		if remote.DeletedAt != nil {
			local.DeletedAt = gorm.DeletedAt{Time: *remote.DeletedAt, Valid: true}
		}

		if err := w.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "display_name", "avatar_url", "updated_at", "deleted_at",
			}),
		}).Create(&local).Error; err != nil {
			errorCount++
			log.Printf("[DIRECTORY] ⚠️ Failed to upsert directory_user (external_id=%q, username=%q): %v",
				remote.ExternalID, remote.Username, err)
		} else {
			upsertCount++
		}
	}

	log.Printf("[DIRECTORY] ✅ Synced %d profile(s) (%d upserted, %d errors)", len(response.Users), upsertCount, errorCount)
	return nil
}
