package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"task-gamification-system/models"

	"github.com/gofiber/fiber/v2"
)

// Notifier delivers real-time gamification events. Best-effort: callers never
// wait on delivery and a failed send never fails the activity behind it.
type Notifier interface {
	PointsEarned(userID string, amount int64, reason string, taskID *string)
	LevelUp(userID string, newLevel, oldLevel int)
	AchievementUnlocked(userID string, name string, achievementID uint, points int64)
	BadgeEarned(userID string, name string, badgeID uint, rarity models.BadgeRarity)
	StreakUpdated(userID string, currentStreak int, isNewRecord bool)
}

// GamificationEvent is the wire shape pushed over the SSE stream.
type GamificationEvent struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
	At      time.Time      `json:"at"`
}

// EventHub fans events out to per-user subscriber channels. Mailboxes are
// bounded; when a slow consumer falls behind the oldest event is dropped.
type EventHub struct {
	mu   sync.RWMutex
	subs map[string][]chan GamificationEvent
}

const hubMailboxSize = 32

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[string][]chan GamificationEvent)}
}

// Subscribe registers a mailbox for the user; the returned cancel func must
// be called when the consumer goes away.
func (h *EventHub) Subscribe(userID string) (<-chan GamificationEvent, func()) {
	ch := make(chan GamificationEvent, hubMailboxSize)
	h.mu.Lock()
	h.subs[userID] = append(h.subs[userID], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		chans := h.subs[userID]
		for i, c := range chans {
			if c == ch {
				h.subs[userID] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
	}
	return ch, cancel
}

func (h *EventHub) publish(userID string, ev GamificationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[userID] {
		select {
		case ch <- ev:
		default:
			// mailbox full: drop the oldest, keep the stream moving
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

func (h *EventHub) PointsEarned(userID string, amount int64, reason string, taskID *string) {
	payload := map[string]any{"amount": amount, "reason": reason}
	if taskID != nil {
		payload["task_id"] = *taskID
	}
	h.publish(userID, GamificationEvent{Type: "points_earned", Payload: payload, At: time.Now().UTC()})
	log.Printf("💰 [EVENTS] %s earned %d points (%s)", userID, amount, reason)
}

func (h *EventHub) LevelUp(userID string, newLevel, oldLevel int) {
	h.publish(userID, GamificationEvent{Type: "level_up", Payload: map[string]any{
		"new_level": newLevel, "old_level": oldLevel,
	}, At: time.Now().UTC()})
	log.Printf("🆙 [EVENTS] %s leveled up %d → %d", userID, oldLevel, newLevel)
}

func (h *EventHub) AchievementUnlocked(userID string, name string, achievementID uint, points int64) {
	h.publish(userID, GamificationEvent{Type: "achievement_unlocked", Payload: map[string]any{
		"achievement_id": achievementID, "name": name, "points": points,
	}, At: time.Now().UTC()})
	log.Printf("🏆 [EVENTS] %s unlocked achievement %q (+%d)", userID, name, points)
}

func (h *EventHub) BadgeEarned(userID string, name string, badgeID uint, rarity models.BadgeRarity) {
	h.publish(userID, GamificationEvent{Type: "badge_earned", Payload: map[string]any{
		"badge_id": badgeID, "name": name, "rarity": rarity,
	}, At: time.Now().UTC()})
	log.Printf("🎖️ [EVENTS] %s earned badge %q (%s)", userID, name, rarity)
}

func (h *EventHub) StreakUpdated(userID string, currentStreak int, isNewRecord bool) {
	h.publish(userID, GamificationEvent{Type: "streak_updated", Payload: map[string]any{
		"current_streak": currentStreak, "is_new_record": isNewRecord,
	}, At: time.Now().UTC()})
	log.Printf("🔥 [EVENTS] %s streak now %d (record=%t)", userID, currentStreak, isNewRecord)
}

// StreamUserEventsSSE streams gamification events for the authenticated user.
func (h *EventHub) StreamUserEventsSSE(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	events, cancel := h.Subscribe(userID)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		keepalive := time.NewTicker(15 * time.Second)
		defer keepalive.Stop()

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case ev := <-events:
				payload, err := json.Marshal(ev)
				if err != nil {
					log.Printf("SSE marshal error for user %s: %v", userID, err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}
			case <-keepalive.C:
				w.WriteString(":\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			case <-c.Context().Done():
				// Client closed connection
				return
			}
		}
	})

	return nil
}
