package services

import (
	"errors"
	"sync"
	"testing"

	"task-gamification-system/models"
)

func TestAwardRejectsNegativePoints(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.ledger.Award("user-1", -10, models.TxManualAdjustment, "oops", nil)
	if !errors.Is(err, ErrNegativePoints) {
		t.Fatalf("expected ErrNegativePoints, got %v", err)
	}
	if n := eng.txCount(t, "user-1", models.TxManualAdjustment); n != 0 {
		t.Fatalf("expected no ledger rows, got %d", n)
	}
}

func TestAwardRollsPointsIntoLevels(t *testing.T) {
	eng := newTestEngine(t)

	res, err := eng.ledger.Award("user-1", 95, models.TxManualAdjustment, "seed", nil)
	if err != nil {
		t.Fatalf("first award failed: %v", err)
	}
	if res.NewLevel != 1 {
		t.Fatalf("expected to stay on level 1, got %d", res.NewLevel)
	}
	prog := eng.progress(t, "user-1")
	if prog.CurrentPoints != 95 || prog.NextLevelThreshold != 100 {
		t.Fatalf("unexpected state: current=%d threshold=%d", prog.CurrentPoints, prog.NextLevelThreshold)
	}

	// 95+20 rolls over level 1 (threshold 100), leaving 15. Lifetime hits
	// 115, which also crosses into silver and pays the 250 bonus into the
	// same award.
	res, err = eng.ledger.Award("user-1", 20, models.TxManualAdjustment, "push over", nil)
	if err != nil {
		t.Fatalf("second award failed: %v", err)
	}
	if res.OldLevel != 1 || res.NewLevel != 2 {
		t.Fatalf("expected level 1→2, got %d→%d", res.OldLevel, res.NewLevel)
	}
	if !res.TierChanged || res.NewTier != "silver" || res.TierBonus != 250 {
		t.Fatalf("expected silver advancement with 250 bonus, got %+v", res)
	}

	prog = eng.progress(t, "user-1")
	if prog.Level != 2 {
		t.Fatalf("expected level 2, got %d", prog.Level)
	}
	if prog.NextLevelThreshold != 282 {
		t.Fatalf("expected threshold 282, got %d", prog.NextLevelThreshold)
	}
	if prog.CurrentPoints != 265 { // 15 rollover + 250 tier bonus
		t.Fatalf("expected 265 current points, got %d", prog.CurrentPoints)
	}
	if prog.TotalPointsEarned != 365 {
		t.Fatalf("expected 365 lifetime points, got %d", prog.TotalPointsEarned)
	}
	if prog.UserTier != "silver" {
		t.Fatalf("expected silver tier, got %s", prog.UserTier)
	}
	if prog.LastLevelUpAt == nil || prog.LastTierUpAt == nil {
		t.Fatal("expected level-up and tier-up timestamps to be set")
	}
}

func TestTierAdvancementFiresOnce(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.ledger.Award("user-1", 120, models.TxManualAdjustment, "cross silver", nil); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	res, err := eng.ledger.Award("user-1", 10, models.TxManualAdjustment, "stay silver", nil)
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if res.TierChanged {
		t.Fatal("tier must not advance twice within the same band")
	}
	if n := eng.txCount(t, "user-1", models.TxTierAdvancement); n != 1 {
		t.Fatalf("expected exactly one tier advancement row, got %d", n)
	}
}

func TestDailyLoginClaimedOncePerDay(t *testing.T) {
	eng := newTestEngine(t)

	res, err := eng.ledger.Award("user-1", 0, models.TxDailyLogin, "daily login", nil)
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if res.Points != 7 { // streak 0: round(5*1.05)+2
		t.Fatalf("expected 7 login points, got %d", res.Points)
	}

	_, err = eng.ledger.Award("user-1", 0, models.TxDailyLogin, "daily login", nil)
	if !errors.Is(err, ErrAlreadyClaimedToday) {
		t.Fatalf("expected ErrAlreadyClaimedToday, got %v", err)
	}
	if n := eng.txCount(t, "user-1", models.TxDailyLogin); n != 1 {
		t.Fatalf("expected one login row, got %d", n)
	}
	if !IsConflict(err) {
		t.Fatal("double claim must classify as a conflict")
	}
}

func TestDailyLoginScalesWithStreak(t *testing.T) {
	eng := newTestEngine(t)

	eng.progress(t, "user-1")
	eng.db.Model(&models.UserProgress{}).
		Where("external_user_id = ?", "user-1").
		Update("current_streak", 10)

	res, err := eng.ledger.Award("user-1", 0, models.TxDailyLogin, "daily login", nil)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if res.Points != 10 { // round(5*1.5)+2
		t.Fatalf("expected 10 login points at streak 10, got %d", res.Points)
	}
}

func TestTaskCompletionWithMissingTaskKeepsAward(t *testing.T) {
	eng := newTestEngine(t)

	gone := "00000000-0000-0000-0000-00000000dead"
	res, err := eng.ledger.Award("user-1", 10, models.TxTaskCompletion, "completed task", &gone)
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if res.Points != 10 {
		t.Fatalf("expected advisory amount to stand, got %d", res.Points)
	}

	var entry models.PointTransaction
	if err := eng.db.Where("id = ?", res.TransactionID).First(&entry).Error; err != nil {
		t.Fatalf("transaction not found: %v", err)
	}
	if entry.TaskID != nil {
		t.Fatal("dangling task reference must be nulled")
	}
}

func TestMissingTaskNulledOnEveryAwardType(t *testing.T) {
	eng := newTestEngine(t)

	// The task reference is advisory regardless of transaction type, so a
	// focus payout pointing at a deleted task lands with a null reference
	// and its amount untouched.
	gone := "00000000-0000-0000-0000-00000000beef"
	res, err := eng.ledger.Award("user-1", 25, models.TxFocusSession, "focus payout", &gone)
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if res.Points != 25 {
		t.Fatalf("expected amount to stand, got %d", res.Points)
	}

	var entry models.PointTransaction
	if err := eng.db.Where("id = ?", res.TransactionID).First(&entry).Error; err != nil {
		t.Fatalf("transaction not found: %v", err)
	}
	if entry.TaskID != nil {
		t.Fatalf("dangling task reference persisted: %q", *entry.TaskID)
	}
}

func TestConcurrentFirstAwardsShareOneAggregate(t *testing.T) {
	eng := newTestEngine(t)

	// Both awards race the lazy first-access create; the loser's insert is
	// absorbed and both must land on the same row.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = eng.ledger.Award("user-1", 10, models.TxManualAdjustment, "first touch", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("award %d failed: %v", i, err)
		}
	}

	var rows int64
	eng.db.Model(&models.UserProgress{}).Where("external_user_id = ?", "user-1").Count(&rows)
	if rows != 1 {
		t.Fatalf("expected one aggregate row, got %d", rows)
	}
	if prog := eng.progress(t, "user-1"); prog.TotalPointsEarned != 20 {
		t.Fatalf("expected both awards applied, got %d", prog.TotalPointsEarned)
	}
}

func TestOnLevelUpHookFiresAfterCommit(t *testing.T) {
	eng := newTestEngine(t)

	var gotOld, gotNew int
	eng.ledger.OnLevelUp = func(userID string, oldLevel, newLevel int) {
		gotOld, gotNew = oldLevel, newLevel
	}

	if _, err := eng.ledger.Award("user-1", 150, models.TxManualAdjustment, "level push", nil); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if gotOld != 1 || gotNew < 2 {
		t.Fatalf("expected hook with level 1→2+, got %d→%d", gotOld, gotNew)
	}
}

func TestGetTransactionsPagination(t *testing.T) {
	eng := newTestEngine(t)

	for i := 0; i < 5; i++ {
		if _, err := eng.ledger.Award("user-1", 1, models.TxManualAdjustment, "tick", nil); err != nil {
			t.Fatalf("award failed: %v", err)
		}
	}

	entries, total, err := eng.ledger.GetTransactions("user-1", 1, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected 5 total, got %d", total)
	}
	if len(entries) != 3 {
		t.Fatalf("expected page of 3, got %d", len(entries))
	}
}

func TestResetProgressKeepsLedgerHistory(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.ledger.Award("user-1", 150, models.TxManualAdjustment, "seed", nil); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if err := eng.ledger.ResetProgress("user-1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	prog := eng.progress(t, "user-1")
	if prog.Level != 1 || prog.CurrentPoints != 0 || prog.TotalPointsEarned != 0 {
		t.Fatalf("expected zeroed aggregate, got level=%d current=%d total=%d",
			prog.Level, prog.CurrentPoints, prog.TotalPointsEarned)
	}
	if n := eng.txCount(t, "user-1", models.TxManualAdjustment); n != 1 {
		t.Fatalf("ledger history must survive a reset, got %d rows", n)
	}
}
