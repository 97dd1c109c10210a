package services

import "errors"

// Validation errors — caller bugs, never retried.
var (
	ErrNegativePoints     = errors.New("point amount must not be negative")
	ErrUnknownAchievement = errors.New("unknown achievement")
	ErrUnknownBadge       = errors.New("unknown badge")
	ErrUnknownReward      = errors.New("unknown reward")
	ErrUnknownChallenge   = errors.New("unknown challenge")
	ErrUnknownBoard       = errors.New("unknown leaderboard")
)

// State-conflict errors — "already/insufficient" conditions. Opportunistic
// callers (cascading achievement checks, challenge badge payouts) are
// expected to catch and ignore exactly these.
var (
	ErrAlreadyUnlocked      = errors.New("achievement already unlocked")
	ErrBadgeAlreadyAwarded  = errors.New("badge already awarded")
	ErrAlreadyClaimedToday  = errors.New("daily login already claimed today")
	ErrAlreadyJoined        = errors.New("challenge already joined")
	ErrEnrollmentLimit      = errors.New("active challenge enrollment limit reached")
	ErrChallengeNotJoinable = errors.New("challenge is inactive or past its end date")
	ErrNotEnrolled          = errors.New("not enrolled in challenge")
	ErrInsufficientPoints   = errors.New("insufficient points")
	ErrLevelTooLow          = errors.New("level requirement not met")
	ErrRewardAlreadyUsed    = errors.New("reward already used")
	ErrCharacterLocked      = errors.New("character class not unlocked")
	ErrNotFamilyMember      = errors.New("not a member of this family")
)

// IsConflict reports whether err is a state-conflict condition rather than a
// hard failure.
func IsConflict(err error) bool {
	for _, e := range []error{
		ErrAlreadyUnlocked, ErrBadgeAlreadyAwarded, ErrAlreadyClaimedToday,
		ErrAlreadyJoined, ErrEnrollmentLimit, ErrChallengeNotJoinable,
		ErrNotEnrolled, ErrInsufficientPoints, ErrLevelTooLow,
		ErrRewardAlreadyUsed, ErrCharacterLocked,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
