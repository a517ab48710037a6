package domain

import "time"

// ApplyTimelineDefaults derives the timeline timestamps a payload's status
// and progress imply, without ever overwriting one that is already set:
//
//  1. createdAt is stamped the first time the payload is seen without one.
//  2. unlockedAt is stamped once the achievement leaves locked.
//  3. completedAt is stamped once the achievement is completed or mastered
//     with its progress counter full.
func ApplyTimelineDefaults(d AchievementData, now time.Time) AchievementData {
	out := d
	if out.Timeline.CreatedAt == nil {
		t := now
		out.Timeline.CreatedAt = &t
	}
	switch out.Status {
	case StatusTracking, StatusCompleted, StatusMastered:
		if out.Timeline.UnlockedAt == nil {
			t := now
			out.Timeline.UnlockedAt = &t
		}
	}
	switch out.Status {
	case StatusCompleted, StatusMastered:
		if out.Progress.Current >= out.Progress.Total && out.Timeline.CompletedAt == nil {
			t := now
			out.Timeline.CompletedAt = &t
		}
	}
	return out
}

// ResetUnlock clears the unlock and completion stamps. Used when a caller
// re-locks an achievement and asks for its history to be forgotten.
func ResetUnlock(d AchievementData) AchievementData {
	out := d
	out.Timeline.UnlockedAt = nil
	out.Timeline.CompletedAt = nil
	return out
}

// ResetCompletion clears the completion stamp; when the achievement is
// still completed it is immediately re-stamped with the current time.
func ResetCompletion(d AchievementData, now time.Time) AchievementData {
	out := d
	out.Timeline.CompletedAt = nil
	if out.Status == StatusCompleted {
		t := now
		out.Timeline.CompletedAt = &t
	}
	return out
}
