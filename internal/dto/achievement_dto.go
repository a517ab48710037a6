package dto

import (
	"time"

	"achievement-board-api/internal/domain"
)

// PositionInput is a partial node coordinate; absent axes keep their
// previous value (or default to zero on create).
type PositionInput struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// ProgressPatch is a per-key progress update
type ProgressPatch struct {
	Current *float64 `json:"current"`
	Total   *float64 `json:"total"`
}

// TimelinePatch is a per-key timeline update
type TimelinePatch struct {
	CreatedAt   *time.Time `json:"createdAt"`
	UnlockedAt  *time.Time `json:"unlockedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// AchievementFields carries the achievement payload fields a create
// request may set, either flat on the request or nested under "data"
// (both shapes are accepted for compatibility with the editor and with
// imported board JSON).
type AchievementFields struct {
	Label           string         `json:"label"`
	Title           string         `json:"title"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Status          string         `json:"status"`
	Rarity          string         `json:"rarity"`
	XP              *float64       `json:"xp"`
	Reward          string         `json:"reward"`
	Icon            string         `json:"icon"`
	Tags            []string       `json:"tags"`
	DependsOn       []string       `json:"dependsOn"`
	Progress        *ProgressPatch `json:"progress"`
	ProgressTotal   *float64       `json:"progressTotal"`
	ProgressCurrent *float64       `json:"progressCurrent"`
	Timeline        *TimelinePatch `json:"timeline"`
	CreatedAt       *time.Time     `json:"createdAt"`
}

// CreateAchievementRequest is the body for adding one achievement to a
// board. When ParentID is set, an edge from the parent to the new node is
// created alongside it.
type CreateAchievementRequest struct {
	AchievementFields
	ID             string             `json:"id"`
	Type           string             `json:"type"`
	Position       *PositionInput     `json:"position"`
	SourcePosition string             `json:"sourcePosition"`
	TargetPosition string             `json:"targetPosition"`
	Data           *AchievementFields `json:"data"`
	ParentID       string             `json:"parentId"`
	EdgeID         string             `json:"edgeId"`
	EdgeType       string             `json:"edgeType"`
}

// Fields returns the payload fields, preferring the nested data object
// when the caller sent one.
func (r *CreateAchievementRequest) Fields() *AchievementFields {
	if r.Data != nil {
		return r.Data
	}
	return &r.AchievementFields
}

// AchievementPatch carries the payload-level fields of a partial update.
// Only non-nil fields overwrite the stored value; title and label are
// coupled (either one rewrites both label and name), and the flat
// progress fields win over the nested progress object when both appear
// in the same request.
type AchievementPatch struct {
	Title           *string        `json:"title"`
	Label           *string        `json:"label"`
	Name            *string        `json:"name"`
	Description     *string        `json:"description"`
	Status          *string        `json:"status"`
	Rarity          *string        `json:"rarity"`
	Reward          *string        `json:"reward"`
	Icon            *string        `json:"icon"`
	XP              *float64       `json:"xp"`
	Tags            []string       `json:"tags"`
	DependsOn       []string       `json:"dependsOn"`
	Progress        *ProgressPatch `json:"progress"`
	ProgressTotal   *float64       `json:"progressTotal"`
	ProgressCurrent *float64       `json:"progressCurrent"`
	Timeline        *TimelinePatch `json:"timeline"`
}

// UpdateAchievementRequest is the body for PATCHing one achievement
type UpdateAchievementRequest struct {
	AchievementPatch
	Data           *AchievementPatch `json:"data"`
	Type           *string           `json:"type"`
	Position       *PositionInput    `json:"position"`
	SourcePosition *string           `json:"sourcePosition"`
	TargetPosition *string           `json:"targetPosition"`
}

// RecordProgressRequest is the body for the progress endpoint. Mode
// "increment" (the default) moves current by delta; mode "set" assigns
// value (or progressCurrent) directly. Total may be overridden in the
// same request, nested or flat. An explicit status suppresses the
// automatic status derivation.
type RecordProgressRequest struct {
	Delta           *float64 `json:"delta"`
	Mode            string   `json:"mode"`
	Value           *float64 `json:"value"`
	ProgressCurrent *float64 `json:"progressCurrent"`
	Total           *float64 `json:"total"`
	ProgressTotal   *float64 `json:"progressTotal"`
	Status          string   `json:"status"`
	ResetUnlock     bool     `json:"resetUnlock"`
	ResetCompletion bool     `json:"resetCompletion"`
}

// CreateAchievementResponse returns the created node, the synthesized
// parent edge (null when no parent was given) and the updated board.
type CreateAchievementResponse struct {
	Node  *domain.AchievementNode `json:"node"`
	Edge  *domain.Edge            `json:"edge"`
	Board *BoardResponse          `json:"board"`
}

// AchievementResponse returns one mutated node and the updated board
type AchievementResponse struct {
	Node  *domain.AchievementNode `json:"node"`
	Board *BoardResponse          `json:"board"`
}

// BoardOnlyResponse returns just the updated board (used after deletes,
// where the node no longer exists).
type BoardOnlyResponse struct {
	Board *BoardResponse `json:"board"`
}
