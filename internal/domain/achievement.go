package domain

import "time"

// Status represents the lifecycle stage of an achievement
type Status string

const (
	StatusLocked    Status = "locked"
	StatusTracking  Status = "tracking"
	StatusCompleted Status = "completed"
	StatusMastered  Status = "mastered"
)

// StatusValues lists every known status in display order
var StatusValues = []Status{StatusLocked, StatusTracking, StatusCompleted, StatusMastered}

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusLocked, StatusTracking, StatusCompleted, StatusMastered:
		return true
	}
	return false
}

// Rarity represents how rare an achievement is
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// RarityValues lists every known rarity in display order
var RarityValues = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}

// IsValid reports whether the rarity is one of the known values
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic:
		return true
	}
	return false
}

// Progress is the step counter driving an achievement's completion.
// Invariant after normalization: Total >= 1 and 0 <= Current <= Total.
type Progress struct {
	Current float64 `json:"current"`
	Total   float64 `json:"total"`
}

// Timeline tracks when an achievement was created, unlocked and completed.
// Each timestamp is stamped at most once; nil means "has not happened".
type Timeline struct {
	CreatedAt   *time.Time `json:"createdAt"`
	UnlockedAt  *time.Time `json:"unlockedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// AchievementData is the payload of one achievement node
type AchievementData struct {
	Label       string      `json:"label"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      Status      `json:"status"`
	Rarity      Rarity      `json:"rarity"`
	XP          float64     `json:"xp"`
	Reward      string      `json:"reward"`
	Icon        string      `json:"icon"`
	Tags        []string    `json:"tags"`
	Progress    Progress    `json:"progress"`
	DependsOn   []string    `json:"dependsOn"`
	Timeline    Timeline    `json:"timeline"`
}

// Position is a presentation-only node coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AchievementNode is one trackable goal in a board's graph, in the shape
// the node-editor frontend renders directly.
type AchievementNode struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Position       Position        `json:"position"`
	TargetPosition string          `json:"targetPosition"`
	SourcePosition string          `json:"sourcePosition"`
	Data           AchievementData `json:"data"`
}

// Edge is a directed relationship between two achievement nodes. It is
// presentation-significant but never referentially enforced; dangling edges
// survive until one of their endpoints is deleted.
type Edge struct {
	ID       string      `json:"id"`
	Source   string      `json:"source"`
	Target   string      `json:"target"`
	Type     string      `json:"type"`
	Animated bool        `json:"animated"`
	Label    interface{} `json:"label,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// Defaults applied during normalization.
const (
	DefaultNodeType       = "achievement"
	DefaultEdgeType       = "smoothstep"
	DefaultLabel          = "New Achievement"
	DefaultSourcePosition = "right"
	DefaultTargetPosition = "left"
)
