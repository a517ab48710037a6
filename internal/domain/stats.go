package domain

import "math"

// XPPerLevel is the fixed amount of completed XP that advances one level
const XPPerLevel = 250

// Stats is the aggregate view of one board's nodes, recomputed from a
// fresh read on every request.
type Stats struct {
	Total           int            `json:"total"`
	Status          map[Status]int `json:"status"`
	Rarity          map[Rarity]int `json:"rarity"`
	XPTotal         float64        `json:"xpTotal"`
	XPCompleted     float64        `json:"xpCompleted"`
	StepsTotal      float64        `json:"stepsTotal"`
	StepsDone       float64        `json:"stepsDone"`
	CompletionRatio float64        `json:"completionRatio"`
	XPPerLevel      int            `json:"xpPerLevel"`
	Level           int            `json:"level"`
	XPIntoLevel     float64        `json:"xpIntoLevel"`
	XPToNext        float64        `json:"xpToNext"`
}

// Progression is the level/XP summary projected out of Stats for the
// board header. XPTotal here is the completed XP, not the board total.
type Progression struct {
	Level           int     `json:"level"`
	XPTotal         float64 `json:"xpTotal"`
	XPIntoLevel     float64 `json:"xpIntoLevel"`
	XPToNext        float64 `json:"xpToNext"`
	CompletionRatio float64 `json:"completionRatio"`
	StepsDone       float64 `json:"stepsDone"`
	StepsTotal      float64 `json:"stepsTotal"`
}

// ComputeStats aggregates the nodes in a single pass. Histograms are
// zero-filled for every known status and rarity so clients can iterate
// them without existence checks; unexpected values still get counted.
// Progress counters are re-clamped per node so a malformed document can
// never push stepsDone past stepsTotal.
func ComputeStats(nodes []AchievementNode) Stats {
	stats := Stats{
		Total:      len(nodes),
		Status:     make(map[Status]int, len(StatusValues)),
		Rarity:     make(map[Rarity]int, len(RarityValues)),
		XPPerLevel: XPPerLevel,
	}
	for _, s := range StatusValues {
		stats.Status[s] = 0
	}
	for _, r := range RarityValues {
		stats.Rarity[r] = 0
	}

	for _, node := range nodes {
		status := node.Data.Status
		if status == "" {
			status = StatusLocked
		}
		rarity := node.Data.Rarity
		if rarity == "" {
			rarity = RarityCommon
		}
		stats.Status[status]++
		stats.Rarity[rarity]++

		xp := ToNumber(node.Data.XP, 0)
		stats.XPTotal += xp
		if status == StatusCompleted || status == StatusMastered {
			stats.XPCompleted += xp
		}

		total := math.Max(1, ToNumber(node.Data.Progress.Total, 1))
		current := Clamp(ToNumber(node.Data.Progress.Current, 0), 0, total)
		stats.StepsTotal += total
		stats.StepsDone += current
	}

	if stats.StepsTotal > 0 {
		stats.CompletionRatio = stats.StepsDone / stats.StepsTotal
	}
	stats.Level = int(math.Floor(stats.XPCompleted/XPPerLevel)) + 1
	stats.XPIntoLevel = math.Mod(stats.XPCompleted, XPPerLevel)
	stats.XPToNext = XPPerLevel - stats.XPIntoLevel

	return stats
}

// Progression projects the level/XP summary out of the stats
func (s Stats) Progression() Progression {
	return Progression{
		Level:           s.Level,
		XPTotal:         s.XPCompleted,
		XPIntoLevel:     s.XPIntoLevel,
		XPToNext:        s.XPToNext,
		CompletionRatio: s.CompletionRatio,
		StepsDone:       s.StepsDone,
		StepsTotal:      s.StepsTotal,
	}
}
