package domain

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// DefaultIcon is used when neither the caller nor the random palette
// supplies an icon.
const DefaultIcon = "⭐"

// IconPalette is the fixed pool a new achievement draws a random icon from
// when the caller did not pick one.
var IconPalette = []string{
	"🗡️", "🛡️", "🧭", "🏹", "🧪", "📜", "⚒️", "🌿", "💎", "🔥", "🌙", "🛠️", "🎯",
}

// RandomIcon picks an icon from the palette using the supplied source.
// The source is explicit so callers can make icon assignment deterministic.
func RandomIcon(r *rand.Rand) string {
	if r == nil || len(IconPalette) == 0 {
		return DefaultIcon
	}
	return IconPalette[r.Intn(len(IconPalette))]
}

// ToNumber coerces any JSON-decoded value to a finite float64, returning
// fallback for anything that does not convert.
func ToNumber(v interface{}, fallback float64) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return fallback
		}
		n = parsed
	default:
		return fallback
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// Clamp bounds v to [min, max]
func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// NormalizeData coerces an achievement payload into its canonical shape:
// label/name fallbacks, enum coercion, finite XP, de-duplicated tags and a
// clamped progress counter. It is total (any input yields a valid payload)
// and idempotent (normalizing an already-normalized payload is a no-op).
func NormalizeData(d AchievementData, fallbackIcon string) AchievementData {
	out := d

	out.Label = strings.TrimSpace(d.Label)
	if out.Label == "" {
		out.Label = DefaultLabel
	}
	out.Name = strings.TrimSpace(d.Name)
	if out.Name == "" {
		out.Name = out.Label
	}

	if !d.Status.IsValid() {
		out.Status = StatusLocked
	}
	if !d.Rarity.IsValid() {
		out.Rarity = RarityCommon
	}

	if math.IsNaN(d.XP) || math.IsInf(d.XP, 0) {
		out.XP = 0
	}

	out.Icon = strings.TrimSpace(d.Icon)
	if out.Icon == "" {
		out.Icon = strings.TrimSpace(fallbackIcon)
	}
	if out.Icon == "" {
		out.Icon = DefaultIcon
	}

	out.Tags = dedupeStrings(d.Tags)
	if d.DependsOn == nil {
		out.DependsOn = []string{}
	}

	total := d.Progress.Total
	if math.IsNaN(total) || math.IsInf(total, 0) {
		total = 1
	}
	total = math.Max(1, total)
	current := d.Progress.Current
	if math.IsNaN(current) || math.IsInf(current, 0) {
		current = 0
	}
	out.Progress = Progress{Current: Clamp(current, 0, total), Total: total}

	return out
}

// NormalizeRawNode converts an arbitrary JSON-decoded node object into a
// canonical AchievementNode. Unknown fields are ignored, missing fields get
// defaults, and the payload may live either nested under "data" or flat on
// the node itself (legacy documents used both shapes).
func NormalizeRawNode(raw map[string]interface{}, index int, fallbackIcon string) AchievementNode {
	id := rawString(raw["id"])
	if id == "" {
		id = rawString(raw["_id"])
	}
	if id == "" {
		id = fmt.Sprintf("ach-%d", index)
	}

	data := raw
	if nested, ok := raw["data"].(map[string]interface{}); ok {
		data = nested
	}

	icon := trimmedString(data["icon"])
	if icon == "" {
		icon = fallbackIcon
	}

	node := AchievementNode{
		ID:             id,
		Type:           stringOr(raw["type"], DefaultNodeType),
		Position:       rawPosition(raw["position"]),
		TargetPosition: stringOr(raw["targetPosition"], DefaultTargetPosition),
		SourcePosition: stringOr(raw["sourcePosition"], DefaultSourcePosition),
		Data:           NormalizeData(rawData(data), icon),
	}
	return node
}

// NormalizeRawEdge converts an arbitrary JSON-decoded edge object into a
// canonical Edge. Edges without a usable source or target are dropped; the
// second return value reports whether the edge survived.
func NormalizeRawEdge(raw map[string]interface{}, index int) (Edge, bool) {
	source := rawString(raw["source"])
	target := rawString(raw["target"])
	if source == "" || target == "" {
		return Edge{}, false
	}

	id := rawString(raw["id"])
	if id == "" {
		id = fmt.Sprintf("%s-%s-%d", source, target, index)
	}

	animated, _ := raw["animated"].(bool)
	return Edge{
		ID:       id,
		Source:   source,
		Target:   target,
		Type:     stringOr(raw["type"], DefaultEdgeType),
		Animated: animated,
		Label:    raw["label"],
		Data:     raw["data"],
	}, true
}

// rawData extracts the achievement payload fields from a loose object
func rawData(data map[string]interface{}) AchievementData {
	label := trimmedString(data["label"])
	if label == "" {
		label = trimmedString(data["title"])
	}

	progress, _ := data["progress"].(map[string]interface{})
	totalRaw := firstPresent(progress["total"], data["progressTotal"])
	currentRaw := firstPresent(progress["current"], data["progressCurrent"])

	return AchievementData{
		Label:       label,
		Name:        trimmedString(data["name"]),
		Description: plainString(data["description"]),
		Status:      Status(rawString(data["status"])),
		Rarity:      Rarity(rawString(data["rarity"])),
		XP:          ToNumber(data["xp"], 0),
		Reward:      plainString(data["reward"]),
		Icon:        trimmedString(data["icon"]),
		Tags:        stringSlice(data["tags"]),
		Progress: Progress{
			Current: ToNumber(currentRaw, 0),
			Total:   ToNumber(totalRaw, 1),
		},
		DependsOn: stringSlice(data["dependsOn"]),
		Timeline:  rawTimeline(data),
	}
}

// rawTimeline reads the nested timeline object, falling back to a flat
// createdAt for documents that predate the timeline field.
func rawTimeline(data map[string]interface{}) Timeline {
	timeline, _ := data["timeline"].(map[string]interface{})
	created := parseTime(timeline["createdAt"])
	if created == nil {
		created = parseTime(data["createdAt"])
	}
	return Timeline{
		CreatedAt:   created,
		UnlockedAt:  parseTime(timeline["unlockedAt"]),
		CompletedAt: parseTime(timeline["completedAt"]),
	}
}

func rawPosition(v interface{}) Position {
	pos, _ := v.(map[string]interface{})
	return Position{
		X: ToNumber(pos["x"], 0),
		Y: ToNumber(pos["y"], 0),
	}
}

// parseTime accepts RFC3339 strings and millisecond epochs, returning nil
// for anything else.
func parseTime(v interface{}) *time.Time {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, t)
		}
		if err != nil {
			return nil
		}
		return &parsed
	case float64:
		parsed := time.UnixMilli(int64(t)).UTC()
		return &parsed
	case time.Time:
		return &t
	case *time.Time:
		return t
	}
	return nil
}

// rawString stringifies scalar values the way the document store may have
// persisted them (ids occasionally arrive as numbers).
func rawString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64, int, int64, bool:
		return fmt.Sprint(t)
	}
	return ""
}

func trimmedString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func plainString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func firstPresent(values ...interface{}) interface{} {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func dedupeStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
