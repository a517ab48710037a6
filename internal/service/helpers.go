package service

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"gorm.io/datatypes"

	"achievement-board-api/internal/domain"
	"achievement-board-api/internal/dto"
)

// formatBoard converts a stored board document into the full response
// shape: nodes and edges normalized, stats and progression recomputed.
// Stats are always derived here from the freshly-read document and are
// never persisted or cached.
func formatBoard(board *domain.Board, now time.Time) *dto.BoardResponse {
	nodes := domain.DecodeNodes(board.Nodes, now)
	edges := domain.DecodeEdges(board.Edges)
	stats := domain.ComputeStats(nodes)

	return &dto.BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		OwnerID:     board.OwnerID,
		Layout:      decodeMeta(board.Layout, domain.DefaultLayout()),
		Settings:    decodeMeta(board.Settings, map[string]interface{}{}),
		Theme:       decodeMeta(board.Theme, domain.DefaultTheme()),
		Nodes:       nodes,
		Edges:       edges,
		Stats:       stats,
		Progression: stats.Progression(),
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

// decodeMeta unmarshals a free-form metadata column, falling back to the
// given default when the column is empty or unreadable.
func decodeMeta(raw datatypes.JSON, fallback map[string]interface{}) map[string]interface{} {
	if len(raw) == 0 {
		return fallback
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return fallback
	}
	return m
}

func encodeMeta(m map[string]interface{}) datatypes.JSON {
	raw, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

// prepareNodes normalizes request-supplied raw nodes the way a stored
// document is normalized, assigning positional ids to nodes without one
// and a random icon to nodes without an icon.
func prepareNodes(raw []map[string]interface{}, rng *rand.Rand, now time.Time) []domain.AchievementNode {
	nodes := make([]domain.AchievementNode, 0, len(raw))
	for i, entry := range raw {
		if entry == nil {
			continue
		}
		node := domain.NormalizeRawNode(entry, i, domain.RandomIcon(rng))
		node.Data = domain.ApplyTimelineDefaults(node.Data, now)
		nodes = append(nodes, node)
	}
	return nodes
}

// prepareEdges normalizes request-supplied raw edges, dropping any with a
// missing endpoint.
func prepareEdges(raw []map[string]interface{}) []domain.Edge {
	edges := make([]domain.Edge, 0, len(raw))
	for i, entry := range raw {
		if entry == nil {
			continue
		}
		if edge, ok := domain.NormalizeRawEdge(entry, i); ok {
			edges = append(edges, edge)
		}
	}
	return edges
}

// dataFromFields builds an achievement payload from a typed create
// request, resolving the label/title and nested/flat progress precedence
// before normalization.
func dataFromFields(f *dto.AchievementFields) domain.AchievementData {
	label := strings.TrimSpace(f.Label)
	if label == "" {
		label = strings.TrimSpace(f.Title)
	}

	var xp float64
	if f.XP != nil {
		xp = *f.XP
	}

	total := 1.0
	if f.Progress != nil && f.Progress.Total != nil {
		total = *f.Progress.Total
	} else if f.ProgressTotal != nil {
		total = *f.ProgressTotal
	}
	current := 0.0
	if f.Progress != nil && f.Progress.Current != nil {
		current = *f.Progress.Current
	} else if f.ProgressCurrent != nil {
		current = *f.ProgressCurrent
	}

	timeline := domain.Timeline{}
	if f.Timeline != nil {
		timeline = domain.Timeline{
			CreatedAt:   f.Timeline.CreatedAt,
			UnlockedAt:  f.Timeline.UnlockedAt,
			CompletedAt: f.Timeline.CompletedAt,
		}
	}
	if timeline.CreatedAt == nil {
		timeline.CreatedAt = f.CreatedAt
	}

	return domain.AchievementData{
		Label:       label,
		Name:        f.Name,
		Description: f.Description,
		Status:      domain.Status(f.Status),
		Rarity:      domain.Rarity(f.Rarity),
		XP:          xp,
		Reward:      f.Reward,
		Icon:        f.Icon,
		Tags:        f.Tags,
		DependsOn:   f.DependsOn,
		Progress:    domain.Progress{Current: current, Total: total},
		Timeline:    timeline,
	}
}

// findNode returns the node with the given id from a formatted board
func findNode(nodes []domain.AchievementNode, id string) *domain.AchievementNode {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
	}
	return nil
}

// findEdge returns the edge with the given id from a formatted board
func findEdge(edges []domain.Edge, id string) *domain.Edge {
	for i := range edges {
		if edges[i].ID == id {
			return &edges[i]
		}
	}
	return nil
}
