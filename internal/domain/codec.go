package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DecodeNodes normalizes a stored nodes column into canonical achievement
// nodes. Malformed JSON and non-object entries are silently dropped; every
// surviving node gets its timeline defaults applied so lazily-created
// documents pick up a createdAt on first read.
func DecodeNodes(data datatypes.JSON, now time.Time) []AchievementNode {
	nodes := []AchievementNode{}
	if len(data) == 0 {
		return nodes
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nodes
	}
	for i, entry := range raw {
		var obj map[string]interface{}
		if err := json.Unmarshal(entry, &obj); err != nil || obj == nil {
			continue
		}
		node := NormalizeRawNode(obj, i, DefaultIcon)
		node.Data = ApplyTimelineDefaults(node.Data, now)
		nodes = append(nodes, node)
	}
	return nodes
}

// DecodeEdges normalizes a stored edges column, dropping entries without a
// usable source and target.
func DecodeEdges(data datatypes.JSON) []Edge {
	edges := []Edge{}
	if len(data) == 0 {
		return edges
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return edges
	}
	for i, entry := range raw {
		var obj map[string]interface{}
		if err := json.Unmarshal(entry, &obj); err != nil || obj == nil {
			continue
		}
		if edge, ok := NormalizeRawEdge(obj, i); ok {
			edges = append(edges, edge)
		}
	}
	return edges
}

// EncodeNodes marshals canonical nodes back into the stored column shape
func EncodeNodes(nodes []AchievementNode) (datatypes.JSON, error) {
	if nodes == nil {
		nodes = []AchievementNode{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// EncodeEdges marshals canonical edges back into the stored column shape
func EncodeEdges(edges []Edge) (datatypes.JSON, error) {
	if edges == nil {
		edges = []Edge{}
	}
	data, err := json.Marshal(edges)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
