package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"achievement-board-api/internal/cache"
	"achievement-board-api/internal/domain"
	"achievement-board-api/internal/dto"
	"achievement-board-api/internal/metrics"
	"achievement-board-api/internal/repository"
	"achievement-board-api/internal/response"
)

// AchievementService defines the interface for achievement graph mutations
type AchievementService interface {
	CreateAchievement(ctx context.Context, boardID uuid.UUID, req *dto.CreateAchievementRequest) (*dto.CreateAchievementResponse, error)
	UpdateAchievement(ctx context.Context, boardID uuid.UUID, achievementID string, req *dto.UpdateAchievementRequest) (*dto.AchievementResponse, error)
	RecordProgress(ctx context.Context, boardID uuid.UUID, achievementID string, req *dto.RecordProgressRequest) (*dto.AchievementResponse, error)
	DeleteAchievement(ctx context.Context, boardID uuid.UUID, achievementID string) (*dto.BoardOnlyResponse, error)
}

// achievementServiceImpl is the implementation of AchievementService
type achievementServiceImpl struct {
	boardRepo repository.BoardRepository
	listCache *cache.BoardListCache
	metrics   *metrics.Metrics
	logger    *zap.Logger
	rng       *rand.Rand
	now       func() time.Time
}

// NewAchievementService creates a new instance of AchievementService
func NewAchievementService(
	boardRepo repository.BoardRepository,
	listCache *cache.BoardListCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) AchievementService {
	return &achievementServiceImpl{
		boardRepo: boardRepo,
		listCache: listCache,
		metrics:   m,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// mutateGraph reads the board, hands the decoded graph to mutate, commits
// the mutated arrays in a single update and returns the reloaded,
// formatted board. The read-mutate-write is not transactional; concurrent
// mutations resolve last-write-wins, but the node and edge arrays always
// land together.
func (s *achievementServiceImpl) mutateGraph(
	ctx context.Context,
	boardID uuid.UUID,
	mutate func(nodes []domain.AchievementNode, edges []domain.Edge) ([]domain.AchievementNode, []domain.Edge, error),
) (*dto.BoardResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	now := s.now()
	nodes := domain.DecodeNodes(board.Nodes, now)
	edges := domain.DecodeEdges(board.Edges)

	nodes, edges, err = mutate(nodes, edges)
	if err != nil {
		return nil, err
	}

	nodesJSON, err := domain.EncodeNodes(nodes)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode nodes", err.Error())
	}
	edgesJSON, err := domain.EncodeEdges(edges)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode edges", err.Error())
	}

	if err := s.boardRepo.UpdateGraph(ctx, boardID, nodesJSON, edgesJSON, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save board", err.Error())
	}

	updated, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload board", err.Error())
	}

	s.listCache.Invalidate(ctx)
	return formatBoard(updated, now), nil
}

// CreateAchievement adds a node to the board graph, optionally wiring an
// edge from a parent node in the same mutation.
func (s *achievementServiceImpl) CreateAchievement(ctx context.Context, boardID uuid.UUID, req *dto.CreateAchievementRequest) (*dto.CreateAchievementResponse, error) {
	nodeID := strings.TrimSpace(req.ID)
	if nodeID == "" {
		nodeID = "ach-" + uuid.NewString()
	}

	var edgeID string
	board, err := s.mutateGraph(ctx, boardID, func(nodes []domain.AchievementNode, edges []domain.Edge) ([]domain.AchievementNode, []domain.Edge, error) {
		if findNode(nodes, nodeID) != nil {
			return nil, nil, response.NewAppError(response.ErrCodeAlreadyExists, "achievement with that id already exists", "")
		}

		fields := req.Fields()
		data := dataFromFields(fields)
		fallbackIcon := strings.TrimSpace(fields.Icon)
		if fallbackIcon == "" {
			fallbackIcon = domain.RandomIcon(s.rng)
		}
		data = domain.NormalizeData(data, fallbackIcon)
		data = domain.ApplyTimelineDefaults(data, s.now())

		node := domain.AchievementNode{
			ID:             nodeID,
			Type:           stringOrDefault(req.Type, domain.DefaultNodeType),
			SourcePosition: stringOrDefault(req.SourcePosition, domain.DefaultSourcePosition),
			TargetPosition: stringOrDefault(req.TargetPosition, domain.DefaultTargetPosition),
			Data:           data,
		}
		if req.Position != nil {
			if req.Position.X != nil {
				node.Position.X = *req.Position.X
			}
			if req.Position.Y != nil {
				node.Position.Y = *req.Position.Y
			}
		}
		nodes = append(nodes, node)

		if parentID := strings.TrimSpace(req.ParentID); parentID != "" {
			edgeID = strings.TrimSpace(req.EdgeID)
			if edgeID == "" {
				edgeID = fmt.Sprintf("%s-%s", parentID, nodeID)
			}
			edges = append(edges, domain.Edge{
				ID:     edgeID,
				Source: parentID,
				Target: nodeID,
				Type:   stringOrDefault(req.EdgeType, domain.DefaultEdgeType),
			})
		}

		return nodes, edges, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementAchievementCreated()
	s.logger.Info("Achievement created",
		zap.String("board_id", boardID.String()),
		zap.String("achievement_id", nodeID))

	resp := &dto.CreateAchievementResponse{
		Node:  findNode(board.Nodes, nodeID),
		Board: board,
	}
	if edgeID != "" {
		resp.Edge = findEdge(board.Edges, edgeID)
	}
	return resp, nil
}

// UpdateAchievement applies a partial update to one node. Payload fields
// sent under "data" apply first, then fields sent flat on the request, so
// the flat shape wins when both carry the same field. The merged payload
// is re-normalized before it is stored.
func (s *achievementServiceImpl) UpdateAchievement(ctx context.Context, boardID uuid.UUID, achievementID string, req *dto.UpdateAchievementRequest) (*dto.AchievementResponse, error) {
	board, err := s.mutateGraph(ctx, boardID, func(nodes []domain.AchievementNode, edges []domain.Edge) ([]domain.AchievementNode, []domain.Edge, error) {
		node := findNode(nodes, achievementID)
		if node == nil {
			return nil, nil, response.NewAppError(response.ErrCodeNotFound, "Achievement not found", "")
		}
		s.applyNodePatch(node, req)
		return nodes, edges, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.AchievementResponse{
		Node:  findNode(board.Nodes, achievementID),
		Board: board,
	}, nil
}

// RecordProgress moves an achievement's progress counter and derives the
// status and timeline consequences.
func (s *achievementServiceImpl) RecordProgress(ctx context.Context, boardID uuid.UUID, achievementID string, req *dto.RecordProgressRequest) (*dto.AchievementResponse, error) {
	board, err := s.mutateGraph(ctx, boardID, func(nodes []domain.AchievementNode, edges []domain.Edge) ([]domain.AchievementNode, []domain.Edge, error) {
		node := findNode(nodes, achievementID)
		if node == nil {
			return nil, nil, response.NewAppError(response.ErrCodeNotFound, "Achievement not found", "")
		}
		node.Data = s.applyProgress(node.Data, req)
		return nodes, edges, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementProgressRecorded()

	return &dto.AchievementResponse{
		Node:  findNode(board.Nodes, achievementID),
		Board: board,
	}, nil
}

// DeleteAchievement removes a node and every edge touching it
func (s *achievementServiceImpl) DeleteAchievement(ctx context.Context, boardID uuid.UUID, achievementID string) (*dto.BoardOnlyResponse, error) {
	board, err := s.mutateGraph(ctx, boardID, func(nodes []domain.AchievementNode, edges []domain.Edge) ([]domain.AchievementNode, []domain.Edge, error) {
		if findNode(nodes, achievementID) == nil {
			return nil, nil, response.NewAppError(response.ErrCodeNotFound, "Achievement not found", "")
		}

		kept := make([]domain.AchievementNode, 0, len(nodes)-1)
		for _, n := range nodes {
			if n.ID != achievementID {
				kept = append(kept, n)
			}
		}
		keptEdges := make([]domain.Edge, 0, len(edges))
		for _, e := range edges {
			if e.Source != achievementID && e.Target != achievementID {
				keptEdges = append(keptEdges, e)
			}
		}
		return kept, keptEdges, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Achievement deleted",
		zap.String("board_id", boardID.String()),
		zap.String("achievement_id", achievementID))

	return &dto.BoardOnlyResponse{Board: board}, nil
}

// applyNodePatch merges an update request into a node in place
func (s *achievementServiceImpl) applyNodePatch(node *domain.AchievementNode, req *dto.UpdateAchievementRequest) {
	data := node.Data
	if req.Data != nil {
		data = applyDataPatch(data, req.Data)
	}
	data = applyDataPatch(data, &req.AchievementPatch)

	if req.Type != nil && strings.TrimSpace(*req.Type) != "" {
		node.Type = *req.Type
	}
	if req.Position != nil {
		if req.Position.X != nil {
			node.Position.X = *req.Position.X
		}
		if req.Position.Y != nil {
			node.Position.Y = *req.Position.Y
		}
	}
	if req.SourcePosition != nil && *req.SourcePosition != "" {
		node.SourcePosition = *req.SourcePosition
	}
	if req.TargetPosition != nil && *req.TargetPosition != "" {
		node.TargetPosition = *req.TargetPosition
	}

	fallbackIcon := strings.TrimSpace(data.Icon)
	if fallbackIcon == "" {
		fallbackIcon = domain.RandomIcon(s.rng)
	}
	data = domain.NormalizeData(data, fallbackIcon)
	node.Data = domain.ApplyTimelineDefaults(data, s.now())
}

// applyDataPatch merges the non-nil fields of a payload patch into an
// achievement payload. Title and label both rewrite label, and the name
// follows unless the patch sets one explicitly. Flat progress fields win
// over the nested progress object.
func applyDataPatch(data domain.AchievementData, p *dto.AchievementPatch) domain.AchievementData {
	var title *string
	if p.Title != nil {
		title = p.Title
	} else if p.Label != nil {
		title = p.Label
	}
	if title != nil {
		data.Label = *title
		if p.Name != nil {
			data.Name = *p.Name
		} else {
			data.Name = *title
		}
	} else if p.Name != nil {
		data.Name = *p.Name
	}

	if p.Description != nil {
		data.Description = *p.Description
	}
	if p.Status != nil {
		data.Status = domain.Status(*p.Status)
	}
	if p.Rarity != nil {
		data.Rarity = domain.Rarity(*p.Rarity)
	}
	if p.Reward != nil {
		data.Reward = *p.Reward
	}
	if p.Icon != nil {
		data.Icon = *p.Icon
	}
	if p.XP != nil {
		data.XP = *p.XP
	}
	if p.Tags != nil {
		data.Tags = p.Tags
	}
	if p.DependsOn != nil {
		data.DependsOn = p.DependsOn
	}

	if p.Progress != nil {
		if p.Progress.Current != nil {
			data.Progress.Current = *p.Progress.Current
		}
		if p.Progress.Total != nil {
			data.Progress.Total = *p.Progress.Total
		}
	}
	if p.ProgressTotal != nil {
		data.Progress.Total = *p.ProgressTotal
	}
	if p.ProgressCurrent != nil {
		data.Progress.Current = *p.ProgressCurrent
	}

	if p.Timeline != nil {
		if p.Timeline.CreatedAt != nil {
			data.Timeline.CreatedAt = p.Timeline.CreatedAt
		}
		if p.Timeline.UnlockedAt != nil {
			data.Timeline.UnlockedAt = p.Timeline.UnlockedAt
		}
		if p.Timeline.CompletedAt != nil {
			data.Timeline.CompletedAt = p.Timeline.CompletedAt
		}
	}

	return data
}

// applyProgress executes one progress mutation against a payload
func (s *achievementServiceImpl) applyProgress(data domain.AchievementData, req *dto.RecordProgressRequest) domain.AchievementData {
	now := s.now()

	total := data.Progress.Total
	if req.Total != nil {
		total = *req.Total
	} else if req.ProgressTotal != nil {
		total = *req.ProgressTotal
	}
	total = math.Max(1, total)

	current := data.Progress.Current
	if strings.EqualFold(req.Mode, "set") {
		if req.Value != nil {
			current = *req.Value
		} else if req.ProgressCurrent != nil {
			current = *req.ProgressCurrent
		}
	} else {
		delta := 1.0
		if req.Delta != nil {
			delta = *req.Delta
		}
		current += delta
	}
	current = domain.Clamp(current, 0, total)

	status := data.Status
	if req.Status != "" {
		status = domain.Status(req.Status)
	} else if current >= total {
		status = domain.StatusCompleted
	} else if current > 0 && status == domain.StatusLocked {
		status = domain.StatusTracking
	}

	data.Progress = domain.Progress{Current: current, Total: total}
	data.Status = status

	if status != domain.StatusLocked && data.Timeline.UnlockedAt == nil {
		t := now
		data.Timeline.UnlockedAt = &t
	}
	if (status == domain.StatusCompleted || status == domain.StatusMastered) &&
		current >= total && data.Timeline.CompletedAt == nil {
		t := now
		data.Timeline.CompletedAt = &t
	}

	if status == domain.StatusLocked && req.ResetUnlock {
		data = domain.ResetUnlock(data)
	}
	if req.ResetCompletion {
		data = domain.ResetCompletion(data, now)
	}

	fallbackIcon := strings.TrimSpace(data.Icon)
	if fallbackIcon == "" {
		fallbackIcon = domain.RandomIcon(s.rng)
	}
	data = domain.NormalizeData(data, fallbackIcon)
	return domain.ApplyTimelineDefaults(data, now)
}

func stringOrDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
