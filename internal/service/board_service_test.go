package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"achievement-board-api/internal/cache"
	"achievement-board-api/internal/domain"
	"achievement-board-api/internal/dto"
	"achievement-board-api/internal/response"
)

var testNow = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func newTestBoardService(repo *MockBoardRepository, archiver BoardArchiver) *boardServiceImpl {
	return &boardServiceImpl{
		boardRepo: repo,
		listCache: cache.NewBoardListCache(nil, time.Minute, zap.NewNop()),
		archiver:  archiver,
		metrics:   nil,
		logger:    zap.NewNop(),
		rng:       rand.New(rand.NewSource(42)),
		now:       func() time.Time { return testNow },
	}
}

func storedBoard(id uuid.UUID, name string, nodes []domain.AchievementNode, edges []domain.Edge) *domain.Board {
	nodesJSON, _ := domain.EncodeNodes(nodes)
	edgesJSON, _ := domain.EncodeEdges(edges)
	return &domain.Board{
		BaseModel: domain.BaseModel{
			ID:        id,
			CreatedAt: testNow.Add(-48 * time.Hour),
			UpdatedAt: testNow.Add(-time.Hour),
		},
		Name:  name,
		Nodes: nodesJSON,
		Edges: edgesJSON,
	}
}

func TestCreateBoard_NameRequired(t *testing.T) {
	svc := newTestBoardService(&MockBoardRepository{}, nil)

	_, err := svc.CreateBoard(context.Background(), &dto.SaveBoardRequest{Name: "   "})
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestCreateBoard_NormalizesNodesAndComputesStats(t *testing.T) {
	var stored *domain.Board
	repo := &MockBoardRepository{
		CreateFunc: func(ctx context.Context, board *domain.Board) error {
			board.ID = uuid.New()
			stored = board
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return stored, nil
		},
	}
	svc := newTestBoardService(repo, nil)

	board, err := svc.CreateBoard(context.Background(), &dto.SaveBoardRequest{
		Name: "Quest Log",
		Nodes: []map[string]interface{}{
			{
				"id": "q1",
				"data": map[string]interface{}{
					"label":  "First Quest",
					"status": "completed",
					"xp":     300.0,
					"progress": map[string]interface{}{
						"current": 1.0,
						"total":   1.0,
					},
				},
			},
			{
				"data": map[string]interface{}{"title": "Second Quest"},
			},
		},
		Edges: []map[string]interface{}{
			{"source": "q1", "target": "ach-1"},
			{"source": "dangling"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Quest Log", board.Name)
	require.Len(t, board.Nodes, 2)
	assert.Equal(t, "q1", board.Nodes[0].ID)
	assert.Equal(t, "ach-1", board.Nodes[1].ID)
	assert.Equal(t, "Second Quest", board.Nodes[1].Data.Label)

	// Edge without a target is dropped
	require.Len(t, board.Edges, 1)
	assert.Equal(t, "q1", board.Edges[0].Source)

	// 300 completed XP puts the board at level 2
	assert.Equal(t, 2, board.Stats.Level)
	assert.Equal(t, 300.0, board.Stats.XPCompleted)
	assert.Equal(t, 2, board.Progression.Level)
}

func TestCreateBoard_AppliesDefaults(t *testing.T) {
	var stored *domain.Board
	repo := &MockBoardRepository{
		CreateFunc: func(ctx context.Context, board *domain.Board) error {
			board.ID = uuid.New()
			stored = board
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return stored, nil
		},
	}
	svc := newTestBoardService(repo, nil)

	board, err := svc.CreateBoard(context.Background(), &dto.SaveBoardRequest{Name: "Minimal"})
	require.NoError(t, err)

	assert.Equal(t, "TB", board.Layout["direction"])
	assert.Equal(t, "overworld", board.Theme["palette"])
	assert.Equal(t, "#22c55e", board.Theme["accent"])
	assert.Empty(t, board.Nodes)
	assert.Empty(t, board.Edges)
}

func TestListBoards_MapsSummaries(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	repo := &MockBoardRepository{
		FindSummariesFunc: func(ctx context.Context) ([]*domain.Board, error) {
			return []*domain.Board{
				storedBoard(id1, "Newest", nil, nil),
				storedBoard(id2, "Older", nil, nil),
			}, nil
		},
	}
	svc := newTestBoardService(repo, nil)

	summaries, err := svc.ListBoards(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, id1, summaries[0].ID)
	assert.Equal(t, "Newest", summaries[0].Name)
	assert.Equal(t, "Older", summaries[1].Name)
}

func TestGetBoard_NotFound(t *testing.T) {
	repo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestBoardService(repo, nil)

	_, err := svc.GetBoard(context.Background(), uuid.New())
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestReplaceBoard_PreservesCreatedAtAndStoredGraph(t *testing.T) {
	boardID := uuid.New()
	existing := storedBoard(boardID, "Original", []domain.AchievementNode{
		{ID: "keep-me", Data: domain.AchievementData{Label: "Keeper"}},
	}, nil)
	existing.Description = "old description"

	var upserted *domain.Board
	repo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			if upserted != nil {
				return upserted, nil
			}
			return existing, nil
		},
		UpsertFunc: func(ctx context.Context, board *domain.Board) error {
			upserted = board
			return nil
		},
	}
	svc := newTestBoardService(repo, nil)

	// Name and nodes omitted: both fall back to the stored document
	board, err := svc.ReplaceBoard(context.Background(), boardID, &dto.SaveBoardRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Original", board.Name)
	assert.Equal(t, "old description", board.Description)
	assert.Equal(t, existing.CreatedAt, board.CreatedAt)
	require.Len(t, board.Nodes, 1)
	assert.Equal(t, "keep-me", board.Nodes[0].ID)
	assert.Equal(t, testNow, board.UpdatedAt)
}

func TestReplaceBoard_ExplicitEmptyNodesClearsGraph(t *testing.T) {
	boardID := uuid.New()
	existing := storedBoard(boardID, "Original", []domain.AchievementNode{
		{ID: "gone", Data: domain.AchievementData{Label: "Goner"}},
	}, []domain.Edge{{ID: "e", Source: "gone", Target: "gone"}})

	var upserted *domain.Board
	repo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			if upserted != nil {
				return upserted, nil
			}
			return existing, nil
		},
		UpsertFunc: func(ctx context.Context, board *domain.Board) error {
			upserted = board
			return nil
		},
	}
	svc := newTestBoardService(repo, nil)

	board, err := svc.ReplaceBoard(context.Background(), boardID, &dto.SaveBoardRequest{
		Nodes: []map[string]interface{}{},
		Edges: []map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.Empty(t, board.Nodes)
	assert.Empty(t, board.Edges)
}

func TestReplaceBoard_CreatesWhenAbsent(t *testing.T) {
	boardID := uuid.New()
	var upserted *domain.Board
	repo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			if upserted != nil {
				return upserted, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		UpsertFunc: func(ctx context.Context, board *domain.Board) error {
			upserted = board
			return nil
		},
	}
	svc := newTestBoardService(repo, nil)

	board, err := svc.ReplaceBoard(context.Background(), boardID, &dto.SaveBoardRequest{})
	require.NoError(t, err)
	assert.Equal(t, boardID, board.ID)
	assert.Equal(t, "Untitled", board.Name)
}

func TestDeleteBoard_AbsentIDSucceeds(t *testing.T) {
	repo := &MockBoardRepository{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			return nil
		},
	}
	svc := newTestBoardService(repo, nil)
	assert.NoError(t, svc.DeleteBoard(context.Background(), uuid.New()))
}

func TestExportBoard_RequiresArchiver(t *testing.T) {
	svc := newTestBoardService(&MockBoardRepository{}, nil)

	_, err := svc.ExportBoard(context.Background(), uuid.New())
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestExportBoard_UploadsSnapshot(t *testing.T) {
	boardID := uuid.New()
	repo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return storedBoard(boardID, "Archive Me", nil, nil), nil
		},
	}

	var captured []byte
	archiver := &MockArchiver{
		ArchiveBoardFunc: func(ctx context.Context, id string, snapshot []byte) (string, error) {
			captured = snapshot
			return "boards/" + id + "/snap.json", nil
		},
		BucketName: "archive-bucket",
	}
	svc := newTestBoardService(repo, archiver)

	result, err := svc.ExportBoard(context.Background(), boardID)
	require.NoError(t, err)
	assert.Equal(t, "archive-bucket", result.Bucket)
	assert.Contains(t, result.Key, boardID.String())

	var snapshot dto.BoardResponse
	require.NoError(t, json.Unmarshal(captured, &snapshot))
	assert.Equal(t, "Archive Me", snapshot.Name)
}

func TestExportBoard_ArchiveFailure(t *testing.T) {
	boardID := uuid.New()
	repo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return storedBoard(boardID, "Archive Me", nil, nil), nil
		},
	}
	archiver := &MockArchiver{
		ArchiveBoardFunc: func(ctx context.Context, id string, snapshot []byte) (string, error) {
			return "", errors.New("bucket unreachable")
		},
	}
	svc := newTestBoardService(repo, archiver)

	_, err := svc.ExportBoard(context.Background(), boardID)
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeInternal, appErr.Code)
}
