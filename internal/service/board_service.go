package service

import (
	"context"
	"encoding/json"
	"errors"
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

// BoardArchiver uploads board snapshots to object storage. A nil archiver
// means archival is not configured.
type BoardArchiver interface {
	ArchiveBoard(ctx context.Context, boardID string, snapshot []byte) (string, error)
	Bucket() string
}

// BoardService defines the interface for board-level business logic
type BoardService interface {
	ListBoards(ctx context.Context) ([]*dto.BoardSummaryResponse, error)
	CreateBoard(ctx context.Context, req *dto.SaveBoardRequest) (*dto.BoardResponse, error)
	GetBoard(ctx context.Context, boardID uuid.UUID) (*dto.BoardResponse, error)
	ReplaceBoard(ctx context.Context, boardID uuid.UUID, req *dto.SaveBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, boardID uuid.UUID) error
	ExportBoard(ctx context.Context, boardID uuid.UUID) (*dto.ExportBoardResponse, error)
	CountBoards(ctx context.Context) (int64, error)
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	listCache *cache.BoardListCache
	archiver  BoardArchiver
	metrics   *metrics.Metrics
	logger    *zap.Logger
	rng       *rand.Rand
	now       func() time.Time
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	listCache *cache.BoardListCache,
	archiver BoardArchiver,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		listCache: listCache,
		archiver:  archiver,
		metrics:   m,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// ListBoards lists board summaries, most recently updated first
func (s *boardServiceImpl) ListBoards(ctx context.Context) ([]*dto.BoardSummaryResponse, error) {
	if cached, ok := s.listCache.Get(ctx); ok {
		return cached, nil
	}

	boards, err := s.boardRepo.FindSummaries(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list boards", err.Error())
	}

	summaries := make([]*dto.BoardSummaryResponse, len(boards))
	for i, board := range boards {
		summaries[i] = &dto.BoardSummaryResponse{
			ID:          board.ID,
			Name:        board.Name,
			Description: board.Description,
			CreatedAt:   board.CreatedAt,
			UpdatedAt:   board.UpdatedAt,
		}
	}

	s.listCache.Set(ctx, summaries)
	return summaries, nil
}

// CreateBoard creates a new board from the request
func (s *boardServiceImpl) CreateBoard(ctx context.Context, req *dto.SaveBoardRequest) (*dto.BoardResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "name is required", "")
	}

	board := s.buildBoardDocument(req, nil)
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	created, err := s.boardRepo.FindByID(ctx, board.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload created board", err.Error())
	}

	s.metrics.IncrementBoardCreated()
	s.listCache.Invalidate(ctx)

	s.logger.Info("Board created",
		zap.String("board_id", created.ID.String()),
		zap.String("name", created.Name))

	return formatBoard(created, s.now()), nil
}

// GetBoard retrieves one board with freshly computed stats
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID uuid.UUID) (*dto.BoardResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return formatBoard(board, s.now()), nil
}

// ReplaceBoard replaces the whole board document under the given id,
// creating it when absent. Nodes and edges are re-normalized from
// scratch; createdAt survives from the stored document.
func (s *boardServiceImpl) ReplaceBoard(ctx context.Context, boardID uuid.UUID, req *dto.SaveBoardRequest) (*dto.BoardResponse, error) {
	existing, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
		}
		existing = nil
	}

	board := s.buildBoardDocument(req, existing)
	board.ID = boardID

	if err := s.boardRepo.Upsert(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to replace board", err.Error())
	}

	updated, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload board", err.Error())
	}

	s.listCache.Invalidate(ctx)
	return formatBoard(updated, s.now()), nil
}

// DeleteBoard deletes a board; deleting an absent board succeeds
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}
	s.listCache.Invalidate(ctx)
	return nil
}

// ExportBoard uploads a JSON snapshot of the formatted board to the
// archive bucket and returns the object key.
func (s *boardServiceImpl) ExportBoard(ctx context.Context, boardID uuid.UUID) (*dto.ExportBoardResponse, error) {
	if s.archiver == nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "archive storage is not configured", "")
	}

	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(board)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to serialize board snapshot", err.Error())
	}

	key, err := s.archiver.ArchiveBoard(ctx, boardID.String(), snapshot)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to archive board snapshot", err.Error())
	}

	s.logger.Info("Board snapshot archived",
		zap.String("board_id", boardID.String()),
		zap.String("key", key))

	return &dto.ExportBoardResponse{
		Key:        key,
		Bucket:     s.archiver.Bucket(),
		ExportedAt: s.now(),
	}, nil
}

// CountBoards reports how many boards exist
func (s *boardServiceImpl) CountBoards(ctx context.Context) (int64, error) {
	count, err := s.boardRepo.Count(ctx)
	if err != nil {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to count boards", err.Error())
	}
	return count, nil
}

// buildBoardDocument assembles the stored document from the request and,
// for replaces, the existing document. Empty request fields fall back to
// the existing values; omitted node/edge arrays retain the stored graph,
// re-normalized. createdAt is preserved from the existing document and
// updatedAt always moves to now.
func (s *boardServiceImpl) buildBoardDocument(req *dto.SaveBoardRequest, existing *domain.Board) *domain.Board {
	now := s.now()

	name := strings.TrimSpace(req.Name)
	if name == "" && existing != nil {
		name = existing.Name
	}
	if name == "" {
		name = "Untitled"
	}

	description := req.Description
	if description == "" && existing != nil {
		description = existing.Description
	}

	var ownerID *string
	if req.OwnerID != "" {
		owner := req.OwnerID
		ownerID = &owner
	} else if existing != nil {
		ownerID = existing.OwnerID
	}

	var nodes []domain.AchievementNode
	if req.Nodes != nil {
		nodes = prepareNodes(req.Nodes, s.rng, now)
	} else if existing != nil {
		nodes = domain.DecodeNodes(existing.Nodes, now)
	} else {
		nodes = []domain.AchievementNode{}
	}

	var edges []domain.Edge
	if req.Edges != nil {
		edges = prepareEdges(req.Edges)
	} else if existing != nil {
		edges = domain.DecodeEdges(existing.Edges)
	} else {
		edges = []domain.Edge{}
	}

	layout := req.Layout
	if layout == nil && existing != nil {
		layout = decodeMeta(existing.Layout, nil)
	}
	if layout == nil {
		layout = domain.DefaultLayout()
	}
	settings := req.Settings
	if settings == nil && existing != nil {
		settings = decodeMeta(existing.Settings, nil)
	}
	if settings == nil {
		settings = map[string]interface{}{}
	}
	theme := req.Theme
	if theme == nil && existing != nil {
		theme = decodeMeta(existing.Theme, nil)
	}
	if theme == nil {
		theme = domain.DefaultTheme()
	}

	createdAt := now
	if existing != nil {
		createdAt = existing.CreatedAt
	} else if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	nodesJSON, _ := domain.EncodeNodes(nodes)
	edgesJSON, _ := domain.EncodeEdges(edges)

	return &domain.Board{
		BaseModel: domain.BaseModel{
			CreatedAt: createdAt,
			UpdatedAt: now,
		},
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Layout:      encodeMeta(layout),
		Settings:    encodeMeta(settings),
		Theme:       encodeMeta(theme),
		Nodes:       nodesJSON,
		Edges:       edgesJSON,
	}
}
