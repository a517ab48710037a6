package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"achievement-board-api/internal/domain"
)

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	FindSummariesFunc func(ctx context.Context) ([]*domain.Board, error)
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	CreateFunc        func(ctx context.Context, board *domain.Board) error
	UpsertFunc        func(ctx context.Context, board *domain.Board) error
	UpdateGraphFunc   func(ctx context.Context, id uuid.UUID, nodes, edges datatypes.JSON, updatedAt time.Time) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *MockBoardRepository) FindSummaries(ctx context.Context) ([]*domain.Board, error) {
	if m.FindSummariesFunc != nil {
		return m.FindSummariesFunc(ctx)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Upsert(ctx context.Context, board *domain.Board) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) UpdateGraph(ctx context.Context, id uuid.UUID, nodes, edges datatypes.JSON, updatedAt time.Time) error {
	if m.UpdateGraphFunc != nil {
		return m.UpdateGraphFunc(ctx, id, nodes, edges, updatedAt)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockArchiver is a mock implementation of BoardArchiver
type MockArchiver struct {
	ArchiveBoardFunc func(ctx context.Context, boardID string, snapshot []byte) (string, error)
	BucketName       string
}

func (m *MockArchiver) ArchiveBoard(ctx context.Context, boardID string, snapshot []byte) (string, error) {
	if m.ArchiveBoardFunc != nil {
		return m.ArchiveBoardFunc(ctx, boardID, snapshot)
	}
	return "boards/" + boardID + "/snapshot.json", nil
}

func (m *MockArchiver) Bucket() string {
	if m.BucketName != "" {
		return m.BucketName
	}
	return "test-bucket"
}
