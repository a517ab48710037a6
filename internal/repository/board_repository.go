package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"achievement-board-api/internal/domain"
)

// BoardRepository defines the interface for board document access
type BoardRepository interface {
	FindSummaries(ctx context.Context) ([]*domain.Board, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	Create(ctx context.Context, board *domain.Board) error
	Upsert(ctx context.Context, board *domain.Board) error
	UpdateGraph(ctx context.Context, id uuid.UUID, nodes, edges datatypes.JSON, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// FindSummaries lists every board, most recently updated first. Only the
// summary columns are selected; the graph columns stay in the store.
func (r *boardRepositoryImpl) FindSummaries(ctx context.Context) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Select("id", "name", "description", "created_at", "updated_at").
		Order("updated_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// FindByID loads one full board document
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Create inserts a new board document
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		return err
	}
	return nil
}

// Upsert replaces the board under its id, inserting it when absent
func (r *boardRepositoryImpl) Upsert(ctx context.Context, board *domain.Board) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(board).Error; err != nil {
		return err
	}
	return nil
}

// UpdateGraph commits a mutated node/edge pair back to the document in a
// single UPDATE, so the two arrays can never be written separately.
// Returns gorm.ErrRecordNotFound when the board vanished between the read
// and the write.
func (r *boardRepositoryImpl) UpdateGraph(ctx context.Context, id uuid.UUID, nodes, edges datatypes.JSON, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Board{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"nodes":      nodes,
			"edges":      edges,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a board; deleting an absent id is a no-op
func (r *boardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Board{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}

// Count reports how many boards exist
func (r *boardRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Board{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
