package dto

import (
	"time"

	"github.com/google/uuid"

	"achievement-board-api/internal/domain"
)

// SaveBoardRequest is the body for creating or replacing a board. All
// fields besides name are optional; on replace, empty fields fall back to
// whatever the stored board already has. Nodes and edges are accepted in
// whatever loose shape the editor sends and are re-normalized from scratch;
// a nil slice (field omitted) retains the stored arrays, while an explicit
// empty array clears them.
// @Description Request body for creating or replacing a board
type SaveBoardRequest struct {
	Name        string                   `json:"name" example:"Life Quest Log"`
	Description string                   `json:"description" example:"Every quest worth chasing"`
	OwnerID     string                   `json:"ownerId,omitempty"`
	Layout      map[string]interface{}   `json:"layout,omitempty"`
	Settings    map[string]interface{}   `json:"settings,omitempty"`
	Theme       map[string]interface{}   `json:"theme,omitempty"`
	Nodes       []map[string]interface{} `json:"nodes,omitempty"`
	Edges       []map[string]interface{} `json:"edges,omitempty"`
	CreatedAt   *time.Time               `json:"createdAt,omitempty"`
}

// BoardSummaryResponse is one row of the board list
type BoardSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BoardResponse is the full normalized board plus its derived aggregates
type BoardResponse struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	OwnerID     *string                  `json:"ownerId"`
	Layout      map[string]interface{}   `json:"layout"`
	Settings    map[string]interface{}   `json:"settings"`
	Theme       map[string]interface{}   `json:"theme"`
	Nodes       []domain.AchievementNode `json:"nodes"`
	Edges       []domain.Edge            `json:"edges"`
	Stats       domain.Stats             `json:"stats"`
	Progression domain.Progression       `json:"progression"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// DeleteBoardResponse acknowledges a board deletion
type DeleteBoardResponse struct {
	Message string `json:"message" example:"deleted"`
}

// ExportBoardResponse reports where a board snapshot was archived
type ExportBoardResponse struct {
	Key        string    `json:"key"`
	Bucket     string    `json:"bucket"`
	ExportedAt time.Time `json:"exportedAt"`
}

// DebugResponse reports store-level counters for operators
type DebugResponse struct {
	Boards int64 `json:"boards"`
}
