package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BaseModel holds the common identity and bookkeeping columns
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"type:timestamp;not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"type:timestamp;not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID when none was provided by the caller
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Board is the single persisted aggregate: one document-style row per
// achievement board. The graph itself (nodes and edges) and the free-form
// presentation metadata live in JSON columns; they are normalized on every
// read rather than validated on write, so the row tolerates whatever shape
// older clients persisted.
type Board struct {
	BaseModel
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OwnerID     *string        `gorm:"type:varchar(255);index:idx_boards_owner_id" json:"ownerId"`
	Layout      datatypes.JSON `gorm:"type:jsonb" json:"layout"`
	Settings    datatypes.JSON `gorm:"type:jsonb" json:"settings"`
	Theme       datatypes.JSON `gorm:"type:jsonb" json:"theme"`
	Nodes       datatypes.JSON `gorm:"type:jsonb" json:"nodes"`
	Edges       datatypes.JSON `gorm:"type:jsonb" json:"edges"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// Default presentation metadata, applied when a board or client omits it.
const (
	DefaultLayoutDirection = "TB"
	DefaultThemePalette    = "overworld"
	DefaultThemeAccent     = "#22c55e"
)

// DefaultLayout returns the layout metadata used when none is stored
func DefaultLayout() map[string]interface{} {
	return map[string]interface{}{"direction": DefaultLayoutDirection}
}

// DefaultTheme returns the theme metadata used when none is stored
func DefaultTheme() map[string]interface{} {
	return map[string]interface{}{
		"palette": DefaultThemePalette,
		"accent":  DefaultThemeAccent,
	}
}
