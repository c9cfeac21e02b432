package models

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlockRecord is the stored form of one block node. Content holds the
// variant sub-structure without its children; the children are the records
// whose ParentID points at this one, ordered by Position.
type BlockRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ParentID       *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Position       int            `gorm:"not null;default:0" json:"position"`
	Type           BlockType      `gorm:"type:varchar(32);not null" json:"type"`
	Content        datatypes.JSON `gorm:"not null" json:"content"`
	Archived       bool           `gorm:"not null;default:false" json:"archived"`
	HasChildren    bool           `gorm:"not null;default:false" json:"has_children"`
	CreatedTime    time.Time      `gorm:"not null" json:"created_time"`
	LastEditedTime time.Time      `gorm:"not null" json:"last_edited_time"`
}

func (BlockRecord) TableName() string { return "blocks" }

// NewBlockRecord flattens one node of a block tree. id replaces the block's
// own id, which is nil for blocks that were never persisted. Zero timestamps
// are set to now.
func NewBlockRecord(b Block, id uuid.UUID, parentID *uuid.UUID, position int, now time.Time) (*BlockRecord, error) {
	metadata := b.Metadata()
	content, err := variantContent(b)
	if err != nil {
		return nil, err
	}

	created := metadata.CreatedTime()
	if created.IsZero() {
		created = now
	}
	edited := metadata.LastEditedTime()
	if edited.IsZero() {
		edited = now
	}

	return &BlockRecord{
		ID:             id,
		ParentID:       parentID,
		Position:       position,
		Type:           metadata.Type(),
		Content:        content,
		Archived:       metadata.Archived(),
		HasChildren:    metadata.HasChildren() || len(ChildrenOf(b)) > 0,
		CreatedTime:    created.UTC(),
		LastEditedTime: edited.UTC(),
	}, nil
}

func variantContent(b Block) (datatypes.JSON, error) {
	tag := string(b.Metadata().Type())
	body, ok := objectOf(b.ToStructure()[tag])
	if !ok {
		return nil, fmt.Errorf("block %s has no %s content", b.Metadata().ID(), tag)
	}
	stripped := make(map[string]interface{}, len(body))
	for key, value := range body {
		if key != "children" {
			stripped[key] = value
		}
	}
	data, err := json.Marshal(stripped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", tag, err)
	}
	return datatypes.JSON(data), nil
}

// SetContent replaces the stored content and flags with those of b.
func (r *BlockRecord) SetContent(b Block, now time.Time) error {
	content, err := variantContent(b)
	if err != nil {
		return err
	}
	r.Content = content
	r.Archived = b.Metadata().Archived()
	r.LastEditedTime = now.UTC()
	return nil
}

// Structure rebuilds the block structure of the record. children are the
// already rebuilt structures of its loaded child records.
func (r BlockRecord) Structure(children []interface{}) (Structure, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(r.Content, &body); err != nil {
		return nil, fmt.Errorf("failed to decode content of block %s: %w", r.ID, err)
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	if len(children) > 0 {
		body["children"] = children
	}

	return Structure{
		"object":           "block",
		"id":               r.ID.String(),
		"created_time":     FormatTime(r.CreatedTime),
		"last_edited_time": FormatTime(r.LastEditedTime),
		"archived":         r.Archived,
		"has_children":     r.HasChildren || len(children) > 0,
		"type":             string(r.Type),
		string(r.Type):     body,
	}, nil
}
