package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the timestamp format used by the API: UTC, millisecond
// precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// BlockMetadata is the envelope shared by every block variant. It is a value
// type; the update methods return modified copies.
type BlockMetadata struct {
	id             uuid.UUID
	createdTime    time.Time
	lastEditedTime time.Time
	archived       bool
	hasChildren    bool
	blockType      BlockType
}

// NewBlockMetadata returns metadata for a block that has never been persisted:
// no id, no timestamps, not archived, no children.
func NewBlockMetadata(blockType BlockType) BlockMetadata {
	return BlockMetadata{blockType: blockType}
}

// BlockMetadataFromStructure reads the common envelope fields of a block.
func BlockMetadataFromStructure(data Structure) (BlockMetadata, error) {
	return metadataFromObject(data)
}

func metadataFromObject(obj map[string]interface{}) (BlockMetadata, error) {
	var m BlockMetadata

	if object, ok, err := optionalString(obj, "object"); err != nil {
		return m, err
	} else if ok && object != "block" {
		return m, &SchemaError{Path: "object", Reason: fmt.Sprintf("expected \"block\", got %q", object)}
	}

	tag, err := requiredString(obj, "type")
	if err != nil {
		return m, err
	}
	if m.blockType, err = ParseBlockType(tag); err != nil {
		return m, &SchemaError{Path: "type", Reason: "unknown block type tag", Err: err}
	}

	if raw, ok, err := optionalString(obj, "id"); err != nil {
		return m, err
	} else if ok {
		if m.id, err = uuid.Parse(raw); err != nil {
			return m, &SchemaError{Path: "id", Reason: "malformed block id", Err: err}
		}
	}
	if m.createdTime, err = optionalTime(obj, "created_time"); err != nil {
		return m, err
	}
	if m.lastEditedTime, err = optionalTime(obj, "last_edited_time"); err != nil {
		return m, err
	}
	if m.archived, err = optionalBool(obj, "archived"); err != nil {
		return m, err
	}
	if m.hasChildren, err = optionalBool(obj, "has_children"); err != nil {
		return m, err
	}
	return m, nil
}

func optionalTime(obj map[string]interface{}, key string) (time.Time, error) {
	raw, ok, err := optionalString(obj, key)
	if err != nil || !ok {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &SchemaError{Path: key, Reason: "malformed ISO-8601 timestamp", Err: err}
	}
	return t.UTC(), nil
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// CheckType fails unless the metadata was built for expected.
func (m BlockMetadata) CheckType(expected BlockType) error {
	if m.blockType != expected {
		return &TypeMismatchError{Expected: expected, Actual: m.blockType}
	}
	return nil
}

func (m BlockMetadata) ID() uuid.UUID             { return m.id }
func (m BlockMetadata) IsPersisted() bool         { return m.id != uuid.Nil }
func (m BlockMetadata) CreatedTime() time.Time    { return m.createdTime }
func (m BlockMetadata) LastEditedTime() time.Time { return m.lastEditedTime }
func (m BlockMetadata) Archived() bool            { return m.archived }
func (m BlockMetadata) HasChildren() bool         { return m.hasChildren }
func (m BlockMetadata) Type() BlockType           { return m.blockType }

func (m BlockMetadata) UpdateHasChildren(hasChildren bool) BlockMetadata {
	m.hasChildren = hasChildren
	return m
}

func (m BlockMetadata) Archive() BlockMetadata {
	m.archived = true
	return m
}

// ToStructure emits the envelope. id and timestamps are left out while the
// block has never been persisted.
func (m BlockMetadata) ToStructure() Structure {
	out := Structure{
		"object":       "block",
		"archived":     m.archived,
		"has_children": m.hasChildren,
		"type":         string(m.blockType),
	}
	if m.id != uuid.Nil {
		out["id"] = m.id.String()
	}
	if !m.createdTime.IsZero() {
		out["created_time"] = FormatTime(m.createdTime)
	}
	if !m.lastEditedTime.IsZero() {
		out["last_edited_time"] = FormatTime(m.lastEditedTime)
	}
	return out
}
