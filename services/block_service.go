package services

import (
	"errors"
	"fmt"
	"time"

	"notion-blocks/blockmirror/broker"
	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/utils/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockServiceInterface interface {
	CreateBlock(db *database.Database, actorID string, data models.Structure) (models.Block, error)
	GetBlock(db *database.Database, id string) (models.Block, error)
	ListChildren(db *database.Database, id string) ([]models.Block, error)
	AppendChildren(db *database.Database, actorID string, id string, children []models.Structure) (models.Block, error)
	UpdateBlock(db *database.Database, actorID string, id string, update models.Structure) (models.Block, error)
	ArchiveBlock(db *database.Database, actorID string, id string) (models.Block, error)
	GetPlainText(db *database.Database, id string, recursive bool) (string, error)
}

// BlockService mirrors block trees into the blocks table. Every write stores
// an outbox event in the same transaction.
type BlockService struct {
	decoder models.Decoder
	now     func() time.Time
}

func NewBlockService(maxDepth int) *BlockService {
	return &BlockService{
		decoder: models.Decoder{MaxDepth: maxDepth},
		now:     time.Now,
	}
}

var BlockServiceInstance BlockServiceInterface = NewBlockService(models.DefaultMaxDepth)

func parseBlockID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid block id %q", ErrInvalidInput, id)
	}
	return parsed, nil
}

func (s *BlockService) CreateBlock(db *database.Database, actorID string, data models.Structure) (models.Block, error) {
	block, err := s.decoder.Decode(data)
	if err != nil {
		return nil, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	now := s.now().UTC()
	rootID, err := s.insertTree(tx, block, nil, 0, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	event, err := models.NewEvent(
		broker.BlockCreated.String(),
		rootID,
		actorID,
		map[string]interface{}{
			"block_id": rootID.String(),
			"type":     string(block.Metadata().Type()),
			"count":    models.CountBlocks(block),
		},
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	logger.Log.Info().Str("block_id", rootID.String()).Str("type", string(block.Metadata().Type())).Msg("Block created")
	return s.loadTree(db.DB, rootID)
}

// insertTree stores b and its subtree. Blocks without an id get a fresh one;
// a block whose id is already stored is rejected.
func (s *BlockService) insertTree(tx *gorm.DB, b models.Block, parentID *uuid.UUID, position int, now time.Time) (uuid.UUID, error) {
	id := b.Metadata().ID()
	if id == uuid.Nil {
		id = uuid.New()
	} else {
		var count int64
		if err := tx.Model(&models.BlockRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return uuid.Nil, err
		}
		if count > 0 {
			return uuid.Nil, fmt.Errorf("%w: block %s", ErrResourceExists, id)
		}
	}

	record, err := models.NewBlockRecord(b, id, parentID, position, now)
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Create(record).Error; err != nil {
		return uuid.Nil, err
	}

	for i, child := range models.ChildrenOf(b) {
		if _, err := s.insertTree(tx, child, &id, i, now); err != nil {
			return uuid.Nil, err
		}
	}
	return id, nil
}

func findRecord(tx *gorm.DB, id uuid.UUID) (models.BlockRecord, error) {
	var record models.BlockRecord
	if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BlockRecord{}, ErrBlockNotFound
		}
		return models.BlockRecord{}, err
	}
	return record, nil
}

func childRecords(tx *gorm.DB, parentID uuid.UUID) ([]models.BlockRecord, error) {
	var records []models.BlockRecord
	err := tx.Where("parent_id = ? AND archived = ?", parentID, false).
		Order("position ASC").
		Find(&records).Error
	return records, err
}

func (s *BlockService) maxDepth() int {
	if s.decoder.MaxDepth < 1 {
		return models.DefaultMaxDepth
	}
	return s.decoder.MaxDepth
}

// buildStructure rebuilds the structure of record and of its live
// descendants. Below the depth limit children are left unloaded and only
// has_children reports them.
func (s *BlockService) buildStructure(tx *gorm.DB, record models.BlockRecord, depth int) (models.Structure, error) {
	var children []interface{}
	if record.HasChildren && depth < s.maxDepth() {
		records, err := childRecords(tx, record.ID)
		if err != nil {
			return nil, err
		}
		for _, child := range records {
			structure, err := s.buildStructure(tx, child, depth+1)
			if err != nil {
				return nil, err
			}
			children = append(children, map[string]interface{}(structure))
		}
	}
	return record.Structure(children)
}

func (s *BlockService) loadTree(tx *gorm.DB, id uuid.UUID) (models.Block, error) {
	record, err := findRecord(tx, id)
	if err != nil {
		return nil, err
	}
	structure, err := s.buildStructure(tx, record, 0)
	if err != nil {
		return nil, err
	}
	return s.decodeStored(structure)
}

// loadNode decodes a single stored block without its children.
func (s *BlockService) loadNode(record models.BlockRecord) (models.Block, error) {
	structure, err := record.Structure(nil)
	if err != nil {
		return nil, err
	}
	return s.decodeStored(structure)
}

func (s *BlockService) decodeStored(structure models.Structure) (models.Block, error) {
	block, err := s.decoder.Decode(structure)
	if err != nil {
		return nil, fmt.Errorf("%w: block %v: %v", ErrCorruptBlock, structure["id"], err)
	}
	return block, nil
}

func (s *BlockService) GetBlock(db *database.Database, id string) (models.Block, error) {
	blockID, err := parseBlockID(id)
	if err != nil {
		return nil, err
	}
	return s.loadTree(db.DB, blockID)
}

func (s *BlockService) ListChildren(db *database.Database, id string) ([]models.Block, error) {
	blockID, err := parseBlockID(id)
	if err != nil {
		return nil, err
	}
	if _, err := findRecord(db.DB, blockID); err != nil {
		return nil, err
	}

	records, err := childRecords(db.DB, blockID)
	if err != nil {
		return nil, err
	}
	children := make([]models.Block, 0, len(records))
	for _, record := range records {
		structure, err := s.buildStructure(db.DB, record, 1)
		if err != nil {
			return nil, err
		}
		child, err := s.decodeStored(structure)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (s *BlockService) AppendChildren(db *database.Database, actorID string, id string, children []models.Structure) (models.Block, error) {
	blockID, err := parseBlockID(id)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: no children to append", ErrInvalidInput)
	}

	// Appended children sit one level below the parent.
	childDecoder := models.Decoder{MaxDepth: s.maxDepth() - 1}
	blocks := make([]models.Block, 0, len(children))
	for i, data := range children {
		var child models.Block
		if childDecoder.MaxDepth < 1 {
			err = &models.SchemaError{Reason: fmt.Sprintf("children nested deeper than %d levels", s.maxDepth())}
		} else {
			child, err = childDecoder.Decode(data)
		}
		if err != nil {
			return nil, models.PrefixPath(err, fmt.Sprintf("children[%d]", i))
		}
		blocks = append(blocks, child)
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	parent, err := findRecord(tx, blockID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if parent.Archived {
		tx.Rollback()
		return nil, ErrBlockArchived
	}
	if !parent.Type.AcceptsChildren() {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s", ErrNoChildren, parent.Type)
	}

	var last struct{ Position *int }
	if err := tx.Model(&models.BlockRecord{}).
		Select("MAX(position) AS position").
		Where("parent_id = ?", blockID).
		Scan(&last).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	next := 0
	if last.Position != nil {
		next = *last.Position + 1
	}

	now := s.now().UTC()
	ids := make([]string, 0, len(blocks))
	for i, child := range blocks {
		childID, err := s.insertTree(tx, child, &blockID, next+i, now)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		ids = append(ids, childID.String())
	}

	if err := tx.Model(&parent).Updates(map[string]interface{}{
		"has_children":     true,
		"last_edited_time": now,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	event, err := models.NewEvent(
		broker.BlockChildrenAppended.String(),
		blockID,
		actorID,
		map[string]interface{}{
			"block_id": blockID.String(),
			"children": ids,
		},
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	logger.Log.Info().Str("block_id", blockID.String()).Int("children", len(ids)).Msg("Children appended")
	return s.loadTree(db.DB, blockID)
}

func (s *BlockService) UpdateBlock(db *database.Database, actorID string, id string, update models.Structure) (models.Block, error) {
	blockID, err := parseBlockID(id)
	if err != nil {
		return nil, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	record, err := findRecord(tx, blockID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	// Archived blocks are read-only. Re-asserting the flag alone is a no-op.
	if record.Archived {
		tx.Rollback()
		if onlyArchives(update) {
			return s.loadTree(db.DB, blockID)
		}
		return nil, ErrBlockArchived
	}
	current, err := s.loadNode(record)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	updated, err := models.ApplyPartialUpdate(current, update)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	eventType := broker.BlockUpdated
	if updated.Metadata().Archived() && !current.Metadata().Archived() {
		eventType = broker.BlockArchived
	}
	if err := s.saveNode(tx, &record, updated, eventType, actorID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	logger.Log.Info().Str("block_id", blockID.String()).Str("event", eventType.String()).Msg("Block updated")
	return s.loadTree(db.DB, blockID)
}

// onlyArchives reports whether update does nothing but set archived to true.
func onlyArchives(update models.Structure) bool {
	archived, ok := update["archived"].(bool)
	return ok && archived && len(update) == 1
}

func (s *BlockService) saveNode(tx *gorm.DB, record *models.BlockRecord, b models.Block, eventType broker.EventType, actorID string) error {
	if err := record.SetContent(b, s.now()); err != nil {
		return err
	}
	if err := tx.Save(record).Error; err != nil {
		return err
	}

	data := map[string]interface{}(b.ToPartialUpdateStructure())
	data["block_id"] = record.ID.String()
	data["type"] = string(record.Type)
	if record.ParentID != nil {
		data["parent_id"] = record.ParentID.String()
	}

	event, err := models.NewEvent(eventType.String(), record.ID, actorID, data)
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

// ArchiveBlock archives a single block. Archiving an archived block is a
// no-op and stores no event.
func (s *BlockService) ArchiveBlock(db *database.Database, actorID string, id string) (models.Block, error) {
	blockID, err := parseBlockID(id)
	if err != nil {
		return nil, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	record, err := findRecord(tx, blockID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if record.Archived {
		tx.Rollback()
		return s.loadTree(db.DB, blockID)
	}

	current, err := s.loadNode(record)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.saveNode(tx, &record, current.Archive(), broker.BlockArchived, actorID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	logger.Log.Info().Str("block_id", blockID.String()).Msg("Block archived")
	return s.loadTree(db.DB, blockID)
}

// GetPlainText returns the text of the block itself, or of its whole live
// subtree one line per block when recursive is set.
func (s *BlockService) GetPlainText(db *database.Database, id string, recursive bool) (string, error) {
	blockID, err := parseBlockID(id)
	if err != nil {
		return "", err
	}
	if !recursive {
		record, err := findRecord(db.DB, blockID)
		if err != nil {
			return "", err
		}
		block, err := s.loadNode(record)
		if err != nil {
			return "", err
		}
		return block.ToPlainText(), nil
	}

	block, err := s.loadTree(db.DB, blockID)
	if err != nil {
		return "", err
	}
	return models.PlainTextTree(block), nil
}
