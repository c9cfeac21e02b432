package services

import (
	"fmt"
	"sync"
	"time"

	"notion-blocks/blockmirror/broker"
	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/utils/logger"

	json "github.com/goccy/go-json"
)

// dispatchBatchSize caps the events published per poll.
const dispatchBatchSize = 100

type EventHandlerServiceInterface interface {
	Start()
	Stop()
	DispatchPending() (int, error)
}

// EventHandlerService publishes outbox events in the order they were
// written.
type EventHandlerService struct {
	db        *database.Database
	publisher broker.Publisher
	interval  time.Duration

	mu        sync.Mutex
	isRunning bool
	done      chan struct{}
}

func NewEventHandlerService(db *database.Database, publisher broker.Publisher, interval time.Duration) EventHandlerServiceInterface {
	if interval <= 0 {
		interval = time.Second
	}
	return &EventHandlerService{
		db:        db,
		publisher: publisher,
		interval:  interval,
	}
}

func (s *EventHandlerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	s.done = make(chan struct{})
	go s.run(s.done)
}

func (s *EventHandlerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	s.isRunning = false
	close(s.done)
}

func (s *EventHandlerService) run(done <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if _, err := s.DispatchPending(); err != nil {
				logger.Log.Error().Err(err).Msg("Error dispatching events")
			}
		}
	}
}

// DispatchPending publishes undispatched events, oldest first. It stops at
// the first failure so that later events of a block never overtake earlier
// ones.
func (s *EventHandlerService) DispatchPending() (int, error) {
	var events []models.Event
	if err := s.db.DB.Where("dispatched = ?", false).
		Order("timestamp ASC").
		Limit(dispatchBatchSize).
		Find(&events).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	if len(events) > 0 {
		logger.Log.Debug().Int("count", len(events)).Msg("Found pending events")
	}

	for i, event := range events {
		if err := s.dispatchEvent(event); err != nil {
			return i, fmt.Errorf("event %s: %w", event.ID, err)
		}
		logger.Log.Debug().
			Str("event_id", event.ID.String()).
			Str("event", event.Event).
			Str("block_id", event.BlockID.String()).
			Msg("Dispatched event")
	}
	return len(events), nil
}

// EventEnvelope builds the message published for event.
func EventEnvelope(event models.Event) ([]byte, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(event.Data, &data); err != nil {
		logger.Log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("Could not decode event data")
		data = map[string]interface{}{}
	}

	payload := map[string]interface{}{
		"event_id":  event.ID.String(),
		"block_id":  event.BlockID.String(),
		"actor_id":  event.ActorID,
		"timestamp": models.FormatTime(event.Timestamp),
		"data":      data,
	}
	if parentID, ok := data["parent_id"]; ok {
		payload["parent_id"] = parentID
	}

	return json.Marshal(map[string]interface{}{
		"type":    event.Event,
		"payload": payload,
	})
}

func (s *EventHandlerService) dispatchEvent(event models.Event) error {
	if s.publisher == nil {
		return broker.ErrProducerClosed
	}

	message, err := EventEnvelope(event)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(broker.SubjectFor(event.Event), message); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.db.DB.Model(&event).Updates(map[string]interface{}{
		"dispatched":    true,
		"dispatched_at": now,
		"status":        "completed",
	}).Error
}
