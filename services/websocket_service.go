package services

import (
	"net/http"
	"sync"
	"time"

	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/utils/logger"

	"github.com/buger/jsonparser"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// WebSocketServiceInterface defines the operations provided by the WebSocket service
type WebSocketServiceInterface interface {
	Start()
	Stop()
	HandleConnection(c *gin.Context)
	SetMessageChannel(ch <-chan *nats.Msg)
	ClientCount() int
}

// Client is one websocket connection of an integration.
type Client struct {
	ID            string
	IntegrationID string
	Hub           *WebSocketService
	Conn          *websocket.Conn
	Send          chan []byte

	mu            sync.RWMutex
	subscriptions map[string]bool
}

func (c *Client) subscribe(blockID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscriptions[blockID] {
		return false
	}
	c.subscriptions[blockID] = true
	return true
}

func (c *Client) unsubscribe(blockID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscriptions, blockID)
}

// wants reports whether any of ids, or every block, is subscribed.
func (c *Client) wants(ids ...string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.subscriptions[models.AllBlocks] {
		return true
	}
	for _, id := range ids {
		if id != "" && c.subscriptions[id] {
			return true
		}
	}
	return false
}

// WebSocketService fans block events out to subscribed clients.
type WebSocketService struct {
	clients      map[string]*Client
	clientsMutex sync.RWMutex

	upgrader websocket.Upgrader

	messages <-chan *nats.Msg

	mu        sync.Mutex
	isRunning bool
	stopChan  chan struct{}
}

func NewWebSocketService() WebSocketServiceInterface {
	return &WebSocketService{
		clients: make(map[string]*Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are checked by the CORS middleware.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetMessageChannel sets the source of block events. It must be called
// before Start.
func (ws *WebSocketService) SetMessageChannel(ch <-chan *nats.Msg) {
	ws.messages = ch
}

func (ws *WebSocketService) Start() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.isRunning {
		return
	}
	ws.isRunning = true
	ws.stopChan = make(chan struct{})

	go ws.run(ws.stopChan, ws.messages)
	logger.Log.Info().Bool("events", ws.messages != nil).Msg("WebSocket hub started")
}

func (ws *WebSocketService) Stop() {
	ws.mu.Lock()
	if !ws.isRunning {
		ws.mu.Unlock()
		return
	}
	ws.isRunning = false
	close(ws.stopChan)
	ws.mu.Unlock()

	ws.clientsMutex.Lock()
	for id, client := range ws.clients {
		delete(ws.clients, id)
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	ws.clientsMutex.Unlock()

	logger.Log.Info().Msg("WebSocket hub stopped")
}

func (ws *WebSocketService) ClientCount() int {
	ws.clientsMutex.RLock()
	defer ws.clientsMutex.RUnlock()
	return len(ws.clients)
}

func (ws *WebSocketService) run(stop <-chan struct{}, messages <-chan *nats.Msg) {
	for {
		select {
		case <-stop:
			return

		case msg, ok := <-messages:
			if !ok {
				logger.Log.Warn().Msg("Event channel closed, hub no longer receives block events")
				messages = nil
				continue
			}
			ws.handleEvent(msg)
		}
	}
}

func (ws *WebSocketService) addClient(client *Client) {
	ws.clientsMutex.Lock()
	ws.clients[client.ID] = client
	ws.clientsMutex.Unlock()
	logger.Log.Debug().Str("client_id", client.ID).Str("integration_id", client.IntegrationID).Msg("Client connected")
}

func (ws *WebSocketService) removeClient(client *Client) {
	ws.clientsMutex.Lock()
	defer ws.clientsMutex.Unlock()
	if _, ok := ws.clients[client.ID]; ok {
		delete(ws.clients, client.ID)
		close(client.Send)
		logger.Log.Debug().Str("client_id", client.ID).Msg("Client disconnected")
	}
}

// HandleConnection upgrades the request. The auth middleware has already
// stored the integration id in the context.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	integrationID := c.GetString("integrationID")

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Error upgrading to WebSocket")
		return
	}

	client := &Client{
		ID:            uuid.New().String(),
		IntegrationID: integrationID,
		Hub:           ws,
		Conn:          conn,
		Send:          make(chan []byte, sendBufferSize),
		subscriptions: make(map[string]bool),
	}

	ws.addClient(client)

	go client.readPump()
	go client.writePump()
}

// handleEvent routes one published event. Only the routing keys are read
// before a subscriber is known to want the event.
func (ws *WebSocketService) handleEvent(msg *nats.Msg) {
	eventType, err := jsonparser.GetString(msg.Data, "type")
	if err != nil {
		logger.Log.Warn().Err(err).Str("subject", msg.Subject).Msg("Event without type")
		return
	}
	blockID, _ := jsonparser.GetString(msg.Data, "payload", "block_id")
	parentID, _ := jsonparser.GetString(msg.Data, "payload", "parent_id")

	ws.clientsMutex.RLock()
	var targets []*Client
	for _, client := range ws.clients {
		if client.wants(blockID, parentID) {
			targets = append(targets, client)
		}
	}
	ws.clientsMutex.RUnlock()

	if len(targets) == 0 {
		return
	}

	var payload map[string]interface{}
	if raw, _, _, err := jsonparser.Get(msg.Data, "payload"); err == nil {
		if err := json.Unmarshal(raw, &payload); err != nil {
			logger.Log.Warn().Err(err).Str("event", eventType).Msg("Could not decode event payload")
			return
		}
	}

	frame, err := json.Marshal(models.NewStandardMessage(models.EventMessage, eventType, payload).ForBlock(blockID))
	if err != nil {
		logger.Log.Error().Err(err).Msg("Error encoding event frame")
		return
	}

	var dropped []*Client
	for _, client := range targets {
		if !ws.trySend(client, frame) {
			dropped = append(dropped, client)
		}
	}
	for _, client := range dropped {
		logger.Log.Warn().Str("client_id", client.ID).Msg("Client send buffer full, removing client")
		ws.removeClient(client)
	}
	logger.Log.Debug().Str("event", eventType).Str("block_id", blockID).Int("clients", len(targets)-len(dropped)).Msg("Event delivered")
}

// trySend queues frame unless the client is gone or its buffer is full.
func (ws *WebSocketService) trySend(client *Client, frame []byte) bool {
	ws.clientsMutex.RLock()
	defer ws.clientsMutex.RUnlock()
	if _, ok := ws.clients[client.ID]; !ok {
		return true
	}
	select {
	case client.Send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.removeClient(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn().Err(err).Str("client_id", c.ID).Msg("Error reading from WebSocket")
			}
			return
		}
		c.processMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One frame per message so clients can decode each one alone.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) processMessage(raw []byte) {
	var msg models.StandardMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.reply(models.NewStandardMessage(models.ErrorMessage, "invalid_message", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	switch msg.Type {
	case models.SubscribeMessage:
		if !c.validTarget(msg.BlockID) {
			return
		}
		if c.subscribe(msg.BlockID) {
			logger.Log.Debug().Str("client_id", c.ID).Str("block_id", msg.BlockID).Msg("Client subscribed")
		}
		c.reply(models.NewStandardMessage(models.SubscribeMessage, "confirmed", nil).ForBlock(msg.BlockID))
	case models.UnsubscribeMessage:
		if !c.validTarget(msg.BlockID) {
			return
		}
		c.unsubscribe(msg.BlockID)
		c.reply(models.NewStandardMessage(models.UnsubscribeMessage, "confirmed", nil).ForBlock(msg.BlockID))
	default:
		c.reply(models.NewStandardMessage(models.ErrorMessage, "unknown_type", map[string]interface{}{
			"type": string(msg.Type),
		}))
	}
}

func (c *Client) validTarget(blockID string) bool {
	if blockID == models.AllBlocks {
		return true
	}
	if _, err := uuid.Parse(blockID); err != nil {
		c.reply(models.NewStandardMessage(models.ErrorMessage, "invalid_block_id", map[string]interface{}{
			"block_id": blockID,
		}))
		return false
	}
	return true
}

// reply queues a message for this client. It is dropped if the client is
// already unregistered or its buffer is full.
func (c *Client) reply(msg *models.StandardMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Error encoding reply")
		return
	}
	if !c.Hub.trySend(c, data) {
		logger.Log.Warn().Str("client_id", c.ID).Msg("Client send buffer full, reply dropped")
	}
}
