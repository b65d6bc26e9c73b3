package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lab1702/fleetcommand/config"
	"github.com/lab1702/fleetcommand/game"
)

// isValidOrigin checks if the origin is allowed to connect
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header - could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		log.Warn("invalid origin URL", "origin", origin)
		return false
	}

	// Allow same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Allow localhost connections for development
	if strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1" {
		return true
	}

	log.Warn("rejected websocket connection", "origin", origin)
	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client represents a connected UI
type Client struct {
	ID     int
	conn   *websocket.Conn
	send   chan ServerMessage
	server *Server
}

// Server owns the simulation and the client connections
type Server struct {
	mu         sync.RWMutex
	clients    map[int]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan ServerMessage
	nextID     int
	done       chan struct{}
	stopOnce   sync.Once
	loops      sync.WaitGroup

	// Simulation state, guarded by world.Mu
	world     *game.World
	cfg       *config.Config
	rng       Rand
	sched     *Scheduler
	fleet     *Fleet
	telemetry *Telemetry

	groups      map[string]*CommandGroup
	factionPeak map[string]int
	grid        *SpatialGrid

	spawnAcc  float64
	spawnSeq  int
	packSeq   int
	statusAcc float64

	// Reloaded config waiting to be applied between frames, guarded by mu
	pendingCfg *config.Config
}

// NewServer creates a game server with a populated sector. telemetry may be nil.
func NewServer(cfg *config.Config, telemetry *Telemetry) *Server {
	seed := cfg.Spawn.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		clients:     make(map[int]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan ServerMessage, 256),
		done:        make(chan struct{}),
		world:       game.NewWorld(cfg.Server.Sector),
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(seed)),
		sched:       NewScheduler(cfg.AI.Interval, cfg.AI.CommanderInterval),
		telemetry:   telemetry,
		factionPeak: make(map[string]int),
		grid:        NewSpatialGrid(),
	}
	s.fleet = NewFleet(s.world, cfg.Fleet, s.rng, s.emit)
	s.populateSector()
	return s
}

// Run starts the game loop and services client registration and broadcast
// until Shutdown is called.
func (s *Server) Run() {
	// Add under mu so Shutdown either sees the loop or Run sees done
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return
	default:
	}
	s.loops.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.loops.Done()
		s.gameLoop()
	}()

	for {
		select {
		case <-s.done:
			s.mu.Lock()
			for id, client := range s.clients {
				close(client.send)
				delete(s.clients, id)
			}
			s.mu.Unlock()
			return

		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			log.Info("client connected", "id", client.ID)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.send)
			}
			s.mu.Unlock()
			log.Info("client disconnected", "id", client.ID)

		case message := <-s.broadcast:
			s.mu.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
				default:
					log.Warn("client send buffer full, skipping broadcast", "id", client.ID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// Shutdown stops the game loop and the hub, waiting for the loop to exit
// before closing telemetry. Safe to call more than once.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		close(s.done)
		s.mu.Unlock()
		s.loops.Wait()
		if err := s.telemetry.Close(); err != nil {
			log.Error("closing telemetry", "err", err)
		}
	})
}

// SetConfig queues a reloaded config. It is applied between frames.
func (s *Server) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	s.pendingCfg = cfg
	s.mu.Unlock()
}

// applyPendingConfig swaps in a queued config. Caller holds world.Mu.
func (s *Server) applyPendingConfig() {
	s.mu.Lock()
	cfg := s.pendingCfg
	s.pendingCfg = nil
	s.mu.Unlock()
	if cfg == nil {
		return
	}
	s.cfg = cfg
	s.sched.SetIntervals(cfg.AI.Interval, cfg.AI.CommanderInterval)
	s.fleet.SetConfig(cfg.Fleet)
	log.Info("config applied", "ai_interval", cfg.AI.Interval, "commander_interval", cfg.AI.CommanderInterval)
}

// gameLoop runs the main game simulation
func (s *Server) gameLoop() {
	frame := time.Duration(s.cfg.Server.FrameInterval * float64(time.Second))
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.world.Mu.Lock()
			s.applyPendingConfig()
			dt := s.cfg.Server.FrameInterval
			s.Tick(dt)
			s.statusAcc += dt
			sendStatus := s.statusAcc >= s.cfg.Server.BroadcastInterval
			var status FleetStatus
			if sendStatus {
				s.statusAcc = 0
				status = s.fleet.Status()
			}
			s.world.Mu.Unlock()

			if sendStatus {
				s.emit(ServerMessage{Type: MsgTypeFleet, Data: status})
				if err := s.telemetry.Flush(); err != nil {
					log.Error("flushing telemetry", "err", err)
				}
			}
		}
	}
}

// Tick advances the simulation by dt seconds. AI decisions run on the
// scheduler's throttle; movement and combat run every frame. Caller holds
// world.Mu.
func (s *Server) Tick(dt float64) {
	s.world.Now += dt
	s.world.Frame++

	if runAI, refresh := s.sched.Advance(dt); runAI {
		// Groups first so every agent decides against the same groups
		if refresh {
			s.refreshCommandGroups()
		}
		snap := s.takeSnapshot()
		s.UpdateAgents(snap)
		s.fleet.UpdateAI(snap)
	}

	s.fleet.Prune()
	s.updateShipSystems(dt)
	s.updatePhysics(dt)
	for _, dead := range s.world.Reap() {
		log.Debug("reaped", "ship", dead.Name, "faction", dead.Faction)
	}
	s.topUpPirates(dt)
}

// HandleFleet returns the player's fleet status
func (s *Server) HandleFleet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	s.world.Mu.RLock()
	status := s.fleet.Status()
	s.world.Mu.RUnlock()

	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error("encoding fleet status", "err", err)
	}
}

// HandleFactions returns living counts and commanders per faction
func (s *Server) HandleFactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	s.world.Mu.RLock()
	summaries := s.factionSummaries()
	s.world.Mu.RUnlock()

	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		log.Error("encoding faction summaries", "err", err)
	}
}

// HandleHealth reports liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade", "err", err)
		return
	}

	s.mu.Lock()
	clientID := s.nextID
	s.nextID++
	s.mu.Unlock()

	client := &Client{
		ID:     clientID,
		conn:   conn,
		send:   make(chan ServerMessage, 256),
		server: s,
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump handles incoming messages from the client
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg ClientMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("websocket read", "err", err)
			}
			break
		}

		c.handleMessage(msg)
	}
}

// writePump sends messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendTo queues a message for this client only
func (c *Client) sendTo(msg ServerMessage) {
	select {
	case c.send <- msg:
	default:
		log.Warn("client send buffer full, dropping reply", "id", c.ID)
	}
}

// handleMessage processes a message from the client
func (c *Client) handleMessage(msg ClientMessage) {
	// Recover from any panic to prevent disconnection
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic in handleMessage", "client", c.ID, "type", msg.Type, "panic", r)
		}
	}()

	var err error
	switch msg.Type {
	case MsgTypeMove:
		err = c.handleMove(msg.Data)
	case MsgTypeAddShip:
		err = c.handleAddShip(msg.Data)
	case MsgTypeRemoveShip:
		err = c.handleRemoveShip(msg.Data)
	case MsgTypeCommand:
		err = c.handleCommand(msg.Data)
	case MsgTypeAssignGroup:
		err = c.handleAssignGroup(msg.Data)
	case MsgTypeFormation:
		err = c.handleFormation(msg.Data)
	case MsgTypeDoctrine:
		err = c.handleDoctrine(msg.Data)
	case MsgTypeFlagship:
		err = c.handleFlagship(msg.Data)
	case MsgTypePilot:
		err = c.handlePilot(msg.Data)
	case MsgTypeScout:
		err = c.handleScout(msg.Data)
	case MsgTypeTransferCargo:
		err = c.handleTransferCargo(msg.Data)
	case MsgTypeSellOre:
		err = c.handleSellOre(msg.Data)
	case MsgTypeGate:
		err = c.handleGate(msg.Data)
	default:
		log.Warn("unknown message type", "type", msg.Type)
		return
	}

	if err != nil {
		c.sendTo(ServerMessage{Type: MsgTypeError, Data: map[string]string{"message": err.Error()}})
	}
}
