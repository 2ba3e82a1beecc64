// Package gateway is an in-memory stand-in for the chain gateway
// It speaks the same websocket RPC as the real endpoint and backs cmd/chainsim,
// offline play and the network tests
package gateway

import (
	"io"
	"log"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/network"
	"github.com/lixenwraith/blockrooms/parameter"
)

// Options configures the simulator
type Options struct {
	// Key verifies bearer tokens
	Key []byte

	// FailRate is the probability in [0,1] that a move is reverted
	FailRate float64

	// Latency delays every reply
	Latency time.Duration

	// Seed drives failure injection; zero uses the current time
	Seed int64

	Logger *log.Logger
}

// Server is an http.Handler that upgrades to the gateway RPC
type Server struct {
	opts     Options
	log      *log.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	rng         *rand.Rand
	players     map[string]*chain.PlayerState
	nextSession int64
	block       uint64
	moves       int
	conns       map[*websocket.Conn]string // live sockets by player address
}

// New creates a simulator with no players
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Server{
		opts: opts,
		log:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		rng:         rand.New(rand.NewSource(seed)),
		players:     make(map[string]*chain.PlayerState),
		nextSession: 1,
		conns:       make(map[*websocket.Conn]string),
	}
}

// SetFailRate changes the move failure probability
func (s *Server) SetFailRate(rate float64) {
	s.mu.Lock()
	s.opts.FailRate = rate
	s.mu.Unlock()
}

// Player returns a copy of the player record for address
func (s *Server) Player(address string) (chain.PlayerState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[address]
	if !ok {
		return chain.PlayerState{}, false
	}
	return *p, true
}

// Moves returns the number of move_player calls applied successfully
func (s *Server) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// NewSession starts a fresh session for address and returns its id
func (s *Server) NewSession(address string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ensurePlayer(address)
	p.CurrentSessionID = s.nextSession
	p.GameActive = true
	s.nextSession++
	return p.CurrentSessionID
}

// EndSession marks the player's game inactive
func (s *Server) EndSession(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[address]; ok {
		p.GameActive = false
	}
}

// Connections returns the number of live sockets
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// DropConnections closes every live socket without a close frame, as a
// gateway restart would; player records and sessions are kept
func (s *Server) DropConnections() int {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn, address := range s.conns {
		conns = append(conns, conn)
		s.log.Printf("dropping player %s", address)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
	return len(conns)
}

// ServeHTTP authenticates the bearer token and serves RPC on the upgraded socket
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}
	address, err := network.ParseToken(s.opts.Key, bearer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	p := s.ensurePlayer(address)
	if p.CurrentSessionID == 0 {
		p.CurrentSessionID = s.nextSession
		p.GameActive = true
		s.nextSession++
	}
	s.conns[conn] = address
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	s.log.Printf("player %s connected", address)
	conn.SetReadLimit(parameter.NetMaxMessageSize)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Printf("player %s disconnected: %v", address, err)
			return
		}
		codec, ok := network.CodecForFrame(messageType)
		if !ok {
			continue
		}

		resp := s.handle(address, codec, data)
		if s.opts.Latency > 0 {
			time.Sleep(s.opts.Latency)
		}

		out, err := codec.Marshal(resp)
		if err != nil {
			s.log.Printf("encode reply: %v", err)
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(parameter.NetWriteTimeout))
		if err := conn.WriteMessage(codec.MessageType(), out); err != nil {
			return
		}
	}
}

func (s *Server) handle(address string, codec network.Codec, data []byte) network.Response {
	id, method, _, err := network.DecodeHeader(codec, data)
	if err != nil {
		return network.Response{ID: id, Error: &network.RPCError{Code: network.CodeBadRequest, Message: err.Error()}}
	}

	switch method {
	case network.MethodMovePlayer:
		params, err := network.DecodeParams[network.MoveParams](codec, data)
		if err != nil {
			return network.Response{ID: id, Error: &network.RPCError{Code: network.CodeBadRequest, Message: err.Error()}}
		}
		return network.Response{ID: id, Result: s.move(address, params)}

	case network.MethodGetWorld:
		return network.Response{ID: id, Result: s.world(address)}

	default:
		return network.Response{ID: id, Error: &network.RPCError{Code: network.CodeUnknownMethod, Message: "unknown method " + method}}
	}
}

func (s *Server) move(address string, params network.MoveParams) chain.MoveResult {
	dx, dz := grid.Direction(params.DX), grid.Direction(params.DZ)
	if !dx.Valid() || !dz.Valid() {
		return chain.MoveResult{Error: "invalid direction"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.ensurePlayer(address)
	if !p.GameActive {
		return chain.MoveResult{Error: "game not active"}
	}
	if s.opts.FailRate > 0 && s.rng.Float64() < s.opts.FailRate {
		s.log.Printf("player %s move (%s,%s) reverted", address, dx, dz)
		return chain.MoveResult{Error: "transaction reverted"}
	}

	p.X += float64(dx.Sign()) * parameter.GridSize
	p.Y += float64(dz.Sign()) * parameter.GridSize
	s.block++
	s.moves++
	return chain.MoveResult{Success: true}
}

func (s *Server) world(address string) chain.WorldState {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := chain.WorldState{Block: s.block}
	for addr, p := range s.players {
		if addr == address {
			self := *p
			ws.Player = &self
			continue
		}
		ws.Others = append(ws.Others, *p)
	}
	sort.Slice(ws.Others, func(i, j int) bool { return ws.Others[i].Address < ws.Others[j].Address })
	return ws
}

// ensurePlayer must be called with mu held
func (s *Server) ensurePlayer(address string) *chain.PlayerState {
	p, ok := s.players[address]
	if !ok {
		spawn := grid.CellCenter(grid.Cell{})
		p = &chain.PlayerState{
			Address: address,
			X:       spawn.X,
			Y:       spawn.Z,
			Health:  100,
		}
		s.players[address] = p
	}
	return p
}
