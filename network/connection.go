package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/core"
	"github.com/lixenwraith/blockrooms/grid"
)

var (
	// ErrClosed fails calls made on, or pending during, a closed connection
	ErrClosed = errors.New("network: connection closed")

	// ErrTimeout is returned when a call's deadline passes before its reply
	ErrTimeout = errors.New("network: call timed out")
)

// ConnState represents connection lifecycle state
type ConnState uint32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "disconnected"
	}
}

// frame is one received message awaiting its caller
type frame struct {
	codec  Codec
	data   []byte
	rpcErr *RPCError
}

// Client is a websocket RPC connection to the chain gateway
// Implements chain.Client
//
// Thread-Safety: all methods are safe for concurrent use
type Client struct {
	cfg   *Config
	codec Codec
	log   *log.Logger
	conn  *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan frame

	state     atomic.Uint32
	closeCh   chan struct{}
	closeOnce sync.Once
	closeErr  error
}

var _ chain.Client = (*Client)(nil)

// Dial connects and authenticates against cfg.GatewayURL
func Dial(ctx context.Context, cfg *Config, logger *log.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, _ := NewCodec(cfg.Codec)
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	token, err := IssueToken(cfg.SessionKey, cfg.PlayerAddress, time.Now(), cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.ConnectTimeout,
	}

	c := &Client{
		cfg:     cfg,
		codec:   codec,
		log:     logger,
		pending: make(map[string]chan frame),
		closeCh: make(chan struct{}),
	}
	c.state.Store(uint32(StateConnecting))

	conn, resp, err := dialer.DialContext(ctx, cfg.GatewayURL, header)
	if err != nil {
		c.state.Store(uint32(StateDisconnected))
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("dial %s: %w", cfg.GatewayURL, ErrUnauthorized)
		}
		return nil, fmt.Errorf("dial %s: %w", cfg.GatewayURL, err)
	}
	c.conn = conn
	c.state.Store(uint32(StateConnected))

	conn.SetReadLimit(cfg.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	})

	core.Go(c.readLoop)
	core.Go(c.pingLoop)

	c.log.Printf("connected to %s as %s (%s)", cfg.GatewayURL, cfg.PlayerAddress, codec.Name())
	return c, nil
}

// State returns the current lifecycle state
func (c *Client) State() ConnState {
	return ConnState(c.state.Load())
}

// Done is closed when the connection terminates
func (c *Client) Done() <-chan struct{} {
	return c.closeCh
}

// Err returns the reason the connection terminated, nil while open
func (c *Client) Err() error {
	select {
	case <-c.closeCh:
		return c.closeErr
	default:
		return nil
	}
}

// MovePlayer submits a one-step move
func (c *Client) MovePlayer(ctx context.Context, dx, dz grid.Direction) (chain.MoveResult, error) {
	return call[chain.MoveResult](ctx, c, MethodMovePlayer, MoveParams{DX: uint8(dx), DZ: uint8(dz)})
}

// Refetch reads the current world state
func (c *Client) Refetch(ctx context.Context) (chain.WorldState, error) {
	return call[chain.WorldState](ctx, c, MethodGetWorld, nil)
}

// Close terminates the connection and fails every pending call
func (c *Client) Close() error {
	c.shutdown(ErrClosed)
	return nil
}

func call[T any](ctx context.Context, c *Client, method string, params any) (T, error) {
	var zero T

	if c.cfg.CallTimeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.cfg.CallTimeout)
			defer cancel()
		}
	}

	id := uuid.NewString()
	reply := make(chan frame, 1)

	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	c.pending[id] = reply
	c.mu.Unlock()
	defer c.forget(id)

	data, err := c.codec.Marshal(Request{ID: id, Method: method, Params: params})
	if err != nil {
		return zero, fmt.Errorf("%s: encode: %w", method, err)
	}
	if err := c.write(c.codec.MessageType(), data); err != nil {
		return zero, fmt.Errorf("%s: %w", method, err)
	}

	select {
	case f, ok := <-reply:
		if !ok {
			return zero, fmt.Errorf("%s: %w", method, ErrClosed)
		}
		if f.rpcErr != nil {
			return zero, fmt.Errorf("%s: %w", method, f.rpcErr)
		}
		return DecodeResult[T](f.codec, f.data)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%s: %w", method, ErrTimeout)
		}
		return zero, fmt.Errorf("%s: %w", method, ctx.Err())
	}
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	if c.pending != nil {
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

func (c *Client) write(messageType int, data []byte) error {
	if c.State() != StateConnected {
		return ErrClosed
	}
	c.writeMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	err := c.conn.WriteMessage(messageType, data)
	c.writeMu.Unlock()

	if err != nil {
		c.shutdown(err)
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// readLoop routes replies to pending calls until the connection fails
func (c *Client) readLoop() {
	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Printf("read error: %v", err)
			}
			c.shutdown(err)
			return
		}

		codec, ok := CodecForFrame(messageType)
		if !ok {
			continue
		}
		id, _, rpcErr, err := DecodeHeader(codec, data)
		if err != nil {
			c.log.Printf("dropping malformed frame: %v", err)
			continue
		}

		c.mu.Lock()
		reply, ok := c.pending[id]
		if ok {
			delete(c.pending, id)
		}
		c.mu.Unlock()

		if !ok {
			c.log.Printf("dropping reply for unknown call %s", id)
			continue
		}
		reply <- frame{codec: codec, data: data, rpcErr: rpcErr}
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closeCh:
			return
		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.shutdown(err)
				return
			}
		}
	}
}

// shutdown closes the socket once and releases every waiter
func (c *Client) shutdown(cause error) {
	c.closeOnce.Do(func() {
		c.state.Store(uint32(StateClosed))
		c.closeErr = cause

		c.writeMu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		c.conn.Close()

		c.mu.Lock()
		for id, reply := range c.pending {
			close(reply)
			delete(c.pending, id)
		}
		c.pending = nil
		c.mu.Unlock()

		close(c.closeCh)
		c.log.Printf("connection closed: %v", cause)
	})
}
