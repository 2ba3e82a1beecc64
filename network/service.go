package network

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/core"
	"github.com/lixenwraith/blockrooms/status"
)

// Service wraps the gateway Client as a hub-managed service
// A terminated connection stays terminated until Reconnect
type Service struct {
	config *Config
	logger *log.Logger

	mu     sync.Mutex
	client *Client

	netState *status.AtomicString
}

// NewService creates a network service with default config
func NewService() *Service {
	return &Service{
		config: DefaultConfig(),
		logger: log.New(io.Discard, "", 0),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// Recognized args: *Config, *status.Registry, *log.Logger
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case *Config:
			if v != nil {
				s.config = v
			}
		case *status.Registry:
			s.netState = v.Labels.Get(status.NetState)
		case *log.Logger:
			s.logger = v
		}
	}
	s.setState(StateDisconnected)
	return s.config.Validate()
}

// Start implements service.Service
func (s *Service) Start() error {
	s.setState(StateConnecting)
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ConnectTimeout)
	defer cancel()

	client, err := Dial(ctx, s.config, s.logger)
	if err != nil {
		s.setState(StateDisconnected)
		return err
	}
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
	s.setState(StateConnected)

	core.Go(func() { s.watch(client) })
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client != nil {
		client.Close()
		s.setState(StateClosed)
	}
	return nil
}

// Reconnect dials again if the current connection has terminated
// A live connection is kept as is
func (s *Service) Reconnect() error {
	s.mu.Lock()
	old := s.client
	if old != nil && old.Err() == nil {
		s.mu.Unlock()
		return nil
	}
	s.client = nil
	s.mu.Unlock()

	if old != nil {
		s.logger.Printf("redialing after: %v", old.Err())
	}
	return s.Start()
}

// Client returns the current gateway client, nil before Start
func (s *Service) Client() chain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	return s.client
}

// Connected reports whether the connection is live
func (s *Service) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil && s.client.State() == StateConnected
}

// watch updates the state label when client terminates, unless it was replaced
func (s *Service) watch(client *Client) {
	<-client.Done()

	s.mu.Lock()
	current := s.client == client
	s.mu.Unlock()
	if !current {
		return
	}
	if errors.Is(client.Err(), ErrClosed) {
		s.setState(StateClosed)
		return
	}
	s.logger.Printf("connection lost: %v", client.Err())
	s.setState(StateDisconnected)
}

func (s *Service) setState(st ConnState) {
	if s.netState != nil {
		s.netState.Store(st.String())
	}
}
