package stream

import (
	"context"
	"log"
	"sync"
)

// Service runs a Server as a managed host subsystem
// An empty listen address leaves it idle
type Service struct {
	server *Server
	addr   string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService wraps server
func NewService(server *Server) *Service {
	return &Service{server: server}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "stream"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: string listen address
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if addr, ok := args[0].(string); ok {
			s.addr = addr
		}
	}
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.addr == "" || s.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.ListenAndServe(ctx, s.addr); err != nil {
			log.Printf("stream: %v", err)
		}
	}()
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.cancel != nil {
		s.cancel()
		s.wg.Wait()
		s.cancel = nil
	}
	return nil
}

// Addr returns the configured listen address
func (s *Service) Addr() string {
	return s.addr
}
