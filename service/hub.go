package service

import (
	"errors"
	"fmt"
	"log"
)

type entry struct {
	svc  Service
	args []any
}

// Hub owns a set of services and drives them in dependency order
type Hub struct {
	entries map[string]*entry
	names   []string // registration order, the tiebreak for independent services
	started []Service
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{entries: make(map[string]*entry)}
}

// Register adds s with the args passed to its Init
func (h *Hub) Register(s Service, args ...any) error {
	name := s.Name()
	if _, ok := h.entries[name]; ok {
		return fmt.Errorf("service %q registered twice", name)
	}
	h.entries[name] = &entry{svc: s, args: args}
	h.names = append(h.names, name)
	return nil
}

// Get returns a registered service by name
func (h *Hub) Get(name string) (Service, bool) {
	e, ok := h.entries[name]
	if !ok {
		return nil, false
	}
	return e.svc, true
}

// Order resolves the init and start sequence
// Unknown dependencies and cycles are errors
func (h *Hub) Order() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.names))
	order := make([]string, 0, len(h.names))

	var visit func(name string, from string) error
	visit = func(name, from string) error {
		e, ok := h.entries[name]
		if !ok {
			return fmt.Errorf("service %q depends on unknown %q", from, name)
		}
		switch state[name] {
		case visiting:
			return fmt.Errorf("dependency cycle at %q", name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, dep := range e.svc.Dependencies() {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.names {
		if err := visit(name, name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Start initializes every service, then starts them, in dependency order
// On failure the services already started are stopped again
func (h *Hub) Start() error {
	order, err := h.Order()
	if err != nil {
		return err
	}
	for _, name := range order {
		e := h.entries[name]
		if err := e.svc.Init(e.args...); err != nil {
			return fmt.Errorf("init %s: %w", name, err)
		}
	}
	for _, name := range order {
		svc := h.entries[name].svc
		if err := svc.Start(); err != nil {
			return errors.Join(fmt.Errorf("start %s: %w", name, err), h.Stop())
		}
		h.started = append(h.started, svc)
		log.Printf("service %s started", name)
	}
	return nil
}

// Stop halts started services in reverse order and reports every failure
func (h *Hub) Stop() error {
	var errs []error
	for i := len(h.started) - 1; i >= 0; i-- {
		svc := h.started[i]
		if err := svc.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", svc.Name(), err))
		}
	}
	h.started = nil
	return errors.Join(errs...)
}
