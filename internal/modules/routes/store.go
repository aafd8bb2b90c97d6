// README: Route preset store; in-memory, per captain.
package routes

import (
	"context"
	"sync"

	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

type Store struct {
	mu        sync.Mutex
	byCaptain map[types.ID][]trip.RoutePreset
}

func NewStore() *Store {
	return &Store{byCaptain: make(map[types.ID][]trip.RoutePreset)}
}

func (s *Store) Put(ctx context.Context, captainID types.ID, p trip.RoutePreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byCaptain[captainID]
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p.Clone()
			return nil
		}
	}
	s.byCaptain[captainID] = append(list, p.Clone())
	return nil
}

func (s *Store) Get(ctx context.Context, captainID, presetID types.ID) (trip.RoutePreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.byCaptain[captainID] {
		if p.ID == presetID {
			return p.Clone(), nil
		}
	}
	return trip.RoutePreset{}, ErrNotFound
}

func (s *Store) List(ctx context.Context, captainID types.ID) ([]trip.RoutePreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byCaptain[captainID]
	out := make([]trip.RoutePreset, 0, len(list))
	for _, p := range list {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, captainID, presetID types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byCaptain[captainID]
	for i := range list {
		if list[i].ID == presetID {
			s.byCaptain[captainID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
