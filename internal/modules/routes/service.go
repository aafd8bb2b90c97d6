// README: Route preset service; CRUD plus value-copy attachment to quotes.
package routes

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

var (
	ErrNotFound   = errors.New("route preset not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type SaveCommand struct {
	CaptainID types.ID
	Preset    trip.RoutePreset
}

// Save creates or updates a preset. The display name is synthesized from
// destination and target fish when the captain leaves it blank.
func (s *Service) Save(ctx context.Context, cmd SaveCommand) (trip.RoutePreset, error) {
	p := cmd.Preset
	if cmd.CaptainID == "" || p.Destination == "" || p.TargetFish == "" {
		return trip.RoutePreset{}, ErrBadRequest
	}
	if p.OceanZone != trip.ZoneFar {
		p.OceanZone = trip.ZoneNear
	}
	if p.ID == "" {
		p.ID = newPresetID()
	}
	if p.Name == "" {
		p.Name = p.Destination + "钓" + p.TargetFish
	}
	kept := make([]trip.ServiceTag, 0, len(p.Services))
	for _, tag := range p.Services {
		if trip.ValidServiceTags[tag] {
			kept = append(kept, tag)
		}
	}
	p.Services = kept
	if err := s.store.Put(ctx, cmd.CaptainID, p); err != nil {
		return trip.RoutePreset{}, err
	}
	return p.Clone(), nil
}

func (s *Service) Get(ctx context.Context, captainID, presetID types.ID) (trip.RoutePreset, error) {
	return s.store.Get(ctx, captainID, presetID)
}

func (s *Service) List(ctx context.Context, captainID types.ID) ([]trip.RoutePreset, error) {
	return s.store.List(ctx, captainID)
}

func (s *Service) Delete(ctx context.Context, captainID, presetID types.ID) error {
	return s.store.Delete(ctx, captainID, presetID)
}

// Attach snapshots a preset into a bid by value. Edits to the preset after
// this point never reach bids already quoted from it.
func (s *Service) Attach(ctx context.Context, captainID, presetID types.ID, bid *trip.Bid) error {
	p, err := s.store.Get(ctx, captainID, presetID)
	if err != nil {
		return err
	}
	snapshot := p.Clone()
	bid.Route = &snapshot
	if len(bid.Services) == 0 {
		bid.Services = append([]trip.ServiceTag(nil), snapshot.Services...)
	}
	return nil
}

func newPresetID() types.ID {
	var b [6]byte
	_, _ = rand.Read(b[:])
	return types.ID("route-" + hex.EncodeToString(b[:]))
}
