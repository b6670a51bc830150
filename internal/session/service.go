package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/routing"
	"github.com/storeroute/storeroute/internal/store"
)

// MinDestinations is the smallest destination list a route can be built from.
const MinDestinations = 2

// Planner creates a route plan from a frozen destination list.
// *routing.Planner satisfies this; tests substitute fakes.
type Planner interface {
	CreateRoute(ctx context.Context, departure string, destinations []routing.Destination) *routing.Plan
}

// ServiceConfig holds configuration for the session service.
type ServiceConfig struct {
	// Repository stores sessions. Required.
	Repository Repository

	// Catalog resolves store lookups. Required.
	Catalog store.Repository

	// Planner computes route plans. Required.
	Planner Planner

	// DefaultDeparture pre-fills the departure point of new sessions.
	DefaultDeparture string

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service provides session operations.
type Service struct {
	repo             Repository
	catalog          store.Repository
	planner          Planner
	defaultDeparture string
	logger           zerolog.Logger
}

// NewService creates a new session service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:             cfg.Repository,
		catalog:          cfg.Catalog,
		planner:          cfg.Planner,
		defaultDeparture: cfg.DefaultDeparture,
		logger:           cfg.Logger,
	}
}

// Create starts a new session with the configured default departure point.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:             "ses_" + uuid.New().String()[:22],
		DeparturePoint: s.defaultDeparture,
		Destinations:   []routing.Destination{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("session_id", sess.ID).Msg("session created")
	return sess, nil
}

// Get retrieves a session by ID.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.Get(ctx, id)
}

// SetDeparture replaces the session's departure point address.
func (s *Service) SetDeparture(ctx context.Context, id, address string) (*Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.DeparturePoint = strings.TrimSpace(address)
	sess.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// AddDestination resolves the store in the catalog and appends it to the
// destination list. Duplicate stores and duplicate addresses are rejected with
// specific errors and leave the session untouched.
func (s *Service) AddDestination(ctx context.Context, id, retailer, storeNumber string) (*Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	address, err := s.catalog.AddressFor(ctx, retailer, storeNumber)
	if err != nil {
		return nil, fmt.Errorf("could not find address for %s store %s: %w", retailer, storeNumber, err)
	}

	label := retailer + " " + storeNumber
	for _, dest := range sess.Destinations {
		if dest.Retailer == retailer && dest.StoreNumber == storeNumber {
			return nil, fmt.Errorf("store %s: %w", label, ErrDuplicateStore)
		}
		if dest.Address == address {
			return nil, fmt.Errorf("address already selected for %s: %w", dest.Label, ErrDuplicateAddress)
		}
	}

	sess.Destinations = append(sess.Destinations, routing.Destination{
		Label:       label,
		Address:     address,
		Retailer:    retailer,
		StoreNumber: storeNumber,
	})
	sess.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", id).
		Str("store", label).
		Int("destinations", len(sess.Destinations)).
		Msg("destination added")

	return sess, nil
}

// RemoveDestination drops the destination at the given position.
func (s *Service) RemoveDestination(ctx context.Context, id string, index int) (*Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(sess.Destinations) {
		return nil, ErrDestinationIndex
	}

	sess.Destinations = append(sess.Destinations[:index], sess.Destinations[index+1:]...)
	sess.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// CreateRoute freezes the destination list and computes a plan, replacing any
// prior plan. The planner never errors; optimization failures come back as a
// fallback plan.
func (s *Service) CreateRoute(ctx context.Context, id string) (*Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(sess.DeparturePoint) == "" {
		return nil, ErrMissingDeparture
	}
	if len(sess.Destinations) < MinDestinations {
		return nil, ErrTooFewDestinations
	}

	sess.Plan = s.planner.CreateRoute(ctx, sess.DeparturePoint, sess.Destinations)
	sess.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Reset clears the destination list and the last plan, keeping the session.
func (s *Service) Reset(ctx context.Context, id string) (*Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Destinations = []routing.Destination{}
	sess.Plan = nil
	sess.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
