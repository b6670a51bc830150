package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/routing"
	"github.com/storeroute/storeroute/internal/store"
)

// fakePlanner returns a canned plan and records the frozen inputs.
type fakePlanner struct {
	plan             *routing.Plan
	lastDeparture    string
	lastDestinations []routing.Destination
}

func (f *fakePlanner) CreateRoute(_ context.Context, departure string, destinations []routing.Destination) *routing.Plan {
	f.lastDeparture = departure
	f.lastDestinations = destinations
	if f.plan != nil {
		return f.plan
	}
	return &routing.Plan{
		Stops: routing.AssembleFallbackRoute(departure, destinations),
	}
}

func testCatalog() store.Repository {
	return store.NewInMemoryRepository([]store.Record{
		{Retailer: "SDM", StoreNumber: "0203", Address: "1301 Main St, Penticton, BC"},
		{Retailer: "LD", StoreNumber: "0003", Address: "555 Sixth Street, New Westminster, BC"},
		{Retailer: "LD", StoreNumber: "0005", Address: "700 Royal Ave, New Westminster, BC"},
		{Retailer: "SEP", StoreNumber: "0012", Address: "555 Sixth Street, New Westminster, BC"},
	})
}

func newTestService(planner Planner) *Service {
	if planner == nil {
		planner = &fakePlanner{}
	}
	return NewService(ServiceConfig{
		Repository:       NewInMemoryRepository(),
		Catalog:          testCatalog(),
		Planner:          planner,
		DefaultDeparture: "Vancouver, BC",
		Logger:           zerolog.Nop(),
	})
}

func TestService_Create(t *testing.T) {
	svc := newTestService(nil)

	sess, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(sess.ID, "ses_") {
		t.Errorf("unexpected session ID format: %q", sess.ID)
	}
	if sess.DeparturePoint != "Vancouver, BC" {
		t.Errorf("expected default departure, got %q", sess.DeparturePoint)
	}
	if len(sess.Destinations) != 0 {
		t.Errorf("expected empty destination list, got %d", len(sess.Destinations))
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService(nil)

	if _, err := svc.Get(context.Background(), "ses_missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestService_AddDestination(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)

	updated, err := svc.AddDestination(ctx, sess.ID, "SDM", "0203")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Destinations) != 1 {
		t.Fatalf("expected 1 destination, got %d", len(updated.Destinations))
	}
	dest := updated.Destinations[0]
	if dest.Label != "SDM 0203" {
		t.Errorf("unexpected label: %q", dest.Label)
	}
	if dest.Address != "1301 Main St, Penticton, BC" {
		t.Errorf("unexpected address: %q", dest.Address)
	}
}

func TestService_AddDestination_UnknownStore(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)

	if _, err := svc.AddDestination(ctx, sess.ID, "SDM", "9999"); !errors.Is(err, store.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestService_AddDestination_DuplicateStore(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	if _, err := svc.AddDestination(ctx, sess.ID, "SDM", "0203"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.AddDestination(ctx, sess.ID, "SDM", "0203")
	if !errors.Is(err, ErrDuplicateStore) {
		t.Fatalf("expected ErrDuplicateStore, got %v", err)
	}

	// The failed add left the session untouched.
	current, _ := svc.Get(ctx, sess.ID)
	if len(current.Destinations) != 1 {
		t.Errorf("expected 1 destination after rejected duplicate, got %d", len(current.Destinations))
	}
}

func TestService_AddDestination_DuplicateAddress(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	if _, err := svc.AddDestination(ctx, sess.ID, "LD", "0003"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// SEP 0012 shares LD 0003's address.
	_, err := svc.AddDestination(ctx, sess.ID, "SEP", "0012")
	if !errors.Is(err, ErrDuplicateAddress) {
		t.Fatalf("expected ErrDuplicateAddress, got %v", err)
	}
}

func TestService_RemoveDestination(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	svc.AddDestination(ctx, sess.ID, "SDM", "0203")
	svc.AddDestination(ctx, sess.ID, "LD", "0003")

	updated, err := svc.RemoveDestination(ctx, sess.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Destinations) != 1 {
		t.Fatalf("expected 1 destination, got %d", len(updated.Destinations))
	}
	if updated.Destinations[0].Label != "LD 0003" {
		t.Errorf("wrong destination removed, remaining: %q", updated.Destinations[0].Label)
	}

	if _, err := svc.RemoveDestination(ctx, sess.ID, 5); !errors.Is(err, ErrDestinationIndex) {
		t.Errorf("expected ErrDestinationIndex, got %v", err)
	}
	if _, err := svc.RemoveDestination(ctx, sess.ID, -1); !errors.Is(err, ErrDestinationIndex) {
		t.Errorf("expected ErrDestinationIndex, got %v", err)
	}
}

func TestService_CreateRoute_RequiresDeparture(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	svc.AddDestination(ctx, sess.ID, "SDM", "0203")
	svc.AddDestination(ctx, sess.ID, "LD", "0003")
	svc.SetDeparture(ctx, sess.ID, "   ")

	if _, err := svc.CreateRoute(ctx, sess.ID); !errors.Is(err, ErrMissingDeparture) {
		t.Fatalf("expected ErrMissingDeparture, got %v", err)
	}
}

func TestService_CreateRoute_RequiresMinDestinations(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	svc.AddDestination(ctx, sess.ID, "SDM", "0203")

	if _, err := svc.CreateRoute(ctx, sess.ID); !errors.Is(err, ErrTooFewDestinations) {
		t.Fatalf("expected ErrTooFewDestinations, got %v", err)
	}
}

func TestService_CreateRoute_ReplacesPlan(t *testing.T) {
	planner := &fakePlanner{}
	svc := newTestService(planner)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	svc.AddDestination(ctx, sess.ID, "SDM", "0203")
	svc.AddDestination(ctx, sess.ID, "LD", "0003")

	updated, err := svc.CreateRoute(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Plan == nil {
		t.Fatal("expected a plan on the session")
	}
	if planner.lastDeparture != "Vancouver, BC" {
		t.Errorf("planner got departure %q", planner.lastDeparture)
	}
	if len(planner.lastDestinations) != 2 {
		t.Errorf("planner got %d destinations", len(planner.lastDestinations))
	}

	// A second route creation fully replaces the previous plan.
	planner.plan = &routing.Plan{Fallback: true, FallbackReason: "Route optimization failed: provider down"}
	updated, err = svc.CreateRoute(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Plan.Fallback {
		t.Error("expected the new plan to replace the old one")
	}
}

func TestService_Reset(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	svc.AddDestination(ctx, sess.ID, "SDM", "0203")
	svc.AddDestination(ctx, sess.ID, "LD", "0003")
	svc.CreateRoute(ctx, sess.ID)

	updated, err := svc.Reset(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Destinations) != 0 {
		t.Errorf("expected empty destination list after reset, got %d", len(updated.Destinations))
	}
	if updated.Plan != nil {
		t.Error("expected no plan after reset")
	}
	if updated.DeparturePoint == "" {
		t.Error("reset must keep the departure point")
	}
}
