package service

import (
	"context"
	"errors"
	"net/http"
	bookingserrors "shareit/internal/bookings/errors"
	"shareit/internal/bookings/events"
	"shareit/internal/bookings/repository"
	"shareit/internal/bookings/state"
	"shareit/internal/bookings/validator"
	itemserrors "shareit/internal/items/errors"
	userservice "shareit/internal/users/service"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/validation"
	"time"
)

type BookingService interface {
	Create(ctx context.Context, actorID string, in *model.BookingCreate) (*model.BookingView, error)
	SetApproval(ctx context.Context, actorID string, bookingID string, approved bool) (*model.BookingView, error)
	GetByID(ctx context.Context, actorID string, bookingID string) (*model.BookingView, error)
	ListForBooker(ctx context.Context, actorID string, stateName string, from, size int) ([]*model.BookingView, error)
	ListForOwner(ctx context.Context, actorID string, stateName string, from, size int) ([]*model.BookingView, error)
}

type ItemLookup interface {
	FindByID(ctx context.Context, id string) (*model.Item, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Item, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	items     ItemLookup
	users     userservice.Finder
	publisher events.Publisher
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	items ItemLookup,
	users userservice.Finder,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		items:     items,
		users:     users,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create checks, in order: the request is well formed and ahead of now, the
// user exists, the item exists, the user is not its owner, the item is
// available, and start precedes end. Overlapping bookings are allowed.
func (s *bookingService) Create(ctx context.Context, actorID string, in *model.BookingCreate) (*model.BookingView, error) {
	now := s.now()
	if err := s.validator.Validate(in, now); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "booker_id", actorID, "item_id", in.ItemID, "error", err)
		return nil, validationError(err)
	}

	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	item, err := s.loadItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == actorID {
		s.cfg.Log.Warn("Owner attempted to book own item", "item_id", item.ID, "owner_id", actorID)
		return nil, apperrors.Wrap(bookingserrors.ErrOwnItemBooking, apperrors.CodeOwnItemBooking,
			"Owner cannot book their own item", http.StatusForbidden)
	}
	if !item.Available {
		return nil, apperrors.BadRequest(apperrors.CodeItemUnavailable,
			"Item is not available for booking", bookingserrors.ErrItemUnavailable)
	}
	if !in.Start.Before(in.End) {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidInterval,
			"Booking start must be before its end", bookingserrors.ErrInvalidInterval)
	}

	booking := &model.Booking{
		Start:    in.Start.UTC(),
		End:      in.End.UTC(),
		ItemID:   item.ID,
		BookerID: actorID,
		OwnerID:  item.OwnerID,
		Status:   model.StatusWaiting,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "item_id", item.ID, "booker_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"item_id", booking.ItemID,
		"booker_id", booking.BookerID,
		"start", booking.Start,
	)
	s.publish(ctx, events.TypeCreated, booking)

	view := booking.View(item.Name)
	return &view, nil
}

// SetApproval lets the item owner approve or reject a booking. Anyone else is
// told the booking does not exist. Requesting the status the booking already
// holds fails with ALREADY_DECIDED, and so does losing a race to another
// decision.
func (s *bookingService) SetApproval(ctx context.Context, actorID string, bookingID string, approved bool) (*model.BookingView, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, s.bookingLookupError(bookingID, err)
	}
	if booking.OwnerID != actorID {
		s.cfg.Log.Warn("Booking decision by non-owner refused", "id", bookingID, "actor_id", actorID)
		return nil, apperrors.NotFoundWithID("Booking", bookingID, bookingserrors.ErrNotFound)
	}

	target := model.StatusRejected
	if approved {
		target = model.StatusApproved
	}
	if booking.Status == target {
		return nil, alreadyDecided(target)
	}

	updated, err := s.repo.UpdateStatus(ctx, bookingID, booking.Status, target)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrStatusChanged):
			s.cfg.Log.Warn("Booking status changed concurrently", "id", bookingID, "from", booking.Status, "to", target)
			return nil, alreadyDecided(target)
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", bookingID, bookingserrors.ErrNotFound)
		}
		s.cfg.Log.Error("Failed to update booking status", "id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking decided", "id", bookingID, "from", booking.Status, "to", updated.Status)
	s.publish(ctx, events.StatusEvent(updated.Status), updated)

	return s.view(ctx, updated)
}

// GetByID returns the booking only to its booker or the owner of its item.
func (s *bookingService) GetByID(ctx context.Context, actorID string, bookingID string) (*model.BookingView, error) {
	booking, err := s.repo.FindByIDForParticipant(ctx, bookingID, actorID)
	if err != nil {
		return nil, s.bookingLookupError(bookingID, err)
	}
	return s.view(ctx, booking)
}

func (s *bookingService) ListForBooker(ctx context.Context, actorID string, stateName string, from, size int) ([]*model.BookingView, error) {
	return s.list(ctx, state.Booker, actorID, stateName, from, size)
}

func (s *bookingService) ListForOwner(ctx context.Context, actorID string, stateName string, from, size int) ([]*model.BookingView, error) {
	return s.list(ctx, state.Owner, actorID, stateName, from, size)
}

func (s *bookingService) list(ctx context.Context, role state.Role, actorID string, stateName string, from, size int) ([]*model.BookingView, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	st, err := state.Parse(stateName)
	if err != nil {
		return nil, apperrors.BadRequest(apperrors.CodeUnknownState, "Unknown state: "+stateName, err)
	}
	page, err := state.PageOf(from, size)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	q := state.NewQuery(role, actorID, st, s.now(), page)
	bookings, err := s.repo.List(ctx, q)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "role", role.String(), "actor_id", actorID, "state", st, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	names, err := s.itemNames(ctx, bookings)
	if err != nil {
		return nil, err
	}

	views := make([]*model.BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := b.View(names[b.ItemID])
		views = append(views, &view)
	}
	return views, nil
}

func (s *bookingService) itemNames(ctx context.Context, bookings []*model.Booking) (map[string]string, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, b := range bookings {
		if !seen[b.ItemID] {
			seen[b.ItemID] = true
			ids = append(ids, b.ItemID)
		}
	}

	items, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve booked items", "count", len(ids), "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}

func (s *bookingService) view(ctx context.Context, booking *model.Booking) (*model.BookingView, error) {
	names, err := s.itemNames(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}
	view := booking.View(names[booking.ItemID])
	return &view, nil
}

func (s *bookingService) loadItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) || errors.Is(err, itemserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Item", id, itemserrors.ErrNotFound)
		}
		s.cfg.Log.Error("Failed to find item", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve item", err)
	}
	return item, nil
}

func (s *bookingService) bookingLookupError(id string, err error) error {
	if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Booking", id, bookingserrors.ErrNotFound)
	}
	s.cfg.Log.Error("Failed to find booking", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve booking", err)
}

// publish is best effort. A committed booking change is never undone because
// its event could not be delivered.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := events.NewEvent(eventType, booking, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "type", eventType, "id", booking.ID, "error", err)
	}
}

func alreadyDecided(status model.BookingStatus) error {
	return apperrors.BadRequest(apperrors.CodeAlreadyDecided,
		"Booking is already "+string(status), bookingserrors.ErrAlreadyDecided)
}

func validationError(err error) error {
	if errors.Is(err, bookingserrors.ErrInvalidInterval) {
		return apperrors.BadRequest(apperrors.CodeInvalidInterval, "Invalid booking interval", err)
	}
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid booking input", verrs.Details())
	}
	return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
}
