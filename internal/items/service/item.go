package service

import (
	"context"
	"errors"
	"shareit/internal/bookings/state"
	itemserrors "shareit/internal/items/errors"
	"shareit/internal/items/projection"
	"shareit/internal/items/repository"
	"shareit/internal/items/validator"
	requestserrors "shareit/internal/requests/errors"
	userservice "shareit/internal/users/service"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"
	"shareit/pkg/validation"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

type ItemService interface {
	Create(ctx context.Context, actorID string, in *model.ItemCreate) (*model.Item, error)
	Update(ctx context.Context, actorID string, itemID string, updates *model.ItemUpdate) (*model.Item, error)
	GetByID(ctx context.Context, actorID string, itemID string) (*model.ItemView, error)
	ListByOwner(ctx context.Context, actorID string, from, size int) ([]*model.ItemView, error)
	Search(ctx context.Context, text string, from, size int) ([]*model.Item, error)
	CreateComment(ctx context.Context, actorID string, itemID string, in *model.CommentCreate) (*model.CommentView, error)
}

// BookingSource is the booking data items need for projections and for the
// comment gate.
type BookingSource interface {
	FindLatestBefore(ctx context.Context, itemID string, now time.Time, approvedOnly bool) (*model.Booking, error)
	FindEarliestAfter(ctx context.Context, itemID string, now time.Time, approvedOnly bool) (*model.Booking, error)
	FindByItemIDs(ctx context.Context, itemIDs []string) ([]*model.Booking, error)
	ExistsCompletedBy(ctx context.Context, bookerID string, itemID string, now time.Time) (bool, error)
}

type RequestLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type itemService struct {
	repo      repository.ItemRepository
	comments  repository.CommentRepository
	users     userservice.Finder
	bookings  BookingSource
	requests  RequestLookup
	validator *validator.ItemValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewItemService(
	repo repository.ItemRepository,
	comments repository.CommentRepository,
	users userservice.Finder,
	bookings BookingSource,
	requests RequestLookup,
	validator *validator.ItemValidator,
	cfg *config.Config,
) ItemService {
	return &itemService{
		repo:      repo,
		comments:  comments,
		users:     users,
		bookings:  bookings,
		requests:  requests,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *itemService) Create(ctx context.Context, actorID string, in *model.ItemCreate) (*model.Item, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	in.Name = sanitizer.NormalizeName(in.Name)
	in.Description = sanitizer.NormalizeText(in.Description)
	in.RequestID = strings.TrimSpace(in.RequestID)
	if err := s.validator.Validate(in); err != nil {
		s.cfg.Log.Warn("Item validation failed", "owner_id", actorID, "error", err)
		return nil, validationError("Invalid item input", err)
	}

	if in.RequestID != "" {
		exists, err := s.requests.Exists(ctx, in.RequestID)
		if err != nil {
			s.cfg.Log.Error("Failed to check request", "request_id", in.RequestID, "error", err)
			return nil, apperrors.Internal("Failed to create item", err)
		}
		if !exists {
			return nil, apperrors.NotFoundWithID("Request", in.RequestID, requestserrors.ErrNotFound)
		}
	}

	item := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     actorID,
		RequestID:   in.RequestID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.cfg.Log.Error("Failed to create item", "owner_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to create item", err)
	}

	s.cfg.Log.Info("Item created successfully", "id", item.ID, "owner_id", actorID)
	return item, nil
}

func (s *itemService) Update(ctx context.Context, actorID string, itemID string, updates *model.ItemUpdate) (*model.Item, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		s.cfg.Log.Warn("Item update by non-owner refused", "id", itemID, "actor_id", actorID)
		return nil, apperrors.Forbidden("Item does not belong to user", itemserrors.ErrNotOwner)
	}

	updates.Name = sanitizer.SanitizeOptional(updates.Name, sanitizer.NormalizeName)
	updates.Description = sanitizer.SanitizeOptional(updates.Description, sanitizer.NormalizeText)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Item update validation failed", "id", itemID, "error", err)
		return nil, validationError("Invalid item input", err)
	}
	if updates.IsEmpty() {
		return item, nil
	}

	merged := mergeItemUpdates(item, updates)
	if err := s.repo.Update(ctx, itemID, merged); err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Item", itemID, itemserrors.ErrNotFound)
		}
		s.cfg.Log.Error("Failed to update item", "id", itemID, "error", err)
		return nil, apperrors.Internal("Failed to update item", err)
	}

	s.cfg.Log.Info("Item updated successfully", "id", itemID)
	return merged, nil
}

func mergeItemUpdates(existing *model.Item, updates *model.ItemUpdate) *model.Item {
	merged := *existing
	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Available != nil {
		merged.Available = *updates.Available
	}
	return &merged
}

// GetByID returns the item with its comments. Only the owner sees the last and
// next bookings, chosen among bookings in any status.
func (s *itemService) GetByID(ctx context.Context, actorID string, itemID string) (*model.ItemView, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := &model.ItemView{Item: *item, Comments: []model.CommentView{}}
	now := s.now()
	approvedOnly := projection.DetailView.ApprovedOnly()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := s.comments.FindByItemIDs(gctx, []string{itemID})
		if err != nil {
			return err
		}
		view.Comments = commentViews(comments)
		return nil
	})
	if item.OwnerID == actorID {
		g.Go(func() error {
			last, err := s.bookings.FindLatestBefore(gctx, itemID, now, approvedOnly)
			view.LastBooking = projection.Ref(last)
			return err
		})
		g.Go(func() error {
			next, err := s.bookings.FindEarliestAfter(gctx, itemID, now, approvedOnly)
			view.NextBooking = projection.Ref(next)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.cfg.Log.Error("Failed to load item details", "id", itemID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve item", err)
	}
	return view, nil
}

// ListByOwner pages the owner's items. Projections consider approved bookings
// only.
func (s *itemService) ListByOwner(ctx context.Context, actorID string, from, size int) ([]*model.ItemView, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}
	page, err := pageOf(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwner(ctx, actorID, page.Skip(), page.Limit())
	if err != nil {
		s.cfg.Log.Error("Failed to list owner items", "owner_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve items", err)
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	var bookings []*model.Booking
	var comments []*model.Comment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.bookings.FindByItemIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.FindByItemIDs(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		s.cfg.Log.Error("Failed to load owner item details", "owner_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve items", err)
	}

	now := s.now()
	bookingsByItem := projection.ByItem(bookings)
	commentsByItem := make(map[string][]*model.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	views := make([]*model.ItemView, 0, len(items))
	for _, item := range items {
		itemBookings := bookingsByItem[item.ID]
		views = append(views, &model.ItemView{
			Item:        *item,
			LastBooking: projection.Ref(projection.Last(itemBookings, now, projection.ListView)),
			NextBooking: projection.Ref(projection.Next(itemBookings, now, projection.ListView)),
			Comments:    commentViews(commentsByItem[item.ID]),
		})
	}
	return views, nil
}

func (s *itemService) Search(ctx context.Context, text string, from, size int) ([]*model.Item, error) {
	page, err := pageOf(from, size)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return []*model.Item{}, nil
	}

	items, err := s.repo.Search(ctx, text, page.Skip(), page.Limit())
	if err != nil {
		s.cfg.Log.Error("Failed to search items", "text", text, "error", err)
		return nil, apperrors.Internal("Failed to search items", err)
	}
	return items, nil
}

// CreateComment lets a user comment on an item once one of their bookings of
// it has ended, whatever its status.
func (s *itemService) CreateComment(ctx context.Context, actorID string, itemID string, in *model.CommentCreate) (*model.CommentView, error) {
	in.Text = sanitizer.NormalizeText(in.Text)
	if err := s.validator.ValidateComment(in); err != nil {
		s.cfg.Log.Warn("Comment validation failed", "item_id", itemID, "error", err)
		return nil, validationError("Invalid comment input", err)
	}

	author, err := userservice.LoadActor(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.now()
	completed, err := s.bookings.ExistsCompletedBy(ctx, actorID, itemID, now)
	if err != nil {
		s.cfg.Log.Error("Failed to check booking history", "item_id", itemID, "author_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to create comment", err)
	}
	if !completed {
		s.cfg.Log.Warn("Comment refused", "item_id", itemID, "author_id", actorID)
		return nil, apperrors.BadRequest(apperrors.CodeCommentNotAllowed,
			"User has not completed a booking of this item", itemserrors.ErrCommentNotAllowed)
	}

	comment := &model.Comment{
		Text:       in.Text,
		ItemID:     itemID,
		AuthorID:   actorID,
		AuthorName: author.Name,
		CreatedAt:  now.UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.cfg.Log.Error("Failed to create comment", "item_id", itemID, "error", err)
		return nil, apperrors.Internal("Failed to create comment", err)
	}

	s.cfg.Log.Info("Comment created successfully", "id", comment.ID, "item_id", itemID)
	view := comment.View()
	return &view, nil
}

func (s *itemService) loadItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) || errors.Is(err, itemserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Item", id, itemserrors.ErrNotFound)
		}
		s.cfg.Log.Error("Failed to find item", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve item", err)
	}
	return item, nil
}

func commentViews(comments []*model.Comment) []model.CommentView {
	views := make([]model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.View())
	}
	return views
}

func pageOf(from, size int) (state.Page, error) {
	page, err := state.PageOf(from, size)
	if err != nil {
		return state.Page{}, apperrors.InvalidInput(err.Error())
	}
	return page, nil
}

func validationError(message string, err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
