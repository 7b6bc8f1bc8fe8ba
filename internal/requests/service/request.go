package service

import (
	"context"
	"errors"
	"shareit/internal/bookings/state"
	requestserrors "shareit/internal/requests/errors"
	"shareit/internal/requests/repository"
	"shareit/internal/requests/validator"
	userservice "shareit/internal/users/service"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"
	"shareit/pkg/validation"
	"time"
)

type RequestService interface {
	Create(ctx context.Context, actorID string, in *model.RequestCreate) (*model.RequestView, error)
	ListOwn(ctx context.Context, actorID string) ([]*model.RequestView, error)
	ListOthers(ctx context.Context, actorID string, from, size int) ([]*model.RequestView, error)
	GetByID(ctx context.Context, actorID string, requestID string) (*model.RequestView, error)
}

type ItemsByRequest interface {
	FindByRequestIDs(ctx context.Context, requestIDs []string) ([]*model.Item, error)
}

type requestService struct {
	repo      repository.RequestRepository
	users     userservice.Finder
	items     ItemsByRequest
	validator *validator.RequestValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewRequestService(
	repo repository.RequestRepository,
	users userservice.Finder,
	items ItemsByRequest,
	validator *validator.RequestValidator,
	cfg *config.Config,
) RequestService {
	return &requestService{
		repo:      repo,
		users:     users,
		items:     items,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *requestService) Create(ctx context.Context, actorID string, in *model.RequestCreate) (*model.RequestView, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	in.Description = sanitizer.NormalizeText(in.Description)
	if err := s.validator.Validate(in); err != nil {
		s.cfg.Log.Warn("Request validation failed", "requester_id", actorID, "error", err)
		var verrs validation.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Invalid request input", verrs.Details())
		}
		return nil, apperrors.Validation("Invalid request input", map[string]any{"error": err.Error()})
	}

	request := &model.Request{
		Description: in.Description,
		RequesterID: actorID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		s.cfg.Log.Error("Failed to create request", "requester_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to create request", err)
	}

	s.cfg.Log.Info("Request created successfully", "id", request.ID, "requester_id", actorID)
	return &model.RequestView{Request: *request, Items: []model.ItemSummary{}}, nil
}

func (s *requestService) ListOwn(ctx context.Context, actorID string) ([]*model.RequestView, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.FindByRequester(ctx, actorID)
	if err != nil {
		s.cfg.Log.Error("Failed to list own requests", "requester_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve requests", err)
	}
	return s.withItems(ctx, requests)
}

func (s *requestService) ListOthers(ctx context.Context, actorID string, from, size int) ([]*model.RequestView, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}
	page, err := state.PageOf(from, size)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	requests, err := s.repo.FindOthers(ctx, actorID, page.Skip(), page.Limit())
	if err != nil {
		s.cfg.Log.Error("Failed to list requests", "actor_id", actorID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve requests", err)
	}
	return s.withItems(ctx, requests)
}

func (s *requestService) GetByID(ctx context.Context, actorID string, requestID string) (*model.RequestView, error) {
	if _, err := userservice.LoadActor(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestserrors.ErrNotFound) || errors.Is(err, requestserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Request", requestID, requestserrors.ErrNotFound)
		}
		s.cfg.Log.Error("Failed to find request", "id", requestID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve request", err)
	}

	views, err := s.withItems(ctx, []*model.Request{request})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *requestService) withItems(ctx context.Context, requests []*model.Request) ([]*model.RequestView, error) {
	ids := make([]string, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}

	items, err := s.items.FindByRequestIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to load items for requests", "count", len(ids), "error", err)
		return nil, apperrors.Internal("Failed to retrieve requests", err)
	}
	return FanOut(requests, items), nil
}
