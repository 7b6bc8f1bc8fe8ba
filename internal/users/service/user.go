package service

import (
	"context"
	"errors"
	userserrors "shareit/internal/users/errors"
	"shareit/internal/users/repository"
	"shareit/internal/users/validator"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"
	"shareit/pkg/validation"
	"sync"
)

type UserService interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id string, updates *model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// ItemOwnership and BookingHistory back the delete restriction.
type ItemOwnership interface {
	ExistsByOwner(ctx context.Context, ownerID string) (bool, error)
}

type BookingHistory interface {
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

type userService struct {
	repo      repository.UserRepository
	items     ItemOwnership
	bookings  BookingHistory
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	items ItemOwnership,
	bookings BookingHistory,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		items:     items,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = ""
	user.Name = sanitizer.NormalizeName(user.Name)
	user.Email = sanitizer.SanitizeEmail(user.Email)

	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "email", user.Email, "error", err)
		return nil, validationError(err)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, duplicateEmail(user.Email)
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully", "id", user.ID)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return LoadActor(ctx, s.repo, id)
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id string, updates *model.UserUpdate) (*model.User, error) {
	existing, err := LoadActor(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	updates.Name = sanitizer.SanitizeOptional(updates.Name, sanitizer.NormalizeName)
	updates.Email = sanitizer.SanitizeOptional(updates.Email, sanitizer.SanitizeEmail)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("User update validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}
	if updates.IsEmpty() {
		return existing, nil
	}

	if updates.Email != nil && *updates.Email != existing.Email {
		taken, err := s.repo.ExistsByEmail(ctx, *updates.Email, id)
		if err != nil {
			return nil, apperrors.Internal("Failed to check email", err)
		}
		if taken {
			return nil, duplicateEmail(*updates.Email)
		}
	}

	merged := mergeUserUpdates(existing, updates)
	if err := s.repo.Update(ctx, id, merged); err != nil {
		switch {
		case errors.Is(err, userserrors.ErrDuplicateEmail):
			return nil, duplicateEmail(merged.Email)
		case errors.Is(err, userserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("User", id, userserrors.ErrNotFound)
		}
		s.cfg.Log.Error("Failed to update user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update user", err)
	}

	s.cfg.Log.Info("User updated successfully", "id", id)
	return merged, nil
}

func mergeUserUpdates(existing *model.User, updates *model.UserUpdate) *model.User {
	merged := *existing
	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Email != nil {
		merged.Email = *updates.Email
	}
	return &merged
}

// Delete refuses to remove a user who still owns items or has bookings, so no
// item or booking is ever left pointing at a missing user.
func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := LoadActor(ctx, s.repo, id); err != nil {
		return err
	}

	var ownsItems, hasBookings bool
	var errItems, errBookings error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		ownsItems, errItems = s.items.ExistsByOwner(ctx, id)
	}()

	go func() {
		defer wg.Done()
		hasBookings, errBookings = s.bookings.ExistsForUser(ctx, id)
	}()

	wg.Wait()
	if err := errors.Join(errItems, errBookings); err != nil {
		s.cfg.Log.Error("Failed to check user dependents", "id", id, "error", err)
		return apperrors.Internal("Failed to delete user", err)
	}
	if ownsItems || hasBookings {
		s.cfg.Log.Warn("User delete refused", "id", id, "owns_items", ownsItems, "has_bookings", hasBookings)
		return apperrors.Conflict("User still owns items or has bookings", userserrors.ErrHasDependents)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id, userserrors.ErrNotFound)
		}
		s.cfg.Log.Error("Failed to delete user", "id", id, "error", err)
		return apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted successfully", "id", id)
	return nil
}

func duplicateEmail(email string) error {
	return apperrors.Conflict("Email already in use", userserrors.ErrDuplicateEmail).
		WithDetails(map[string]any{"email": email})
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid user input", verrs.Details())
	}
	return apperrors.Validation("Invalid user input", map[string]any{"error": err.Error()})
}
