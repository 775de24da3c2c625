package address

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]*Address, error)
	Get(ctx context.Context, userID, addressID uuid.UUID) (*Address, error)
	Create(ctx context.Context, userID uuid.UUID, input NewAddressInput) (*Address, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, patch Patch) (*Address, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// owned loads the address and enforces that it belongs to the caller.
// A foreign address reads as not-found, not as forbidden.
func (s *service) owned(ctx context.Context, userID, addressID uuid.UUID) (*Address, error) {
	a, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, userID, addressID uuid.UUID) (*Address, error) {
	return s.owned(ctx, userID, addressID)
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input NewAddressInput) (*Address, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= MaxPerUser {
		return nil, ErrTooMany.With("limit", MaxPerUser)
	}

	if input.IsDefault || count == 0 {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		input.IsDefault = true
	}

	a := &Address{
		ID:         uuid.New(),
		UserID:     userID,
		Label:      input.Label,
		Recipient:  input.Recipient,
		Phone:      input.Phone,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		Province:   input.Province,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.IsDefault,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, userID, addressID uuid.UUID, patch Patch) (*Address, error) {
	if patch.IsEmpty() {
		return nil, ErrInvalidInput.With("reason", "no fields to update")
	}

	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return nil, err
	}

	if patch.IsDefault != nil && *patch.IsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, addressID, patch); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, addressID)
}

func (s *service) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, addressID)
}

func validateInput(input NewAddressInput) error {
	missing := []string{}
	for field, val := range map[string]string{
		"recipient":   input.Recipient,
		"phone":       input.Phone,
		"line1":       input.Line1,
		"city":        input.City,
		"province":    input.Province,
		"postal_code": input.PostalCode,
		"country":     input.Country,
	} {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return ErrInvalidInput.With("missing", missing)
	}
	return nil
}
