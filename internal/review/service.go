package review

import (
	"context"
	"strings"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, userID, productID uuid.UUID, input NewReviewInput) (*Review, error)
	Update(ctx context.Context, userID, reviewID uuid.UUID, input NewReviewInput) (*Review, error)
	Delete(ctx context.Context, actorID, reviewID uuid.UUID, isAdmin bool) error
	ListForProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]*Review, int, error)
	Summary(ctx context.Context, productID uuid.UUID) (*RatingSummary, error)

	ListPending(ctx context.Context, page, limit int) ([]*Review, int, error)
	Moderate(ctx context.Context, adminID, reviewID uuid.UUID, verdict Status) (*Review, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// Create submits a review into the moderation queue. One review per user per
// product; the unique constraint backs this up under concurrency.
func (s *service) Create(ctx context.Context, userID, productID uuid.UUID, input NewReviewInput) (*Review, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsPublished {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview.With("review_id", existing.ID.String())
	}

	rev := &Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     input.Title,
		Body:      strings.TrimSpace(input.Body),
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("review submitted",
		zap.String("review_id", rev.ID.String()),
		zap.String("product_id", productID.String()),
	)
	return rev, nil
}

// Update rewrites the author's review. Any edit drops an earlier verdict and
// sends the review back through moderation.
func (s *service) Update(ctx context.Context, userID, reviewID uuid.UUID, input NewReviewInput) (*Review, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}
	if rev.UserID != userID {
		return nil, ErrNotOwner
	}

	rev.Rating = input.Rating
	rev.Title = input.Title
	rev.Body = strings.TrimSpace(input.Body)
	rev.Status = StatusPending
	rev.ModeratedBy = nil
	rev.ModeratedAt = nil

	if err := s.repo.UpdateContent(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) Delete(ctx context.Context, actorID, reviewID uuid.UUID, isAdmin bool) error {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rev == nil {
		return ErrReviewNotFound
	}
	if !isAdmin && rev.UserID != actorID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, reviewID)
}

// ListForProduct exposes only approved reviews.
func (s *service) ListForProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]*Review, int, error) {
	page, limit = normalize(page, limit)
	return s.repo.ListByProduct(ctx, productID, StatusApproved, page, limit)
}

func (s *service) Summary(ctx context.Context, productID uuid.UUID) (*RatingSummary, error) {
	return s.repo.Summary(ctx, productID)
}

func (s *service) ListPending(ctx context.Context, page, limit int) ([]*Review, int, error) {
	page, limit = normalize(page, limit)
	return s.repo.ListByStatus(ctx, StatusPending, page, limit)
}

// Moderate records an admin verdict. Repeating the same verdict succeeds and
// restamps the moderation metadata rather than failing, so double-submitted
// moderation forms are harmless.
func (s *service) Moderate(ctx context.Context, adminID, reviewID uuid.UUID, verdict Status) (*Review, error) {
	if !ValidModeration(verdict) {
		return nil, ErrInvalidInput.With("status", string(verdict))
	}

	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}

	now := time.Now()
	rev.Status = verdict
	rev.ModeratedBy = &adminID
	rev.ModeratedAt = &now

	if err := s.repo.SetStatus(ctx, rev); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("review moderated",
		zap.String("review_id", rev.ID.String()),
		zap.String("verdict", string(verdict)),
		zap.String("admin_id", adminID.String()),
	)
	return rev, nil
}

func validate(input NewReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return ErrInvalidInput.With("field", "rating").With("reason", "must be between 1 and 5")
	}
	if strings.TrimSpace(input.Body) == "" {
		return ErrInvalidInput.With("field", "body").With("reason", "must not be empty")
	}
	return nil
}

func normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
