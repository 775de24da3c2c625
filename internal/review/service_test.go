package review

import (
	"context"
	"testing"
	"time"

	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, rev *Review) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID uuid.UUID, status Status, page, limit int) ([]*Review, int, error) {
	args := m.Called(ctx, productID, status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Review), args.Int(1), args.Error(2)
}

func (m *MockRepository) ListByStatus(ctx context.Context, status Status, page, limit int) ([]*Review, int, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Review), args.Int(1), args.Error(2)
}

func (m *MockRepository) UpdateContent(ctx context.Context, rev *Review) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *MockRepository) SetStatus(ctx context.Context, rev *Review) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Summary(ctx context.Context, productID uuid.UUID) (*RatingSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RatingSummary), args.Error(1)
}

func (m *MockRepository) CountByStatus(ctx context.Context, status Status) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

// MockProductRepository mocks product.Repository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*product.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Create(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id uuid.UUID, patch product.Patch) (*product.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	input := NewReviewInput{Rating: 4, Body: "Solid product, fast shipping."}

	t.Run("Success - Enters Moderation Queue", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewService(mockRepo, mockProductRepo)

		mockProductRepo.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID, IsPublished: true}, nil).Once()
		mockRepo.On("GetByUserAndProduct", ctx, userID, productID).Return(nil, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(rev *Review) bool {
			return rev.Status == StatusPending && rev.Rating == 4
		})).Return(nil).Once()

		rev, err := svc.Create(ctx, userID, productID, input)

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, rev.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Already Reviewed", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewService(mockRepo, mockProductRepo)

		mockProductRepo.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID, IsPublished: true}, nil).Once()
		mockRepo.On("GetByUserAndProduct", ctx, userID, productID).
			Return(&Review{ID: uuid.New()}, nil).Once()

		_, err := svc.Create(ctx, userID, productID, input)

		assert.ErrorIs(t, err, ErrDuplicateReview)
	})

	t.Run("Error - Rating Out Of Range", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.Create(ctx, userID, productID, NewReviewInput{Rating: 6, Body: "x"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Create(ctx, userID, productID, NewReviewInput{Rating: 0, Body: "x"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Error - Empty Body", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.Create(ctx, userID, productID, NewReviewInput{Rating: 3, Body: "   "})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	reviewID := uuid.New()
	adminID := uuid.New()

	t.Run("Success - Edit Resets Verdict", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		moderatedAt := time.Now()
		approved := &Review{
			ID:          reviewID,
			UserID:      userID,
			Rating:      5,
			Status:      StatusApproved,
			ModeratedBy: &adminID,
			ModeratedAt: &moderatedAt,
		}
		mockRepo.On("GetByID", ctx, reviewID).Return(approved, nil).Once()
		mockRepo.On("UpdateContent", ctx, mock.MatchedBy(func(rev *Review) bool {
			return rev.Status == StatusPending && rev.ModeratedBy == nil && rev.ModeratedAt == nil
		})).Return(nil).Once()

		rev, err := svc.Update(ctx, userID, reviewID, NewReviewInput{Rating: 2, Body: "Broke after a week."})

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, rev.Status)
		assert.Equal(t, 2, rev.Rating)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not The Author", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetByID", ctx, reviewID).
			Return(&Review{ID: reviewID, UserID: uuid.New()}, nil).Once()

		_, err := svc.Update(ctx, userID, reviewID, NewReviewInput{Rating: 1, Body: "x"})

		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	reviewID := uuid.New()

	t.Run("Success - Owner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetByID", ctx, reviewID).
			Return(&Review{ID: reviewID, UserID: userID}, nil).Once()
		mockRepo.On("Delete", ctx, reviewID).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, userID, reviewID, false))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Admin Deletes Foreign Review", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetByID", ctx, reviewID).
			Return(&Review{ID: reviewID, UserID: uuid.New()}, nil).Once()
		mockRepo.On("Delete", ctx, reviewID).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, userID, reviewID, true))
	})

	t.Run("Error - Foreign Review Without Admin", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetByID", ctx, reviewID).
			Return(&Review{ID: reviewID, UserID: uuid.New()}, nil).Once()

		err := svc.Delete(ctx, userID, reviewID, false)

		assert.ErrorIs(t, err, ErrNotOwner)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_Moderate(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	reviewID := uuid.New()

	t.Run("Success - Approve", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetByID", ctx, reviewID).
			Return(&Review{ID: reviewID, Status: StatusPending}, nil).Once()
		mockRepo.On("SetStatus", ctx, mock.MatchedBy(func(rev *Review) bool {
			return rev.Status == StatusApproved && rev.ModeratedBy != nil && *rev.ModeratedBy == adminID
		})).Return(nil).Once()

		rev, err := svc.Moderate(ctx, adminID, reviewID, StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, rev.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Repeated Verdict Restamps Metadata", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		previousAdmin := uuid.New()
		old := time.Now().Add(-time.Hour)
		mockRepo.On("GetByID", ctx, reviewID).
			Return(&Review{ID: reviewID, Status: StatusApproved, ModeratedBy: &previousAdmin, ModeratedAt: &old}, nil).Once()
		mockRepo.On("SetStatus", ctx, mock.MatchedBy(func(rev *Review) bool {
			return rev.Status == StatusApproved &&
				*rev.ModeratedBy == adminID &&
				rev.ModeratedAt.After(old)
		})).Return(nil).Once()

		rev, err := svc.Moderate(ctx, adminID, reviewID, StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, adminID, *rev.ModeratedBy)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Verdict Must Be Terminal", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.Moderate(ctx, adminID, reviewID, StatusPending)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Error - Review Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetByID", ctx, reviewID).Return(nil, nil).Once()

		_, err := svc.Moderate(ctx, adminID, reviewID, StatusRejected)

		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestService_ListForProduct(t *testing.T) {
	ctx := utils.SetUserContext(context.Background(), uuid.New(), "shopper@example.com", utils.RoleUser)
	productID := uuid.New()

	t.Run("Success - Only Approved Reviews", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("ListByProduct", ctx, productID, StatusApproved, 1, 20).
			Return([]*Review{{Status: StatusApproved}}, 1, nil).Once()

		reviews, total, err := svc.ListForProduct(ctx, productID, 0, 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, reviews, 1)
		mockRepo.AssertExpectations(t)
	})
}
