package wishlist

import (
	"context"
	"testing"

	"storefront-be/internal/cart"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Item, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Item), args.Int(1), args.Error(2)
}

func (m *MockRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
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

// MockCartService mocks cart.Service
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, identity cart.Identity) (*cart.Cart, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, identity cart.Identity, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	args := m.Called(ctx, identity, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, identity cart.Identity, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	args := m.Called(ctx, identity, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, identity cart.Identity, productID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, identity, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, identity cart.Identity) (*cart.Cart, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) MergeGuestCart(ctx context.Context, userID uuid.UUID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewService(mockRepo, mockProductRepo, new(MockCartService))

		mockProductRepo.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID, IsPublished: true}, nil).Once()
		mockRepo.On("Add", ctx, userID, productID).Return(nil).Once()

		assert.NoError(t, svc.Add(ctx, userID, productID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Repeated Add Is A No-Op", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewService(mockRepo, mockProductRepo, new(MockCartService))

		mockProductRepo.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID, IsPublished: true}, nil).Twice()
		mockRepo.On("Add", ctx, userID, productID).Return(nil).Twice()

		assert.NoError(t, svc.Add(ctx, userID, productID))
		assert.NoError(t, svc.Add(ctx, userID, productID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Product Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewService(mockRepo, mockProductRepo, new(MockCartService))

		mockProductRepo.On("GetByID", ctx, productID).Return(nil, nil).Once()

		err := svc.Add(ctx, userID, productID)

		assert.ErrorIs(t, err, ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Unpublished Product", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewService(mockRepo, mockProductRepo, new(MockCartService))

		mockProductRepo.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID, IsPublished: false}, nil).Once()

		err := svc.Add(ctx, userID, productID)

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Normalizes Paging", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository), new(MockCartService))

		mockRepo.On("List", ctx, userID, 1, 20).
			Return([]*Item{{UserID: userID}}, 1, nil).Once()

		items, total, err := svc.List(ctx, userID, 0, -1)

		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, items, 1)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_MoveToCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCartSvc := new(MockCartService)
		svc := NewService(mockRepo, new(MockProductRepository), mockCartSvc)

		mockRepo.On("Exists", ctx, userID, productID).Return(true, nil).Once()
		mockCartSvc.On("AddItem", ctx, cart.UserIdentity(userID), productID, 1).
			Return(&cart.Cart{ID: uuid.New()}, nil).Once()
		mockRepo.On("Remove", ctx, userID, productID).Return(nil).Once()

		c, err := svc.MoveToCart(ctx, userID, productID)

		assert.NoError(t, err)
		assert.NotNil(t, c)
		mockRepo.AssertExpectations(t)
		mockCartSvc.AssertExpectations(t)
	})

	t.Run("Error - Not On Wishlist", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCartSvc := new(MockCartService)
		svc := NewService(mockRepo, new(MockProductRepository), mockCartSvc)

		mockRepo.On("Exists", ctx, userID, productID).Return(false, nil).Once()

		_, err := svc.MoveToCart(ctx, userID, productID)

		assert.ErrorIs(t, err, ErrItemNotFound)
		mockCartSvc.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Cart Rejects, Entry Stays", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCartSvc := new(MockCartService)
		svc := NewService(mockRepo, new(MockProductRepository), mockCartSvc)

		mockRepo.On("Exists", ctx, userID, productID).Return(true, nil).Once()
		mockCartSvc.On("AddItem", ctx, cart.UserIdentity(userID), productID, 1).
			Return(nil, cart.ErrInsufficientStock).Once()

		_, err := svc.MoveToCart(ctx, userID, productID)

		assert.ErrorIs(t, err, cart.ErrInsufficientStock)
		mockRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
	})
}
