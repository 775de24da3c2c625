package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, c *Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("SlugExists", ctx, "home-office").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(c *Category) bool {
			return c.Name == "Home Office" && c.Slug == "home-office"
		})).Return(nil).Once()

		c, err := svc.Create(ctx, "Home Office", nil, nil)

		assert.NoError(t, err)
		assert.Equal(t, "home-office", c.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Slug Collision Appends Counter", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("SlugExists", ctx, "home-office").Return(true, nil).Once()
		mockRepo.On("SlugExists", ctx, "home-office-1").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(c *Category) bool {
			return c.Slug == "home-office-1"
		})).Return(nil).Once()

		c, err := svc.Create(ctx, "Home Office", nil, nil)

		assert.NoError(t, err)
		assert.Equal(t, "home-office-1", c.Slug)
	})

	t.Run("Error - Blank Name", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(ctx, "  ", nil, nil)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success - Rename", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		name := "Workspace"
		mockRepo.On("GetByID", ctx, id).
			Return(&Category{ID: id, Name: "Home Office", Slug: "home-office"}, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *Category) bool {
			return c.Name == name && c.Slug == "home-office"
		})).Return(nil).Once()

		c, err := svc.Update(ctx, id, UpdateCategoryInput{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, name, c.Name)
	})

	t.Run("Error - Own Parent", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, id).
			Return(&Category{ID: id, Name: "Home Office"}, nil).Once()

		_, err := svc.Update(ctx, id, UpdateCategoryInput{ParentID: &id})

		assert.ErrorIs(t, err, ErrSelfParent)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		name := "Workspace"
		_, err := svc.Update(ctx, id, UpdateCategoryInput{Name: &name})

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
