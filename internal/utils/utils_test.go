package utils

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := context.Background()
		userID := uuid.New()
		email := "user@example.com"
		role := RoleUser

		ctx = SetUserContext(ctx, userID, email, role)
		assert.NotNil(t, ctx)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)

		assert.Equal(t, email, GetUserEmailFromContext(ctx))
		assert.Equal(t, role, GetUserRoleFromContext(ctx))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		ctx := context.Background()
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestSessionContext(t *testing.T) {
	t.Run("SetSessionContext and GetSessionIDFromContext", func(t *testing.T) {
		ctx := SetSessionContext(context.Background(), "sess-123")

		sid, ok := GetSessionIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "sess-123", sid)
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetSessionIDFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple",
			input:    "Product Name",
			expected: "product-name",
		},
		{
			name:     "With Special Chars",
			input:    "Product & Name!",
			expected: "product-name",
		},
		{
			name:     "Multiple Spaces",
			input:    "Product   Name",
			expected: "product-name",
		},
		{
			name:     "Leading And Trailing Junk",
			input:    "  --Product--  ",
			expected: "product",
		},
		{
			name:     "Digits Preserved",
			input:    "USB-C Hub 7in1",
			expected: "usb-c-hub-7in1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-\d{6}-\d{3}-\d{4}$`)

	t.Run("Format", func(t *testing.T) {
		num := GenerateOrderNumber()
		assert.Regexp(t, pattern, num)
	})

	t.Run("Varies Between Calls", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			seen[GenerateOrderNumber()] = true
		}
		// The random suffix makes collisions in 20 draws vanishingly unlikely.
		assert.Greater(t, len(seen), 1)
	})
}

func TestPtrHelpers(t *testing.T) {
	t.Run("StrPtr", func(t *testing.T) {
		input := "test string"
		ptr := StrPtr(input)

		assert.NotNil(t, ptr)
		assert.Equal(t, input, *ptr)
	})

	t.Run("PtrString", func(t *testing.T) {
		str := "test"
		assert.Equal(t, "test", PtrString(&str))
		assert.Equal(t, "", PtrString(nil))
	})

	t.Run("PtrInt", func(t *testing.T) {
		val := 10
		assert.Equal(t, 10, PtrInt(&val))
		assert.Equal(t, 0, PtrInt(nil))
	})
}
