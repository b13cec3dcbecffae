package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"reviewhub/internal/api/apperr"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"simple", "alice", false},
		{"dotted", "alice.b", false},
		{"with plus and at", "alice+test@node", false},
		{"underscore and hyphen", "a_b-c", false},
		{"digits", "user42", false},
		{"max length", strings.Repeat("a", MaxLenUsername), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxLenUsername+1), true},
		{"reserved me", "me", true},
		{"space", "ali ce", true},
		{"slash", "ali/ce", true},
		{"exclamation", "alice!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, apperr.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// "me" is reserved as an exact match only.
	assert.NoError(t, ValidateUsername("mean"))
	assert.NoError(t, ValidateUsername("Me.2"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.example.org"))

	for _, bad := range []string{"", "alice", "alice@", "@example.com", "a b@example.com", "alice@example"} {
		err := ValidateEmail(bad)
		assert.Error(t, err, "email %q", bad)
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	}

	long := strings.Repeat("a", MaxLenEmail) + "@example.com"
	assert.Error(t, ValidateEmail(long))
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("sci-fi"))
	assert.NoError(t, ValidateSlug("genre_2024"))
	assert.NoError(t, ValidateSlug(strings.Repeat("x", MaxLenSlug)))

	for _, bad := range []string{"", "has space", "ünïcode", "dot.slug", strings.Repeat("x", MaxLenSlug+1)} {
		assert.Error(t, ValidateSlug(bad), "slug %q", bad)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("War and Peace"))
	assert.NoError(t, ValidateName(strings.Repeat("n", MaxLenName)))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("n", MaxLenName+1)))
}

func TestValidateYear(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateYear(2024, now))
	assert.NoError(t, ValidateYear(1869, now))
	assert.NoError(t, ValidateYear(0, now))

	assert.Error(t, ValidateYear(-450, now))

	err := ValidateYear(2025, now)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	var fieldErr *apperr.FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "year", fieldErr.Field)
}

func TestValidateScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		assert.NoError(t, ValidateScore(score))
	}
	for _, bad := range []int{0, -1, 11, 100} {
		err := ValidateScore(bad)
		assert.Error(t, err, "score %d", bad)
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	}
}
