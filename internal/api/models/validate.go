package models

import (
	"fmt"
	"regexp"
	"time"

	"reviewhub/internal/api/apperr"
)

const (
	MaxLenUsername = 150
	MaxLenEmail    = 254
	MaxLenName     = 256
	MaxLenSlug     = 50

	MinScore = 1
	MaxScore = 10

	// ReservedUsername collides with the /users/me route and is rejected
	// everywhere, exact match only.
	ReservedUsername = "me"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func ValidateUsername(username string) error {
	if username == "" {
		return apperr.Validation("username", "must not be empty")
	}
	if len(username) > MaxLenUsername {
		return apperr.Validation("username", fmt.Sprintf("must be at most %d characters", MaxLenUsername))
	}
	if username == ReservedUsername {
		return apperr.Validation("username", `"me" is not allowed as a username`)
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Validation("username", "may only contain letters, digits and .@+-_ characters")
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return apperr.Validation("email", "must not be empty")
	}
	if len(email) > MaxLenEmail {
		return apperr.Validation("email", fmt.Sprintf("must be at most %d characters", MaxLenEmail))
	}
	if !emailPattern.MatchString(email) {
		return apperr.Validation("email", "is not a valid email address")
	}
	return nil
}

func ValidateSlug(slug string) error {
	if slug == "" {
		return apperr.Validation("slug", "must not be empty")
	}
	if len(slug) > MaxLenSlug {
		return apperr.Validation("slug", fmt.Sprintf("must be at most %d characters", MaxLenSlug))
	}
	if !slugPattern.MatchString(slug) {
		return apperr.Validation("slug", "may only contain letters, digits, hyphens and underscores")
	}
	return nil
}

func ValidateName(name string) error {
	if name == "" {
		return apperr.Validation("name", "must not be empty")
	}
	if len(name) > MaxLenName {
		return apperr.Validation("name", fmt.Sprintf("must be at most %d characters", MaxLenName))
	}
	return nil
}

// ValidateYear checks a title's release year against the given reference
// time. The clock is a parameter so tests can pin arbitrary dates.
func ValidateYear(year int, now time.Time) error {
	if year < 0 {
		return apperr.Validation("year", "must not be negative")
	}
	if year > now.Year() {
		return apperr.Validation("year", "must not be later than the current year")
	}
	return nil
}

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return apperr.Validation("score", fmt.Sprintf("must be between %d and %d", MinScore, MaxScore))
	}
	return nil
}
