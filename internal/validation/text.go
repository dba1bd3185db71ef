package validation

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxDescriptionLength = 500
	MaxSituationLength   = 1000
)

// ValidateDescription checks a wardrobe item description and returns it trimmed.
func ValidateDescription(description string) (string, error) {
	return requiredText("description", description, MaxDescriptionLength)
}

// ValidateSituation checks the free-text situation that drives a recommendation and returns it trimmed.
func ValidateSituation(situation string) (string, error) {
	return requiredText("situation", situation, MaxSituationLength)
}

func requiredText(field, value string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return "", newError(field, "%s is required", field)
	}

	if utf8.RuneCountInString(trimmed) > max {
		return "", newError(field, "%s is too long (max %d characters)", field, max)
	}

	return trimmed, nil
}
