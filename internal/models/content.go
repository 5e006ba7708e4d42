package models

import "strings"

// blockedWords is the denylist applied to post and comment bodies before
// anything is sent upstream.
var blockedWords = []string{
	"explicit_word1",
	"explicit_word2",
}

// ScreenContent returns a validation error when the text contains a blocked
// word. Matching is case-insensitive substring matching.
func ScreenContent(text string) *AppError {
	lower := strings.ToLower(text)
	for _, w := range blockedWords {
		if strings.Contains(lower, strings.ToLower(w)) {
			return NewValidationError("content contains inappropriate language")
		}
	}
	return nil
}
