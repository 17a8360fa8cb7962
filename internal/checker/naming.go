package checker

import (
	"strings"
	"unicode"
)

// IsLowerCamelCase reports whether s is lower camel case: a lowercase
// letter followed by letters and digits (myEntityUtil, index).
func IsLowerCamelCase(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if !unicode.IsLower(runes[0]) {
		return false
	}
	return isAlphanumeric(runes[1:])
}

// IsUpperCamelCase reports whether s is upper camel case: an uppercase
// letter followed by letters and digits (EntityComponent).
func IsUpperCamelCase(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return isAlphanumeric(runes[1:])
}

// IsUpperSnakeCase reports whether s is upper snake case: uppercase
// words of letters and digits joined by single underscores
// (ENTITY_CONSTANT, HTTP_400).
func IsUpperSnakeCase(s string) bool {
	if s == "" {
		return false
	}
	if !unicode.IsUpper([]rune(s)[0]) {
		return false
	}
	for _, word := range strings.Split(s, "_") {
		if word == "" {
			return false
		}
		for _, r := range word {
			if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

func isAlphanumeric(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
