package main

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// This file contains helper functions for string and label manipulation.

const descriptionPlaceholder = "Нет данных"

// normalizeCityName standardizes a user-supplied city name for use in cache
// keys: Latin diacritics are removed ("Orléans" becomes "Orleans"), the result
// is lowercased and whitespace is collapsed to single hyphens. Cyrillic input
// passes through unchanged apart from case.
func normalizeCityName(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("input string is not valid UTF-8")
	}
	// Marks are stripped only off Latin base letters: under NFD, Cyrillic й
	// and ё decompose into base + combining mark too, and removing those
	// marks would prevent NFC from recomposing the letters.
	var (
		b    strings.Builder
		base rune
	)
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			if unicode.Is(unicode.Latin, base) {
				continue
			}
		} else {
			base = r
		}
		b.WriteRune(r)
	}
	result := norm.NFC.String(b.String())
	result = strings.ToLower(strings.TrimSpace(result))
	result = strings.Join(strings.Fields(result), "-")
	return strings.ReplaceAll(result, "/", "-"), nil
}

// formatDescription normalizes a weather description: trimmed, first letter
// uppercased, the rest lowercased. Empty input maps to a fixed placeholder so
// a description is never an empty string.
func formatDescription(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return descriptionPlaceholder
	}
	first, size := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(first)) + strings.ToLower(trimmed[size:])
}

// formatTimezone renders a UTC offset as "UTC±HH:MM".
func formatTimezone(offset time.Duration) string {
	totalMinutes := int(offset.Minutes())
	sign := "+"
	if totalMinutes < 0 {
		sign = "-"
		totalMinutes = -totalMinutes
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, totalMinutes/60, totalMinutes%60)
}
