package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeSize normalizes size values to the standard S, M, L, XL labels
// Small -> S, Extra Large -> XL
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.TrimSpace(size))

	sizeMap := map[string]string{
		"SMALL":       "S",
		"MEDIUM":      "M",
		"LARGE":       "L",
		"EXTRA LARGE": "XL",
		"X-LARGE":     "XL",
		"XLARGE":      "XL",
	}

	if normalized, exists := sizeMap[sizeUpper]; exists {
		return normalized
	}

	return sizeUpper
}

// NormalizeColor maps color names to the lowercase names used in the catalog
// Navy -> blue; unknown colors are returned lowercased
func NormalizeColor(color string) string {
	colorLower := strings.ToLower(strings.TrimSpace(color))

	colorMap := map[string]string{
		"navy":  "blue",
		"ivory": "white",
		"lime":  "green",
		"gold":  "yellow",
	}

	if mapped, exists := colorMap[colorLower]; exists {
		return mapped
	}

	return colorLower
}

// NormalizeCode normalizes a promo code for lookup: trimmed and uppercase
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeEmail normalizes an email address for comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SplitName splits a full name into first and last name.
// Only the second word is used as last name ("Ana Maria Lopez" -> "Ana", "Maria").
func SplitName(name string) (string, string) {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return "", ""
	case 1:
		return words[0], ""
	default:
		return words[0], words[1]
	}
}

// CapitalizeWords capitalizes the first letter of each word
func CapitalizeWords(s string) string {
	if s == "" {
		return s
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}

// SplitList splits a comma separated query value, dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
