package validators

import "strings"

// SanitizeString trims input and caps it at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return strings.TrimSpace(string(runes[:maxLen]))
	}
	return trimmed
}

// SanitizeCell is SanitizeString for values written to the sheet as user
// input. Leading characters that start a formula are dropped.
func SanitizeCell(input string, maxLen int) string {
	return SanitizeString(stripLeading(input, "=+@"), maxLen)
}

// SanitizePhone keeps a leading "+" for international numbers.
func SanitizePhone(input string, maxLen int) string {
	return SanitizeString(stripLeading(input, "=@"), maxLen)
}

func stripLeading(input, cutset string) string {
	return strings.TrimLeft(strings.TrimSpace(input), cutset+" \t")
}
