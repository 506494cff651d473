package utils

import (
	"regexp"
	"strings"
)

// Korean road addresses: "서울특별시 강남구 테헤란로 123". The region label is
// the prefix up to the district (구) or county (군) token, falling back to the
// city (시) token, then to the whole cleaned address.
var (
	parenthesized = regexp.MustCompile(`\(.*?\)`)
	whitespace    = regexp.MustCompile(`\s+`)
)

const countryToken = "대한민국"

// ExtractRegion derives a coarse region label from a Korean address.
// Returns "" when no label can be derived.
func ExtractRegion(address string) string {
	cleaned := parenthesized.ReplaceAllString(address, " ")
	cleaned = strings.TrimSpace(whitespace.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return ""
	}

	tokens := strings.Split(cleaned, " ")

	// Prefer the prefix ending at the first 구/군 token.
	var prefix []string
	for _, tok := range tokens {
		if tok == countryToken {
			continue
		}
		prefix = append(prefix, tok)
		if strings.HasSuffix(tok, "구") || strings.HasSuffix(tok, "군") {
			return strings.Join(prefix, " ")
		}
	}

	// Otherwise stop at the first 시 token.
	prefix = prefix[:0]
	for _, tok := range tokens {
		if tok == countryToken {
			continue
		}
		prefix = append(prefix, tok)
		if strings.HasSuffix(tok, "시") {
			return strings.Join(prefix, " ")
		}
	}

	return cleaned
}
