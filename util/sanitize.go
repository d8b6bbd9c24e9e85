package util

import "strings"

// SanitizeEnvValue trims whitespace and strips one pair of matching
// surrounding quotes, as left behind by `export KEY="value"` lines.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
