package utils

import "strings"

// ClientIP extracts the best-effort client address from proxy headers:
// the first hop of X-Forwarded-For, else X-Real-IP, else "unknown".
func ClientIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first := forwardedFor
		if idx := strings.Index(forwardedFor, ","); idx >= 0 {
			first = forwardedFor[:idx]
		}
		if trimmed := strings.TrimSpace(first); trimmed != "" {
			return trimmed
		}
	}
	if realIP != "" {
		return strings.TrimSpace(realIP)
	}
	return "unknown"
}
