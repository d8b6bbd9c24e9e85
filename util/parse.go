package util

// MaskSecret hides all but the first visiblePrefix bytes of s for display
// in logs. Values no longer than visiblePrefix are fully masked.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
