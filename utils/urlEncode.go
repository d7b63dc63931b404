package utils

import (
	"net/url"
	"strings"
)

// EncodeURIComponent escapes s for use as a single query value, encoding
// spaces as %20 rather than '+'.
func EncodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
