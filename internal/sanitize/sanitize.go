// Package sanitize cleans user supplied rich text before it is stored.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		rich = bluemonday.UGCPolicy()
		rich.RequireNoFollowOnLinks(true)
		strict = bluemonday.StrictPolicy()
	})
	return rich, strict
}

// HTML keeps basic formatting (paragraphs, emphasis, lists, safe links) and
// strips scripts, event handlers and javascript: URLs.
func HTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	p, _ := policies()
	return strings.TrimSpace(p.Sanitize(s))
}

// Text removes every tag, for single line fields such as titles.
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}
