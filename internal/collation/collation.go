// Package collation orders display names the way Turkish readers expect
// (ç after c, ı before i, ş after s ...).
package collation

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collate.Collator is not safe for concurrent use.
var mu sync.Mutex
var turkish = collate.New(language.Turkish, collate.IgnoreCase)

// Compare returns -1, 0 or 1.
func Compare(a, b string) int {
	mu.Lock()
	defer mu.Unlock()
	return turkish.CompareString(a, b)
}

// SortBy sorts items in place by key, stable for equal keys.
func SortBy[T any](items []T, key func(T) string) {
	mu.Lock()
	defer mu.Unlock()
	sort.SliceStable(items, func(i, j int) bool {
		return turkish.CompareString(key(items[i]), key(items[j])) < 0
	})
}
