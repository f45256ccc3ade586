// Package normalization maps loosely written setting values (any case,
// surrounding spaces, aliases) onto typed constants.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Normalizer maps accepted spellings onto values of T.
type Normalizer[T comparable] struct {
	values   map[string]T
	fallback T
	keys     []string
}

// NewNormalizer accepts every key of values, compared case-insensitively
// after trimming. Unknown input normalizes to fallback.
func NewNormalizer[T comparable](values map[string]T, fallback T) *Normalizer[T] {
	n := &Normalizer[T]{
		values:   make(map[string]T, len(values)),
		fallback: fallback,
		keys:     make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Normalize returns the value for raw, or the fallback. Empty input is not an
// error and yields the fallback too.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.fallback
}

// Parse is Normalize that reports unknown non-empty input.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return n.fallback, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	return n.fallback, fmt.Errorf("invalid value %q, valid options: %s", raw, strings.Join(n.keys, ", "))
}

// Keys returns the accepted spellings, sorted.
func (n *Normalizer[T]) Keys() []string {
	return slices.Clone(n.keys)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
