package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Type is the kind of feed a source points to.
type Type string

const (
	YouTube Type = "youtube"
	RSS     Type = "rss"
	Podcast Type = "podcast"
)

// ErrUnknownType is returned for a type outside of Types.
var ErrUnknownType = errors.New("unknown source type")

// Types returns every supported type in display order.
func Types() []Type {
	return []Type{YouTube, RSS, Podcast}
}

// Valid reports whether the type is one of Types.
func (t Type) Valid() bool {
	return lo.Contains(Types(), t)
}

// Upper returns the type as displayed in listings.
func (t Type) Upper() string {
	return strings.ToUpper(string(t))
}

// ParseType converts raw input into a Type.
// Surrounding whitespace is ignored and matching is case-insensitive.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

// TypeNames returns Types as plain strings, for flag help and prompts.
func TypeNames() []string {
	return lo.Map(Types(), func(t Type, _ int) string {
		return string(t)
	})
}
