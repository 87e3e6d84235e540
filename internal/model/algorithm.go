package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAlgorithm is returned when an algorithm name is not recognized.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrNotImplemented is returned by strict dispatch for algorithms that have no implementation yet.
	ErrNotImplemented = errors.New("algorithm not implemented")
	// ErrUnknownSort is returned when a sort hint is not recognized.
	ErrUnknownSort = errors.New("unknown sort order")
)

// Algorithm selects a packing strategy.
type Algorithm string

const (
	AlgorithmMaxRects   Algorithm = "maxrects"   // Best short side fit over a free-rectangle list
	AlgorithmTreemap    Algorithm = "treemap"    // Priority-proportional squarified treemap
	AlgorithmShelf      Algorithm = "shelf"      // Not implemented, runs MaxRects
	AlgorithmGuillotine Algorithm = "guillotine" // Not implemented, runs MaxRects
	AlgorithmMasonry    Algorithm = "masonry"    // Not implemented, runs MaxRects
)

// Algorithms lists every accepted algorithm in display order.
var Algorithms = []Algorithm{
	AlgorithmMaxRects,
	AlgorithmTreemap,
	AlgorithmShelf,
	AlgorithmGuillotine,
	AlgorithmMasonry,
}

func (a Algorithm) String() string {
	return string(a)
}

// Valid reports whether a is one of the accepted algorithm names.
func (a Algorithm) Valid() bool {
	for _, known := range Algorithms {
		if a == known {
			return true
		}
	}
	return false
}

// Implemented reports whether a has a real implementation.
func (a Algorithm) Implemented() bool {
	return a == AlgorithmMaxRects || a == AlgorithmTreemap
}

// ParseAlgorithm converts a name to an Algorithm. Matching is case-insensitive
// and an empty name selects MaxRects.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return AlgorithmMaxRects, nil
	}
	a := Algorithm(n)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

// UnmarshalText validates algorithm names read from JSON, YAML and TOML.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// SortBy is a placement order hint for MaxRects.
type SortBy string

const (
	SortPriority SortBy = "priority" // Descending priority, ties by descending min area
	SortArea     SortBy = "area"     // Descending min area, ties by descending priority
	SortInput    SortBy = "input"    // Caller order
)

// ParseSortBy converts a name to a SortBy. An empty name selects SortPriority.
func ParseSortBy(name string) (SortBy, error) {
	switch s := SortBy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return SortPriority, nil
	case SortPriority, SortArea, SortInput:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, name)
	}
}

// UnmarshalText validates sort hints read from JSON, YAML and TOML.
func (s *SortBy) UnmarshalText(text []byte) error {
	parsed, err := ParseSortBy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
