package search

import "errors"

var (
	// ErrEmptyFrontier is returned by Frontier.Pop when nothing is left to pop.
	ErrEmptyFrontier = errors.New("pop from empty frontier")

	// ErrInvalidPriority is returned when a priority function yields NaN or an infinity.
	ErrInvalidPriority = errors.New("priority must be a finite number")

	// ErrExpansionLimit is returned when a run exceeds the budget set with WithMaxExpansions.
	ErrExpansionLimit = errors.New("expansion limit reached")
)
