package presentation

import (
	"context"
	"errors"
)

// ErrEmptyPresentation is returned when a deck has no pages to import
var ErrEmptyPresentation = errors.New("presentation has no slides")

// ErrPresentationNotFound is returned when the gid does not resolve
var ErrPresentationNotFound = errors.New("presentation not found")

// Presentation is the subset of a remote deck the importer needs
type Presentation struct {
	ID      string
	Title   string
	PageIDs []string // page object ids in deck order
}

// Source fetches presentations by external id
type Source interface {
	Fetch(ctx context.Context, gid string) (*Presentation, error)
}

// ErrSourceUnavailable is returned by Unavailable
var ErrSourceUnavailable = errors.New("presentation source not configured")

// Unavailable is the Source used when no import backend is configured. Every fetch fails,
// so courses with a gid are rolled back and regeneration only reports.
type Unavailable struct{}

// Fetch always fails with ErrSourceUnavailable
func (Unavailable) Fetch(context.Context, string) (*Presentation, error) {
	return nil, ErrSourceUnavailable
}
