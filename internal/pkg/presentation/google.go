package presentation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"
)

// GoogleConfig selects how the Slides API client authenticates
type GoogleConfig struct {
	CredentialsFile string // path or inline JSON
	APIKey          string
	Endpoint        string
}

// Configured reports whether any way of reaching the API is set
func (c GoogleConfig) Configured() bool {
	return strings.TrimSpace(c.CredentialsFile) != "" || c.APIKey != "" || c.Endpoint != ""
}

// ClientOptions converts the config into API client options
func (c GoogleConfig) ClientOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(slides.PresentationsReadonlyScope)}

	creds := strings.TrimSpace(c.CredentialsFile)
	switch {
	case strings.HasPrefix(creds, "{"):
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	case creds != "":
		opts = append(opts, option.WithCredentialsFile(creds))
	case c.APIKey != "":
		opts = append(opts, option.WithAPIKey(c.APIKey))
	}

	if c.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.Endpoint))
	}
	return opts
}

// GoogleSlidesSource reads decks through the Google Slides API
type GoogleSlidesSource struct {
	service *slides.Service
}

// NewGoogleSlidesSource creates a new GoogleSlidesSource
func NewGoogleSlidesSource(ctx context.Context, opts ...option.ClientOption) (*GoogleSlidesSource, error) {
	svc, err := slides.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create slides client: %w", err)
	}
	return &GoogleSlidesSource{service: svc}, nil
}

// Fetch loads the deck and its page order
func (s *GoogleSlidesSource) Fetch(ctx context.Context, gid string) (*Presentation, error) {
	deck, err := s.service.Presentations.Get(gid).
		Fields("presentationId", "title", "slides(objectId)").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrPresentationNotFound, gid)
		}
		return nil, fmt.Errorf("failed to fetch presentation %s: %w", gid, err)
	}

	out := &Presentation{
		ID:      deck.PresentationId,
		Title:   deck.Title,
		PageIDs: make([]string, 0, len(deck.Slides)),
	}
	for _, page := range deck.Slides {
		if page == nil || page.ObjectId == "" {
			continue
		}
		out.PageIDs = append(out.PageIDs, page.ObjectId)
	}

	if len(out.PageIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPresentation, gid)
	}
	return out, nil
}
