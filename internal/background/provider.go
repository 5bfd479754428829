// Package background rotates the backdrop image behind the clock. A
// Provider supplies images for a search query and the Cycler drives the
// rotation, mixing favorited images back into the stream and publishing
// every change through the state manager.
package background

import (
	"context"
	"fmt"
)

// Image describes a single backdrop. ID and URL identify the image for
// favoriting; the remaining fields feed the info overlay.
type Image struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	Photographer string `json:"photographer,omitempty"`
	Source       string `json:"source,omitempty"`
	Query        string `json:"query,omitempty"`
}

// Provider fetches backdrop images for a query. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Name reports the provider identifier used in configuration.
	Name() string

	// FetchRandomImage returns a random image matching query. An empty
	// query means "anything".
	FetchRandomImage(ctx context.Context, query string) (Image, error)

	// Preload warms whatever cache the provider keeps for url so the
	// image is ready before it is shown. Providers with nothing to warm
	// return nil.
	Preload(ctx context.Context, url string) error
}

// ErrNoImages is returned when a provider has nothing matching the query.
var ErrNoImages = fmt.Errorf("background: no images available")
