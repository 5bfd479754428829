package background

import (
	"context"
	"math/rand"
	"strings"
	"sync"
)

// BuiltinProvider serves a curated offline catalog. It is the default
// provider and the fallback when no network provider is configured.
type BuiltinProvider struct {
	mu      sync.Mutex
	rng     *rand.Rand
	catalog []Image
}

// NewBuiltinProvider returns a provider backed by the bundled catalog.
// A nil source seeds the generator from the global source.
func NewBuiltinProvider(src rand.Source) *BuiltinProvider {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &BuiltinProvider{
		rng:     rand.New(src),
		catalog: builtinCatalog,
	}
}

func (p *BuiltinProvider) Name() string { return "builtin" }

// FetchRandomImage picks a random catalog entry whose query field
// contains the requested query. An empty query matches everything.
func (p *BuiltinProvider) FetchRandomImage(_ context.Context, query string) (Image, error) {
	matches := p.match(query)
	if len(matches) == 0 {
		return Image{}, ErrNoImages
	}

	p.mu.Lock()
	img := matches[p.rng.Intn(len(matches))]
	p.mu.Unlock()
	return img, nil
}

// Preload is a no-op; the catalog ships with the binary.
func (p *BuiltinProvider) Preload(context.Context, string) error { return nil }

func (p *BuiltinProvider) match(query string) []Image {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return p.catalog
	}

	var matches []Image
	for _, img := range p.catalog {
		if strings.Contains(strings.ToLower(img.Query), query) ||
			strings.Contains(strings.ToLower(img.Title), query) {
			matches = append(matches, img)
		}
	}
	return matches
}

// builtinCatalog is the offline backdrop set. Each entry maps to a theme
// the renderer knows how to draw.
var builtinCatalog = []Image{
	{ID: "builtin-aurora", URL: "builtin://aurora", Title: "Aurora over the fjord", Photographer: "Ambient Clock", Source: "builtin", Query: "nature aurora night sky"},
	{ID: "builtin-dunes", URL: "builtin://dunes", Title: "Desert dunes at dusk", Photographer: "Ambient Clock", Source: "builtin", Query: "nature desert warm"},
	{ID: "builtin-forest", URL: "builtin://forest", Title: "Morning fog in the pines", Photographer: "Ambient Clock", Source: "builtin", Query: "nature forest calm"},
	{ID: "builtin-ocean", URL: "builtin://ocean", Title: "Open ocean horizon", Photographer: "Ambient Clock", Source: "builtin", Query: "nature ocean water blue"},
	{ID: "builtin-peaks", URL: "builtin://peaks", Title: "Snowbound peaks", Photographer: "Ambient Clock", Source: "builtin", Query: "nature mountain snow"},
	{ID: "builtin-nebula", URL: "builtin://nebula", Title: "Carina nebula field", Photographer: "Ambient Clock", Source: "builtin", Query: "space stars nebula"},
	{ID: "builtin-city", URL: "builtin://city", Title: "City lights after rain", Photographer: "Ambient Clock", Source: "builtin", Query: "city night urban"},
	{ID: "builtin-minimal", URL: "builtin://minimal", Title: "Quiet gradient", Photographer: "Ambient Clock", Source: "builtin", Query: "minimal abstract gradient"},
}
