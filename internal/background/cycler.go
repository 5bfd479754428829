package background

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/drummsters/ambientclock/internal/logger"
	"github.com/drummsters/ambientclock/internal/state"
)

// favoriteChance is the probability a rotation shows a favorited image
// instead of fetching a fresh one.
const favoriteChance = 0.25

// DefaultInterval is used when the configured cycle interval is missing
// or invalid.
const DefaultInterval = 5 * time.Minute

// FavoriteSource supplies saved images for re-injection into the
// rotation. favorites.Service implements it.
type FavoriteSource interface {
	Random() (Image, bool)
	Count() int
}

// CyclerOptions configures NewCycler. Provider and States are required.
type CyclerOptions struct {
	Provider  Provider
	States    *state.Manager
	Favorites FavoriteSource
	Logger    *logger.Logger
	Interval  time.Duration
	Rand      *rand.Rand
}

// Cycler owns the backdrop rotation. Every advance writes the chosen
// image into the background section of the state tree, which is what the
// renderer and the info overlay observe.
type Cycler struct {
	provider  Provider
	states    *state.Manager
	favorites FavoriteSource
	log       *logger.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	interval time.Duration
	stop     chan struct{}
}

func NewCycler(opts CyclerOptions) *Cycler {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Cycler{
		provider:  opts.Provider,
		states:    opts.States,
		favorites: opts.Favorites,
		log:       opts.Logger,
		rng:       rng,
		interval:  interval,
	}
}

// Interval reports the current rotation period.
func (c *Cycler) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// SetInterval changes the rotation period. A running Start loop picks it
// up on the next tick.
func (c *Cycler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.interval = d
	c.mu.Unlock()
}

// Next advances to a new backdrop and records it in state. Roughly a
// quarter of advances replay a favorite when any exist; the rest ask the
// provider for a fresh image matching the configured query.
func (c *Cycler) Next(ctx context.Context) (Image, error) {
	img, fromFavorite := c.pickFavorite()
	if !fromFavorite {
		query, _ := c.states.Value("background.query").(string)
		fetched, err := c.provider.FetchRandomImage(ctx, query)
		if err != nil {
			c.log.Error(err, "background fetch failed", "provider", c.provider.Name(), "query", query)
			return Image{}, err
		}
		img = fetched
	}

	if err := c.provider.Preload(ctx, img.URL); err != nil {
		c.log.Warn("background preload failed", "url", img.URL, "error", err.Error())
	}

	c.states.Update(map[string]any{
		state.SectionBackground: map[string]any{
			"currentImage": imageRecord(img),
			"fromFavorite": fromFavorite,
			"changedAt":    time.Now().Unix(),
		},
	})

	c.log.Debug("background advanced", "id", img.ID, "favorite", fromFavorite)
	return img, nil
}

// Current returns the image recorded in state, if any.
func (c *Cycler) Current() (Image, bool) {
	record, ok := c.states.Value("background.currentImage").(map[string]any)
	if !ok || len(record) == 0 {
		return Image{}, false
	}
	return imageFromRecord(record), true
}

// Start runs the rotation loop until ctx is cancelled or Stop is called.
// The first advance happens immediately.
func (c *Cycler) Start(ctx context.Context) {
	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go func() {
		if _, err := c.Next(ctx); err != nil && ctx.Err() != nil {
			return
		}
		timer := time.NewTimer(c.Interval())
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-timer.C:
				_, _ = c.Next(ctx)
				timer.Reset(c.Interval())
			}
		}
	}()
}

// Stop halts a running rotation loop. Safe to call more than once.
func (c *Cycler) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Cycler) pickFavorite() (Image, bool) {
	if c.favorites == nil || c.favorites.Count() == 0 {
		return Image{}, false
	}
	c.mu.Lock()
	roll := c.rng.Float64()
	c.mu.Unlock()
	if roll >= favoriteChance {
		return Image{}, false
	}
	return c.favorites.Random()
}

func imageRecord(img Image) map[string]any {
	return map[string]any{
		"id":           img.ID,
		"url":          img.URL,
		"title":        img.Title,
		"photographer": img.Photographer,
		"source":       img.Source,
		"query":        img.Query,
	}
}

func imageFromRecord(record map[string]any) Image {
	str := func(key string) string {
		s, _ := record[key].(string)
		return s
	}
	return Image{
		ID:           str("id"),
		URL:          str("url"),
		Title:        str("title"),
		Photographer: str("photographer"),
		Source:       str("source"),
		Query:        str("query"),
	}
}
