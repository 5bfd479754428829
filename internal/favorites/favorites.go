// Package favorites keeps the user's saved backdrop images. The list
// lives in a JSON file next to the state snapshot and is consulted by
// the background cycler when it re-injects favorites into the rotation.
package favorites

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/drummsters/ambientclock/internal/background"
	"github.com/drummsters/ambientclock/internal/logger"
	"github.com/drummsters/ambientclock/pkg/errors"
)

// MaxFavorites caps the list. Toggling past the cap fails rather than
// silently evicting an old entry.
const MaxFavorites = 100

// CurrentImageSource reads the image currently on screen. state.Manager
// satisfies it.
type CurrentImageSource interface {
	Value(path string) any
}

// Options configures NewService. Path is required.
type Options struct {
	Path   string
	States CurrentImageSource
	Logger *logger.Logger
	Rand   *rand.Rand
}

// Service manages the favorites list. All methods are safe for
// concurrent use.
type Service struct {
	path   string
	states CurrentImageSource
	log    *logger.Logger

	mu     sync.Mutex
	rng    *rand.Rand
	images []background.Image
	byID   map[string]int
}

// NewService loads the favorites file at opts.Path, creating parent
// directories as needed. A missing file yields an empty list.
func NewService(opts Options) (*Service, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("favorites: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, errors.NewPersistenceError("mkdir", opts.Path, err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Service{
		path:   opts.Path,
		states: opts.States,
		log:    opts.Logger,
		rng:    rng,
		byID:   make(map[string]int),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Count reports how many images are saved.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// List returns the saved images sorted by ID.
func (s *Service) List() []background.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]background.Image, len(s.images))
	copy(out, s.images)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Random returns a uniformly chosen favorite, or false when none exist.
func (s *Service) Random() (background.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.images) == 0 {
		return background.Image{}, false
	}
	return s.images[s.rng.Intn(len(s.images))], true
}

// IsFavorite reports whether the image with id is saved.
func (s *Service) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	return ok
}

// Add saves img. Adding an already saved image is a no-op.
func (s *Service) Add(img background.Image) error {
	if img.ID == "" || img.URL == "" {
		return fmt.Errorf("favorites: image needs an id and url")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[img.ID]; ok {
		return nil
	}
	if len(s.images) >= MaxFavorites {
		return fmt.Errorf("favorites: list is full (%d)", MaxFavorites)
	}
	s.images = append(s.images, img)
	s.byID[img.ID] = len(s.images) - 1
	return s.save()
}

// Remove deletes the image with id. Removing an unknown id is a no-op.
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return nil
	}
	s.images = append(s.images[:idx], s.images[idx+1:]...)
	s.reindex()
	return s.save()
}

// IsCurrentImageFavorite reports whether the image on screen is saved.
func (s *Service) IsCurrentImageFavorite() bool {
	img, ok := s.currentImage()
	if !ok {
		return false
	}
	return s.IsFavorite(img.ID)
}

// ToggleCurrentImageFavorite saves or removes the image on screen and
// returns a short status message for the UI.
func (s *Service) ToggleCurrentImageFavorite() (string, error) {
	img, ok := s.currentImage()
	if !ok {
		return "", fmt.Errorf("favorites: no image is currently shown")
	}

	if s.IsFavorite(img.ID) {
		if err := s.Remove(img.ID); err != nil {
			return "", err
		}
		s.log.Debug("favorite removed", "id", img.ID)
		return "Removed from favorites", nil
	}

	if err := s.Add(img); err != nil {
		return "", err
	}
	s.log.Debug("favorite added", "id", img.ID)
	return "Saved to favorites", nil
}

func (s *Service) currentImage() (background.Image, bool) {
	if s.states == nil {
		return background.Image{}, false
	}
	record, ok := s.states.Value("background.currentImage").(map[string]any)
	if !ok {
		return background.Image{}, false
	}
	id, _ := record["id"].(string)
	url, _ := record["url"].(string)
	if id == "" || url == "" {
		return background.Image{}, false
	}
	title, _ := record["title"].(string)
	photographer, _ := record["photographer"].(string)
	source, _ := record["source"].(string)
	query, _ := record["query"].(string)
	return background.Image{
		ID:           id,
		URL:          url,
		Title:        title,
		Photographer: photographer,
		Source:       source,
		Query:        query,
	}, true
}

func (s *Service) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.NewPersistenceError("read", s.path, err)
	}

	var images []background.Image
	if err := json.Unmarshal(data, &images); err != nil {
		return errors.NewPersistenceError("decode", s.path, err)
	}
	s.images = images
	s.reindex()
	return nil
}

// save writes the list atomically. Callers hold s.mu.
func (s *Service) save() error {
	data, err := json.MarshalIndent(s.images, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("encode", s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.NewPersistenceError("write", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.NewPersistenceError("rename", s.path, err)
	}
	return nil
}

func (s *Service) reindex() {
	s.byID = make(map[string]int, len(s.images))
	for i, img := range s.images {
		s.byID[img.ID] = i
	}
}
