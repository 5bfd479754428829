package background

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// UnsplashProvider fetches random photos from the Unsplash API.
type UnsplashProvider struct {
	key     string
	baseURL string
	client  *http.Client
}

// NewUnsplashProvider returns a provider authorized with the given API
// key. A nil client gets a default with a request timeout.
func NewUnsplashProvider(key string, client *http.Client) *UnsplashProvider {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &UnsplashProvider{
		key:     key,
		baseURL: "https://api.unsplash.com",
		client:  client,
	}
}

func (p *UnsplashProvider) Name() string { return "unsplash" }

func (p *UnsplashProvider) FetchRandomImage(ctx context.Context, query string) (Image, error) {
	endpoint := p.baseURL + "/photos/random?orientation=landscape"
	if query != "" {
		endpoint += "&query=" + url.QueryEscape(query)
	}

	var photo struct {
		ID   string `json:"id"`
		Alt  string `json:"alt_description"`
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := getJSON(ctx, p.client, endpoint, "Client-ID "+p.key, &photo); err != nil {
		return Image{}, err
	}
	if photo.URLs.Regular == "" {
		return Image{}, ErrNoImages
	}

	return Image{
		ID:           "unsplash-" + photo.ID,
		URL:          photo.URLs.Regular,
		Title:        photo.Alt,
		Photographer: photo.User.Name,
		Source:       "unsplash",
		Query:        query,
	}, nil
}

func (p *UnsplashProvider) Preload(ctx context.Context, imageURL string) error {
	return preload(ctx, p.client, imageURL)
}

// PexelsProvider fetches photos from the Pexels search API. Pexels has
// no random endpoint, so a page of results is fetched and one picked.
type PexelsProvider struct {
	key     string
	baseURL string
	client  *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPexelsProvider returns a provider authorized with the given API
// key. A nil client gets a default with a request timeout.
func NewPexelsProvider(key string, client *http.Client) *PexelsProvider {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &PexelsProvider{
		key:     key,
		baseURL: "https://api.pexels.com",
		client:  client,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *PexelsProvider) Name() string { return "pexels" }

func (p *PexelsProvider) FetchRandomImage(ctx context.Context, query string) (Image, error) {
	if query == "" {
		query = "nature"
	}
	endpoint := p.baseURL + "/v1/search?per_page=30&query=" + url.QueryEscape(query)

	var result struct {
		Photos []struct {
			ID           int    `json:"id"`
			Photographer string `json:"photographer"`
			Alt          string `json:"alt"`
			Src          struct {
				Landscape string `json:"landscape"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := getJSON(ctx, p.client, endpoint, p.key, &result); err != nil {
		return Image{}, err
	}
	if len(result.Photos) == 0 {
		return Image{}, ErrNoImages
	}

	p.mu.Lock()
	photo := result.Photos[p.rng.Intn(len(result.Photos))]
	p.mu.Unlock()

	return Image{
		ID:           fmt.Sprintf("pexels-%d", photo.ID),
		URL:          photo.Src.Landscape,
		Title:        photo.Alt,
		Photographer: photo.Photographer,
		Source:       "pexels",
		Query:        query,
	}, nil
}

func (p *PexelsProvider) Preload(ctx context.Context, imageURL string) error {
	return preload(ctx, p.client, imageURL)
}

func getJSON(ctx context.Context, client *http.Client, endpoint, authorization string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("background: %s returned %s", req.URL.Host, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// preload issues a HEAD request so a dead URL is caught before the image
// is put on screen.
func preload(ctx context.Context, client *http.Client, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("background: preload %s returned %s", imageURL, resp.Status)
	}
	return nil
}
