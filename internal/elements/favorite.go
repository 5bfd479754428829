package elements

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/state"
)

var (
	favoriteOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	favoriteOffStyle = lipgloss.NewStyle().Faint(true)
)

// FavoriteToggle shows whether the current backdrop is saved and toggles
// it on press. All favorites logic lives in the injected service.
type FavoriteToggle struct {
	*element.Base

	mu      sync.Mutex
	message string

	pressSub  events.Subscription
	changeSub events.Subscription
}

func NewFavoriteToggle(cfg element.Config) (element.Element, error) {
	f := &FavoriteToggle{}
	f.Base = element.NewBase(cfg, f)
	return f, nil
}

func (f *FavoriteToggle) Build(*element.Container) error { return nil }

func (f *FavoriteToggle) ApplyOptions(map[string]any) {}

func (f *FavoriteToggle) Activate() error {
	bus := f.Bus()
	if bus == nil {
		return nil
	}
	f.pressSub = bus.Subscribe(TopicPress, func(payload any) {
		press, ok := payload.(PressPayload)
		if !ok || press.ID != f.ID() {
			return
		}
		f.Toggle()
	})
	// A new backdrop changes the saved/unsaved indicator.
	f.changeSub = bus.Subscribe(state.TopicChanged(state.SectionBackground), func(any) {
		f.mu.Lock()
		f.message = ""
		f.mu.Unlock()
		f.Render()
	})
	return nil
}

func (f *FavoriteToggle) Deactivate() {
	if f.pressSub != nil {
		f.pressSub.Unsubscribe()
		f.pressSub = nil
	}
	if f.changeSub != nil {
		f.changeSub.Unsubscribe()
		f.changeSub = nil
	}
}

// Toggle flips the favorite state of the current backdrop and keeps the
// service's status message for the next render.
func (f *FavoriteToggle) Toggle() {
	favorites := f.Deps().Favorites
	if favorites == nil {
		return
	}

	msg, err := favorites.ToggleCurrentImageFavorite()
	if err != nil {
		f.Logger().Warn("favorite toggle failed", "element", f.ID(), "error", err.Error())
		return
	}

	f.mu.Lock()
	f.message = msg
	f.mu.Unlock()
	f.Render()
}

func (f *FavoriteToggle) View() string {
	favorites := f.Deps().Favorites
	if favorites == nil {
		return ""
	}

	f.mu.Lock()
	message := f.message
	f.mu.Unlock()

	view := favoriteOffStyle.Render("♡")
	if favorites.IsCurrentImageFavorite() {
		view = favoriteOnStyle.Render("♥")
	}
	if message != "" {
		view += " " + favoriteOffStyle.Render(message)
	}
	return view
}
