package nav

import "sync"

// Screen names a navigation target.
type Screen string

const (
	ScreenLogin        Screen = "Login"
	ScreenRecipeList   Screen = "RecipeList"
	ScreenRecipeDetail Screen = "RecipeDetail"
)

// Navigator receives navigation requests. Implementations own routing; this
// package only carries the request.
type Navigator interface {
	Navigate(screen Screen, params map[string]string)
}

// Recorder remembers the most recent navigation request. Handlers echo it
// back to clients and tests assert on it.
type Recorder struct {
	mu     sync.Mutex
	screen Screen
	params map[string]string
}

func (r *Recorder) Navigate(screen Screen, params map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen = screen
	r.params = params
}

// Last returns the most recent request, or "" if none was made.
func (r *Recorder) Last() (Screen, map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screen, r.params
}
