// Package input tracks which gameplay actions are held and decodes raw key
// events into them.
package input

// Action is a gameplay action bound to one or more keys.
type Action int

const (
	RotateLeft Action = iota
	RotateRight
	Thrust
	Fire

	numActions
)

var actionNames = [numActions]string{
	RotateLeft:  "rotate-left",
	RotateRight: "rotate-right",
	Thrust:      "thrust",
	Fire:        "fire",
}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return "unknown"
	}
	return actionNames[a]
}

// keyBindings maps key names to actions. Names follow the DOM KeyboardEvent.key
// convention, which is also what ebiten.Key.String returns for these keys.
var keyBindings = map[string]Action{
	"ArrowLeft":  RotateLeft,
	"a":          RotateLeft,
	"A":          RotateLeft,
	"ArrowRight": RotateRight,
	"d":          RotateRight,
	"D":          RotateRight,
	"ArrowUp":    Thrust,
	"w":          Thrust,
	"W":          Thrust,
	" ":          Fire,
	"Space":      Fire,
}

// Decode returns the action bound to key. Unrecognised keys report false.
func Decode(key string) (Action, bool) {
	a, ok := keyBindings[key]
	return a, ok
}

// State is the set of currently held actions.
// The zero value has nothing pressed.
type State struct {
	pressed [numActions]bool
}

// KeyDown marks the action bound to key as held.
func (s *State) KeyDown(key string) {
	if a, ok := Decode(key); ok {
		s.pressed[a] = true
	}
}

// KeyUp marks the action bound to key as released.
func (s *State) KeyUp(key string) {
	if a, ok := Decode(key); ok {
		s.pressed[a] = false
	}
}

// Set marks an action held or released directly.
func (s *State) Set(a Action, down bool) {
	if a >= 0 && a < numActions {
		s.pressed[a] = down
	}
}

// Pressed reports whether the action is held.
func (s *State) Pressed(a Action) bool {
	if a < 0 || a >= numActions {
		return false
	}
	return s.pressed[a]
}

// Reset releases every action.
func (s *State) Reset() {
	s.pressed = [numActions]bool{}
}
