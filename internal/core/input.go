package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - move left
	ActionRight          // Right arrow, D, L - move right
	ActionConfirm        // Enter - confirm selection / press focused control
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionClick          // Primary pointer button, see InputFrame.Pointer
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionClick:
		return "Click"
	default:
		return "Unknown"
	}
}

// Point is an integer screen position.
type Point struct {
	X, Y int
}

// InputFrame represents the discrete commands delivered to a game at once.
type InputFrame struct {
	// Actions maps action types to whether they were triggered.
	Actions map[Action]bool

	// Pointer is the screen cell of the last ActionClick.
	Pointer Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Click records a pointer press at the given screen cell.
func (f *InputFrame) Click(x, y int) {
	f.Set(ActionClick)
	f.Pointer = Point{X: x, Y: y}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// FrameOf builds an input frame holding the given actions.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}
