package scopestack

// State tracks where a handle is in its lifecycle. A handle starts Live and
// ends in exactly one of the terminal states.
type State int

const (
	// StateLive marks a handle whose slot is still on the stack.
	StateLive State = iota
	// StateTaken marks a handle whose value was extracted with Pop.
	StateTaken
	// StateReleased marks a handle whose slot was discarded by Release or by
	// an unwinding scope guard.
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateTaken:
		return "taken"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// ParseState converts a string representation into the corresponding State.
// The second return value is false for unrecognised input.
func ParseState(value string) (State, bool) {
	switch value {
	case "live", "LIVE":
		return StateLive, true
	case "taken", "TAKEN":
		return StateTaken, true
	case "released", "RELEASED":
		return StateReleased, true
	default:
		return StateLive, false
	}
}

// Terminal reports whether s is Taken or Released.
func (s State) Terminal() bool {
	return s == StateTaken || s == StateReleased
}
