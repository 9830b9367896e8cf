package ui

// State is the interaction state of a control. A control is in exactly one
// state at a time.
type State int

const (
	Normal State = iota
	Focus
	Active
	Disabled
	Hover
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Focus:
		return "focus"
	case Active:
		return "active"
	case Disabled:
		return "disabled"
	case Hover:
		return "hover"
	}
	return "unknown"
}

// Handle identifies a registered control inside its System. The zero Handle
// refers to nothing.
type Handle uint32
