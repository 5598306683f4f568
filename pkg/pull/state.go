package pull

import "fmt"

// State is the single discrete state of a pull gesture.
type State uint8

const (
	// None means no header or footer affordance is shown.
	None State = iota
	// RefreshIdle means the list is pulled past its top but not far enough
	// to refresh.
	RefreshIdle
	// WillRefresh means releasing now triggers a refresh.
	WillRefresh
	// Refreshing means a refresh is in flight.
	Refreshing
	// InfiniteIdle means the list is pulled past its bottom but not far
	// enough to load more.
	InfiniteIdle
	// WillInfinite means releasing now triggers loading the next page.
	WillInfinite
	// Infiniting means a next-page load is in flight.
	Infiniting
	// InfiniteLoadedAll means the data source has no more pages.
	InfiniteLoadedAll
)

// Side groups states by the affordance that renders them.
type Side uint8

const (
	// SideNone is the idle point shared by both cycles.
	SideNone Side = iota
	// SideRefresh states render in the header.
	SideRefresh
	// SideInfinite states render in the footer.
	SideInfinite
)

var stateNames = [...]string{
	None:              "none",
	RefreshIdle:       "refresh-idle",
	WillRefresh:       "will-refresh",
	Refreshing:        "refreshing",
	InfiniteIdle:      "infinite-idle",
	WillInfinite:      "will-infinite",
	Infiniting:        "infiniting",
	InfiniteLoadedAll: "infinite-loaded-all",
}

// States lists every state in declaration order.
func States() []State {
	return []State{None, RefreshIdle, WillRefresh, Refreshing, InfiniteIdle, WillInfinite, Infiniting, InfiniteLoadedAll}
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState returns the state named by String.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return None, fmt.Errorf("unknown pull state %q", name)
}

// MarshalText encodes s by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Side reports which affordance renders s.
func (s State) Side() Side {
	switch s {
	case RefreshIdle, WillRefresh, Refreshing:
		return SideRefresh
	case InfiniteIdle, WillInfinite, Infiniting, InfiniteLoadedAll:
		return SideInfinite
	default:
		return SideNone
	}
}

// Armed reports whether releasing in s triggers a callback.
func (s State) Armed() bool {
	return s == WillRefresh || s == WillInfinite
}

// InFlight reports whether s waits for the caller to dismiss it.
func (s State) InFlight() bool {
	return s == Refreshing || s == Infiniting
}

func (s Side) String() string {
	switch s {
	case SideRefresh:
		return "refresh"
	case SideInfinite:
		return "infinite"
	default:
		return "none"
	}
}
