package parser

import (
	"fmt"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("descent.parser")

const traceLevel = commonlog.Debug

type EventKind int

const (
	EventMemoHit EventKind = iota
	EventMemoMiss
	EventFailure
)

func (k EventKind) String() string {
	switch k {
	case EventMemoHit:
		return "memo-hit"
	case EventMemoMiss:
		return "memo-miss"
	case EventFailure:
		return "failure"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event describes one step of a memoized match. Parser is only rendered
// when its String method is called.
type Event struct {
	Kind     EventKind
	Parser   fmt.Stringer
	Position int
}

// Observer receives events for every memoized match on a Source.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}
