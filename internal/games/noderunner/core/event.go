package core

import "fmt"

// EventKind identifies what happened during a tick.
type EventKind uint8

const (
	EventGoldPicked EventKind = iota
	EventHoleCreated
	EventHoleFilled
	EventGuardTrapped
	EventGuardKilled
	EventGuardRespawned
	EventGuardDroppedGold
	EventPlayerKilled
	EventPlayerFallStart
	EventExitEnabled
	EventStageCleared
	EventAllGoldCollected
	EventTrapCollapsed
)

var eventNames = [...]string{
	EventGoldPicked:       "GoldPicked",
	EventHoleCreated:      "HoleCreated",
	EventHoleFilled:       "HoleFilled",
	EventGuardTrapped:     "GuardTrapped",
	EventGuardKilled:      "GuardKilled",
	EventGuardRespawned:   "GuardRespawned",
	EventGuardDroppedGold: "GuardDroppedGold",
	EventPlayerKilled:     "PlayerKilled",
	EventPlayerFallStart:  "PlayerFallStart",
	EventExitEnabled:      "ExitEnabled",
	EventStageCleared:     "StageCleared",
	EventAllGoldCollected: "AllGoldCollected",
	EventTrapCollapsed:    "TrapCollapsed",
}

// String returns the name of the event kind.
func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "Unknown"
}

// Event is emitted by Step for the presentation layer.
// Events are never fed back into the simulation.
// X and Y are set for events tied to a cell; GuardID for guard events.
type Event struct {
	Kind    EventKind
	X, Y    int
	GuardID int
}

func (e Event) String() string {
	switch e.Kind {
	case EventGuardTrapped, EventGuardKilled:
		return fmt.Sprintf("%s(guard=%d at %d,%d)", e.Kind, e.GuardID, e.X, e.Y)
	case EventGuardRespawned:
		return fmt.Sprintf("%s(guard=%d)", e.Kind, e.GuardID)
	case EventPlayerKilled, EventPlayerFallStart, EventExitEnabled, EventStageCleared, EventAllGoldCollected:
		return e.Kind.String()
	default:
		return fmt.Sprintf("%s(%d,%d)", e.Kind, e.X, e.Y)
	}
}

func cellEvent(kind EventKind, x, y int) Event {
	return Event{Kind: kind, X: x, Y: y, GuardID: NoGuard}
}

func guardEvent(kind EventKind, id, x, y int) Event {
	return Event{Kind: kind, X: x, Y: y, GuardID: id}
}

func plainEvent(kind EventKind) Event {
	return Event{Kind: kind, GuardID: NoGuard}
}
