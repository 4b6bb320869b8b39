package simulation

import (
	"github.com/google/uuid"

	"github.com/zeusync/hexcurl/internal/core/events/bus"
	"github.com/zeusync/hexcurl/internal/core/grid"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

// Event types published on the session bus.
const (
	EventLevelStarted     = "level.started"
	EventLevelPlaying     = "level.playing"
	EventLevelComplete    = "level.complete"
	EventStoneReachedGoal = "stone.reached_goal"
	EventStoneStopped     = "stone.stopped"
	EventTileRepainted    = "tile.repainted"
)

const eventSource = "simulation"

// LevelEvent is the payload of level.* events.
type LevelEvent struct {
	Level string
	Tick  uint64
}

// StoneEvent is the payload of stone.* events.
type StoneEvent struct {
	Level    string
	Tick     uint64
	Index    int
	StoneID  uuid.UUID
	Position physics.Vec2
}

// RepaintEvent is the payload of tile.repainted.
type RepaintEvent struct {
	Level string
	Coord grid.HexCoordinate
	From  tile.Type
	To    tile.Type
}

func newEvent(typ string, data any) bus.Event {
	return bus.NewEvent(typ, eventSource, data)
}
