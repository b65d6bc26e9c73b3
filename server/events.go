package server

import (
	"github.com/charmbracelet/log"
)

// Message types
const (
	// Client to server
	MsgTypeMove          = "move"
	MsgTypeAddShip       = "add_ship"
	MsgTypeRemoveShip    = "remove_ship"
	MsgTypeCommand       = "command"
	MsgTypeAssignGroup   = "assign_group"
	MsgTypeFormation     = "formation"
	MsgTypeDoctrine      = "doctrine"
	MsgTypeFlagship      = "flagship"
	MsgTypePilot         = "pilot"
	MsgTypeScout         = "scout"
	MsgTypeTransferCargo = "transfer_cargo"
	MsgTypeSellOre       = "sell_ore"
	MsgTypeGate          = "gate"

	// Server to client
	MsgTypeFleet  = "fleet"
	MsgTypeChat   = "chat"
	MsgTypeEvent  = "event"
	MsgTypeNotice = "notice"
	MsgTypeError  = "error"
)

// Domain event kinds
const (
	EventShipAdded     = "ship_added"
	EventShipRemoved   = "ship_removed"
	EventShipLost      = "ship_lost"
	EventShipDestroyed = "ship_destroyed"
	EventCargoTransfer = "cargo_transfer"
	EventOreSold       = "ore_sold"
	EventScoutDispatch = "scout_dispatched"
	EventScoutReport   = "scout_report"
	EventDoctrine      = "doctrine_changed"
	EventFormation     = "formation_changed"
	EventFlagship      = "flagship_changed"
	EventGate          = "gate_transition"
)

// Event is a fire-and-forget notification for UI and audio collaborators.
type Event struct {
	Kind string         `json:"kind"`
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Notice is a user-facing message, such as a rejected command.
type Notice struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// emitter delivers server messages without ever blocking the simulation.
type emitter func(ServerMessage)

// emit queues a message for broadcast. If the queue is full the message is
// dropped: events are notifications, never logic.
func (s *Server) emit(msg ServerMessage) {
	if s.broadcast == nil {
		return
	}
	select {
	case s.broadcast <- msg:
	default:
		log.Warn("broadcast queue full, dropping message", "type", msg.Type)
	}
}

func (s *Server) emitEvent(kind, text string, data map[string]any) {
	s.emit(ServerMessage{Type: MsgTypeEvent, Data: Event{Kind: kind, Text: text, Data: data}})
}

func (s *Server) emitNotice(level, text string) {
	s.emit(ServerMessage{Type: MsgTypeNotice, Data: Notice{Level: level, Text: text}})
}
