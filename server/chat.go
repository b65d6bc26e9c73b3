package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// ChatLine is a flavor line spoken by an agent.
type ChatLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Channel string `json:"channel"`
	Color   string `json:"color"`
	Bubble  bool   `json:"bubble"`
}

// chatChannel is the local channel every NPC speaks on.
const chatChannel = "local"

// say may emit a line for the agent. Each agent speaks at most once per
// cooldown, and only when the chance roll succeeds, so nothing may depend
// on a line actually being sent. Returns whether a line went out.
func (s *Server) say(a *game.Ship, category game.LineCategory) bool {
	now := s.world.Now
	if now < a.ChatReadyAt {
		return false
	}
	if !roll(s.rng, s.cfg.Chat.Chance) {
		return false
	}
	text, ok := game.FactionLine(a.Faction, category, s.rng)
	if !ok {
		return false
	}
	a.ChatReadyAt = now + s.cfg.Chat.Cooldown

	meta := game.FactionInfo(a.Faction)
	s.emit(ServerMessage{Type: MsgTypeChat, Data: ChatLine{
		Speaker: a.Name,
		Text:    text,
		Channel: chatChannel,
		Color:   meta.Color,
		Bubble:  true,
	}})
	return true
}
