package game

// Faction tags
const (
	FactionPlayer     = "player"
	FactionGuristas   = "guristas"
	FactionSerpentis  = "serpentis"
	FactionBloodRaid  = "blood_raiders"
	FactionConcord    = "concord"
	FactionOreCorp    = "orecorp"
	FactionMercGuild  = "merc_guild"
	FactionTradeGuild = "trade_guild"
	FactionNeutral    = "neutral"
)

// FactionMeta is display metadata for chat and UI collaborators.
type FactionMeta struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Pirate bool   `json:"pirate"`
}

var factions = map[string]FactionMeta{
	FactionPlayer:     {Name: "Capsuleer", Color: "#4fc3f7"},
	FactionGuristas:   {Name: "Guristas Pirates", Color: "#ffb300", Pirate: true},
	FactionSerpentis:  {Name: "Serpentis Corporation", Color: "#7cb342", Pirate: true},
	FactionBloodRaid:  {Name: "Blood Raider Covenant", Color: "#e53935", Pirate: true},
	FactionConcord:    {Name: "CONCORD", Color: "#90caf9"},
	FactionOreCorp:    {Name: "Outer Ring Excavations", Color: "#bcaaa4"},
	FactionMercGuild:  {Name: "Mercenary Guild", Color: "#ab47bc"},
	FactionTradeGuild: {Name: "Traders' Guild", Color: "#26a69a"},
}

// FactionInfo returns display metadata for a tag. Unknown tags get a neutral grey entry.
func FactionInfo(tag string) FactionMeta {
	if f, ok := factions[tag]; ok {
		return f
	}
	return FactionMeta{Name: tag, Color: "#9e9e9e"}
}

// IsPirate reports whether a faction is a pirate faction.
func IsPirate(tag string) bool {
	return factions[tag].Pirate
}

// LineCategory is a kind of flavor chat line.
type LineCategory string

const (
	LineEngage LineCategory = "engage"
	LineFlee   LineCategory = "flee"
	LineKill   LineCategory = "kill"
	LineTaunt  LineCategory = "taunt"
)

var dialogue = map[string]map[LineCategory][]string{
	FactionGuristas: {
		LineEngage: {"Shields up, boys. Payday.", "Another capsuleer who took a wrong turn.", "Lock them up!"},
		LineFlee:   {"Too hot! Pull out!", "Not worth it, burn away!", "I'm out, cover me!"},
		LineKill:   {"Scrap that one for parts.", "Scratch one.", "Who's next?"},
		LineTaunt:  {"Your insurance paid up yet?", "Is that all you've got?", "Missiles away, smile!"},
	},
	FactionSerpentis: {
		LineEngage: {"You're trespassing on company property.", "Deal with them.", "Target acquired."},
		LineFlee:   {"Fall back to the station!", "Disengage, disengage!"},
		LineKill:   {"Terminated.", "Add it to the quarterly report."},
		LineTaunt:  {"We own this sector.", "Turn around while you still can."},
	},
	FactionBloodRaid: {
		LineEngage: {"Fresh blood!", "The Covenant hungers."},
		LineFlee:   {"We will return for you.", "Retreat, for now."},
		LineKill:   {"Drain them.", "Their blood is ours."},
		LineTaunt:  {"Your clone will taste the same.", "Bleed for us."},
	},
	FactionConcord: {
		LineEngage: {"Criminal flagged. Engaging.", "Cease hostilities immediately."},
		LineKill:   {"Threat neutralized."},
	},
	FactionMercGuild: {
		LineEngage: {"Contract says you're the target.", "Nothing personal."},
		LineFlee:   {"Not getting paid enough for this."},
		LineKill:   {"Contract fulfilled."},
	},
}

// FactionLine picks a random line for a faction and category. The second
// result is false when the faction or category has nothing to say.
func FactionLine(faction string, category LineCategory, rng interface{ Intn(int) int }) (string, bool) {
	lines := dialogue[faction][category]
	if len(lines) == 0 {
		return "", false
	}
	return lines[rng.Intn(len(lines))], true
}
