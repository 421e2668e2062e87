package model

// GameFilterAll is the synthetic filter value used only by the
// dashboard to mean "no game filter". It is never a valid selection
// in the entry flow.
const GameFilterAll = "all"

// Games is the fixed ordered list of competition games, shared
// verbatim between the entry flow's selection step and the
// dashboard's filter control.
var Games = []string{
	"Game #1: Space Invaders",
	"Game #2: Hatchet Hero",
	"Game #3: Mario & Sonic Olympic Games",
	"Game #4: Rampage",
	"Game #5: UFC",
	"Game #6: Super Shot (Basketball)",
	"Game #7: Super Bikes 3",
	"Game #8: No Cross",
	"Game #9: Elevator Action Invasion",
	"Game #10: Fourth Place",
	"Game #11: Top Gun Maverick",
	"Game #12: Pac Man Battle Royal",
	"Game #13: Mario Kart",
	"Game #14: Guitar Hero",
	"Game #15: Cyberpunk Turf Wars",
	"Game #16: Big Buck Wild",
	"Game #17: Darts",
	"Game #18: Galaga Assault",
	"Game #19: Godzilla Kaiju Wars VR",
}

// IsGame reports whether label is a member of the fixed game list
func IsGame(label string) bool {
	for _, g := range Games {
		if g == label {
			return true
		}
	}
	return false
}
