package world

import "github.com/jwebster45206/fun-house/pkg/textfilter"

// Challenge is a single question/answer pair presented by a room.
type Challenge struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Accepts reports whether the player's input answers the challenge.
// Input is trimmed and case-folded; the stored answer is only folded for
// the comparison and never modified.
func (c Challenge) Accepts(input string) bool {
	answer := textfilter.Normalize(c.Answer)
	return answer != "" && textfilter.Normalize(input) == answer
}
