// Package game implements the rock-paper-scissors rules and the match state machine.
// It has no I/O dependencies so every transition can be driven from tests.
package game

import "math/rand"

// Move is a hand the player or the AI can throw.
// The numeric value doubles as the icon id (1.png, 2.png, 3.png).
type Move int

const (
	// None means no valid gesture was read.
	None Move = iota
	Rock
	Paper
	Scissors
)

// String returns the display name of the move.
func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "none"
	}
}

// Valid reports whether m is one of Rock, Paper or Scissors.
func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

// beats maps each move to the move it defeats.
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// FingerState is the up/down state of each finger of one hand, "up" = true.
// Field order is thumb to pinky.
type FingerState struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// Array returns the states in thumb..pinky order.
func (f FingerState) Array() [5]bool {
	return [5]bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky}
}

// FingerStateFrom builds a FingerState from a thumb..pinky array.
func FingerStateFrom(a [5]bool) FingerState {
	return FingerState{Thumb: a[0], Index: a[1], Middle: a[2], Ring: a[3], Pinky: a[4]}
}

// String renders the state as five 0/1 digits, thumb first.
func (f FingerState) String() string {
	b := make([]byte, 0, 5)
	for _, up := range f.Array() {
		if up {
			b = append(b, '1')
		} else {
			b = append(b, '0')
		}
	}
	return string(b)
}

var (
	fist    = FingerState{}
	palm    = FingerState{Thumb: true, Index: true, Middle: true, Ring: true, Pinky: true}
	victory = FingerState{Index: true, Middle: true}
)

// Classify maps a finger state to a move. Only exact patterns match:
// all down is Rock, all up is Paper, index and middle up is Scissors.
// Anything else is None.
func Classify(f FingerState) Move {
	switch f {
	case fist:
		return Rock
	case palm:
		return Paper
	case victory:
		return Scissors
	default:
		return None
	}
}

// IsRude reports whether the middle finger is the only raised finger,
// ignoring the thumb.
func IsRude(f FingerState) bool {
	return f.Middle && !f.Index && !f.Ring && !f.Pinky
}

// Outcome is the result of one round.
type Outcome int

const (
	// NoContest means the player showed no valid move.
	NoContest Outcome = iota
	PlayerWin
	AIWin
	Tie
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player wins"
	case AIWin:
		return "ai wins"
	case Tie:
		return "tie"
	default:
		return "no contest"
	}
}

// Resolve compares the player's move against the AI's move.
func Resolve(player, ai Move) Outcome {
	if !player.Valid() || !ai.Valid() {
		return NoContest
	}
	if player == ai {
		return Tie
	}
	if beats[player] == ai {
		return PlayerWin
	}
	return AIWin
}

// MovePicker chooses the AI's move.
type MovePicker interface {
	Pick() Move
}

// RandomPicker draws uniformly from Rock, Paper and Scissors.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker creates a RandomPicker seeded with seed.
func NewRandomPicker(seed int64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly random valid move.
func (p *RandomPicker) Pick() Move {
	return Move(p.rng.Intn(3) + 1)
}

// FixedPicker always returns the same move. Useful for tests and demos.
type FixedPicker Move

// Pick returns the fixed move.
func (p FixedPicker) Pick() Move {
	return Move(p)
}

// SequencePicker returns moves from a list in order, repeating the last one.
type SequencePicker struct {
	moves []Move
	next  int
}

// NewSequencePicker creates a SequencePicker over moves.
func NewSequencePicker(moves ...Move) *SequencePicker {
	return &SequencePicker{moves: moves}
}

// Pick returns the next move in the sequence.
func (p *SequencePicker) Pick() Move {
	if len(p.moves) == 0 {
		return Rock
	}
	m := p.moves[p.next]
	if p.next < len(p.moves)-1 {
		p.next++
	}
	return m
}
