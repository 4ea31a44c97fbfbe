package game

import (
	"fmt"
	"time"
)

// Phase is the round phase of a match.
type Phase int

const (
	// PhaseIdle waits for the player to start a round.
	PhaseIdle Phase = iota
	// PhaseCountdown is the window in which the player must hold a pose.
	PhaseCountdown
	// PhaseResolved shows the outcome until the next start.
	PhaseResolved
	// PhaseMatchOver is terminal until a restart.
	PhaseMatchOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseResolved:
		return "resolved"
	case PhaseMatchOver:
		return "match over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Status is the match-level result derived from the scoreboard.
type Status int

const (
	InProgress Status = iota
	AIWon
	PlayerWon
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case AIWon:
		return "ai won"
	case PlayerWon:
		return "player won"
	default:
		return "in progress"
	}
}

// Scoreboard holds the points of both sides.
type Scoreboard struct {
	AI     int
	Player int
}

// Command is a discrete user input polled once per tick.
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandRestart
	CommandQuit
	CommandSelectRock
	CommandSelectPaper
	CommandSelectScissors
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandRestart:
		return "restart"
	case CommandQuit:
		return "quit"
	case CommandSelectRock:
		return "select rock"
	case CommandSelectPaper:
		return "select paper"
	case CommandSelectScissors:
		return "select scissors"
	default:
		return "none"
	}
}

// selectedMove returns the move a selection command stands for.
func (c Command) selectedMove() Move {
	switch c {
	case CommandSelectRock:
		return Rock
	case CommandSelectPaper:
		return Paper
	case CommandSelectScissors:
		return Scissors
	default:
		return None
	}
}

// State is the complete game state. It is a plain value: Step returns a new
// State and never mutates the one passed in.
type State struct {
	Phase      Phase
	Status     Status
	Score      Scoreboard
	RoundStart time.Time
	// Timer is the number of whole seconds elapsed in the countdown.
	Timer        int
	Round        int
	PlayerMove   Move
	AIMove       Move
	Outcome      Outcome
	ManualMove   Move
	Disqualified bool
}

// NewState returns the state of a fresh match.
func NewState() State {
	return State{Phase: PhaseIdle, Status: InProgress}
}

// Rules configures the engine.
type Rules struct {
	WinScore  int
	Countdown time.Duration
	// Sportsmanship ends the match in the AI's favour on a rude gesture.
	Sportsmanship bool
	// ManualMoves accepts the select commands as the player's move. Only
	// meant for play without a hand detector.
	ManualMoves bool
}

// DefaultRules returns first-to-3 with a 3 second countdown.
func DefaultRules() Rules {
	return Rules{
		WinScore:  3,
		Countdown: 3 * time.Second,
	}
}

// Input is everything the state machine reads during one tick.
type Input struct {
	Now     time.Time
	Command Command
	// Hand is nil when no hand was detected this tick.
	Hand *FingerState
	// FrameOK is false when the camera failed to deliver a frame.
	FrameOK bool
}

// Engine applies Rules to States.
type Engine struct {
	rules  Rules
	picker MovePicker
}

// NewEngine creates an Engine. Zero-valued rule fields take their defaults.
func NewEngine(rules Rules, picker MovePicker) *Engine {
	def := DefaultRules()
	if rules.WinScore <= 0 {
		rules.WinScore = def.WinScore
	}
	if rules.Countdown <= 0 {
		rules.Countdown = def.Countdown
	}
	if picker == nil {
		picker = NewRandomPicker(time.Now().UnixNano())
	}
	return &Engine{rules: rules, picker: picker}
}

// Rules returns the engine's rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Step advances s by one tick and returns the new state with the events the
// tick produced. CommandQuit is left to the host loop.
func (e *Engine) Step(s State, in Input) (State, []Event) {
	var events []Event

	switch in.Command {
	case CommandRestart:
		return e.restart(), []Event{{Kind: EventRestarted, Score: Scoreboard{}}}
	case CommandStart:
		if next, ok := e.start(s, in.Now); ok {
			s = next
			events = append(events, e.event(EventRoundStarted, s))
		}
	case CommandSelectRock, CommandSelectPaper, CommandSelectScissors:
		if e.rules.ManualMoves && s.Phase == PhaseCountdown {
			s.ManualMove = in.Command.selectedMove()
		}
	}

	if s.Phase != PhaseCountdown {
		return s, events
	}

	if e.rules.Sportsmanship && in.Hand != nil && IsRude(*in.Hand) {
		s = e.disqualify(s)
		return s, append(events, e.event(EventDisqualified, s), e.event(EventMatchOver, s))
	}

	elapsed := in.Now.Sub(s.RoundStart)
	if elapsed <= e.rules.Countdown || !in.FrameOK {
		timer := int(elapsed / time.Second)
		if limit := int(e.rules.Countdown / time.Second); timer > limit {
			timer = limit
		}
		if timer < 0 {
			timer = 0
		}
		if timer != s.Timer {
			s.Timer = timer
			events = append(events, e.event(EventCountdown, s))
		}
		return s, events
	}

	s = e.resolve(s, in.Hand)
	events = append(events, e.event(EventRoundResolved, s))
	if s.Phase == PhaseMatchOver {
		events = append(events, e.event(EventMatchOver, s))
	}
	return s, events
}

// start begins a countdown if the phase and status allow it.
func (e *Engine) start(s State, now time.Time) (State, bool) {
	if s.Status != InProgress {
		return s, false
	}
	if s.Phase != PhaseIdle && s.Phase != PhaseResolved {
		return s, false
	}
	s.Phase = PhaseCountdown
	s.RoundStart = now
	s.Timer = 0
	s.Round++
	s.PlayerMove = None
	s.AIMove = None
	s.Outcome = NoContest
	s.ManualMove = None
	return s, true
}

func (e *Engine) restart() State {
	return NewState()
}

// resolve finishes the round: the AI throws, the player's move is read and
// the winner scores.
func (e *Engine) resolve(s State, hand *FingerState) State {
	ai := e.picker.Pick()
	if !ai.Valid() {
		ai = Rock
	}

	player := None
	if hand != nil {
		player = Classify(*hand)
	}
	if player == None {
		player = s.ManualMove
	}

	s.AIMove = ai
	s.PlayerMove = player
	s.Outcome = Resolve(player, ai)
	s.Timer = int(e.rules.Countdown / time.Second)

	switch s.Outcome {
	case PlayerWin:
		s.Score.Player++
	case AIWin:
		s.Score.AI++
	}

	s.Status = e.status(s.Score)
	if s.Status != InProgress {
		s.Phase = PhaseMatchOver
	} else {
		s.Phase = PhaseResolved
	}
	return s
}

// disqualify hands the match to the AI. Scores never go down.
func (e *Engine) disqualify(s State) State {
	if s.Score.AI < e.rules.WinScore {
		s.Score.AI = e.rules.WinScore
	}
	if s.Score.Player > e.rules.WinScore-1 {
		s.Score.Player = e.rules.WinScore - 1
	}
	s.Status = AIWon
	s.Phase = PhaseMatchOver
	s.Disqualified = true
	s.PlayerMove = None
	s.AIMove = None
	s.Outcome = NoContest
	return s
}

// status derives the match status. The AI is checked first.
func (e *Engine) status(sb Scoreboard) Status {
	switch {
	case sb.AI >= e.rules.WinScore:
		return AIWon
	case sb.Player >= e.rules.WinScore:
		return PlayerWon
	default:
		return InProgress
	}
}

func (e *Engine) event(kind EventKind, s State) Event {
	return Event{
		Kind:       kind,
		Round:      s.Round,
		Timer:      s.Timer,
		Remaining:  int(e.rules.Countdown/time.Second) - s.Timer,
		PlayerMove: s.PlayerMove,
		AIMove:     s.AIMove,
		Outcome:    s.Outcome,
		Status:     s.Status,
		Score:      s.Score,
	}
}
