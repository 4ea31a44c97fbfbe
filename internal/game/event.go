package game

// EventKind names something that happened during a Step.
type EventKind string

const (
	EventRoundStarted  EventKind = "round_start"
	EventCountdown     EventKind = "countdown"
	EventRoundResolved EventKind = "round_resolved"
	EventMatchOver     EventKind = "match_over"
	EventRestarted     EventKind = "restart"
	EventDisqualified  EventKind = "disqualified"
)

// Event is a snapshot of the state taken when the event fired.
type Event struct {
	Kind  EventKind
	Round int
	Timer int
	// Remaining is the number of countdown seconds left.
	Remaining  int
	PlayerMove Move
	AIMove     Move
	Outcome    Outcome
	Status     Status
	Score      Scoreboard
}

// Name returns a finer-grained event name for hook subscriptions:
// round wins and losses and match wins and losses get their own names.
func (e Event) Name() string {
	switch e.Kind {
	case EventRoundResolved:
		switch e.Outcome {
		case PlayerWin:
			return "round_win"
		case AIWin:
			return "round_lose"
		case Tie:
			return "round_tie"
		default:
			return "round_no_move"
		}
	case EventMatchOver:
		if e.Status == PlayerWon {
			return "match_win"
		}
		return "match_lose"
	case EventCountdown:
		if e.Remaining == 1 {
			return "countdown_final"
		}
		return "countdown"
	default:
		return string(e.Kind)
	}
}
