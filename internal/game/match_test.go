package game

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func hand(f FingerState) *FingerState { return &f }

// playRound starts a round at start and resolves it with the given hand.
func playRound(t *testing.T, e *Engine, s State, start time.Time, h *FingerState) (State, []Event) {
	t.Helper()
	s, _ = e.Step(s, Input{Now: start, Command: CommandStart, FrameOK: true})
	if s.Phase != PhaseCountdown {
		t.Fatalf("phase after start = %v, want countdown", s.Phase)
	}
	return e.Step(s, Input{Now: start.Add(3100 * time.Millisecond), Hand: h, FrameOK: true})
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestEngine_StartFromIdle(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Rock))

	s, events := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})

	if s.Phase != PhaseCountdown {
		t.Errorf("Phase = %v, want countdown", s.Phase)
	}
	if !s.RoundStart.Equal(t0) {
		t.Errorf("RoundStart = %v, want %v", s.RoundStart, t0)
	}
	if s.Round != 1 {
		t.Errorf("Round = %d, want 1", s.Round)
	}
	if !hasEvent(events, EventRoundStarted) {
		t.Error("expected a round_start event")
	}
}

func TestEngine_CountdownTimer(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Rock))
	s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})

	tests := []struct {
		elapsed   time.Duration
		wantTimer int
		wantPhase Phase
	}{
		{0, 0, PhaseCountdown},
		{900 * time.Millisecond, 0, PhaseCountdown},
		{1500 * time.Millisecond, 1, PhaseCountdown},
		{2 * time.Second, 2, PhaseCountdown},
		{3 * time.Second, 3, PhaseCountdown},
		{3001 * time.Millisecond, 3, PhaseResolved},
	}

	for _, tt := range tests {
		s, _ = e.Step(s, Input{Now: t0.Add(tt.elapsed), FrameOK: true})
		if s.Timer != tt.wantTimer {
			t.Errorf("at %v Timer = %d, want %d", tt.elapsed, s.Timer, tt.wantTimer)
		}
		if s.Phase != tt.wantPhase {
			t.Errorf("at %v Phase = %v, want %v", tt.elapsed, s.Phase, tt.wantPhase)
		}
	}
}

func TestEngine_CountdownEventsOncePerSecond(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Rock))
	s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})

	count := 0
	for ms := 0; ms <= 3000; ms += 100 {
		var events []Event
		s, events = e.Step(s, Input{Now: t0.Add(time.Duration(ms) * time.Millisecond), FrameOK: true})
		for _, ev := range events {
			if ev.Kind == EventCountdown {
				count++
			}
		}
	}

	if count != 3 {
		t.Errorf("countdown events = %d, want 3", count)
	}
}

func TestEngine_RockBeatsScissors(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Scissors))

	s, events := playRound(t, e, NewState(), t0, hand(FingerState{}))

	if s.PlayerMove != Rock {
		t.Errorf("PlayerMove = %v, want rock", s.PlayerMove)
	}
	if s.Outcome != PlayerWin {
		t.Errorf("Outcome = %v, want player wins", s.Outcome)
	}
	if s.Score != (Scoreboard{AI: 0, Player: 1}) {
		t.Errorf("Score = %+v, want player 1", s.Score)
	}
	if s.Phase != PhaseResolved {
		t.Errorf("Phase = %v, want resolved", s.Phase)
	}
	if !hasEvent(events, EventRoundResolved) {
		t.Error("expected a round_resolved event")
	}
}

func TestEngine_PaperTie(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Paper))

	s, _ := playRound(t, e, NewState(), t0, hand(palm))

	if s.Outcome != Tie {
		t.Errorf("Outcome = %v, want tie", s.Outcome)
	}
	if s.Score != (Scoreboard{}) {
		t.Errorf("Score = %+v, want unchanged", s.Score)
	}
}

func TestEngine_NoHandIsNoContest(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Paper))

	s, _ := playRound(t, e, NewState(), t0, nil)

	if s.Outcome != NoContest {
		t.Errorf("Outcome = %v, want no contest", s.Outcome)
	}
	if s.PlayerMove != None {
		t.Errorf("PlayerMove = %v, want none", s.PlayerMove)
	}
	if s.AIMove != Paper {
		t.Errorf("AIMove = %v, want paper to still be shown", s.AIMove)
	}
	if s.Score != (Scoreboard{}) {
		t.Errorf("Score = %+v, want unchanged", s.Score)
	}
	if s.Phase != PhaseResolved {
		t.Errorf("Phase = %v, want resolved", s.Phase)
	}
}

func TestEngine_UnknownPatternIsNoContest(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Rock))

	s, _ := playRound(t, e, NewState(), t0, hand(FingerState{Thumb: true}))

	if s.Outcome != NoContest {
		t.Errorf("Outcome = %v, want no contest", s.Outcome)
	}
}

func TestEngine_AIReachesWinScore(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Paper))
	s := NewState()

	start := t0
	var events []Event
	for i := 0; i < 3; i++ {
		s, events = playRound(t, e, s, start, hand(fist))
		start = start.Add(10 * time.Second)
		if i < 2 && s.Status != InProgress {
			t.Fatalf("round %d: Status = %v, want in progress", i+1, s.Status)
		}
	}

	if s.Status != AIWon {
		t.Fatalf("Status = %v, want ai won", s.Status)
	}
	if s.Phase != PhaseMatchOver {
		t.Errorf("Phase = %v, want match over", s.Phase)
	}
	if !hasEvent(events, EventMatchOver) {
		t.Error("expected a match_over event")
	}

	// Start must be ignored until restart.
	after, events := e.Step(s, Input{Now: start, Command: CommandStart, FrameOK: true})
	if after.Phase != PhaseMatchOver {
		t.Errorf("Phase after start = %v, want match over", after.Phase)
	}
	if len(events) != 0 {
		t.Errorf("events after ignored start = %v, want none", events)
	}
	if after.Score != s.Score {
		t.Errorf("Score changed after ignored start: %+v -> %+v", s.Score, after.Score)
	}
}

func TestEngine_PlayerReachesWinScore(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Scissors))
	s := NewState()

	start := t0
	for i := 0; i < 3; i++ {
		s, _ = playRound(t, e, s, start, hand(fist))
		start = start.Add(10 * time.Second)
	}

	if s.Status != PlayerWon {
		t.Errorf("Status = %v, want player won", s.Status)
	}
	if s.Score != (Scoreboard{AI: 0, Player: 3}) {
		t.Errorf("Score = %+v, want player 3", s.Score)
	}
}

func TestEngine_ScoresMonotonic(t *testing.T) {
	e := NewEngine(DefaultRules(), NewRandomPicker(7))
	hands := []*FingerState{hand(fist), hand(palm), hand(victory), nil, hand(FingerState{Ring: true})}

	s := NewState()
	start := t0
	prev := s.Score
	for i := 0; s.Status == InProgress && i < 200; i++ {
		s, _ = playRound(t, e, s, start, hands[i%len(hands)])
		start = start.Add(10 * time.Second)

		if s.Score.AI < prev.AI || s.Score.Player < prev.Player {
			t.Fatalf("score decreased: %+v -> %+v", prev, s.Score)
		}
		if s.Score.AI >= 3 && s.Score.Player >= 3 {
			t.Fatalf("both sides reached the win score: %+v", s.Score)
		}
		prev = s.Score
	}

	if s.Status == InProgress {
		t.Fatal("match did not finish in 200 rounds")
	}
}

func TestEngine_Restart(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Paper))

	states := map[string]State{
		"idle":       NewState(),
		"countdown":  {Phase: PhaseCountdown, RoundStart: t0, Round: 2, Score: Scoreboard{AI: 1, Player: 1}},
		"resolved":   {Phase: PhaseResolved, AIMove: Rock, Score: Scoreboard{AI: 2}},
		"match over": {Phase: PhaseMatchOver, Status: PlayerWon, AIMove: Scissors, Score: Scoreboard{AI: 1, Player: 3}},
	}

	for name, s := range states {
		t.Run(name, func(t *testing.T) {
			got, events := e.Step(s, Input{Now: t0, Command: CommandRestart, FrameOK: true})

			if got.Score != (Scoreboard{}) {
				t.Errorf("Score = %+v, want zero", got.Score)
			}
			if got.Status != InProgress {
				t.Errorf("Status = %v, want in progress", got.Status)
			}
			if got.Phase != PhaseIdle {
				t.Errorf("Phase = %v, want idle", got.Phase)
			}
			if got.AIMove != None {
				t.Errorf("AIMove = %v, want none", got.AIMove)
			}
			if !hasEvent(events, EventRestarted) {
				t.Error("expected a restart event")
			}
		})
	}
}

func TestEngine_NextRoundFromResolved(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Scissors))
	s, _ := playRound(t, e, NewState(), t0, hand(fist))

	next := t0.Add(5 * time.Second)
	s, _ = e.Step(s, Input{Now: next, Command: CommandStart, FrameOK: true})

	if s.Phase != PhaseCountdown {
		t.Fatalf("Phase = %v, want countdown", s.Phase)
	}
	if s.AIMove != None || s.Timer != 0 {
		t.Errorf("AIMove=%v Timer=%d, want cleared", s.AIMove, s.Timer)
	}
	if s.Round != 2 {
		t.Errorf("Round = %d, want 2", s.Round)
	}
	if s.Score.Player != 1 {
		t.Errorf("Score.Player = %d, want 1 carried over", s.Score.Player)
	}
}

func TestEngine_StartDuringCountdownIgnored(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Rock))
	s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})

	s, events := e.Step(s, Input{Now: t0.Add(2 * time.Second), Command: CommandStart, FrameOK: true})

	if !s.RoundStart.Equal(t0) {
		t.Errorf("RoundStart = %v, want unchanged %v", s.RoundStart, t0)
	}
	if hasEvent(events, EventRoundStarted) {
		t.Error("did not expect a second round_start event")
	}
}

func TestEngine_FrameFailureDefersResolution(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Scissors))
	s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})

	s, _ = e.Step(s, Input{Now: t0.Add(4 * time.Second), FrameOK: false})
	if s.Phase != PhaseCountdown {
		t.Fatalf("Phase after failed frame = %v, want countdown", s.Phase)
	}
	if s.Score != (Scoreboard{}) {
		t.Errorf("Score = %+v, want unchanged", s.Score)
	}

	s, _ = e.Step(s, Input{Now: t0.Add(4100 * time.Millisecond), Hand: hand(fist), FrameOK: true})
	if s.Phase != PhaseResolved {
		t.Fatalf("Phase = %v, want resolved", s.Phase)
	}
	if s.Score.Player != 1 {
		t.Errorf("Score.Player = %d, want 1", s.Score.Player)
	}
}

func TestEngine_ManualMove(t *testing.T) {
	rules := DefaultRules()
	rules.ManualMoves = true
	e := NewEngine(rules, FixedPicker(Rock))

	t.Run("used when no hand", func(t *testing.T) {
		s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(time.Second), Command: CommandSelectPaper, FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(3500 * time.Millisecond), FrameOK: true})

		if s.PlayerMove != Paper || s.Outcome != PlayerWin {
			t.Errorf("PlayerMove=%v Outcome=%v, want paper / player wins", s.PlayerMove, s.Outcome)
		}
	})

	t.Run("gesture takes precedence", func(t *testing.T) {
		s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(time.Second), Command: CommandSelectPaper, FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(3500 * time.Millisecond), Hand: hand(victory), FrameOK: true})

		if s.PlayerMove != Scissors {
			t.Errorf("PlayerMove = %v, want scissors", s.PlayerMove)
		}
	})

	t.Run("ignored outside countdown", func(t *testing.T) {
		s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandSelectPaper, FrameOK: true})
		if s.ManualMove != None {
			t.Errorf("ManualMove = %v, want none", s.ManualMove)
		}
	})

	t.Run("cleared on next round", func(t *testing.T) {
		s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(time.Second), Command: CommandSelectPaper, FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(3500 * time.Millisecond), FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(5 * time.Second), Command: CommandStart, FrameOK: true})

		if s.ManualMove != None {
			t.Errorf("ManualMove = %v, want none", s.ManualMove)
		}
	})
}

func TestEngine_Sportsmanship(t *testing.T) {
	rude := hand(FingerState{Middle: true})

	t.Run("disabled by default", func(t *testing.T) {
		e := NewEngine(DefaultRules(), FixedPicker(Rock))
		s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})
		s, _ = e.Step(s, Input{Now: t0.Add(time.Second), Hand: rude, FrameOK: true})

		if s.Phase != PhaseCountdown {
			t.Errorf("Phase = %v, want countdown", s.Phase)
		}
	})

	t.Run("enabled disqualifies", func(t *testing.T) {
		rules := DefaultRules()
		rules.Sportsmanship = true
		e := NewEngine(rules, FixedPicker(Rock))

		s := State{Phase: PhaseResolved, Score: Scoreboard{AI: 1, Player: 2}}
		s, _ = e.Step(s, Input{Now: t0, Command: CommandStart, FrameOK: true})
		s, events := e.Step(s, Input{Now: t0.Add(time.Second), Hand: rude, FrameOK: true})

		if s.Phase != PhaseMatchOver || s.Status != AIWon || !s.Disqualified {
			t.Errorf("Phase=%v Status=%v Disqualified=%v, want match over / ai won / true", s.Phase, s.Status, s.Disqualified)
		}
		if s.Score != (Scoreboard{AI: 3, Player: 2}) {
			t.Errorf("Score = %+v, want ai 3 player 2", s.Score)
		}
		if !hasEvent(events, EventDisqualified) || !hasEvent(events, EventMatchOver) {
			t.Errorf("events = %v, want disqualified and match_over", events)
		}
	})
}

func TestEngine_StepDoesNotMutateInput(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Scissors))
	s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})
	before := s

	_, _ = e.Step(s, Input{Now: t0.Add(4 * time.Second), Hand: hand(fist), FrameOK: true})

	if s != before {
		t.Errorf("Step mutated its input: %+v -> %+v", before, s)
	}
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(Rules{}, nil)
	r := e.Rules()
	if r.WinScore != 3 || r.Countdown != 3*time.Second {
		t.Errorf("Rules() = %+v, want defaults", r)
	}
}

func TestEvent_Name(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Kind: EventRoundResolved, Outcome: PlayerWin}, "round_win"},
		{Event{Kind: EventRoundResolved, Outcome: AIWin}, "round_lose"},
		{Event{Kind: EventRoundResolved, Outcome: Tie}, "round_tie"},
		{Event{Kind: EventRoundResolved, Outcome: NoContest}, "round_no_move"},
		{Event{Kind: EventMatchOver, Status: PlayerWon}, "match_win"},
		{Event{Kind: EventMatchOver, Status: AIWon}, "match_lose"},
		{Event{Kind: EventCountdown, Remaining: 2}, "countdown"},
		{Event{Kind: EventCountdown, Remaining: 1}, "countdown_final"},
		{Event{Kind: EventRoundStarted}, "round_start"},
	}

	for _, tt := range tests {
		if got := tt.ev.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestEngine_ManualMovesDisabled(t *testing.T) {
	e := NewEngine(DefaultRules(), FixedPicker(Scissors))

	s, _ := e.Step(NewState(), Input{Now: t0, Command: CommandStart, FrameOK: true})
	s, _ = e.Step(s, Input{Now: t0.Add(time.Second), Command: CommandSelectRock, FrameOK: true})
	if s.ManualMove != None {
		t.Fatalf("ManualMove = %v, want none without manual moves", s.ManualMove)
	}

	s, _ = e.Step(s, Input{Now: t0.Add(4 * time.Second), FrameOK: true})
	if s.Outcome != NoContest || s.PlayerMove != None {
		t.Errorf("Outcome=%v PlayerMove=%v, want no contest", s.Outcome, s.PlayerMove)
	}
	if s.Score != (Scoreboard{}) {
		t.Errorf("Score = %+v, want unchanged", s.Score)
	}
}
