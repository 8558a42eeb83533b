package battle

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"
)

// Battle states.
const (
	StatePlacement = "placement"
	StateBattle    = "battle"
	StateWon       = "level_won"
	StateLost      = "level_lost"
	StateAbandoned = "abandoned"
)

const (
	eventStart   = "start"
	eventWin     = "win"
	eventLose    = "lose"
	eventAbandon = "abandon"
)

func newStateMachine(battleID string) *fsm.FSM {
	return fsm.NewFSM(
		StatePlacement,
		fsm.Events{
			{Name: eventStart, Src: []string{StatePlacement}, Dst: StateBattle},
			{Name: eventWin, Src: []string{StateBattle}, Dst: StateWon},
			{Name: eventLose, Src: []string{StateBattle}, Dst: StateLost},
			{Name: eventAbandon, Src: []string{StatePlacement, StateBattle}, Dst: StateAbandoned},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("battle state changed", "battle", battleID, "from", e.Src, "to", e.Dst)
			},
		},
	)
}

// terminal reports whether no further transition can leave state.
func terminal(state string) bool {
	return state == StateWon || state == StateLost || state == StateAbandoned
}
