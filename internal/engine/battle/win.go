package battle

// End reasons recorded on the battle_end log entry
const (
	ReasonElimination       = "elimination"
	ReasonMutualDestruction = "mutual_destruction"
	ReasonForfeit           = "forfeit"
	ReasonAborted           = "aborted"
)

// Outcome is the result of a win-condition check
type Outcome struct {
	Finished bool
	Winner   *Participant
	Reason   string
}

// Draw reports a finished battle with no winner
func (o Outcome) Draw() bool {
	return o.Finished && o.Winner == nil
}

// CheckWinCondition finishes the battle when at most one participant is alive.
// One survivor wins by elimination; none left is a draw by mutual destruction.
func CheckWinCondition(participants []*Participant) Outcome {
	var alive []*Participant
	for _, p := range participants {
		if p.Alive() {
			alive = append(alive, p)
		}
	}

	switch len(alive) {
	case 0:
		return Outcome{Finished: true, Reason: ReasonMutualDestruction}
	case 1:
		return Outcome{Finished: true, Winner: alive[0], Reason: ReasonElimination}
	default:
		return Outcome{}
	}
}
