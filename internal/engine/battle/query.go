package battle

import (
	"time"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
)

// ParticipantStatus is the per-participant progress shown to the UI
type ParticipantStatus struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CurrentHP    int     `json:"current_hp"`
	MaxHP        int     `json:"max_hp"`
	HPPercentage float64 `json:"hp_percentage"`
	Initiative   int     `json:"initiative"`
	IsPlayer     bool    `json:"is_player"`
	Alive        bool    `json:"alive"`
}

// ID returns the battle id
func (s *Session) ID() string { return s.id }

// State returns the current state machine state
func (s *Session) State() State { return s.state }

// PausedFrom returns the state a paused session resumes into
func (s *Session) PausedFrom() State { return s.pausedFrom }

// Round returns the round counter, starting at 1
func (s *Session) Round() int { return s.round }

// TurnIndex returns the zero-based index of the active participant
func (s *Session) TurnIndex() int { return s.turnIndex }

// TurnCount returns the number of turns started so far
func (s *Session) TurnCount() int { return s.turnCount }

// TurnTimer returns the time units left in the active turn
func (s *Session) TurnTimer() int { return s.turnTimer }

// WinnerID returns the winning participant id, empty for draws and unfinished battles
func (s *Session) WinnerID() string { return s.winnerID }

// EndReason returns why the battle ended
func (s *Session) EndReason() string { return s.endReason }

// StartedAt returns when the battle was initialized
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns when the battle ended
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Participants returns copies of the participants in turn order
func (s *Session) Participants() []*Participant {
	out := make([]*Participant, len(s.participants))
	for i, p := range s.participants {
		out[i] = p.Clone()
	}
	return out
}

// Participant returns a copy of one participant
func (s *Session) Participant(id string) (*Participant, bool) {
	p, ok := s.participant(id)
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// ActiveParticipant returns a copy of the participant whose turn it is
func (s *Session) ActiveParticipant() *Participant {
	p := s.active()
	if p == nil {
		return nil
	}
	return p.Clone()
}

// IsPlayerTurn reports whether the active participant is player controlled
func (s *Session) IsPlayerTurn() bool {
	p := s.active()
	return p != nil && p.IsPlayer && !s.state.IsTerminal()
}

// AvailableActions returns the actions the active participant can pick this turn
func (s *Session) AvailableActions() []miniature.Action {
	out := make([]miniature.Action, len(s.availableActions))
	copy(out, s.availableActions)
	return out
}

// SelectedAction returns the selected but unresolved action and its target
func (s *Session) SelectedAction() (*miniature.Action, string) {
	if s.selectedAction == nil {
		return nil, ""
	}
	a := *s.selectedAction
	return &a, s.selectedTargetID
}

// Log returns a copy of the battle log
func (s *Session) Log() []LogEntry {
	return cloneEntries(s.log)
}

// RecentLog returns at most the last n log entries
func (s *Session) RecentLog(n int) []LogEntry {
	if n <= 0 || n >= len(s.log) {
		return s.Log()
	}
	return cloneEntries(s.log[len(s.log)-n:])
}

// Status returns per-participant progress in turn order
func (s *Session) Status() []ParticipantStatus {
	out := make([]ParticipantStatus, 0, len(s.participants))
	for _, p := range s.participants {
		pct := 0.0
		if p.MaxHP > 0 {
			pct = float64(p.CurrentHP) / float64(p.MaxHP) * 100
		}
		out = append(out, ParticipantStatus{
			ID:           p.ID,
			Name:         p.Name(),
			CurrentHP:    p.CurrentHP,
			MaxHP:        p.MaxHP,
			HPPercentage: pct,
			Initiative:   p.Initiative,
			IsPlayer:     p.IsPlayer,
			Alive:        p.Alive(),
		})
	}
	return out
}
