package battle

import (
	"time"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
)

// EntryType tags a battle log entry
type EntryType string

// Log entry variants
const (
	EntryInitiative EntryType = "initiative"
	EntryAction     EntryType = "action"
	EntryDamage     EntryType = "damage"
	EntryHeal       EntryType = "heal"
	EntryCondition  EntryType = "condition"
	EntryTurnStart  EntryType = "turn_start"
	EntryBattleEnd  EntryType = "battle_end"
)

// ResolutionKind says how an action was resolved
type ResolutionKind string

// Resolution kinds
const (
	ResolutionAttack  ResolutionKind = "attack"
	ResolutionSave    ResolutionKind = "save"
	ResolutionAuto    ResolutionKind = "auto"
	ResolutionUtility ResolutionKind = "utility"
)

// ActionResult is the structured outcome of a resolved action.
// For save actions Roll and Total are the target's saving throw.
type ActionResult struct {
	Kind       ResolutionKind       `json:"kind"`
	Hit        bool                 `json:"hit"`
	Damage     int                  `json:"damage"`
	Critical   bool                 `json:"critical"`
	Roll       int                  `json:"roll"`
	Total      int                  `json:"total"`
	Saved      bool                 `json:"saved,omitempty"`
	DamageType miniature.DamageType `json:"damage_type,omitempty"`
}

// LogEntry is one record in the append-only battle log. Type selects which fields are set.
type LogEntry struct {
	Type      EntryType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Round     int           `json:"round,omitempty"`
	Message   string        `json:"message,omitempty"`
	Attacker  string        `json:"attacker,omitempty"`
	Target    string        `json:"target,omitempty"`
	Action    string        `json:"action,omitempty"`
	Result    *ActionResult `json:"result,omitempty"`
	Amount    int           `json:"amount,omitempty"`
	Condition string        `json:"condition,omitempty"`
	Winner    string        `json:"winner,omitempty"`
	Reason    string        `json:"reason,omitempty"`
}

func cloneEntries(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.Result != nil {
			r := *e.Result
			out[i].Result = &r
		}
	}
	return out
}
