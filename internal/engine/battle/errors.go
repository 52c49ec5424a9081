package battle

import (
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// Kind classifies battle validation failures
type Kind string

// Error kinds surfaced by the engine
const (
	KindInvalidStateTransition Kind = "INVALID_STATE_TRANSITION"
	KindInvalidCombatant       Kind = "INVALID_COMBATANT"
	KindInvalidAction          Kind = "INVALID_ACTION"
	KindEmptyParticipantSet    Kind = "EMPTY_PARTICIPANT_SET"
)

const metaKind = "battle_error_kind"

// KindOf returns the battle error kind carried by err, or "" when err is not a battle error
func KindOf(err error) Kind {
	meta := errors.GetMeta(err)
	if meta == nil {
		return ""
	}
	if kind, ok := meta[metaKind].(Kind); ok {
		return kind
	}
	return ""
}

// InvalidStatBlock marks a stat block validation failure for the combatant at index as an
// invalid combatant, keeping the field errors of err
func InvalidStatBlock(index int, err error) *errors.Error {
	return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "combatant %d has an invalid stat block", index+1).
		WithMeta(metaKind, KindInvalidCombatant)
}

func invalidState(op string, state State) *errors.Error {
	return errors.FailedPreconditionf("cannot %s while battle is %s", op, state).
		WithMeta(metaKind, KindInvalidStateTransition).
		WithMeta("state", string(state))
}

func invalidCombatant(format string, args ...interface{}) *errors.Error {
	return errors.InvalidArgumentf(format, args...).WithMeta(metaKind, KindInvalidCombatant)
}

func invalidAction(format string, args ...interface{}) *errors.Error {
	return errors.InvalidArgumentf(format, args...).WithMeta(metaKind, KindInvalidAction)
}

func emptyParticipantSet(count int) *errors.Error {
	return errors.InvalidArgumentf("a battle needs at least two combatants, got %d", count).
		WithMeta(metaKind, KindEmptyParticipantSet).
		WithMeta("count", count)
}
