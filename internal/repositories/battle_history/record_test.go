package battlehistory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
	battlehistory "github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history"
	"github.com/KirkDiggler/miniature-battle/internal/testutils"
)

func finishedSession(t *testing.T, abort bool) *battle.Session {
	t.Helper()

	roller := testutils.NewScriptedRoller(15, 5)
	clk := testutils.NewFixedClock(testutils.TestTime)
	session, err := battle.NewSession(&battle.Config{ID: "battle_1", Roller: roller, Clock: clk})
	require.NoError(t, err)
	require.NoError(t, session.Initialize([]battle.Combatant{
		{StatBlock: testutils.CreateTestKnight(), IsPlayer: true, OwnerID: "alice"},
		{StatBlock: testutils.CreateTestGoblin(), OwnerID: "bob"},
	}))
	require.NoError(t, session.RollInitiative())

	clk.Advance(95 * time.Second)
	if abort {
		require.NoError(t, session.Abort("player1"))
	} else {
		require.NoError(t, session.ApplyDamage([]string{"player2"}, 50, miniature.DamageTypeForce))
	}
	return session
}

func TestNewRecord_FromCompletedSession(t *testing.T) {
	record, err := battlehistory.NewRecord(finishedSession(t, false), battlehistory.BattleTypeRanked)
	require.NoError(t, err)

	assert.Equal(t, "battle_1", record.ID)
	assert.Equal(t, battlehistory.BattleTypeRanked, record.BattleType)
	assert.Equal(t, battlehistory.StatusCompleted, record.Status)
	assert.Equal(t, "player1", record.WinnerID)
	assert.Equal(t, "alice", record.WinnerOwnerID)
	assert.Equal(t, "Knight Commander", record.WinnerName)
	assert.Equal(t, battle.ReasonElimination, record.Reason)
	assert.Equal(t, int64(95), record.DurationSeconds)
	assert.Equal(t, []string{"alice", "bob"}, record.OwnerIDs())
	require.Len(t, record.Participants, 2)
	assert.Equal(t, testutils.GoblinID, record.Participants[1].StatBlockID)
	assert.Equal(t, 0, record.Participants[1].FinalHP)
	assert.NotEmpty(t, record.Log)
}

func TestNewRecord_ForfeitIsAbandoned(t *testing.T) {
	record, err := battlehistory.NewRecord(finishedSession(t, true), "")
	require.NoError(t, err)

	assert.Equal(t, battlehistory.BattleTypeStandard, record.BattleType)
	assert.Equal(t, battlehistory.StatusAbandoned, record.Status)
	assert.Equal(t, "bob", record.WinnerOwnerID)
	assert.Equal(t, battle.ReasonForfeit, record.Reason)
}

func TestNewRecord_RequiresCompletedBattle(t *testing.T) {
	session, err := battle.NewSession(&battle.Config{
		ID:     "battle_2",
		Roller: testutils.NewScriptedRoller(),
		Clock:  testutils.NewFixedClock(testutils.TestTime),
	})
	require.NoError(t, err)

	_, err = battlehistory.NewRecord(session, battlehistory.BattleTypeStandard)
	assert.True(t, errors.IsFailedPrecondition(err))
}
