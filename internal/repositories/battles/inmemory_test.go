package battles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
	"github.com/KirkDiggler/miniature-battle/internal/repositories/battles"
	"github.com/KirkDiggler/miniature-battle/internal/testutils"
)

type InMemoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *battles.InMemoryRepository
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryTestSuite))
}

func (s *InMemoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = battles.NewInMemory()
}

func (s *InMemoryTestSuite) newSession(id string) *battle.Session {
	session, err := battle.NewSession(&battle.Config{
		ID:     id,
		Roller: testutils.NewScriptedRoller(),
		Clock:  testutils.NewFixedClock(testutils.TestTime),
	})
	s.Require().NoError(err)
	return session
}

func (s *InMemoryTestSuite) TestSaveAndGet() {
	session := s.newSession("battle_1")

	_, err := s.repo.Save(s.ctx, &battles.SaveInput{Session: session, BattleType: "ranked"})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &battles.GetInput{BattleID: "battle_1"})
	s.Require().NoError(err)
	s.Same(session, out.Session)
	s.Equal("ranked", out.BattleType)
}

func (s *InMemoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, &battles.GetInput{BattleID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, &battles.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestSave_RequiresSession() {
	_, err := s.repo.Save(s.ctx, &battles.SaveInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &battles.SaveInput{Session: s.newSession("battle_1")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &battles.DeleteInput{BattleID: "battle_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &battles.GetInput{BattleID: "battle_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &battles.DeleteInput{BattleID: "battle_1"})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestList_FiltersByState() {
	idle := s.newSession("battle_b")
	started := s.newSession("battle_a")
	s.Require().NoError(started.Initialize([]battle.Combatant{
		{StatBlock: testutils.CreateTestKnight(), IsPlayer: true},
		{StatBlock: testutils.CreateTestGoblin()},
	}))

	for _, session := range []*battle.Session{idle, started} {
		_, err := s.repo.Save(s.ctx, &battles.SaveInput{Session: session})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, &battles.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"battle_a", "battle_b"}, out.BattleIDs)

	out, err = s.repo.List(s.ctx, &battles.ListInput{States: []battle.State{battle.StateInitializing}})
	s.Require().NoError(err)
	s.Equal([]string{"battle_a"}, out.BattleIDs)
}
