package battlehistory_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
	battlehistory "github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history"
	"github.com/KirkDiggler/miniature-battle/internal/testutils"
)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	newRepo func() (battlehistory.Repository, func())
	repo    battlehistory.Repository
	cleanup func()
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (battlehistory.Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			repo, err := battlehistory.NewRedisRepository(&battlehistory.RedisConfig{Client: client})
			if err != nil {
				t.Fatalf("create redis repository: %v", err)
			}
			return repo, cleanup
		},
	})
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (battlehistory.Repository, func()) {
			repo, err := battlehistory.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
			if err != nil {
				t.Fatalf("open sqlite repository: %v", err)
			}
			return repo, func() { _ = repo.Close() }
		},
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.cleanup = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func record(id, ownerA, ownerB, winnerOwner string, completedAt time.Time) *battlehistory.BattleRecord {
	r := &battlehistory.BattleRecord{
		ID:         id,
		BattleType: battlehistory.BattleTypeStandard,
		Status:     battlehistory.StatusCompleted,
		Participants: []battlehistory.ParticipantRecord{
			{ID: "player1", OwnerID: ownerA, Name: "Knight Commander", IsPlayer: true, MaxHP: 58, FinalHP: 40},
			{ID: "player2", OwnerID: ownerB, Name: "Goblin Skirmisher", MaxHP: 15},
		},
		Reason:      battle.ReasonMutualDestruction,
		Rounds:      3,
		CreatedAt:   completedAt.Add(-time.Minute),
		CompletedAt: completedAt,
		Log: []battle.LogEntry{
			{Type: battle.EntryInitiative, Timestamp: completedAt.Add(-time.Minute), Message: "Initiative rolled!"},
		},
	}
	switch winnerOwner {
	case "":
	case ownerA:
		r.WinnerID, r.WinnerOwnerID, r.WinnerName = "player1", ownerA, "Knight Commander"
		r.Reason = battle.ReasonElimination
	default:
		r.WinnerID, r.WinnerOwnerID, r.WinnerName = "player2", ownerB, "Goblin Skirmisher"
		r.Reason = battle.ReasonElimination
	}
	return r
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	in := record("battle_1", "alice", "bob", "alice", testutils.TestTime)

	_, err := s.repo.Create(s.ctx, &battlehistory.CreateInput{Record: in})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &battlehistory.GetInput{BattleID: "battle_1"})
	s.Require().NoError(err)
	s.Equal("battle_1", out.Record.ID)
	s.Equal("player1", out.Record.WinnerID)
	s.Equal("Knight Commander", out.Record.WinnerName)
	s.Len(out.Record.Participants, 2)
	s.Require().Len(out.Record.Log, 1)
	s.Equal(battle.EntryInitiative, out.Record.Log[0].Type)
	s.True(in.CompletedAt.Equal(out.Record.CompletedAt))
}

func (s *RepositoryTestSuite) TestCreate_Duplicate() {
	in := record("battle_1", "alice", "bob", "alice", testutils.TestTime)
	_, err := s.repo.Create(s.ctx, &battlehistory.CreateInput{Record: in})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, &battlehistory.CreateInput{Record: in})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RepositoryTestSuite) TestCreate_Validates() {
	_, err := s.repo.Create(s.ctx, &battlehistory.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	bad := record("battle_1", "alice", "bob", "", testutils.TestTime)
	bad.BattleType = "casual"
	_, err = s.repo.Create(s.ctx, &battlehistory.CreateInput{Record: bad})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, &battlehistory.GetInput{BattleID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestList_NewestFirstWithPaging() {
	for i, id := range []string{"battle_1", "battle_2", "battle_3"} {
		in := record(id, "alice", "bob", "alice", testutils.TestTime.Add(time.Duration(i)*time.Hour))
		_, err := s.repo.Create(s.ctx, &battlehistory.CreateInput{Record: in})
		s.Require().NoError(err)
	}
	_, err := s.repo.Create(s.ctx, &battlehistory.CreateInput{
		Record: record("battle_4", "carol", "dave", "", testutils.TestTime),
	})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, &battlehistory.ListInput{OwnerID: "alice"})
	s.Require().NoError(err)
	s.Equal(3, out.Total)
	s.Require().Len(out.Records, 3)
	s.Equal("battle_3", out.Records[0].ID)
	s.Equal("battle_1", out.Records[2].ID)

	out, err = s.repo.List(s.ctx, &battlehistory.ListInput{OwnerID: "bob", Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Equal(3, out.Total)
	s.Require().Len(out.Records, 1)
	s.Equal("battle_2", out.Records[0].ID)

	out, err = s.repo.List(s.ctx, &battlehistory.ListInput{OwnerID: "nobody"})
	s.Require().NoError(err)
	s.Empty(out.Records)
	s.Equal(0, out.Total)
}

func (s *RepositoryTestSuite) TestStats() {
	records := []*battlehistory.BattleRecord{
		record("battle_1", "alice", "bob", "alice", testutils.TestTime),
		record("battle_2", "alice", "bob", "bob", testutils.TestTime.Add(time.Hour)),
		record("battle_3", "bob", "alice", "alice", testutils.TestTime.Add(2*time.Hour)),
		record("battle_4", "alice", "bob", "", testutils.TestTime.Add(3*time.Hour)),
	}
	for _, r := range records {
		_, err := s.repo.Create(s.ctx, &battlehistory.CreateInput{Record: r})
		s.Require().NoError(err)
	}

	stats, err := s.repo.Stats(s.ctx, &battlehistory.StatsInput{OwnerID: "alice"})
	s.Require().NoError(err)
	s.Equal(2, stats.Won)
	s.Equal(1, stats.Lost)
	s.Equal(1, stats.Drawn)
	s.Equal(4, stats.Total)

	stats, err = s.repo.Stats(s.ctx, &battlehistory.StatsInput{OwnerID: "bob"})
	s.Require().NoError(err)
	s.Equal(1, stats.Won)
	s.Equal(2, stats.Lost)
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, &battlehistory.CreateInput{
		Record: record("battle_1", "alice", "bob", "alice", testutils.TestTime),
	})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &battlehistory.DeleteInput{BattleID: "battle_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &battlehistory.GetInput{BattleID: "battle_1"})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.List(s.ctx, &battlehistory.ListInput{OwnerID: "alice"})
	s.Require().NoError(err)
	s.Empty(out.Records)

	_, err = s.repo.Delete(s.ctx, &battlehistory.DeleteInput{BattleID: "battle_1"})
	s.True(errors.IsNotFound(err))
}
