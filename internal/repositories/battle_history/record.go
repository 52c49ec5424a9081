package battlehistory

import (
	"github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// NewRecord builds the archive record of a completed session
func NewRecord(session *battle.Session, battleType BattleType) (*BattleRecord, error) {
	if session == nil {
		return nil, errors.InvalidArgument("session is required")
	}
	if !session.State().IsTerminal() {
		return nil, errors.FailedPreconditionf("battle %s is %s, not complete", session.ID(), session.State())
	}
	if battleType == "" {
		battleType = BattleTypeStandard
	}

	record := &BattleRecord{
		ID:          session.ID(),
		BattleType:  battleType,
		Status:      StatusCompleted,
		WinnerID:    session.WinnerID(),
		Reason:      session.EndReason(),
		Rounds:      session.Round(),
		Log:         session.Log(),
		CreatedAt:   session.StartedAt(),
		CompletedAt: session.EndedAt(),
	}

	switch record.Reason {
	case battle.ReasonForfeit, battle.ReasonAborted:
		record.Status = StatusAbandoned
	}

	if !record.CompletedAt.Before(record.CreatedAt) {
		record.DurationSeconds = int64(record.CompletedAt.Sub(record.CreatedAt).Seconds())
	}

	for _, p := range session.Participants() {
		pr := ParticipantRecord{
			ID:         p.ID,
			OwnerID:    p.OwnerID,
			Name:       p.Name(),
			IsPlayer:   p.IsPlayer,
			Initiative: p.Initiative,
			MaxHP:      p.MaxHP,
			FinalHP:    p.CurrentHP,
		}
		if p.StatBlock != nil {
			pr.StatBlockID = p.StatBlock.ID
		}
		if p.ID == record.WinnerID {
			record.WinnerOwnerID = p.OwnerID
			record.WinnerName = pr.Name
		}
		record.Participants = append(record.Participants, pr)
	}

	return record, nil
}

// tally adds one record to an owner's win/loss record
func tally(stats *StatsOutput, record *BattleRecord, ownerID string) {
	stats.Total++
	switch {
	case record.WinnerID == "":
		stats.Drawn++
	case record.WinnerOwnerID == ownerID:
		stats.Won++
	default:
		stats.Lost++
	}
}

func validateRecord(record *BattleRecord) error {
	vb := errors.NewValidationBuilder()
	if record == nil {
		vb.RequiredField("Record")
		return vb.Build()
	}
	errors.ValidateRequired("ID", record.ID, vb)
	if !record.BattleType.Valid() {
		vb.InvalidField("BattleType", string(record.BattleType))
	}
	if len(record.Participants) < 2 {
		vb.Field("Participants", "at least two participants are required")
	}
	if record.CompletedAt.IsZero() {
		vb.RequiredField("CompletedAt")
	}
	return vb.Build()
}
