package v1alpha1

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	engine "github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
	"github.com/KirkDiggler/miniature-battle/internal/orchestrators/battle"
	battlehistory "github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// Handler implements the battle gRPC service
type Handler struct {
	battleService battle.Service
}

var _ BattleServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		battleService: cfg.BattleService,
	}, nil
}

type combatantRequest struct {
	StatBlockID string               `json:"stat_block_id"`
	StatBlock   *miniature.StatBlock `json:"stat_block"`
	IsPlayer    bool                 `json:"is_player"`
	OwnerID     string               `json:"owner_id"`
}

type initializeBattleRequest struct {
	Combatants []combatantRequest `json:"combatants"`
	BattleType string             `json:"battle_type"`
	TurnTimer  int                `json:"turn_timer"`
}

type battleRequest struct {
	BattleID string `json:"battle_id"`
}

type selectActionRequest struct {
	BattleID   string `json:"battle_id"`
	ActionName string `json:"action_name"`
	TargetID   string `json:"target_id"`
}

type battleLogRequest struct {
	BattleID string `json:"battle_id"`
	Limit    int    `json:"limit"`
}

type abortBattleRequest struct {
	BattleID                string `json:"battle_id"`
	ForfeitingParticipantID string `json:"forfeiting_participant_id"`
}

type tickTimerRequest struct {
	BattleID string `json:"battle_id"`
	Elapsed  int    `json:"elapsed"`
}

type applyConditionRequest struct {
	BattleID      string           `json:"battle_id"`
	ParticipantID string           `json:"participant_id"`
	Condition     engine.Condition `json:"condition"`
}

type applyHealingRequest struct {
	BattleID      string `json:"battle_id"`
	ParticipantID string `json:"participant_id"`
	Amount        int    `json:"amount"`
}

type applyAreaDamageRequest struct {
	BattleID       string   `json:"battle_id"`
	ParticipantIDs []string `json:"participant_ids"`
	Amount         int      `json:"amount"`
	DamageType     string   `json:"damage_type"`
}

type ownerRequest struct {
	OwnerID string `json:"owner_id"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

// battleMessage is the wire shape of a battle snapshot
type battleMessage struct {
	ID                  string                     `json:"id"`
	BattleType          string                     `json:"battle_type,omitempty"`
	State               string                     `json:"state"`
	PausedFrom          string                     `json:"paused_from,omitempty"`
	Round               int                        `json:"round"`
	TurnCount           int                        `json:"turn_count"`
	TurnTimer           int                        `json:"turn_timer"`
	ActiveParticipantID string                     `json:"active_participant_id,omitempty"`
	IsPlayerTurn        bool                       `json:"is_player_turn"`
	SelectedAction      string                     `json:"selected_action,omitempty"`
	SelectedTargetID    string                     `json:"selected_target_id,omitempty"`
	Participants        []engine.ParticipantStatus `json:"participants"`
	WinnerID            string                     `json:"winner_id,omitempty"`
	EndReason           string                     `json:"end_reason,omitempty"`
	StartedAt           *time.Time                 `json:"started_at,omitempty"`
	EndedAt             *time.Time                 `json:"ended_at,omitempty"`
}

type battleResponse struct {
	BattleID string               `json:"battle_id,omitempty"`
	Battle   *battleMessage       `json:"battle"`
	Result   *engine.ActionResult `json:"result,omitempty"`
}

type tickTimerResponse struct {
	Expired bool                 `json:"expired"`
	Result  *engine.ActionResult `json:"result,omitempty"`
	Battle  *battleMessage       `json:"battle"`
}

type aiTurnResponse struct {
	ActionName string               `json:"action_name"`
	TargetID   string               `json:"target_id"`
	Result     *engine.ActionResult `json:"result"`
	Battle     *battleMessage       `json:"battle"`
}

type healingResponse struct {
	Healed int            `json:"healed"`
	Battle *battleMessage `json:"battle"`
}

type battleLogResponse struct {
	Entries []engine.LogEntry `json:"entries"`
}

type participantsResponse struct {
	Participants []engine.ParticipantStatus `json:"participants"`
}

type availableActionsResponse struct {
	ParticipantID string             `json:"participant_id"`
	Actions       []miniature.Action `json:"actions"`
}

type listHistoryResponse struct {
	Records []*battlehistory.BattleRecord `json:"records"`
	Total   int                           `json:"total"`
}

type historyResponse struct {
	Record *battlehistory.BattleRecord `json:"record"`
}

type statsResponse struct {
	Won   int `json:"won"`
	Lost  int `json:"lost"`
	Drawn int `json:"drawn"`
	Total int `json:"total"`
}

// InitializeBattle creates a battle from catalog or inline combatants
func (h *Handler) InitializeBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in initializeBattleRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	combatants := make([]battle.CombatantInput, 0, len(in.Combatants))
	for _, c := range in.Combatants {
		combatants = append(combatants, battle.CombatantInput{
			StatBlockID: c.StatBlockID,
			StatBlock:   c.StatBlock,
			IsPlayer:    c.IsPlayer,
			OwnerID:     c.OwnerID,
		})
	}

	output, err := h.battleService.InitializeBattle(ctx, &battle.InitializeBattleInput{
		Combatants: combatants,
		BattleType: battlehistory.BattleType(in.BattleType),
		TurnTimer:  in.TurnTimer,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{
		BattleID: output.BattleID,
		Battle:   toBattleMessage(output.Battle),
	})
}

// RollInitiative orders the participants and starts the first turn
func (h *Handler) RollInitiative(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.RollInitiative(ctx, &battle.RollInitiativeInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// SelectAction picks an action and target for the active participant
func (h *Handler) SelectAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in selectActionRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}
	if in.ActionName == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("action_name is required"))
	}

	output, err := h.battleService.SelectAction(ctx, &battle.SelectActionInput{
		BattleID:   in.BattleID,
		ActionName: in.ActionName,
		TargetID:   in.TargetID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// ResolveSelectedAction executes the selected action
func (h *Handler) ResolveSelectedAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.ResolveSelectedAction(ctx, &battle.ResolveSelectedActionInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{
		Result: output.Result,
		Battle: toBattleMessage(output.Battle),
	})
}

// GetBattleLog returns the battle log, optionally only the latest entries
func (h *Handler) GetBattleLog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in battleLogRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.GetBattleLog(ctx, &battle.GetBattleLogInput{
		BattleID: in.BattleID,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleLogResponse{Entries: output.Entries})
}

// GetParticipantStatus returns hit point progress for every participant
func (h *Handler) GetParticipantStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.GetParticipantStatus(ctx, &battle.GetParticipantStatusInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(participantsResponse{Participants: output.Participants})
}

// GetBattle returns a battle snapshot
func (h *Handler) GetBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.GetBattle(ctx, &battle.GetBattleInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// GetAvailableActions lists what the active participant can do
func (h *Handler) GetAvailableActions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.GetAvailableActions(ctx, &battle.GetAvailableActionsInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(availableActionsResponse{
		ParticipantID: output.ParticipantID,
		Actions:       output.Actions,
	})
}

// CancelSelection drops the selected action
func (h *Handler) CancelSelection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.CancelSelection(ctx, &battle.CancelSelectionInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// PauseBattle suspends an active battle
func (h *Handler) PauseBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.PauseBattle(ctx, &battle.PauseBattleInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// ResumeBattle continues a paused battle
func (h *Handler) ResumeBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.ResumeBattle(ctx, &battle.ResumeBattleInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// AbortBattle ends a battle early, by forfeit when a participant is named
func (h *Handler) AbortBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in abortBattleRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.AbortBattle(ctx, &battle.AbortBattleInput{
		BattleID:                in.BattleID,
		ForfeitingParticipantID: in.ForfeitingParticipantID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// TickTimer counts down the turn timer and applies the timeout policy on expiry
func (h *Handler) TickTimer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in tickTimerRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.TickTimer(ctx, &battle.TickTimerInput{
		BattleID: in.BattleID,
		Elapsed:  in.Elapsed,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(tickTimerResponse{
		Expired: output.Expired,
		Result:  output.Result,
		Battle:  toBattleMessage(output.Battle),
	})
}

// TakeAITurn lets the AI policy act on an enemy turn
func (h *Handler) TakeAITurn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.TakeAITurn(ctx, &battle.TakeAITurnInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(aiTurnResponse{
		ActionName: output.ActionName,
		TargetID:   output.TargetID,
		Result:     output.Result,
		Battle:     toBattleMessage(output.Battle),
	})
}

// ApplyCondition attaches a condition to a participant
func (h *Handler) ApplyCondition(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in applyConditionRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}
	if in.ParticipantID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("participant_id is required"))
	}

	output, err := h.battleService.ApplyCondition(ctx, &battle.ApplyConditionInput{
		BattleID:      in.BattleID,
		ParticipantID: in.ParticipantID,
		Condition:     in.Condition,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// ApplyHealing restores hit points to a participant
func (h *Handler) ApplyHealing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in applyHealingRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}
	if in.ParticipantID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("participant_id is required"))
	}

	output, err := h.battleService.ApplyHealing(ctx, &battle.ApplyHealingInput{
		BattleID:      in.BattleID,
		ParticipantID: in.ParticipantID,
		Amount:        in.Amount,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(healingResponse{
		Healed: output.Healed,
		Battle: toBattleMessage(output.Battle),
	})
}

// ApplyAreaDamage deals the same damage to several participants
func (h *Handler) ApplyAreaDamage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in applyAreaDamageRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("battle_id", in.BattleID, vb)
	if len(in.ParticipantIDs) == 0 {
		vb.Field("participant_ids", "is required")
	}
	errors.ValidateMin("amount", in.Amount, 0, vb)
	errors.ValidateEnum("damage_type", in.DamageType, miniature.DamageTypeNames(), vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.ApplyAreaDamage(ctx, &battle.ApplyAreaDamageInput{
		BattleID:       in.BattleID,
		ParticipantIDs: in.ParticipantIDs,
		Amount:         in.Amount,
		DamageType:     miniature.DamageType(in.DamageType),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(battleResponse{Battle: toBattleMessage(output.Battle)})
}

// ResetBattle discards a battlectx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.battleService.ResetBattle(ctx, &battle.ResetBattleInput{BattleID: battleID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// ListHistory pages through an owner's archived battles
func (h *Handler) ListHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ownerRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.OwnerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}

	output, err := h.battleService.ListHistory(ctx, &battle.ListHistoryInput{
		OwnerID: in.OwnerID,
		Limit:   in.Limit,
		Offset:  in.Offset,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(listHistoryResponse{
		Records: output.Records,
		Total:   output.Total,
	})
}

// GetHistory returns one archived battle
func (h *Handler) GetHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, err := decodeBattleID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.battleService.GetHistory(ctx, &battle.GetHistoryInput{BattleID: battleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(historyResponse{Record: output.Record})
}

// GetStats returns an owner's win/loss record
func (h *Handler) GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ownerRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.OwnerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}

	output, err := h.battleService.GetStats(ctx, &battle.GetStatsInput{OwnerID: in.OwnerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(statsResponse{
		Won:   output.Won,
		Lost:  output.Lost,
		Drawn: output.Drawn,
		Total: output.Total,
	})
}

func decodeBattleID(req *structpb.Struct) (string, error) {
	var in battleRequest
	if err := decode(req, &in); err != nil {
		return "", err
	}
	if in.BattleID == "" {
		return "", errors.InvalidArgument("battle_id is required")
	}
	return in.BattleID, nil
}

// decode maps a request struct onto a tagged Go struct. Unknown fields are rejected.
func decode(req *structpb.Struct, v any) error {
	if req == nil {
		return nil
	}
	data, err := req.MarshalJSON()
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request")
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	out, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return out, nil
}

func toBattleMessage(view *battle.BattleView) *battleMessage {
	if view == nil {
		return nil
	}
	msg := &battleMessage{
		ID:                  view.ID,
		BattleType:          string(view.BattleType),
		State:               string(view.State),
		PausedFrom:          string(view.PausedFrom),
		Round:               view.Round,
		TurnCount:           view.TurnCount,
		TurnTimer:           view.TurnTimer,
		ActiveParticipantID: view.ActiveParticipantID,
		IsPlayerTurn:        view.IsPlayerTurn,
		SelectedAction:      view.SelectedAction,
		SelectedTargetID:    view.SelectedTargetID,
		Participants:        view.Participants,
		WinnerID:            view.WinnerID,
		EndReason:           view.EndReason,
	}
	if !view.StartedAt.IsZero() {
		startedAt := view.StartedAt
		msg.StartedAt = &startedAt
	}
	if !view.EndedAt.IsZero() {
		endedAt := view.EndedAt
		msg.EndedAt = &endedAt
	}
	return msg
}
