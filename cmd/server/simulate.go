package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/miniature-battle/internal/config"
	engine "github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/orchestrators/battle"
	battlehistory "github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history"
)

var (
	simulateSeed     uint64
	simulateMaxTurns int
	simulateSRD      bool
	simulateCatalog  string
	simulateJSON     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [stat-block-id] [stat-block-id...]",
	Short: "Run an AI-only battle locally",
	Long: `Simulate runs a free-for-all battle between catalog miniatures with every ` +
		`participant controlled by the AI policy, then prints the outcome.`,
	Example: `  miniature-battle simulate knight goblin --seed 42
  miniature-battle simulate orc skeleton ogre --srd`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "Seed for reproducible dice (0 rolls with crypto randomness)")
	simulateCmd.Flags().IntVar(&simulateMaxTurns, "max-turns", 500, "Abort the battle after this many turns")
	simulateCmd.Flags().BoolVar(&simulateSRD, "srd", false, "Resolve catalog weapons through the D&D 5e API")
	simulateCmd.Flags().StringVar(&simulateCatalog, "catalog", "", "Path to a miniature catalog YAML file")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "Output the final battle and log as JSON")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir, err := os.MkdirTemp("", "miniature-battle-sim-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	cfg.HistoryBackend = config.HistoryBackendSQLite
	cfg.SQLitePath = filepath.Join(dir, "history.db")
	cfg.SRDEnabled = simulateSRD
	cfg.TimeoutPolicy = string(battle.TimeoutPass)
	if simulateCatalog != "" {
		cfg.CatalogPath = simulateCatalog
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	var roller dice.Roller
	if simulateSeed != 0 {
		roller = newSeededRoller(simulateSeed)
	}

	svc, err := buildServices(ctx, cfg, logger, roller)
	if err != nil {
		return err
	}
	defer svc.Close()

	combatants := make([]battle.CombatantInput, 0, len(args))
	for _, id := range args {
		combatants = append(combatants, battle.CombatantInput{StatBlockID: id})
	}

	initOut, err := svc.battle.InitializeBattle(ctx, &battle.InitializeBattleInput{
		Combatants: combatants,
		BattleType: battlehistory.BattleTypePractice,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize battle: %w", err)
	}
	battleID := initOut.BattleID

	rollOut, err := svc.battle.RollInitiative(ctx, &battle.RollInitiativeInput{BattleID: battleID})
	if err != nil {
		return fmt.Errorf("failed to roll initiative: %w", err)
	}

	names := make(map[string]string, len(rollOut.Battle.Participants))
	if !simulateJSON {
		fmt.Printf("⚔️  Battle %s\n\nInitiative order:\n", battleID)
	}
	for i, p := range rollOut.Battle.Participants {
		names[p.ID] = p.Name
		if !simulateJSON {
			fmt.Printf("  %d. %s (%s) initiative %d, %d HP\n", i+1, p.Name, p.ID, p.Initiative, p.MaxHP)
		}
	}
	if !simulateJSON {
		fmt.Println()
	}

	var onTurn func(*battle.BattleView, *battle.TakeAITurnOutput)
	if !simulateJSON {
		onTurn = func(before *battle.BattleView, out *battle.TakeAITurnOutput) {
			printTurn(before.Round, before.ActiveParticipantID, out, names)
		}
	}

	view, err := playOut(ctx, svc.battle, rollOut.Battle, simulateMaxTurns, onTurn)
	if err != nil {
		return err
	}

	logOut, err := svc.battle.GetBattleLog(ctx, &battle.GetBattleLogInput{BattleID: battleID})
	if err != nil {
		return fmt.Errorf("failed to read battle log: %w", err)
	}

	if simulateJSON {
		data, err := json.MarshalIndent(map[string]any{
			"battle": view,
			"log":    logOut.Entries,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal battle: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println()
	switch {
	case view.WinnerID != "":
		fmt.Printf("🏆 %s wins by %s after %d rounds\n", names[view.WinnerID], view.EndReason, view.Round)
	default:
		fmt.Printf("🤝 No winner (%s) after %d rounds\n", view.EndReason, view.Round)
	}
	for _, p := range view.Participants {
		fmt.Printf("  %s: %d/%d HP (%.0f%%)\n", p.Name, p.CurrentHP, p.MaxHP, p.HPPercentage)
	}
	fmt.Printf("\n%d log entries recorded\n", len(logOut.Entries))

	return nil
}

// playOut lets the AI take every turn until the battle ends. The battle is
// aborted after maxTurns.
func playOut(
	ctx context.Context,
	svc battle.Service,
	view *battle.BattleView,
	maxTurns int,
	onTurn func(before *battle.BattleView, out *battle.TakeAITurnOutput),
) (*battle.BattleView, error) {
	battleID := view.ID
	for turns := 0; !view.State.IsTerminal(); turns++ {
		if turns >= maxTurns {
			abortOut, err := svc.AbortBattle(ctx, &battle.AbortBattleInput{BattleID: battleID})
			if err != nil {
				return nil, fmt.Errorf("failed to abort battle: %w", err)
			}
			return abortOut.Battle, nil
		}

		turnOut, err := svc.TakeAITurn(ctx, &battle.TakeAITurnInput{BattleID: battleID})
		if err != nil {
			return nil, fmt.Errorf("AI turn failed in round %d: %w", view.Round, err)
		}

		if onTurn != nil {
			onTurn(view, turnOut)
		}
		view = turnOut.Battle
	}
	return view, nil
}

func printTurn(round int, actorID string, out *battle.TakeAITurnOutput, names map[string]string) {
	actor := names[actorID]
	if out.ActionName == "" || out.Result == nil {
		fmt.Printf("[round %d] %s passes\n", round, actor)
		return
	}

	target := names[out.TargetID]
	r := out.Result
	switch r.Kind {
	case engine.ResolutionAttack:
		if !r.Hit {
			fmt.Printf("[round %d] %s uses %s on %s: miss (%d)\n", round, actor, out.ActionName, target, r.Total)
			return
		}
		crit := ""
		if r.Critical {
			crit = " critical"
		}
		fmt.Printf("[round %d] %s uses %s on %s:%s hit for %d %s\n",
			round, actor, out.ActionName, target, crit, r.Damage, r.DamageType)
	case engine.ResolutionSave:
		outcome := "fails the save"
		if r.Saved {
			outcome = "saves"
		}
		fmt.Printf("[round %d] %s uses %s on %s: %s, %d %s damage\n",
			round, actor, out.ActionName, target, outcome, r.Damage, r.DamageType)
	default:
		fmt.Printf("[round %d] %s uses %s on %s: %d damage\n", round, actor, out.ActionName, target, r.Damage)
	}
}

// seededRoller makes simulations reproducible. It is not safe for concurrent use.
type seededRoller struct {
	rng *rand.Rand
}

func newSeededRoller(seed uint64) *seededRoller {
	return &seededRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *seededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size: %d", size)
	}
	return r.rng.IntN(size) + 1, nil
}

func (r *seededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid dice count: %d", count)
	}
	rolls := make([]int, count)
	for i := range rolls {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		rolls[i] = v
	}
	return rolls, nil
}
