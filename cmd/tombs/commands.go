package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tombs/internal/game/action"
	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/engine"
	"github.com/cory-johannsen/tombs/internal/storage"
)

var (
	simulateTurns int
	simulateFresh bool
	inspectLast   int
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game and save it to the slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), cmd.Flags().Changed("seed"))
		if err != nil {
			return err
		}
		defer a.Close()

		deps, release, err := a.buildDeps()
		if err != nil {
			return err
		}
		defer release()

		e, err := engine.NewGame(deps)
		if err != nil {
			return err
		}
		if err := a.save(cmd.Context(), e); err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), a.slot, e, 3)
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play the saved game for a number of turns",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), cmd.Flags().Changed("seed"))
		if err != nil {
			return err
		}
		defer a.Close()

		deps, release, err := a.buildDeps()
		if err != nil {
			return err
		}
		defer release()

		e, err := a.loadOrNew(cmd.Context(), deps, simulateFresh)
		if err != nil {
			return err
		}

		pilot := ai.NewAutopilot()
		runErr := autoplay(cmd.Context(), e, pilot, simulateTurns, a.logger)
		// A failed or interrupted run still saves what was reached.
		if err := a.save(context.WithoutCancel(cmd.Context()), e); err != nil {
			return errors.Join(runErr, err)
		}
		if runErr != nil {
			return runErr
		}
		printSummary(cmd.OutOrStdout(), a.slot, e, 5)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the state of a saved game",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), cmd.Flags().Changed("seed"))
		if err != nil {
			return err
		}
		defer a.Close()

		deps, release, err := a.buildDeps()
		if err != nil {
			return err
		}
		defer release()

		blob, err := a.store.Load(cmd.Context(), a.slot)
		if err != nil {
			return err
		}
		e, err := engine.Load(blob, deps)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), a.slot, e, inspectLast)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved games",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		saves, err := a.store.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLOT\tSIZE\tUPDATED")
		for _, s := range saves {
			fmt.Fprintf(w, "%s\t%d\t%s\n", s.Slot, s.Size, s.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [slot]",
	Short: "Delete a saved game",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		slot := a.slot
		if len(args) == 1 {
			slot = args[0]
		}
		if err := a.store.Delete(cmd.Context(), slot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", slot)
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simulateTurns, "turns", 100, "number of player actions to take")
	simulateCmd.Flags().BoolVar(&simulateFresh, "fresh", false, "start a new game instead of loading the slot")
	inspectCmd.Flags().IntVar(&inspectLast, "messages", 10, "number of recent messages to print")
}

func (a *app) save(ctx context.Context, e *engine.Engine) error {
	blob, err := e.Save()
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, a.slot, blob); err != nil {
		return err
	}
	a.logger.Info("game saved", zap.Int("floor", e.Floor()), zap.Int("turn", e.Turn()), zap.Int("bytes", len(blob)))
	return nil
}

// loadOrNew loads the slot, starting a new game when it is empty or fresh is set.
func (a *app) loadOrNew(ctx context.Context, deps engine.Deps, fresh bool) (*engine.Engine, error) {
	if !fresh {
		blob, err := a.store.Load(ctx, a.slot)
		switch {
		case err == nil:
			return engine.Load(blob, deps)
		case !errors.Is(err, storage.ErrSaveNotFound):
			return nil, err
		}
	}
	return engine.NewGame(deps)
}

// autoplay drives e with pilot for up to turns player actions, levelling up
// strength whenever a level is gained. It stops early when the player dies or
// ctx is cancelled.
func autoplay(ctx context.Context, e *engine.Engine, pilot *ai.Autopilot, turns int, logger *zap.Logger) error {
	for i := 0; i < turns && !e.GameOver(); i++ {
		if ctx.Err() != nil {
			logger.Info("simulation interrupted", zap.Int("turn", e.Turn()))
			return nil
		}
		if e.NeedsLevelUp() {
			if err := e.LevelUp(engine.ChooseStrength); err != nil {
				return err
			}
		}
		act := pilot.Next(e)
		err := e.HandlePlayerAction(act)
		switch {
		case err == nil:
		case errors.Is(err, action.ErrImpossible):
			logger.Debug("autopilot action refused", zap.Error(err))
		case errors.Is(err, engine.ErrPlayerDead):
			return nil
		default:
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, slot string, e *engine.Engine, messages int) {
	p := e.Player()
	fmt.Fprintf(w, "slot %s: floor %d, turn %d\n", slot, e.Floor(), e.Turn())
	status := "alive"
	if e.GameOver() {
		status = "dead"
	}
	fmt.Fprintf(w, "%s (%s): HP %d/%d, AC %d, level %d, XP %d\n",
		p.Name, status, p.Fighter.HP(), p.Fighter.MaxHP, p.Fighter.ArmorClass(),
		p.Level.CurrentLevel, p.Level.CurrentXP)
	if p.Equipment != nil {
		if p.Equipment.Weapon != nil {
			fmt.Fprintf(w, "  weapon: %s\n", p.Equipment.Weapon.Name)
		}
		if p.Equipment.Armor != nil {
			fmt.Fprintf(w, "  armor:  %s\n", p.Equipment.Armor.Name)
		}
	}
	for _, m := range e.Log().Last(max(messages, 0)) {
		fmt.Fprintf(w, "  > %s\n", m.FullText())
	}
}
