// Package main is the tombs command line: it starts, plays, inspects and
// manages saved dungeon games.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	slotFlag   string
	seedFlag   int64
)

var rootCmd = &cobra.Command{
	Use:   "tombs",
	Short: "Turn-based dungeon crawler",
	Long: `tombs generates dungeon floors, plays them turn by turn and keeps
saved games in a file, PostgreSQL or Redis store.`,
	SilenceUsage: true,
}

func main() {
	// An interrupted simulation still saves the turns it played.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&slotFlag, "slot", "", "save slot (defaults to storage.slot)")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "dice seed (defaults to game.seed, 0 picks one)")

	rootCmd.AddCommand(newCmd, simulateCmd, inspectCmd, listCmd, deleteCmd)
}
