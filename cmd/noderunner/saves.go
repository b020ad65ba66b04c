package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	nrcore "github.com/vovakirdan/noderunner/internal/games/noderunner/core"
	"github.com/vovakirdan/noderunner/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `Lists the autosave and save slots 1-4.

Examples:
  noderunner saves
  noderunner saves delete 2`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Empty a save slot (0 is the autosave)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesDeleteCmd)
}

func slotName(slot int) string {
	if slot == nrcore.AutosaveSlot {
		return "auto"
	}
	return strconv.Itoa(slot)
}

func runSaves(cmd *cobra.Command, args []string) error {
	saves, err := storage.OpenSaves(storage.AppName)
	if err != nil {
		return err
	}
	infos, err := saves.List()
	if err != nil {
		logger.Warn("some save slots could not be read", "error", err)
	}
	if len(infos) == 0 {
		fmt.Println("No saves.")
		return nil
	}

	fmt.Printf("  %-4s  %-28s  %4s  %8s  %5s  %s\n", "Slot", "Pack", "Node", "Score", "Lives", "State")
	for _, info := range infos {
		state := "level start"
		if info.HasSnapshot {
			state = "mid-game"
		}
		d := info.Data
		fmt.Printf("  %-4s  %-28s  %4d  %8d  %5d  %s\n", slotName(info.Slot), d.Pack, d.Level+1, d.Score, d.Lives, state)
	}
	return nil
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	slot, err := strconv.Atoi(args[0])
	if err != nil || !nrcore.ValidSlot(slot) {
		return fmt.Errorf("slot must be a number from %d to %d", nrcore.AutosaveSlot, nrcore.LastSlot)
	}
	saves, err := storage.OpenSaves(storage.AppName)
	if err != nil {
		return err
	}
	if err := saves.Delete(slot); err != nil {
		return err
	}
	logger.Info("save slot emptied", "slot", slotName(slot))
	return nil
}
