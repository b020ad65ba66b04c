package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels/formats"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level and pack files",
	Long: `Parses and validates .txt, .yaml and .nlp files and reports every
problem found. Exits non-zero if any file is invalid.

Examples:
  noderunner validate levels/first.txt
  noderunner validate levels/*.nlp`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	loader := levels.NewLoader(".", logger)
	failed := 0
	for _, path := range args {
		if err := validateFile(loader, path); err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(args))
	}
	return nil
}

func validateFile(loader *levels.Loader, path string) error {
	if strings.EqualFold(filepath.Ext(path), formats.PackExtension) {
		pack, err := loader.LoadPackFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("ok    %s: pack %q, %d levels\n", path, pack.Name, pack.Len())
		return nil
	}

	lvl, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	if err := lvl.Validate(); err != nil {
		return err
	}
	if _, err := lvl.Data(); err != nil {
		return err
	}
	fmt.Printf("ok    %s: %q %dx%d\n", path, lvl.Name, lvl.Width(), lvl.Height())
	return nil
}
