package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileview/internal/config"
	"github.com/vovakirdan/tileview/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available generators",
	Long:  `Shows every world generator that can be selected with --generator.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	gens := registry.List()

	if len(gens) == 0 {
		fmt.Println("No generators available.")
		return
	}

	fmt.Println("Available generators:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range gens {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	def := config.Default().World.Generator
	for _, g := range gens {
		title := g.Title
		if g.ID == def {
			title += " (default)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, title)
	}

	fmt.Println()
	fmt.Println("Run 'tileview view --generator <id>' to explore a world.")
}
