package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rolling-stone/internal/registry"
)

var prefabsCmd = &cobra.Command{
	Use:   "prefabs",
	Short: "List segment kinds and the configured catalog",
	Long: `Shows every registered segment kind and the segments the effective config
builds from them, with their anchors.`,
	Args: cobra.NoArgs,
	Run:  runPrefabs,
}

func runPrefabs(_ *cobra.Command, _ []string) {
	kinds := registry.List()

	fmt.Println("Segment kinds:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, k := range kinds {
		maxIDLen = max(maxIDLen, len(k.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, k := range kinds {
		fmt.Printf("  %-*s  %s\n", maxIDLen, k.ID, k.Title)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	env := &registry.Env{Config: cfg, Rng: rand.New(rand.NewSource(seed()))}
	prefabs, catErr := registry.Catalog(env, cfg.Segments)

	fmt.Println()
	fmt.Println("Catalog:")
	fmt.Println()
	fmt.Printf("  %-16s  %-14s  %7s  %6s  %-18s  %s\n", "Name", "Kind", "Length", "Width", "Entry", "Exit")
	for i := range prefabs {
		p := &prefabs[i]
		entry := p.EntryOffset()
		exitStr := "none"
		if exit, ok := p.ExitOffset(); ok {
			exitStr = fmt.Sprintf("(%.1f, %.1f, %.1f)", exit.X(), exit.Y(), exit.Z())
		}
		fmt.Printf("  %-16s  %-14s  %7.1f  %6.1f  (%.1f, %.1f, %.1f)  %s\n",
			p.Name, p.Kind, p.Length, p.GroundWidth(),
			entry.X(), entry.Y(), entry.Z(), exitStr)
	}

	if catErr != nil {
		fmt.Fprintf(os.Stderr, "\nCatalog problems: %v\n", catErr)
		os.Exit(1)
	}
}
