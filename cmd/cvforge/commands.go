package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvforge/cvforge/internal/config"
	"github.com/cvforge/cvforge/internal/resume"
)

// --- tags ---

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the bullet tags used in a resume",
	Long: `List the distinct bullet tags in a resume with the number of
bullets carrying each, so you know what --include and --exclude can match.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")

		doc, err := resume.Load(in)
		if err != nil {
			return err
		}

		inventory := doc.TagInventory()
		if len(inventory) == 0 {
			fmt.Println("No tagged bullets found.")
			return nil
		}

		for _, tc := range inventory {
			fmt.Printf("  %s %d\n", colorize(colorBold, tc.Tag), tc.Count)
		}
		return nil
	},
}

func init() {
	tagsCmd.Flags().String("in", "", "input YAML file")
	tagsCmd.MarkFlagRequired("in")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s  (env %s)\n", colorize(colorBold, k.Key), k.Value, k.EnvVar)
		}
		return nil
	},
}
