package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvforge/cvforge/internal/config"
	"github.com/cvforge/cvforge/internal/filter"
	"github.com/cvforge/cvforge/internal/render"
	"github.com/cvforge/cvforge/internal/resume"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "cvforge",
	Short: "Build a Markdown resume from YAML with tagged bullets",
	Long: `Build a Markdown resume from YAML with tagged bullets.

Bullets carry tags; --include, --exclude, and --mode choose which bullets
appear, so one source file can produce a resume tailored per target role.

Examples:
  cvforge --in resume.yaml --out resume.md
  cvforge --in resume.yaml --out resume.java.md --include java,devops
  cvforge --in resume.yaml --out resume.md --include go,aws --mode all --exclude legacy`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		include, _ := cmd.Flags().GetString("include")
		exclude, _ := cmd.Flags().GetString("exclude")
		mode, _ := cmd.Flags().GetString("mode")

		return runBuild(in, out, include, exclude, mode)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().String("in", "", "input YAML file (e.g. resume.yaml)")
	rootCmd.Flags().String("out", "", "output Markdown file (e.g. resume.java.md)")
	rootCmd.Flags().String("include", "", "comma-separated tags to include (e.g. java,devops)")
	rootCmd.Flags().String("exclude", "", "comma-separated tags to exclude")
	rootCmd.Flags().String("mode", "", "tag match mode when include is provided: any (OR) or all (AND)")
	rootCmd.MarkFlagRequired("in")
	rootCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runBuild is the core operation: load, filter, render, write. Any failure
// aborts before the output file is touched.
func runBuild(in, out, include, exclude, mode string) error {
	if mode == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		mode = cfg.Build.Mode
	}

	sel, err := filter.NewSelection(include, exclude, mode)
	if err != nil {
		return err
	}

	for _, tag := range sel.Include.Sorted() {
		if sel.Exclude.Has(tag) {
			printWarning("tag %q is both included and excluded; exclude wins", tag)
		}
	}

	doc, err := resume.Load(in)
	if err != nil {
		return err
	}

	md := render.Build(doc, sel)
	if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	printSuccess("Wrote %s", out)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
