package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lexisphere/internal/config"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lexisphere",
	Short: "Interactive 3D viewer for term graphs",
	Long: `Lexisphere explores a thesaurus as a 3D constellation: the focused
term sits at the center with its synonyms arranged around it. Drag to
rotate (with inertia), hover to highlight, click a synonym to travel
to its neighborhood.

The view, serve, ingest, and link commands share one config file; see
"lexisphere config" for its location.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgPath != "" {
			loaded, err := config.LoadFile(cfgPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "config %s: %v\n", cfgPath, err)
				os.Exit(1)
			}
			cfg = loaded
		} else {
			cfg = config.Load()
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: XDG config dir)")
}
