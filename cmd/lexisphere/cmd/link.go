package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phanxgames/lexisphere/internal/store"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Resolve synonym text to term ids across the store",
	Long: `Link walks every term in the store and resolves its synonym text
against the term table: a unique match wins outright, then a unique
part-of-speech match, then the candidate sharing the most synonyms with
the source term. Unresolvable synonyms stay as display-only text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.LinkAll(cmd.Context(), logger)
		if err != nil {
			return err
		}

		color.Green("linking complete")
		color.Cyan("  %d terms processed", stats.Terms)
		color.Cyan("  %d synonym edges resolved", stats.Resolved)
		if stats.Left > 0 {
			color.Yellow("  %d edges unresolved", stats.Left)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}
