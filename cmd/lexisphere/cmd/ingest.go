package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phanxgames/lexisphere"
	"github.com/phanxgames/lexisphere/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.json>...",
	Short: "Load term records from JSON files into the store",
	Long: `Ingest reads term record JSON files and upserts them into the
configured store. Each file holds either a single record or an array of
records. Synonyms that only exist as text are stored unresolved; run
"lexisphere link" afterward to resolve them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		total := 0
		for _, path := range args {
			records, err := readRecords(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			for _, rec := range records {
				if err := st.UpsertTerm(cmd.Context(), rec); err != nil {
					return err
				}
				total++
			}
		}

		count, err := st.Count(cmd.Context())
		if err != nil {
			return err
		}
		color.Green("ingested %d records (%d terms in store)", total, count)
		return nil
	},
}

// readRecords parses a file holding either one record or an array.
func readRecords(path string) ([]*lexisphere.TermRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var many []*lexisphere.TermRecord
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one lexisphere.TermRecord
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return []*lexisphere.TermRecord{&one}, nil
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
