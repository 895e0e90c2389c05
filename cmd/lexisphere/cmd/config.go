package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lexisphere/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the config file location, creating defaults if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureExists(); err != nil {
			return err
		}
		fmt.Println(filepath.Join(config.Dir(), "config.toml"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
