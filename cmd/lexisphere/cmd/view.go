package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phanxgames/lexisphere"
)

var (
	viewScript string
	viewMode   string
)

var viewCmd = &cobra.Command{
	Use:   "view <term-id>",
	Short: "Open the interactive viewer at a term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := &lexisphere.HTTPLoader{
			BaseURL:    cfg.Loader.BaseURL,
			MaxRetries: cfg.Loader.MaxRetries,
			Logger:     logger,
		}

		scene := lexisphere.NewScene(cfg.Viewer.Width, cfg.Viewer.Height)
		scene.Rotation().DragSensitivity = cfg.Viewer.Sensitivity
		scene.Rotation().Decay = cfg.Viewer.InertiaDecay
		scene.SetClickThreshold(cfg.Viewer.ClickThreshold)
		scene.SetHitTolerance(cfg.Viewer.HitTolerance)
		scene.ScreenshotDir = cfg.Viewer.ScreenshotDir
		scene.Transitions().SetLoader(loader)
		scene.Transitions().SetLogger(logger)
		scene.Transitions().TranslateDuration = float32(cfg.Viewer.TranslateSec)
		scene.Transitions().ExpandDuration = float32(cfg.Viewer.ExpandSec)
		mode := cfg.Viewer.TransitionMode
		if viewMode != "" {
			mode = viewMode
		}
		scene.Transitions().Mode = lexisphere.ParseTransitionMode(mode)

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Loader.TimeoutSec)*time.Second)
		record, err := loader.LoadTermByID(ctx, args[0])
		cancel()
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}
		scene.BuildGraph(record)

		scene.OnSelect(func(n *lexisphere.Node) {
			color.Cyan("→ %s", n.Term)
		})

		scripted := false
		if viewScript != "" {
			data, err := os.ReadFile(viewScript)
			if err != nil {
				return err
			}
			runner, err := lexisphere.LoadTestScript(data)
			if err != nil {
				return err
			}
			scene.SetTestRunner(runner)
			scripted = true
		}

		err = lexisphere.Run(scene, lexisphere.RunConfig{
			Title:              fmt.Sprintf("Lexisphere - %s", record.Term),
			Width:              cfg.Viewer.Width,
			Height:             cfg.Viewer.Height,
			ShowFPS:            cfg.Viewer.ShowFPS,
			Resizable:          true,
			ExitWhenScriptDone: scripted,
		})
		if lexisphere.IsScriptDone(err) {
			color.Green("script complete")
			return nil
		}
		return err
	},
}

func init() {
	viewCmd.Flags().StringVar(&viewScript, "script", "", "JSON interaction script to run")
	viewCmd.Flags().StringVar(&viewMode, "transition", "", "transition mode: serial or parallel")
	rootCmd.AddCommand(viewCmd)
}
