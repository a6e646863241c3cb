package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"simple-panels/app"
	"simple-panels/config"
	"simple-panels/layout"
	"simple-panels/log"
)

var (
	version       = "0.3.0"
	layoutFlag    string
	proximityFlag int
	storageIDFlag string
	noColorFlag   bool
	rootCmd       = &cobra.Command{
		Use:   "simple-panels",
		Short: "simple-panels - Resizable, collapsible terminal panels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize(false)
			defer log.Close()

			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("simple-panels needs an interactive terminal")
			}
			if noColorFlag {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			cfg := resolveConfig()
			storage, err := config.DefaultFileStorage()
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}

			return app.Run(ctx, app.Options{
				Layout:    config.LoadLayoutFile(cfg.LayoutFile),
				Config:    cfg,
				Storage:   storage,
				StorageID: storageIDFlag,
			})
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget every stored panel layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			storage, err := config.DefaultFileStorage()
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			if err := storage.Clear(); err != nil {
				return fmt.Errorf("failed to reset storage: %w", err)
			}
			fmt.Println("Stored layouts have been reset")
			return nil
		},
	}

	layoutCmd = &cobra.Command{
		Use:   "layout",
		Short: "Print the resolved layout and the sizes stored for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := resolveConfig()
			decl := config.LoadLayoutFile(cfg.LayoutFile)
			out, err := yaml.Marshal(decl)
			if err != nil {
				return fmt.Errorf("failed to marshal layout: %w", err)
			}
			fmt.Print(string(out))

			storage, err := config.DefaultFileStorage()
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			fmt.Printf("\nStored sizes (%s):\n", storage.Path())
			for _, id := range decl.StorageIDs() {
				key := layout.StorageKey(app.ScopedStorageID(storageIDFlag, id))
				value, ok := storage.GetItem(key)
				if !ok {
					value = "(defaults)"
				}
				fmt.Printf("  %s = %s\n", key, value)
			}
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("State: %s\n", filepath.Join(configDir, config.StateFileName))
			fmt.Printf("Log: %s\n", log.LogFileName())

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of simple-panels",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("simple-panels version %s\n", version)
		},
	}
)

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig() *config.Config {
	cfg := config.LoadConfig()
	if layoutFlag != "" {
		cfg.LayoutFile = layoutFlag
	}
	if proximityFlag > 0 {
		cfg.ProximityThreshold = proximityFlag
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&layoutFlag, "layout", "l", "",
		"YAML layout file to load instead of the built-in layout")
	rootCmd.PersistentFlags().StringVar(&storageIDFlag, "storage-id", "",
		"Prefix for stored layout keys, so several setups can keep separate sizes")
	rootCmd.Flags().IntVar(&proximityFlag, "proximity", 0,
		"Cells from a separator within which it highlights (default from config)")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Render without colors")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(layoutCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
