package cli

import (
	"fmt"
	"strings"

	"github.com/mawaqit-dev/mawaqit/internal/config"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  mawaqit config set latitude 51.5072\n  mawaqit config set longitude -0.1276\n  mawaqit config set timezone Europe/London\n  mawaqit config set method NorthAmerica\n  mawaqit config set madhab Hanafi\n  mawaqit config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		display := val
		if display == "" {
			display = "(not set)"
		}
		// Add the long organizational name for the method.
		if key == "method" && val != "" {
			if m, err := prayer.ParseMethod(val); err == nil {
				display = fmt.Sprintf("%s (%s)", val, m.Description())
			}
		}
		fmt.Printf("  %-20s %s\n", key, display)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation method presets",
		Long:  "Print the table of calculation method presets and the angle/interval\nconstants each carries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Supported calculation methods:")
			fmt.Println()
			fmt.Printf("  %-14s %-7s %-12s %s\n", "Name", "Fajr", "Isha", "Authority")
			fmt.Printf("  %-14s %-7s %-12s %s\n", "────", "────", "────", "─────────")
			for _, m := range prayer.Methods {
				p := m.Params(prayer.Shafi, prayer.HighLatAngleBased, "")
				isha := fmt.Sprintf("%.1f°", p.IshaAngle)
				if p.IshaInterval > 0 {
					isha = fmt.Sprintf("+%d min", p.IshaInterval)
				}
				fmt.Printf("  %-14s %-7s %-12s %s\n", m.String(), fmt.Sprintf("%.1f°", p.FajrAngle), isha, m.Description())
			}
			fmt.Println()
			fmt.Println("Use --method <Name> to select a calculation method.")
			fmt.Println("If omitted, MWL (Muslim World League) is used.")
			return nil
		},
	}
}
