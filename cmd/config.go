package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/config"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit session and notification settings",
	Long:  `Interactively change the default session length, the default game and notifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reader := bufio.NewReader(cmd.InOrStdin())
		cfg := app.config

		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Current configuration:")
		fmt.Fprintln(out)
		printConfig(out, cfg)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  What would you like to change?")
		fmt.Fprintln(out, "    [d] Default session length")
		fmt.Fprintln(out, "    [g] Default game")
		fmt.Fprintln(out, "    [n] Toggle notifications")
		fmt.Fprintln(out, "    [q] Quit without saving")
		fmt.Fprint(out, "  Choose: ")

		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(strings.ToLower(choice))

		switch choice {
		case "d":
			err = editDefaultDuration(out, reader, cfg)
		case "g":
			err = editDefaultGame(out, reader, cfg)
		case "n":
			err = editNotifications(out, reader, cfg)
		case "q", "":
			fmt.Fprintln(out, "  No changes made.")
			return nil
		default:
			return fmt.Errorf("invalid choice %q", choice)
		}
		if err != nil {
			return err
		}

		if err := config.Save(cfg, path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(out, "\n  Saved to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), app.config)
		}
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Config file:  %s\n\n", path)
		printConfig(cmd.OutOrStdout(), app.config)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// resolveConfigPath returns --config, or the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func printConfig(out io.Writer, cfg *config.Config) {
	presets := make([]string, len(cfg.Session.Presets))
	for i, p := range cfg.Session.Presets {
		presets[i] = strconv.Itoa(p) + "m"
	}
	storage := cfg.Storage.Path
	if storage == "" {
		storage = "in-memory"
	}

	fmt.Fprintf(out, "  Session presets:   %s\n", strings.Join(presets, ", "))
	fmt.Fprintf(out, "  Default length:    %dm\n", cfg.Session.DefaultDuration)
	fmt.Fprintf(out, "  Default game:      %s\n", cfg.Game().Label())
	fmt.Fprintf(out, "  Starting coins:    %d\n", cfg.Profile.StartingCoins)
	fmt.Fprintf(out, "  Trial length:      %s\n", formatMinutes(cfg.TrialDuration()))
	fmt.Fprintf(out, "  Notifications:     %s\n", notificationLabel(cfg.Notifications))
	fmt.Fprintf(out, "  Storage:           %s\n", storage)
	fmt.Fprintf(out, "  API address:       %s\n", cfg.HTTP.Addr)
}

func notificationLabel(n config.NotificationConfig) string {
	if !n.Enabled {
		return "off"
	}
	if n.Sound {
		return "on (with sound)"
	}
	return "on"
}

func editDefaultDuration(out io.Writer, reader *bufio.Reader, cfg *config.Config) error {
	fmt.Fprintf(out, "\n  Default length in minutes %v [%d]: ", cfg.Session.Presets, cfg.Session.DefaultDuration)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", input, err)
	}
	if !domain.IsPreset(n, cfg.Session.Presets) {
		return fmt.Errorf("%w: %d is not one of %v", domain.ErrInvalidDuration, n, cfg.Session.Presets)
	}
	cfg.Session.DefaultDuration = n
	return nil
}

func editDefaultGame(out io.Writer, reader *bufio.Reader, cfg *config.Config) error {
	fmt.Fprintf(out, "\n  Current game: %s\n\n", cfg.Game().Label())
	for i, g := range domain.ValidGames {
		fmt.Fprintf(out, "    [%d] %s\n", i+1, g.Label())
	}
	fmt.Fprint(out, "  Choose: ")

	input, _ := reader.ReadString('\n')
	i, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || i < 1 || i > len(domain.ValidGames) {
		return fmt.Errorf("invalid choice %q", strings.TrimSpace(input))
	}
	cfg.Session.DefaultGame = string(domain.ValidGames[i-1])
	return nil
}

func editNotifications(out io.Writer, reader *bufio.Reader, cfg *config.Config) error {
	fmt.Fprintf(out, "\n  Current notifications: %s\n\n", notificationLabel(cfg.Notifications))
	fmt.Fprintln(out, "    [1] Off")
	fmt.Fprintln(out, "    [2] On (visual only)")
	fmt.Fprintln(out, "    [3] On (with sound)")
	fmt.Fprint(out, "  Choose: ")

	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.Notifications.Enabled = false
		cfg.Notifications.Sound = false
	case "2":
		cfg.Notifications.Enabled = true
		cfg.Notifications.Sound = false
	case "3":
		cfg.Notifications.Enabled = true
		cfg.Notifications.Sound = true
	default:
		return fmt.Errorf("invalid choice %q", strings.TrimSpace(choice))
	}
	return nil
}
