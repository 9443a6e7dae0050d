package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmarques/tlochat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show and change tlochat settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys:
  base_url                 Service URL
  request_timeout_seconds  Request timeout
  verbose                  Verbose logging (true/false)
  copy_to_clipboard        Copy replies to the clipboard (true/false)
  download_dir             Directory for exports
  markdown_style           Markdown theme (dark, light, notty, dracula, ascii)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the service API key",
	RunE:  runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path, _ := config.GetConfigPath()
	fmt.Printf("Config file: %s\n\n", path)

	key := "(not set)"
	if cfg.APIKey != "" {
		key = maskKey(cfg.APIKey)
	}

	fmt.Printf("base_url: %s\n", cfg.BaseURL)
	fmt.Printf("api_key: %s\n", key)
	fmt.Printf("request_timeout_seconds: %d\n", cfg.RequestTimeoutSeconds)
	fmt.Printf("verbose: %t\n", cfg.Verbose)
	fmt.Printf("copy_to_clipboard: %t\n", cfg.CopyToClipboard)
	fmt.Printf("download_dir: %s\n", cfg.DownloadDir)
	fmt.Printf("markdown_style: %s\n", cfg.MarkdownStyle)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "base_url":
		cfg.BaseURL = value
	case "request_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("request_timeout_seconds must be a positive integer")
		}
		cfg.RequestTimeoutSeconds = n
	case "verbose":
		cfg.Verbose = strings.EqualFold(value, "true")
	case "copy_to_clipboard":
		cfg.CopyToClipboard = strings.EqualFold(value, "true")
	case "download_dir":
		cfg.DownloadDir = value
	case "markdown_style":
		cfg.MarkdownStyle = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Set %s\n", key)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprint(os.Stderr, "API key: ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	cfg.APIKey = key
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("API key saved.")
	return nil
}

// maskKey shows only the first and last few characters of a key
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
