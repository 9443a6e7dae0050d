// Package commands provides CLI commands for tlochat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	outputFlag string
	fileFlag   string
	attachFlag string
	rawFlag    bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tlochat [prompt]",
	Short: "Terminal client for the TLO knowledge chat service",
	Long: `tlochat is a command-line client for the TLO knowledge chat service.
Conversations are grounded on the shared knowledge base and kept in
local history.

Examples:
  tlochat chat                          Start interactive chat
  tlochat config set-key                Store your API key
  tlochat "What are DALYs?"             Send a single query
  tlochat -f prompt.md                  Read prompt from file
  cat prompt.md | tlochat               Read prompt from stdin
  tlochat "Summarize" -a report.txt     Include a file attachment
  tlochat "Hello" -o response.md        Save response to file`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("tlochat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if len(args) > 0 {
			return runQuery(args[0], rawFlag)
		}

		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().StringVarP(&attachFlag, "attach", "a", "", "Path to a .txt or .docx file to include")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw response without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(kbCmd)
}
