package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fontfetch/fontfetch/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fontfetch",
	Short: "fontfetch downloads the web fonts referenced by a stylesheet",
	Long: `fontfetch reads a stylesheet containing @import url('...') directives,
fetches every referenced font-family stylesheet, and saves each declared
font face as <family>_<style>_<weight>.ttf in the output directory.

Configuration is read from FF_* environment variables (and a .env file);
flags take precedence.

Examples:
  # Download every font imported by fonts.css into ./fonts
  fontfetch fetch fonts.css

  # Use a different directory and pool size, keep a JSON report
  fontfetch fetch -o assets/fonts -c 4 --report fonts-report.json fonts.css

  # Show what was saved
  fontfetch inspect

  # Run the HTTP API
  fontfetch serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "", "Directory fonts are written to (FF_OUTPUT_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (FF_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (FF_LOG_FORMAT)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}

// loadConfig loads the environment configuration with changed persistent
// flags and any command-specific overrides applied on top.
func loadConfig(cmd *cobra.Command, overrides ...config.Override) (*config.Config, error) {
	flags := cmd.Flags()
	all := []config.Override{func(c *config.Config) {
		if flags.Changed("output") {
			c.OutputDir, _ = flags.GetString("output")
		}
		if flags.Changed("log-level") {
			c.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("log-format") {
			c.LogFormat, _ = flags.GetString("log-format")
		}
	}}
	all = append(all, overrides...)

	cfg, err := config.Load(all...)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}
