package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/purify/internal/app"
	"github.com/law-makers/purify/internal/config"
	"github.com/law-makers/purify/internal/ui"
	"github.com/law-makers/purify/internal/utils/output"
)

// Version is the application version, set via ldflags.
var Version = "0.1.0"

// NewRootCmd builds the command tree. opts are handed to app.New when a command runs.
func NewRootCmd(opts app.Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "purify [url...]",
		Short: "Strip tracking parameters from URLs",
		Long: `Purify removes tracking and analytics parameters from a URL, including
parameters hidden in client-side routes after the "#", and rewrites Amazon
product links to their short https://amazon.<tld>/dp/<ASIN> form.

The URL is taken from the arguments (joined with spaces) or, when none are
given, from the clipboard. The result is copied back to the clipboard and
printed.`,
		Example: `  # Clean the URL currently on the clipboard
  purify

  # Clean a URL given as an argument
  purify "https://example.com/?utm_source=news&id=5"

  # Shorten an Amazon product link
  purify https://www.amazon.com/Some-Product/dp/B08N5WRWNW/ref=sr_1_1

  # Show what was removed, without touching the clipboard
  purify --json --no-copy example.com/page?fbclid=abc`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runPurify,
	}

	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg, opts)
		if err != nil {
			return err
		}
		SetApp(cmd, a)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a := GetAppFromCmd(cmd)
		if a == nil {
			return
		}
		_ = a.Close(context.Background())
	}

	config.RegisterFlags(rootCmd)
	rootCmd.Flags().BoolP("help", "h", false, "Help for purify")
	rootCmd.Flags().Bool("version", false, "Version for purify")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(helpFunc)

	rootCmd.AddCommand(newBatchCmd(), newHTMLCmd(), newRulesCmd())
	return rootCmd
}

// Execute builds the root command and runs it. This is called by main.main().
func Execute() {
	if err := NewRootCmd(app.Options{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
		os.Exit(1)
	}
}

func runPurify(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	raw := strings.Join(args, " ")
	if raw == "" {
		text, err := a.Clipboard.ReadText()
		if err != nil {
			a.Logger.Debug().Err(err).Msg("Clipboard unavailable")
		}
		raw = text
	}

	res, err := a.Purifier.Purify(raw)
	if err != nil {
		return err
	}

	if a.Config.Copy {
		if err := a.Clipboard.WriteText(res.Output); err != nil {
			a.Logger.Warn().Err(err).Msg("Could not copy result to clipboard")
		}
	}

	a.Logger.Info().
		Str("url", res.Output).
		Bool("amazon", res.Amazon).
		Int("removed", len(res.Removed)).
		Msg("URL cleaned")

	if a.Config.OutputJSON {
		return output.WriteJSON(cmd.OutOrStdout(), res)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Output)
	return err
}
