package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Print a JSON report instead of the bare URL")
	cmd.PersistentFlags().Bool("no-copy", false, "Do not write the result to the clipboard")
	cmd.PersistentFlags().Bool("normalize", false, "Also normalize scheme, host case, default port and dot segments")
	cmd.PersistentFlags().String("config", "", "Path to configuration file (optional)")
}
