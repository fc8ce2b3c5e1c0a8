package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/law-makers/purify/internal/utils/output"
)

func newHTMLCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Clean every link in an HTML document",
		Long: `Rewrites the href of every <a> and <area> element that points to an absolute
http(s) URL, removing tracking parameters and shortening Amazon product links.
Relative links, mailto: links and in-page anchors are left alone.

The document is read from the file (or stdin) and written to --output (or stdout).
With --json the list of changed links is printed instead of the document.`,
		Example: `  # Clean links in an exported bookmarks file
  purify html bookmarks.html -o bookmarks.clean.html

  # See which links would change
  purify html page.html --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetAppFromCmd(cmd)
			if a == nil {
				return fmt.Errorf("application not initialized")
			}

			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			doc, rewrites, err := output.RewriteLinks(in, a.Purifier.Clean)
			if err != nil {
				return err
			}
			a.Logger.Info().Int("links", len(rewrites)).Msg("Links cleaned")

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(doc), 0644); err != nil {
					return fmt.Errorf("failed to write file: %w", err)
				}
				a.Logger.Info().Str("file", outputPath).Msg("Output saved")
			}

			if a.Config.OutputJSON {
				return output.WriteJSON(cmd.OutOrStdout(), rewrites)
			}
			if outputPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "File path to save the cleaned document")
	return cmd
}
