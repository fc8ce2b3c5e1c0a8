package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/law-makers/purify/internal/purifier"
	"github.com/law-makers/purify/internal/ui"
	"github.com/law-makers/purify/internal/utils/output"
)

// rulesReport is the JSON shape of the active rule set
type rulesReport struct {
	Names           []string `json:"names"`
	Prefixes        []string `json:"prefixes"`
	Suffixes        []string `json:"suffixes"`
	Kept            []string `json:"kept,omitempty"`
	ASINPatterns    []string `json:"asin_patterns"`
	SkippedPatterns []string `json:"skipped_patterns,omitempty"`
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active tracking rules and ASIN patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetAppFromCmd(cmd)
			if a == nil {
				return fmt.Errorf("application not initialized")
			}

			rules := a.Purifier.Rules()
			report := rulesReport{
				Names:    rules.Names(),
				Prefixes: rules.Prefixes(),
				Suffixes: rules.Suffixes(),
				Kept:     rules.Kept(),
				ASINPatterns: lo.Map(a.Purifier.Matchers(), func(m purifier.ASINMatcher, _ int) string {
					return fmt.Sprint(m)
				}),
				SkippedPatterns: lo.Map(a.PatternErrors, func(err error, _ int) string {
					return err.Error()
				}),
			}

			if a.Config.OutputJSON {
				return output.WriteJSON(cmd.OutOrStdout(), report)
			}
			writeRules(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func writeRules(w io.Writer, r rulesReport) {
	st := ui.For(w)
	section := func(title string, items []string, decorate func(string) string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(w, "%s (%d)\n", st.Bold(title), len(items))
		for _, item := range items {
			fmt.Fprintf(w, "  %s\n", decorate(item))
		}
		fmt.Fprintln(w)
	}

	section("Exact names", r.Names, func(s string) string { return s })
	section("Prefixes", r.Prefixes, func(s string) string { return s + "*" })
	section("Suffixes", r.Suffixes, func(s string) string { return "*" + s })
	section("Never removed", r.Kept, func(s string) string { return s })
	section("ASIN patterns", r.ASINPatterns, func(s string) string { return strings.TrimPrefix(s, "(?i)") })
	section("Skipped patterns", r.SkippedPatterns, st.Error)
}
