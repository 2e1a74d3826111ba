// Command i18nreport writes a translation coverage workbook for the
// embedded catalog.
//
//	i18nreport --out coverage.xlsx --lang en --lang th --strict
package main

import (
	"fmt"
	"os"

	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"
	"tracefield-site/internal/usecase"
	"tracefield-site/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		out    string
		langs  []string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "i18nreport",
		Short: "Report translation coverage against the reference language",
		Long: `Loads the translation catalog compiled into the site and writes an XLSX
workbook with one row per key and one column per language. Cells that fall
back to the reference language are highlighted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, out, langs, strict)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "translation-coverage.xlsx", "workbook path")
	cmd.Flags().StringSliceVarP(&langs, "lang", "l", nil, "languages to include (default: all)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a language is incomplete")
	return cmd
}

func run(cmd *cobra.Command, out string, codes []string, strict bool) error {
	log := logger.New(logger.Options{Output: cmd.ErrOrStderr()})

	langs := make([]domain.Language, 0, len(codes))
	for _, code := range codes {
		lang, ok := domain.ParseLanguage(code)
		if !ok {
			return fmt.Errorf("unsupported language %q", code)
		}
		langs = append(langs, lang)
	}

	catalog, err := locale.LoadCatalog(locale.EmbeddedFS(), log)
	if err != nil {
		return err
	}

	data, coverage, err := usecase.ExportCoverage(catalog, langs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	incomplete := 0
	for _, c := range coverage {
		fmt.Fprintf(cmd.OutOrStdout(), "%-3s %5.1f%%  %d/%d\n", c.Language, c.Percent(), c.Translated, c.Total)
		if !c.Complete() {
			incomplete++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)

	if strict && incomplete > 0 {
		return fmt.Errorf("%d language(s) incomplete", incomplete)
	}
	return nil
}
