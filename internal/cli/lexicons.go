package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hearsay-nlp/hearsay/internal/lexicon"
	"github.com/hearsay-nlp/hearsay/internal/model"
	"github.com/spf13/cobra"
)

var lexiconsListDir string

// lexiconsCmd represents the lexicons command
var lexiconsCmd = &cobra.Command{
	Use:   "lexicons",
	Short: "Show the loaded stance lexicons",
	Long: `Lexicons prints the entry count of every stance word list the
tagger would load: hedges, attribution wording, certainty markers,
epistemic, modal, and subjective verbs.

Missing files load as empty lists, so this is the quickest way to
verify a lexicon directory before analyzing.

Example:
  hearsay lexicons
  hearsay lexicons --dir ./lexicons`,
	RunE: runLexicons,
}

func init() {
	rootCmd.AddCommand(lexiconsCmd)
	lexiconsCmd.Flags().StringVar(&lexiconsListDir, "dir", "", "lexicon directory (default from config)")
}

func runLexicons(cmd *cobra.Command, args []string) error {
	dir := lexiconsListDir
	if dir == "" {
		dir = model.DefaultConfig().Lexicons.Dir
	}

	lex, err := lexicon.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("load lexicons: %w", err)
	}

	fmt.Printf("Lexicon directory: %s\n\n", dir)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tFILE\tENTRIES")

	files := []string{
		lexicon.FileHedges,
		lexicon.FileAttributionPhrases,
		lexicon.FileAttributionVerbs,
		lexicon.FileCertaintyHigh,
		lexicon.FileCertaintyLow,
		lexicon.FileEpistemicVerbs,
		lexicon.FileModalVerbs,
		lexicon.FileSubjectiveVerbs,
	}

	total := 0
	for i, cat := range lex.Categories() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", cat.Name, files[i], cat.Set.Len())
		total += cat.Set.Len()
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal entries: %d\n", total)
	if total == 0 {
		fmt.Fprintf(os.Stderr, "\n⚠ No lexicon entries loaded. Stance tagging will mark nothing.\n")
	}
	return nil
}
