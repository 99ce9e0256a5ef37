package commands

import (
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/leapstack-labs/filestats/internal/cli/output"
	"github.com/leapstack-labs/filestats/pkg/rank"
	"github.com/leapstack-labs/filestats/pkg/report"
	"github.com/leapstack-labs/filestats/pkg/stats"
)

// NewAnalyzeCommand creates the analyze command. The root command
// forwards to RunAnalyze directly, so "filestats file.txt" and
// "filestats analyze file.txt" are the same operation.
func NewAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <input.txt>",
		Short: "Analyze a text file and report word statistics",
		Long: `Analyze a single text file and report its line count, word count,
byte size and most frequent words.

Words are maximal runs of ASCII alphanumeric characters; every other
byte separates words. Counting is case-insensitive unless
--case-sensitive is set.`,
		Example: `  # Analyze a file, show the top 20 words
  filestats analyze book.txt

  # Top 5 words, case-sensitive, with a JSON export
  filestats analyze book.txt --top 5 --case-sensitive --json report.json`,
		Args: ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAnalyze(cmd, args[0])
		},
	}
}

// RunAnalyze performs the whole pipeline for one input file: scan and
// aggregate, rank, render to the console, and optionally export JSON.
func RunAnalyze(cmd *cobra.Command, inputPath string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	jsonPath, _ := cmd.Flags().GetString("json")

	runID := uuid.New().String()
	logger.Debug("starting analysis",
		"run_id", runID,
		"input", inputPath,
		"top", cfg.Top,
		"case_sensitive", cfg.CaseSensitive)

	start := time.Now()
	st, err := stats.Analyze(inputPath, stats.Options{CaseSensitive: cfg.CaseSensitive})
	if err != nil {
		return err
	}
	logger.Debug("scan complete",
		"run_id", runID,
		"lines", st.Lines,
		"words", st.Words,
		"distinct", len(st.Freq),
		"elapsed", time.Since(start))

	top := rank.Top(st.Freq, cfg.Top)
	doc := report.New(inputPath, st, top, cfg.CaseSensitive)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(doc); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderAnalyzeMarkdown(r, doc)
	default:
		renderAnalyzeText(r, doc)
	}

	if jsonPath != "" {
		if err := doc.WriteFile(jsonPath); err != nil {
			return err
		}
		logger.Debug("report written", "run_id", runID, "path", jsonPath)
		r.Println("")
		r.Success("JSON written to: " + jsonPath)
	}

	return nil
}

func caseLabel(caseSensitive bool) string {
	if caseSensitive {
		return "case-sensitive"
	}
	return "case-insensitive"
}

func renderAnalyzeText(r *output.Renderer, doc *report.Document) {
	styles := r.Styles()
	p := message.NewPrinter(language.English)

	r.Header(1, "File Stats")
	r.Println("")
	r.Printf("  File:   %s\n", doc.InputPath)
	r.Printf("  Lines:  %s\n", p.Sprintf("%d", doc.Lines))
	r.Printf("  Words:  %s\n", p.Sprintf("%d", doc.Words))
	r.Printf("  Bytes:  %s\n", p.Sprintf("%d", doc.Bytes))
	r.Println("")

	r.Println(styles.Bold.Render(p.Sprintf("Top %d words (%s)", len(doc.TopWords), caseLabel(doc.CaseSensitive))))

	if len(doc.TopWords) == 0 {
		r.Println(styles.Muted.Render("  (no words)"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Word", "Count"})
	for i, wc := range doc.TopWords {
		t.AppendRow(table.Row{i + 1, wc.Word, p.Sprintf("%d", wc.Count)})
	}
	t.Render()
}

func renderAnalyzeMarkdown(r *output.Renderer, doc *report.Document) {
	r.Println("# File Stats")
	r.Println("")
	r.Printf("- **File**: %s\n", doc.InputPath)
	r.Printf("- **Lines**: %d\n", doc.Lines)
	r.Printf("- **Words**: %d\n", doc.Words)
	r.Printf("- **Bytes**: %d\n", doc.Bytes)
	r.Println("")
	r.Printf("## Top %d words (%s)\n", len(doc.TopWords), caseLabel(doc.CaseSensitive))
	r.Println("")

	if len(doc.TopWords) == 0 {
		r.Println("(no words)")
		return
	}

	r.Println("| # | Word | Count |")
	r.Println("|---|------|-------|")
	for i, wc := range doc.TopWords {
		r.Printf("| %d | %s | %d |\n", i+1, wc.Word, wc.Count)
	}
}
