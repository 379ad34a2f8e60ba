package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/studyiz/internal/store"
)

var progressCmd = &cobra.Command{
	Use:     "progress",
	Short:   "Show completed chapters and quiz scores",
	Example: "  studyiz progress\n  studyiz progress --export progress.xlsx",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		export, _ := cmd.Flags().GetString("export")

		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.records.LoadProgress(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if p == nil || (len(p.CompletedChapters) == 0 && len(p.QuizScores) == 0) {
			fmt.Fprintln(out, "No progress recorded yet.")
			return nil
		}

		titles := map[string]string{}
		for _, ch := range s.catalog.Chapters() {
			titles[ch.Key.String()] = ch.ChapterTitle
		}
		rows := progressRows(p, titles)

		if export != "" {
			if err := exportProgress(export, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported %d chapters to %s\n", len(rows), export)
			return nil
		}
		printProgress(out, rows)
		return nil
	},
}

func init() {
	progressCmd.Flags().String("export", "", "Write progress to an .xlsx spreadsheet instead of printing")
}

// progressRow is one chapter with recorded progress.
type progressRow struct {
	Key   string
	Title string
	Done  bool
	Quiz  *store.QuizResult
}

func progressRows(p *store.Progress, titles map[string]string) []progressRow {
	keys := map[string]bool{}
	for _, k := range p.CompletedChapters {
		keys[k] = true
	}
	for k := range p.QuizScores {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	rows := make([]progressRow, 0, len(sorted))
	for _, k := range sorted {
		row := progressRow{Key: k, Title: titles[k], Done: p.IsComplete(k)}
		if row.Title == "" {
			row.Title = "(not in curriculum)"
		}
		if r, ok := p.QuizScores[k]; ok {
			row.Quiz = &r
		}
		rows = append(rows, row)
	}
	return rows
}

func printProgress(out io.Writer, rows []progressRow) {
	fmt.Fprintf(out, "%-20s  %-40s  %4s  %-10s  %s\n", "Chapter", "Title", "Done", "Quiz", "Taken")
	fmt.Fprintln(out, strings.Repeat("─", 96))
	for _, r := range rows {
		done := ""
		if r.Done {
			done = "✓"
		}
		quiz, taken := "", ""
		if r.Quiz != nil {
			quiz = fmt.Sprintf("%d/%d", r.Quiz.Score, r.Quiz.Total)
			taken = humanize.Time(r.Quiz.Date)
		}
		fmt.Fprintf(out, "%-20s  %s  %4s  %-10s  %s\n", r.Key, padRight(truncate(r.Title, 40), 40), done, quiz, taken)
	}
}

const progressSheet = "Progress"

// exportProgress writes rows to a new workbook at path.
func exportProgress(path string, rows []progressRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", progressSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Chapter", "Title", "Completed", "Score", "Total", "Percent", "Taken"}
	if err := f.SetSheetRow(progressSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(progressSheet, "A1", "G1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		values := []any{r.Key, r.Title, r.Done, nil, nil, nil, nil}
		if r.Quiz != nil {
			values[3] = r.Quiz.Score
			values[4] = r.Quiz.Total
			values[5] = r.Quiz.Percent()
			values[6] = r.Quiz.Date.UTC().Format(time.RFC3339)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(progressSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(progressSheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(progressSheet, "B", "B", 42); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
