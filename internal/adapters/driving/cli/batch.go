package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve every missing locality in the catalog",
	Long: `Runs the full resolution pipeline over the locality catalog.

Localities already stored with data are skipped, so re-running after
an interruption or a partial failure only touches what is still
missing. Requests are paced; a full first run takes a while.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if batchRunner == nil {
		return errors.New("batch service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := batchRunner.Run(ctx, func(index, total int, ref domain.LocalityRef, rec domain.StatRecord, reason domain.FailureReason) {
		prefix := fmt.Sprintf("[%d/%d] %s → %s", index, total, ref.Region, ref.Name)
		if reason == "" {
			cmd.Printf("%s %s tax=%.2f houses=%d\n", prefix, okMark, rec.Tax, rec.Houses)
		} else {
			cmd.Printf("%s %s %s\n", prefix, failMark, reason)
		}
	})
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	printReport(cmd, report)

	// The store was just rewritten; report its final size.
	if resultStore == nil {
		return nil
	}
	if set, err := resultStore.Load(ctx); err == nil {
		cmd.Printf("  Store:      %d records (%d with data)\n", set.Len(), set.LenWithData())
	}
	return nil
}

func printReport(cmd *cobra.Command, report *domain.RunReport) {
	cmd.Println()
	cmd.Println(headerStyle.Render("Run summary"))
	cmd.Printf("  Catalog:    %d localities\n", report.Total)
	cmd.Printf("  Attempted:  %d\n", report.Attempted)
	cmd.Printf("  Resolved:   %d\n", report.Found)
	cmd.Printf("  Missing:    %d\n", report.StillMissing())

	if len(report.Unresolved) > 0 {
		cmd.Println()
		cmd.Println(headerStyle.Render("Still unresolved"))
		for _, u := range report.Unresolved {
			cmd.Printf("  %s → %s %s\n", u.Region, u.Name, mutedStyle.Render("("+string(u.Reason)+")"))
		}
	}
}
