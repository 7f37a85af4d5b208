package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/logger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise the result store",
	Long: `Prints per-region resolution counts, the last run's outcome and the
unresolved localities with their failure reason class, all from local
state and without making any network requests.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if resultStore == nil {
		return errors.New("result store not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	set, err := resultStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading result store: %w", err)
	}

	if set.Len() == 0 {
		cmd.Println("Result store is empty. Run 'fiscara batch' first.")
		return nil
	}

	regions := make([]string, 0, len(set))
	for region := range set {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	cmd.Println(headerStyle.Render("Result store"))
	for _, region := range regions {
		resolved := 0
		for _, rec := range set[region] {
			if rec.HasData() {
				resolved++
			}
		}
		cmd.Printf("  %-20s %d/%d resolved\n", region, resolved, len(set[region]))
	}

	cmd.Println()
	cmd.Printf("Total: %d/%d resolved\n", set.LenWithData(), set.Len())

	printLastRun(ctx, cmd)
	printUnresolved(ctx, cmd, set, regions)
	return nil
}

// printLastRun shows the most recent journalled run, if any.
func printLastRun(ctx context.Context, cmd *cobra.Command) {
	if journal == nil {
		return
	}

	runs, err := journal.Runs(ctx)
	if err != nil {
		logger.Warn("reading run journal: %v", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	last := runs[0]
	status := "interrupted"
	if last.FinishedAt != nil {
		status = last.FinishedAt.Format("2006-01-02 15:04")
	}
	cmd.Printf("Last run: %s, %d found, %d still missing\n", status, last.Found, last.Missing)
}

// printUnresolved lists every stored locality without data, annotated
// with the failure reason class from the journal when one is known.
func printUnresolved(ctx context.Context, cmd *cobra.Command, set domain.ResultSet, regions []string) {
	if set.LenWithData() == set.Len() {
		return
	}

	var reasons map[string]map[string]domain.FailureReason
	if journal != nil {
		var err error
		reasons, err = journal.FailureReasons(ctx)
		if err != nil {
			logger.Warn("reading failure reasons: %v", err)
			reasons = nil
		}
	}

	cmd.Println()
	cmd.Println(headerStyle.Render("Still unresolved"))
	for _, region := range regions {
		names := make([]string, 0, len(set[region]))
		for name, rec := range set[region] {
			if !rec.HasData() {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			if reason, ok := reasons[region][name]; ok {
				cmd.Printf("  %s → %s %s\n", region, name, mutedStyle.Render("("+string(reason)+")"))
			} else {
				cmd.Printf("  %s → %s\n", region, name)
			}
		}
	}
}
