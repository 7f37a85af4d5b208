package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

var resolveKind string

var resolveCmd = &cobra.Command{
	Use:   "resolve [region] [locality]",
	Short: "Resolve a single locality and show its statistics",
	Long: `Resolves one locality against the entity registry and fetches its
statistics, without touching the result store. Useful for checking why
a locality stays unresolved after a batch run.`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveKind, "kind", "k", "commune", "locality kind (municipality, town, commune)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolverService == nil || aggregatorService == nil {
		return errors.New("resolver service not configured")
	}

	kind := domain.LocalityKind(resolveKind)
	if !kind.Valid() {
		return fmt.Errorf("unknown kind %q (expected municipality, town or commune)", resolveKind)
	}

	ref := domain.LocalityRef{Region: args[0], Name: args[1], Kind: kind}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	match, err := resolverService.Resolve(ctx, ref)
	if errors.Is(err, domain.ErrNoMatch) {
		cmd.Printf("%s No entity found for %s / %s\n", failMark, ref.Region, ref.Name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	cmd.Println(headerStyle.Render("Matched entity"))
	cmd.Printf("  Name:     %s\n", match.DisplayName)
	cmd.Printf("  Tax ID:   %s\n", match.TaxID)
	cmd.Printf("  Region:   %s\n", match.Region)
	cmd.Printf("  Locality: %s\n", match.LocalityName)
	if match.SubCode != "" {
		cmd.Printf("  Sub-code: %s\n", match.SubCode)
	}

	rec, err := aggregatorService.Aggregate(ctx, match)
	if errors.Is(err, domain.ErrNoStatistics) {
		cmd.Printf("\n%s Entity found, but no statistics available\n", failMark)
		return nil
	}
	if err != nil {
		return fmt.Errorf("statistics fetch failed: %w", err)
	}

	cmd.Println()
	cmd.Println(headerStyle.Render("Statistics"))
	if rec.TaxYear != nil {
		cmd.Printf("  Tax:    %.2f (%d)\n", rec.Tax, *rec.TaxYear)
	} else {
		cmd.Printf("  Tax:    %s\n", mutedStyle.Render("not available"))
	}
	if rec.HousesYear != nil {
		cmd.Printf("  Houses: %d (%d)\n", rec.Houses, *rec.HousesYear)
	} else {
		cmd.Printf("  Houses: %s\n", mutedStyle.Render("not available"))
	}

	return nil
}
