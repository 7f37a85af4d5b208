package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Keys surfaced by 'config show', with their meaning.
var knownConfigKeys = map[string]string{
	"registry.base_url":       "entity registry endpoint",
	"statistics.base_url":     "statistics source endpoint",
	"statistics.dataset":      "housing dataset ID",
	"batch.tax_years":         "year sequence for the revenue figure",
	"batch.revenue_category":  "budget classification code",
	"batch.search_limit":      "results requested per query",
	"batch.pace_delay_ms":     "inter-locality delay in milliseconds",
	"paths.catalog":           "locality catalog JSON file",
	"paths.results":           "result store JSON file",
	"paths.data":              "run journal directory",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and persists it immediately.

Values that parse as integers or booleans are stored typed; everything
else is stored as a string. Year lists use comma separation:

  fiscara config set batch.tax_years 2024,2023,2022,2021`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := make([]string, 0, len(knownConfigKeys))
	for key := range knownConfigKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cmd.Println(headerStyle.Render("Configuration"))
	for _, key := range keys {
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-24s %s\n", key, mutedStyle.Render("(default)"))
			continue
		}
		cmd.Printf("  %-24s %v\n", key, val)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// parseConfigValue stores the richest type the raw string supports.
// Leading-zero numerics stay strings: classification codes like
// "070202" are identifiers, not numbers.
func parseConfigValue(raw string) any {
	if len(raw) > 1 && raw[0] == '0' {
		return raw
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		nums := make([]int64, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return raw
			}
			nums = append(nums, n)
		}
		return nums
	}
	return raw
}
