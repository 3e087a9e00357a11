package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// addCmd force-syncs specific titles by their provider app id.
var addCmd = &cobra.Command{
	Use:   "add <appid>[,<appid>...]",
	Short: "Add or refresh specific titles by app id",
	Long: `Add specific titles to the Notion database by Steam app id, or force a
full refresh when a record already exists. Useful for titles outside the
owned library (family sharing, delisted games).

Examples:
  game-sync add 387290
  game-sync add 387290,24534,5501`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	RootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	appIDs, err := parseAppIDs(args[0])
	if err != nil {
		return err
	}

	runner, l, err := buildRunner(false, false, false)
	if err != nil {
		return err
	}

	summary, err := runner.RunAdd(context.Background(), appIDs)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	l.Info("add finished",
		zap.Int("requested", summary.Total),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("failed", summary.Failed))
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d titles failed", summary.Failed, summary.Total)
	}
	return nil
}

// parseAppIDs splits a comma-separated app id list.
func parseAppIDs(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid app id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
