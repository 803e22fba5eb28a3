package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmynk/budgetbuddy/internal/cli"
	"github.com/mmynk/budgetbuddy/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX files exported from your bank into
one registered user's ledger. Debits become expenses and credits become
income. Requires persistent storage (sqlite).

Examples:
  # Import single file
  budgetbuddy import-ofx --user <id> --db ./data/budgetbuddy.db ~/Downloads/statement_jan.qfx

  # Preview every QFX file in a directory
  budgetbuddy import-ofx --user <id> --dry-run ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().StringP("user", "u", "", "user id")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	addDBFlag(cmd)
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	cfg, err := storedConfig(cmd)
	if err != nil {
		return err
	}
	l, closeStore, err := openUserLedger(ctx, cfg, userID)
	if err != nil {
		return err
	}
	defer closeStore()

	slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

	parser := ofx.NewParser()
	var entries []ofx.Entry
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		parsed, err := parser.Parse(ctx, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		slog.Debug("Parsed file", "path", path, "transactions", len(parsed))
		entries = append(entries, parsed...)
	}

	res, err := ofx.Import(ctx, l, entries, dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s %d transactions from %d files", verb, res.Added, len(files))))
	if res.Duplicates > 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("Skipped %d duplicates", res.Duplicates)))
	}
	if res.Rejected > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d lines failed validation", res.Rejected)))
	}
	if res.Breaches > 0 {
		fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%d imported expenses exceeded a budget", res.Breaches)))
	}
	return nil
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}
