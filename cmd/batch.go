package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/service"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type batchFlags struct {
	File        string
	StopOnError bool
	ErrorReport string
}

type batchRunner struct {
	loader *app.Loader
	flags  *batchFlags
	cmd    *cobra.Command
}

// batchReportItem is one entry of the --error-report file.
type batchReportItem struct {
	Index     int    `json:"index"`
	Resource  string `json:"resource"`
	Operation string `json:"operation"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

func NewBatchCmd(l *app.Loader) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Apply many operations from a file",
	}

	flags := &batchFlags{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a JSON file of add, update and delete operations",
		Long: `Run a JSON file of add, update and delete operations.

The file is an array of {"resource", "operation", "parameters"} items.
Each item commits on its own. By default a failed item is reported and
the run continues; --stop-on-error ends the run at the first failure.`,
		Example: `  hb batch run --file operations.json
  hb batch run --file operations.json --stop-on-error
  hb batch run --file operations.json --error-report errors.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &batchRunner{
				loader: l,
				flags:  flags,
				cmd:    cmd,
			}
			return runner.Run()
		},
	}

	runCmd.Flags().StringVarP(&flags.File, "file", "f", "", "Path to the batch JSON file")
	runCmd.Flags().BoolVar(&flags.StopOnError, "stop-on-error", false, "Stop at the first failed operation")
	runCmd.Flags().StringVar(&flags.ErrorReport, "error-report", "", "Write failed operations to this JSON file")
	runCmd.MarkFlagRequired("file")

	batchCmd.AddCommand(runCmd)
	return batchCmd
}

func (r *batchRunner) Run() error {
	f, err := os.Open(r.flags.File)
	if err != nil {
		return fmt.Errorf("error reading batch file: %w", err)
	}
	ops, err := service.LoadOperations(f)
	f.Close()
	if err != nil {
		return err
	}

	a, err := r.loader.App()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	pterm.Info.Printf("Running %d operations from %s\n", len(ops), r.flags.File)

	var result *service.BatchResult
	err = transaction.Write(ctx, a, func() error {
		result = a.Service.Batch.Run(ctx, ops, !r.flags.StopOnError)
		return nil
	})
	if err != nil {
		return err
	}

	if err := views.RenderBatchSummary(result); err != nil {
		return err
	}

	if r.flags.ErrorReport != "" && len(result.Failed) > 0 {
		if err := writeErrorReport(r.flags.ErrorReport, result.Failed); err != nil {
			return err
		}
		pterm.Info.Printf("Errors written to %s\n", r.flags.ErrorReport)
	}

	return result.Err()
}

func writeErrorReport(path string, failed []service.Result) error {
	items := make([]batchReportItem, 0, len(failed))
	for _, f := range failed {
		items = append(items, batchReportItem{
			Index:     f.Index,
			Resource:  f.Resource,
			Operation: f.Operation,
			Kind:      apperr.Kind(f.Err),
			Error:     f.Err.Error(),
		})
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write error report: %w", err)
	}
	return nil
}
