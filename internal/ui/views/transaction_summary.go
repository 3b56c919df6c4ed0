package views

import (
	"fmt"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/service"
	"github.com/pterm/pterm"
)

func RenderBatchSummary(result *service.BatchResult) error {
	pterm.DefaultSection.Println("Batch Summary")

	if len(result.Failed) > 0 {
		failed := pterm.TableData{{"#", "Resource", "Operation", "Kind", "Error"}}
		for _, r := range result.Failed {
			failed = append(failed, []string{
				fmt.Sprint(r.Index + 1),
				r.Resource,
				r.Operation,
				kindLabel(r.Err),
				r.Err.Error(),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(failed).Render(); err != nil {
			return err
		}
	}

	totals := pterm.TableData{
		{"Succeeded", pterm.Green(fmt.Sprint(len(result.Succeeded)))},
		{"Failed", pterm.Red(fmt.Sprint(len(result.Failed)))},
		{"Skipped", pterm.Gray(fmt.Sprint(result.Skipped))},
		{"Total", fmt.Sprint(result.Total())},
	}
	if err := pterm.DefaultTable.WithData(totals).Render(); err != nil {
		return err
	}

	if len(result.Failed) == 0 {
		pterm.Success.Println("All operations applied")
	} else {
		pterm.Warning.Printf("%d of %d operations failed\n", len(result.Failed), result.Total())
	}
	return nil
}

func kindLabel(err error) string {
	if kind := apperr.Kind(err); kind != "" {
		return kind
	}
	return "error"
}
