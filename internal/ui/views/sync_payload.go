package views

import (
	"encoding/json"
	"fmt"

	"github.com/hance08/hb/internal/syncqueue"
	"github.com/hance08/hb/internal/ui"
	"github.com/pterm/pterm"
)

type SyncQueueItem struct {
	Key        int64
	UpdateType string
	UUID       string
	Operation  string
	Record     string
	Length     int
	Err        error
}

func RenderSyncPayload(p syncqueue.Payload) error {
	ui.PrintL2Title("%s", p.Operation)

	tableData := pterm.TableData{{"Field", "Value"}}
	for _, f := range p.Fields {
		tableData = append(tableData, []string{f.Name, valueString(f.Value)})
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(tableData).
		Render()
}

func RenderSyncQueue(items []SyncQueueItem) error {
	if len(items) == 0 {
		pterm.Warning.Println("Sync queue is empty")
		return nil
	}

	pterm.DefaultSection.Println("Pending Sync Updates")
	tableData := pterm.TableData{{"Key", "Update type", "UUID", "Operation", "Record", "Length"}}
	for _, it := range items {
		op, record := it.Operation, it.Record
		if it.Err != nil {
			op = pterm.Red("undecodable")
			record = it.Err.Error()
		}
		tableData = append(tableData, []string{
			fmt.Sprint(it.Key),
			it.UpdateType,
			it.UUID,
			op,
			record,
			fmt.Sprint(it.Length),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d rows\n", len(items))
	return nil
}

func valueString(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
