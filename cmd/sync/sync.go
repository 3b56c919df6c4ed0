package sync

import (
	"fmt"
	"strings"

	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewSyncCmd(l *app.Loader) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Inspect the pending sync queue",
		Long: `Inspect the pending sync queue. The companion application's sync
client consumes and deletes these rows; hb never removes them.`,
	}

	syncCmd.AddCommand(NewDecodeCmd(l))
	syncCmd.AddCommand(NewListCmd(l))

	return syncCmd
}

func NewDecodeCmd(l *app.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <payload>",
		Short: "Decode one queue payload into its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := l.Config.Sync
			codec := syncqueue.NewCodec(cfg.CompressionLevel, cfg.MinPayloadSize)

			p, err := codec.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			return views.RenderSyncPayload(p)
		},
	}
}

func NewListCmd(l *app.Loader) *cobra.Command {
	var (
		after  int64
		limit  int
		detail bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List queue rows with their decoded operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := l.App()
			if err != nil {
				return err
			}

			rows, err := a.Store.ListSyncUpdates(after, limit)
			if err != nil {
				return err
			}

			items := make([]views.SyncQueueItem, 0, len(rows))
			var decoded []syncqueue.Payload
			for _, row := range rows {
				item := views.SyncQueueItem{
					Key:        row.Key,
					UpdateType: row.UpdateType,
					UUID:       row.UUID,
					Length:     len(row.Payload),
				}
				p, err := a.Codec.Decode(row.Payload)
				if err != nil {
					item.Err = err
				} else {
					item.Operation = p.Operation
					item.Record = recordRef(p)
					decoded = append(decoded, p)
				}
				items = append(items, item)
			}

			if err := views.RenderSyncQueue(items); err != nil {
				return err
			}
			if detail {
				for _, p := range decoded {
					if err := views.RenderSyncPayload(p); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&after, "after", 0, "Only rows with a key greater than this")
	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "Maximum number of rows")
	cmd.Flags().BoolVar(&detail, "detail", false, "Print every decoded payload")

	return cmd
}

// recordRef renders the record key and owning device of a payload.
func recordRef(p syncqueue.Payload) string {
	schema, ok := syncqueue.Schema(p.Operation)
	if !ok {
		return "-"
	}
	key, _ := p.Get(schema.KeyField)
	deviceID, _ := p.Get("deviceId")

	if keys, ok := key.([]any); ok && len(keys) == 1 {
		key = keys[0]
	}
	return fmt.Sprintf("%v @ %v", key, deviceID)
}
