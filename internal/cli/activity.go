package cli

import (
	"errors"

	"crudconsole/internal/format"

	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent create/update/delete outcomes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.store()
			if !s.Enabled() {
				return writeErr(cmd, errors.New("activity log disabled (no --data-dir)"))
			}
			acts, err := s.ReadActivity(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if acts == nil {
				acts = activityRows{}
			}
			return writeOut(cmd, app, format.Envelope{
				Data: activityRows(acts),
				Meta: map[string]any{"count": len(acts)},
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum records (0: all)")
	return cmd
}
