package cli

import (
	"crudconsole/internal/route"

	"github.com/spf13/cobra"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Start the console on a screen: /, /users, /posts or /posts?userId=N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := route.Parse(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runTUI(app, r)
		},
	}
}
