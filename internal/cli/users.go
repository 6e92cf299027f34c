package cli

import (
	"crudconsole/internal/console"
	"crudconsole/internal/form"
	"crudconsole/internal/format"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User commands",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersShowCmd(app))
	cmd.AddCommand(newUsersCreateCmd(app))
	cmd.AddCommand(newUsersUpdateCmd(app))
	cmd.AddCommand(newUsersDeleteCmd(app))
	return cmd
}

// loadUsers fetches users and their post counts into a fresh view.
func loadUsers(cmd *cobra.Command, app *App) (*console.UsersView, error) {
	v := console.NewUsersView(app.logger())
	if err := v.Load(cmd.Context(), app.client()); err != nil {
		return nil, err
	}
	return v, nil
}

func newUsersListCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with their post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadUsers(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v.SetSearch(search)
			res := v.Rows()
			return writeOut(cmd, app, format.Envelope{
				Data: userRows{users: res.Rows, counts: v.PostCount},
				Meta: map[string]any{"count": len(res.Rows), "search": search},
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on name, username or email")
	return cmd
}

func newUsersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			u, err := app.client().GetUser(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: userDetail(u)})
		},
	}
}

type userFlags struct {
	name, username, email, phone, website string
}

func (f *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.username, "username", "", "Username")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.website, "website", "", "Website")
}

// apply copies the flags the user set into the open form.
func (f *userFlags) apply(cmd *cobra.Command, v *console.UsersView) error {
	fields := []struct {
		flag, field, value string
	}{
		{"name", form.FieldName, f.name},
		{"username", form.FieldUsername, f.username},
		{"email", form.FieldEmail, f.email},
		{"phone", form.FieldPhone, f.phone},
		{"website", form.FieldWebsite, f.website},
	}
	for _, x := range fields {
		if !cmd.Flags().Changed(x.flag) {
			continue
		}
		if err := v.SetField(x.field, x.value); err != nil {
			return err
		}
	}
	return nil
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var f userFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadUsers(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v.StartAdd()
			if err := f.apply(cmd, v); err != nil {
				return writeErr(cmd, err)
			}
			return commitUser(cmd, app, v)
		},
	}

	f.register(cmd)
	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var f userFlags

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user (only the given fields change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			v, err := loadUsers(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !v.StartEdit(id) {
				return writeErr(cmd, errNotFound("user", id))
			}
			if err := f.apply(cmd, v); err != nil {
				return writeErr(cmd, err)
			}
			return commitUser(cmd, app, v)
		},
	}

	f.register(cmd)
	return cmd
}

func commitUser(cmd *cobra.Command, app *App, v *console.UsersView) error {
	a, err := v.Commit(cmd.Context(), app.client())
	if a.Action != "" {
		app.record(cmd.Context(), a)
	}
	if err != nil {
		return writeErr(cmd, commitError(err, v.Notices()))
	}
	u, _ := v.Find(a.EntityID)
	return writeOut(cmd, app, format.Envelope{Data: userDetail(u), Meta: outcomeMeta(a.Message)})
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			v, err := loadUsers(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !v.RequestDelete(id) {
				return writeErr(cmd, errNotFound("user", id))
			}
			a, err := v.ConfirmDelete(cmd.Context(), app.client())
			app.record(cmd.Context(), a)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: deletedDetail(id, a.Local),
				Meta: outcomeMeta(a.Message),
			})
		},
	}
}

func outcomeMeta(msg string) map[string]any {
	return map[string]any{"message": msg}
}
