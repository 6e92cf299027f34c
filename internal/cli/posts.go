package cli

import (
	"strconv"

	"crudconsole/internal/console"
	"crudconsole/internal/form"
	"crudconsole/internal/format"

	"github.com/spf13/cobra"
)

func newPostsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Post commands",
	}
	cmd.AddCommand(newPostsListCmd(app))
	cmd.AddCommand(newPostsShowCmd(app))
	cmd.AddCommand(newPostsCreateCmd(app))
	cmd.AddCommand(newPostsUpdateCmd(app))
	cmd.AddCommand(newPostsDeleteCmd(app))
	return cmd
}

// loadPosts fetches posts (optionally of one user) and the user list.
func loadPosts(cmd *cobra.Command, app *App, userID int) (*console.PostsView, error) {
	v := console.NewPostsView(app.logger())
	v.SetUserFilter(userID)
	if err := v.Load(cmd.Context(), app.client()); err != nil {
		return nil, err
	}
	return v, nil
}

func newPostsListCmd(app *App) *cobra.Command {
	var (
		userID int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadPosts(cmd, app, userID)
			if err != nil {
				return writeErr(cmd, err)
			}
			v.SetSearch(search)
			res := v.Rows()
			meta := map[string]any{"count": len(res.Rows), "search": search}
			if v.UserFilter() > 0 {
				meta["userId"] = v.UserFilter()
			}
			return writeOut(cmd, app, format.Envelope{
				Data: postRows{posts: res.Rows, userName: v.UserName},
				Meta: meta,
			})
		},
	}

	cmd.Flags().IntVar(&userID, "user", 0, "Only posts of this user id")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on the title")
	return cmd
}

func newPostsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c := app.client()
			p, err := c.GetPost(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			name := "User " + strconv.Itoa(p.UserID)
			if u, err := c.GetUser(cmd.Context(), p.UserID); err == nil {
				name = console.UserLabel(u)
			}
			return writeOut(cmd, app, format.Envelope{Data: postDetail(p, name)})
		},
	}
}

type postFlags struct {
	userID      int
	title, body string
}

func (f *postFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.userID, "user", 0, "Author user id")
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.body, "body", "", "Body (markdown)")
}

func (f *postFlags) apply(cmd *cobra.Command, v *console.PostsView) error {
	fields := []struct {
		flag, field, value string
	}{
		{"user", form.FieldUserID, strconv.Itoa(f.userID)},
		{"title", form.FieldTitle, f.title},
		{"body", form.FieldBody, f.body},
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

func newPostsCreateCmd(app *App) *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadPosts(cmd, app, 0)
			if err != nil {
				return writeErr(cmd, err)
			}
			v.StartAdd()
			if err := f.apply(cmd, v); err != nil {
				return writeErr(cmd, err)
			}
			return commitPost(cmd, app, v)
		},
	}

	f.register(cmd)
	return cmd
}

func newPostsUpdateCmd(app *App) *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:   "update <post-id>",
		Short: "Update a post (only the given fields change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			v, err := loadPosts(cmd, app, 0)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !v.StartEdit(id) {
				return writeErr(cmd, errNotFound("post", id))
			}
			if err := f.apply(cmd, v); err != nil {
				return writeErr(cmd, err)
			}
			return commitPost(cmd, app, v)
		},
	}

	f.register(cmd)
	return cmd
}

func commitPost(cmd *cobra.Command, app *App, v *console.PostsView) error {
	a, err := v.Commit(cmd.Context(), app.client())
	if a.Action != "" {
		app.record(cmd.Context(), a)
	}
	if err != nil {
		return writeErr(cmd, commitError(err, v.Notices()))
	}
	p, _ := v.Find(a.EntityID)
	return writeOut(cmd, app, format.Envelope{Data: postDetail(p, v.UserName(p.UserID)), Meta: outcomeMeta(a.Message)})
}

func newPostsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			v, err := loadPosts(cmd, app, 0)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !v.RequestDelete(id) {
				return writeErr(cmd, errNotFound("post", id))
			}
			a, err := v.ConfirmDelete(cmd.Context(), app.client())
			app.record(cmd.Context(), a)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: deletedDetail(id, a.Local), Meta: outcomeMeta(a.Message)})
		},
	}
}
