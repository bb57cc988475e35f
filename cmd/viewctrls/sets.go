package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/viewctrls/internal/database/repository"
	"github.com/jask/viewctrls/internal/manifest"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <manifest>",
		Short: "Store a manifest as a named control set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			doc, err := manifest.Load(path)
			if err != nil {
				return err
			}
			// Reject unknown handlers and bad shapes before storing.
			opts, err := a.options(doc)
			if err != nil {
				return err
			}
			if _, err := a.validate(opts); err != nil {
				return &ExitError{Code: 1, Err: fmt.Errorf("%s: %w", path, err)}
			}

			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := repository.NewControlSetRepo(db).Save(ctx, repository.ControlSet{Name: name, Document: doc}); err != nil {
				return fmt.Errorf("save %q: %w", name, err)
			}
			a.logger.Info("control set imported", "name", name, "path", path, "controls", len(doc.Controls))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d controls)\n", name, len(doc.Controls))
			return err
		},
	}
}

func (a *app) setsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List stored control sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			sets, err := repository.NewControlSetRepo(db).List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sets) == 0 {
				_, err = fmt.Fprintln(out, "no control sets")
				return err
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "CONTROLS", "UPDATED")
			for _, s := range sets {
				t.Row(s.Name, fmt.Sprint(s.Controls), s.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			_, err = fmt.Fprintln(out, t.String())
			return err
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name>",
		Short: "Print a stored control set as a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			set, err := repository.NewControlSetRepo(db).ByName(ctx, args[0])
			if err != nil {
				return err
			}
			if set == nil {
				return &ExitError{Code: 1, Err: fmt.Errorf("no control set named %q", args[0])}
			}
			return manifest.EncodeYAML(cmd.OutOrStdout(), set.Document)
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored control set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			ok, err := repository.NewControlSetRepo(db).Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return &ExitError{Code: 1, Err: fmt.Errorf("no control set named %q", args[0])}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}
