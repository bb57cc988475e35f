package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/tui"
	"github.com/jask/viewctrls/internal/viewctrls"
)

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [manifest]",
		Short: "Host the controls in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Handler and log output goes to the console pane; writing to
			// the terminal would tear the alt screen.
			console := tui.NewConsole()
			if err := a.setLogger(console); err != nil {
				return err
			}
			doc, source, err := a.document(cmd.Context(), args)
			if err != nil {
				return err
			}
			opts, err := a.options(doc)
			if err != nil {
				return err
			}
			engine := viewctrls.New(console, viewctrls.WithLogger(a.logger))
			model, err := tui.New(engine, console, "viewctrls · "+source, opts)
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
	a.addSetFlag(cmd)
	return cmd
}

func (a *app) htmlCmd() *cobra.Command {
	var (
		clicks []string
		hostID string
	)
	cmd := &cobra.Command{
		Use:   "html [manifest]",
		Short: "Render the controls into a container and print its HTML",
		Long: "Render the controls into a container and print its HTML.\n\n" +
			"Controls named with --click are clicked in order before printing; " +
			"handler output is written to stdout ahead of the markup.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.document(cmd.Context(), args)
			if err != nil {
				return err
			}
			opts, err := a.options(doc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			engine := viewctrls.New(out, viewctrls.WithLogger(a.logger))
			container := dom.New("div", dom.A("id", hostID))
			inst, err := engine.Initialize(container, opts)
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			for _, key := range clicks {
				el := inst.Control(key)
				if el == nil {
					return &ExitError{Code: 1, Err: fmt.Errorf("no control %q (have %v)", key, inst.Keys())}
				}
				if err := el.Click(); err != nil {
					return &ExitError{Code: 1, Err: fmt.Errorf("click %s: %w", key, err)}
				}
			}
			_, err = fmt.Fprintln(out, container.OuterHTML())
			return err
		},
	}
	a.addSetFlag(cmd)
	cmd.Flags().StringSliceVar(&clicks, "click", nil, "click these controls before printing")
	cmd.Flags().StringVar(&hostID, "id", "viewctrls", "id attribute of the container")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check that a control set initializes cleanly",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, source, err := a.document(cmd.Context(), args)
			if err != nil {
				return err
			}
			opts, err := a.options(doc)
			if err != nil {
				return err
			}
			keys, err := a.validate(opts)
			if err != nil {
				return &ExitError{Code: 1, Err: fmt.Errorf("%s: %w", source, err)}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d controls: %s)\n", source, len(keys), strings.Join(keys, ", "))
			return err
		},
	}
	a.addSetFlag(cmd)
	return cmd
}
