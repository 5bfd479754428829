package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/drummsters/ambientclock/internal/elements"
	"github.com/drummsters/ambientclock/internal/registry"
)

func newElementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the available element types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New(nil)
			elements.Register(reg)

			name := color.New(color.FgCyan, color.Bold).SprintFunc()
			dim := color.New(color.Faint).SprintFunc()

			for _, elementType := range reg.Types() {
				line := name(elementType)
				if caps := reg.Capabilities(elementType); len(caps) > 0 {
					line += " " + dim("["+strings.Join(caps, ", ")+"]")
				}
				if panel := reg.Panel(elementType); !panel.IsZero() {
					line += " " + dim(fmt.Sprintf("(%d settings)", len(panel.Fields)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	return cmd
}
