package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/stencil/pkg/paths"
	"github.com/arthur-debert/stencil/pkg/style"
	"github.com/arthur-debert/stencil/pkg/templates"
)

func newListCmd() *cobra.Command {
	var templatesRoot string

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(templatesRoot)
			if err != nil {
				return err
			}
			lib, err := templates.Load(p.TemplatesRoot())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(lib.Order) == 0 {
				fmt.Fprintln(out, MsgNoTemplates)
				return nil
			}

			for _, id := range lib.Order {
				lt := lib.Templates[id]
				fmt.Fprintf(out, "%s (%s)\n", style.Bold(lt.Template.Name), id)
				if lt.Template.Description != "" {
					fmt.Fprintln(out, style.Indent(firstLine(lt.Template.Description), 1))
				}
				for _, v := range lt.Template.Variants {
					marker := ""
					if v.Required {
						marker = " (required)"
					}
					fmt.Fprintf(out, "  - %s%s\n", v.ID, marker)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&templatesRoot, "templates-root", "", MsgFlagTemplatesRoot)
	return cmd
}
