package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/stencil/pkg/paths"
	"github.com/arthur-debert/stencil/pkg/style"
	"github.com/arthur-debert/stencil/pkg/templates"
)

func newInfoCmd() *cobra.Command {
	var templatesRoot string

	cmd := &cobra.Command{
		Use:   "info <template>",
		Short: MsgInfoShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(templatesRoot)
			if err != nil {
				return err
			}
			lib, err := templates.Load(p.TemplatesRoot())
			if err != nil {
				return err
			}
			lt, err := lib.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tmpl := lt.Template

			fmt.Fprintf(out, "%s (%s)\n", style.Bold(tmpl.Name), tmpl.ID)
			if tmpl.Description != "" {
				fmt.Fprint(out, renderMarkdown(tmpl.Description))
			}

			fmt.Fprintf(out, "\nVariants:\n")
			for _, v := range tmpl.Variants {
				marker := ""
				if v.Required {
					marker = " (required)"
				}
				fmt.Fprintf(out, "  %s%s\n", style.Bold(v.Name), marker)
				if v.Description != "" {
					fmt.Fprintln(out, style.Indent(firstLine(v.Description), 2))
				}
				fmt.Fprintf(out, "    files: %s\n", strings.Join(v.Files, ", "))
				if len(v.Scripts) > 0 {
					fmt.Fprintf(out, "    scripts: %s\n", strings.Join(v.Scripts, ", "))
				}
			}

			if len(tmpl.MergeRules) > 0 {
				fmt.Fprintf(out, "\nMerge rules:\n")
				for _, path := range sortedRulePaths(tmpl.MergeRules) {
					fmt.Fprintf(out, "  %s: %s\n", path, tmpl.MergeRules[path])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&templatesRoot, "templates-root", "", MsgFlagTemplatesRoot)
	return cmd
}

// firstLine trims a multi-line description down to its opening line.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func sortedRulePaths(rules map[string]string) []string {
	paths := make([]string, 0, len(rules))
	for path := range rules {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
