package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/stencil/pkg/config"
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/installer"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/paths"
	"github.com/arthur-debert/stencil/pkg/prompt"
	"github.com/arthur-debert/stencil/pkg/scaffold"
	"github.com/arthur-debert/stencil/pkg/templates"
	"github.com/arthur-debert/stencil/pkg/tree"
)

func newNewCmd() *cobra.Command {
	var (
		variants      []string
		name          string
		scope         string
		output        string
		templatesRoot string
		dryRun        bool
		install       bool
		noInput       bool
	)

	cmd := &cobra.Command{
		Use:   "new [template]",
		Short: MsgNewShort,
		Long: `New scaffolds a project from a template. With no arguments it runs
interactively, asking for the template, variants and project name.
Every answer can instead be supplied as a flag; with --no-input the
command fails rather than prompt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.new")

			p, err := paths.New(templatesRoot)
			if err != nil {
				return err
			}
			settings, err := config.Load(p)
			if err != nil {
				return err
			}
			if scope == "" {
				scope = settings.Scope
			}
			if output == "" {
				output = settings.Output
			}
			if output == "" {
				output = "."
			}

			lib, err := templates.Load(p.TemplatesRoot())
			if err != nil {
				return err
			}

			interactive := !noInput && prompt.CanPrompt()

			templateID := ""
			if len(args) == 1 {
				templateID = args[0]
			} else if interactive {
				templateID, err = prompt.SelectTemplate(lib)
				if err != nil {
					return err
				}
			} else {
				return errors.New(errors.ErrInvalidInput, "template argument is required when not running interactively")
			}

			lt, err := lib.Get(templateID)
			if err != nil {
				return err
			}

			if len(variants) == 0 && interactive {
				variants, err = prompt.SelectVariants(&lt.Template)
				if err != nil {
					return err
				}
			}

			if name == "" {
				if !interactive {
					return errors.New(errors.ErrInvalidInput, "--name is required when not running interactively")
				}
				name, err = prompt.ProjectName()
				if err != nil {
					return err
				}
			}

			result, err := scaffold.RunWith(lib, scaffold.Options{
				TemplatesRoot: p.TemplatesRoot(),
				TemplateID:    templateID,
				Variants:      variants,
				Name:          name,
				Scope:         scope,
				OutputDir:     output,
				DryRun:        dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgCreatedFormat, result.DestDir, templateID)
			fmt.Fprintf(out, MsgVariantsFormat, strings.Join(result.ActiveVariants, ", "))
			fmt.Fprintln(out)
			fmt.Fprint(out, tree.NewRenderer(prompt.ColorEnabled()).Render(result.Entries))

			manager, detectErr := installer.Detect(settings.Manager)
			if len(result.Scripts) > 0 && detectErr == nil {
				fmt.Fprint(out, MsgScriptsHeader)
				for _, script := range result.Scripts {
					fmt.Fprintf(out, MsgScriptItem, manager, script)
				}
			}

			if dryRun {
				fmt.Fprintln(out, MsgDryRunNotice)
				return nil
			}

			if install {
				if detectErr != nil {
					logger.Warn().Err(detectErr).Msg("Install requested but no package manager found")
					fmt.Fprintln(out, MsgInstallSkipped)
					return nil
				}
				if err := installer.Install(manager, result.DestDir); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&variants, "variant", "V", nil, MsgFlagVariant)
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	cmd.Flags().StringVar(&scope, "scope", "", MsgFlagScope)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVar(&templatesRoot, "templates-root", "", MsgFlagTemplatesRoot)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&install, "install", false, MsgFlagInstall)
	cmd.Flags().BoolVar(&noInput, "no-input", false, MsgFlagNoInput)

	return cmd
}
