package cli

import (
	"fmt"
	"strings"

	"github.com/seabearDEV/scaf/internal/format"
	"github.com/seabearDEV/scaf/internal/scaffold"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List built-in templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var templates []scaffold.Template
			for _, name := range scaffold.Names() {
				t, _ := scaffold.Lookup(name)
				templates = append(templates, t)
			}

			if jsonOut {
				out, err := format.ToJSON(templates)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			lines := make([]format.TemplateLine, 0, len(templates))
			for _, t := range templates {
				lines = append(lines, format.TemplateLine{Name: t.Name, Description: t.Description, Destination: t.Destination})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.FormatTemplates(lines))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output as JSON")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [template]",
		Short: "Print a template's payload to stdout",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return scaffold.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := scaffold.DefaultTemplate
			if len(args) == 1 {
				name = args[0]
			}
			t, ok := scaffold.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown template: '%s'. Use: %s", name, strings.Join(scaffold.Names(), ", "))
			}
			fmt.Fprint(cmd.OutOrStdout(), t.Payload)
			return nil
		},
	}
}
