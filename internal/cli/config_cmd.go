package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/seabearDEV/scaf/internal/config"
	"github.com/seabearDEV/scaf/internal/fileutil"
	"github.com/seabearDEV/scaf/internal/format"
	"github.com/seabearDEV/scaf/internal/scaffold"
	"github.com/spf13/cobra"
)

func settings() map[string]any {
	m := make(map[string]any, len(config.ValidConfigKeys))
	for _, k := range config.ValidConfigKeys {
		m[k] = config.GetSetting(k)
	}
	return m
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage write defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), format.FormatSettings(settings()))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return config.ValidConfigKeys, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetSetting(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.Success(fmt.Sprintf("Config '%s' set to '%v'.", args[0], config.GetSetting(args[0]))))
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), format.FormatSettings(settings()))
				return nil
			}
			val := config.GetSetting(args[0])
			if val == nil {
				return fmt.Errorf("unknown configuration key: %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", val)
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(config.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.Success("Config reset to defaults."))
			return nil
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show version and storage information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version: %s\n", Version)
			fmt.Fprintf(out, "Commit: %s\n", Commit)
			fmt.Fprintf(out, "Go: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "Data directory: %s\n", fileutil.GetDataDirectory())
			fmt.Fprintf(out, "Templates: %s\n", strings.Join(scaffold.Names(), ", "))
			return nil
		},
	}

	examplesCmd := &cobra.Command{
		Use:   "examples",
		Short: "Show usage examples",
		Run: func(cmd *cobra.Command, args []string) {
			examples := []string{
				"# Write the dashboard page to src/app/dashboard/page.tsx",
				"scaf",
				"",
				"# Write it somewhere else, creating directories",
				"scaf write dashboard -o web/app/dashboard/page.tsx -p",
				"",
				"# Write stdin to a file, keeping a backup of the old one",
				"cat notes.txt | scaf write --from - -o out/notes.txt --backup",
				"",
				"# Refuse to replace an existing file",
				"scaf write --no-overwrite",
				"",
				"# Always write Latin-1",
				"scaf config set encoding latin1",
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(examples, "\n"))
		},
	}

	completionsCmd := &cobra.Command{
		Use:   "completions [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootCmd := cmd.Root()
			if len(args) == 0 {
				return rootCmd.GenBashCompletion(cmd.OutOrStdout())
			}
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported shell: %s (use bash, zsh, fish, or powershell)", args[0])
			}
		},
	}

	configCmd.AddCommand(setCmd, getCmd, resetCmd, infoCmd, examplesCmd, completionsCmd)
	return configCmd
}
