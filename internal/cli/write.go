package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/seabearDEV/scaf/internal/config"
	"github.com/seabearDEV/scaf/internal/fileutil"
	"github.com/seabearDEV/scaf/internal/format"
	"github.com/seabearDEV/scaf/internal/scaffold"
	"github.com/spf13/cobra"
)

type writeFlags struct {
	output      string
	from        string
	encoding    string
	noOverwrite bool
	parents     bool
	atomic      bool
	verify      bool
	backup      bool
	force       bool
}

func newWriteCmd() *cobra.Command {
	var f writeFlags

	cmd := &cobra.Command{
		Use:     "write [template]",
		Aliases: []string{"w"},
		Short:   "Write a scaffold file",
		Long: `Write a built-in template (default "dashboard") or the content of --from
to the destination, creating the file or truncating an existing one.`,
		Args: cobra.MaximumNArgs(1),
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
			return runWrite(cmd, name, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Destination path (default from config)")
	cmd.Flags().StringVar(&f.from, "from", "", "Read the payload from a file, or '-' for stdin")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "Character set of the written file (default from config)")
	cmd.Flags().BoolVar(&f.noOverwrite, "no-overwrite", false, "Fail if the destination already exists")
	cmd.Flags().BoolVarP(&f.parents, "parents", "p", false, "Create missing parent directories")
	cmd.Flags().BoolVar(&f.atomic, "atomic", false, "Write to a temporary file and rename it into place")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "Read the file back and compare digests")
	cmd.Flags().BoolVar(&f.backup, "backup", false, "Back up an existing destination before replacing it")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "Replace an existing destination without asking")

	return cmd
}

// runWrite resolves options from config, the named template and any flags
// set on cmd, then performs the write and prints the confirmation.
func runWrite(cmd *cobra.Command, name string, f writeFlags) error {
	cfg := config.Load()
	flags := cmd.Flags()

	t, ok := scaffold.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown template: '%s'. Use: %s", name, strings.Join(scaffold.Names(), ", "))
	}

	opts := cfg.Options()
	opts.Payload = t.Payload
	if cfg.Destination == config.Default().Destination {
		opts.Destination = t.Destination
	}
	confirmation := t.Confirmation

	if flags.Changed("from") {
		payload, err := readPayload(f.from, cmd.InOrStdin())
		if err != nil {
			return err
		}
		opts.Payload = payload
		confirmation = ""
	}
	if flags.Changed("output") {
		opts.Destination = f.output
	}
	if flags.Changed("encoding") {
		opts.Encoding = f.encoding
	}
	if flags.Changed("no-overwrite") {
		opts.Overwrite = !f.noOverwrite
	}
	if flags.Changed("parents") {
		opts.CreateParents = f.parents
	}
	if flags.Changed("atomic") {
		opts.Atomic = f.atomic
	}
	opts.Verify = f.verify
	if f.force {
		opts.Overwrite = true
	}

	_, statErr := os.Stat(opts.Destination)
	exists := statErr == nil

	if promptOverwrite(exists, opts.Overwrite, f.from == "-", isTTY()) {
		if !askConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("%s already exists. Overwrite? [y/N] ", opts.Destination)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		opts.Overwrite = true
	}

	if exists && opts.Overwrite && f.backup {
		if saved := fileutil.BackupFile("write", opts.Destination); saved != "" {
			fmt.Fprintln(cmd.OutOrStdout(), format.Gray("Previous content saved to "+saved))
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), format.Warning("Could not back up "+opts.Destination+", replacing it anyway."))
		}
	}

	log.Debug().Str("template", name).Str("path", opts.Destination).Msg("writing scaffold")
	res, err := scaffold.NewWriter(log.Logger).Write(opts)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w (use --force to replace it)", err)
		}
		return err
	}

	if confirmation == "" {
		confirmation = fmt.Sprintf("Wrote %d bytes to %s.", res.Bytes, res.Path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), format.Success(confirmation))
	if opts.Verify {
		fmt.Fprintln(cmd.OutOrStdout(), format.Gray("blake2b-256 "+res.Digest))
	}
	return nil
}

// promptOverwrite reports whether to ask before replacing an existing file.
// Stdin cannot answer once --from - has consumed it.
func promptOverwrite(exists, overwrite, fromStdin, tty bool) bool {
	return exists && !overwrite && !fromStdin && tty
}
