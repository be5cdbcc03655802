package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xplorefs/xplore/internal/explorer"
)

func newLsCmd(app *App) *cobra.Command {
	var (
		opts explorer.ListOptions
		key  string
	)

	sortDefault := app.Settings.SortKey
	if sortDefault == "" {
		sortDefault = string(explorer.SortByName)
	}

	cmd := &cobra.Command{
		Use:     "ls [path]",
		Aliases: []string{"list"},
		Short:   "List directory entries",
		Long: `List the entries of a directory with mode, ownership, size, and
modification time.

Examples:
  xplore ls
  xplore ls -a --sort size /var/log
  xplore ls --dirs-first ~/projects`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Key = explorer.SortKey(key)
			return app.List(optionalArg(args), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.IncludeHidden, "all", "a", app.Settings.ShowHidden, "include hidden entries")
	cmd.Flags().BoolVar(&opts.DirsFirst, "dirs-first", app.Settings.DirsFirst, "group directories before files")
	cmd.Flags().StringVar(&key, "sort", sortDefault, "sort key: name, size, or modified")
	return cmd
}

func newStatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Show one entry's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Stat(args[0])
		},
	}
}

func newCpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "cp <source>... <destination>",
		Aliases: []string{"copy"},
		Short:   "Copy files or directory trees",
		Long: `Copy each source to the destination. Directories copy recursively and
keep going past unreadable children, reporting every failed path at the
end. A destination that is an existing directory receives each source
under its own name.

Examples:
  xplore cp notes.txt backup.txt
  xplore cp -- photos music /mnt/usb`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Copy(args[:len(args)-1], args[len(args)-1])
		},
	}
}

func newMvCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "mv <source>... <destination>",
		Aliases: []string{"move"},
		Short:   "Move or rename files and directory trees",
		Long: `Move each source to the destination. A plain rename is tried first;
across filesystems the tree is copied and the source removed. When the
source cannot be removed after a complete copy, the copy is kept and
the outcome says so.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Move(args[:len(args)-1], args[len(args)-1])
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	var recursive, yes bool

	cmd := &cobra.Command{
		Use:     "rm <path>...",
		Aliases: []string{"remove", "del"},
		Short:   "Delete files or directory trees",
		Long: `Delete each path. Files, symlinks, and empty directories go directly.
A non-empty directory needs -r plus confirmation: --yes here, or the
y/N prompt in the shell. Children are deleted before their directory,
and a failure stops the remaining siblings so the tree is never left
silently half-gone.

Examples:
  xplore rm stale.log
  xplore rm -r --yes build/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed := yes
			if !confirmed && recursive && app.Confirm != nil {
				confirmed = app.Confirm(fmt.Sprintf("recursively delete %s?", strings.Join(args, ", ")))
			}
			return app.Remove(args, recursive, confirmed)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "allow deleting non-empty directories")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm recursive deletion")
	return cmd
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename an entry within its directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Rename(args[0], args[1])
		},
	}
}

func newMkdirCmd(app *App) *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir <path>...",
		Short: "Create directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := app.MakeDir(p, parents); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing ancestors")
	return cmd
}

func newTouchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <path>...",
		Short: "Create empty files",
		Long:  "Create each file if it does not exist. Existing files are never truncated.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := app.Touch(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newChmodCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chmod <mode> <path>...",
		Short: "Change permissions",
		Long: `Set permissions from an octal mode string, setuid/setgid/sticky bits
included.

Examples:
  xplore chmod 644 notes.txt
  xplore chmod 2750 shared/`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args[1:] {
				if err := app.Chmod(p, args[0]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newChownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chown <owner>[:<group>] <path>...",
		Short: "Change ownership",
		Long: `Set the owner, the group, or both. Names and numeric IDs both work;
an omitted side is left unchanged.

Examples:
  xplore chown alice report.txt
  xplore chown :staff shared/
  xplore chown 1000:1000 data/`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args[1:] {
				if err := app.Chown(p, args[0]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find <term> [path]",
		Short: "Search a subtree for names containing a term",
		Long: `Walk the subtree and report every entry whose name contains the term,
case-insensitively. Unreadable branches are skipped, not fatal.

Examples:
  xplore find invoice
  xplore find .conf /etc`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Find(secondArg(args), args[0])
		},
	}
}

func newGlobCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "glob <pattern> [path]",
		Short: "Match a glob pattern against a subtree",
		Long: `Match a doublestar pattern against the subtree and print the hits in
sorted order.

Examples:
  xplore glob '**/*.go'
  xplore glob 'cmd/**/main.go' ~/src`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Glob(cmd.Context(), secondArg(args), args[0])
		},
	}
}

func newDuCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "du [path]",
		Aliases: []string{"usage"},
		Short:   "Sum the size of a subtree",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Usage(cmd.Context(), optionalArg(args))
		},
	}
}

func newTreeCmd(app *App) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Draw a subtree with connectors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Tree(cmd.Context(), optionalArg(args), depth)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "limit display depth (0 = unlimited)")
	return cmd
}

func newZipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "zip <source> <archive>",
		Short: "Pack a file or tree into a zip archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Zip(cmd.Context(), args[0], args[1])
		},
	}
}

func newUnzipCmd(app *App) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "unzip <archive> [destination]",
		Short: "Extract or inspect a zip archive",
		Long: `Extract a zip archive into the destination (the working directory by
default). Entries that would escape the destination are rejected.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Unzip(cmd.Context(), args[0], secondArg(args), list)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list entries without extracting")
	return cmd
}

func newTarCmd(app *App) *cobra.Command {
	var compression string

	cmd := &cobra.Command{
		Use:   "tar <source> <archive>",
		Short: "Pack a file or tree into a tarball",
		Long: `Pack a file or tree into a tar archive, optionally compressed.

Examples:
  xplore tar logs logs.tar
  xplore tar src src.tar.gz
  xplore tar -c zstd data data.tar.zst`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.TarCreate(cmd.Context(), args[0], args[1], compression)
		},
	}

	cmd.Flags().StringVarP(&compression, "compression", "c", "",
		"none, gzip, or zstd (default: inferred from the archive name)")
	return cmd
}

func newUntarCmd(app *App) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "untar <archive> [destination]",
		Short: "Extract or inspect a tarball",
		Long: `Extract a tar archive into the destination (the working directory by
default), sniffing gzip and zstd compression from the file name.
Entries that would escape the destination are rejected.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Untar(cmd.Context(), args[0], secondArg(args), list)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list entries without extracting")
	return cmd
}

func newPreviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <path>",
		Short: "Show the head of a file",
		Long: `Show the first lines of a file with its detected type. JSON, YAML,
TOML, and CSV get a structural summary; binaries report their type
only; non-UTF-8 text reports its detected charset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.PreviewFile(args[0])
		},
	}
}

func newRecentCmd(app *App) *cobra.Command {
	var (
		limit  int
		forget string
		clear  bool
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently touched paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case clear:
				return app.ClearRecent()
			case forget != "":
				return app.ForgetRecent(forget)
			default:
				return app.Recent(limit)
			}
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries (default: configured limit)")
	cmd.Flags().StringVar(&forget, "forget", "", "drop one path from the history")
	cmd.Flags().BoolVar(&clear, "clear", false, "empty the history")
	return cmd
}

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or switch the color theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return app.ShowThemes()
			}
			return app.SetTheme(args[0])
		},
	}
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func secondArg(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}
