package cli

import (
	"github.com/spf13/cobra"

	"github.com/xplorefs/xplore/internal/render"
)

// NewRootCmd builds the xplore command tree over a wired App. The tree is
// cheap to build, so the shell constructs a fresh one per input line and
// flag state never leaks between invocations.
func NewRootCmd(app *App) *cobra.Command {
	var chdir string

	root := &cobra.Command{
		Use:   "xplore",
		Short: "Explore and reshape directory trees",
		Long: `xplore lists, inspects, copies, moves, and deletes directory trees,
searches and globs them, packs them into archives, and previews file
contents. Run a single command, or start "xplore shell" for an
interactive session with a tracked working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.normalize()
			app.Renderer = render.New(app.Renderer.Theme(), app.JSONOut)
			if chdir != "" {
				return app.Session.ChangeDir(chdir)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&app.JSONOut, "json", false, "emit JSON instead of styled text")
	pf.StringVarP(&chdir, "chdir", "C", "", "run as if started in this directory")

	root.AddCommand(
		newLsCmd(app),
		newStatCmd(app),
		newCpCmd(app),
		newMvCmd(app),
		newRmCmd(app),
		newRenameCmd(app),
		newMkdirCmd(app),
		newTouchCmd(app),
		newChmodCmd(app),
		newChownCmd(app),
		newFindCmd(app),
		newGlobCmd(app),
		newDuCmd(app),
		newTreeCmd(app),
		newZipCmd(app),
		newUnzipCmd(app),
		newTarCmd(app),
		newUntarCmd(app),
		newPreviewCmd(app),
		newRecentCmd(app),
		newThemeCmd(app),
		newShellCmd(app),
	)
	return root
}
