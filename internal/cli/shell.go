package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "shell",
		Aliases: []string{"repl"},
		Short:   "Start the interactive shell",
		Long: `Start an interactive session with a tracked working directory. Every
one-shot command works unchanged; cd, up, pwd, clear, and exit are
built in. Ctrl-C interrupts a running scan without leaving the shell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunShell(cmd.Context(), app, os.Stdin)
		},
	}
}

// RunShell runs the interactive loop over in until exit or EOF. Commands
// dispatch through a fresh cobra tree per line, so the shell and the
// one-shot front end cannot drift apart.
func RunShell(ctx context.Context, app *App, in io.Reader) error {
	app.normalize()
	scanner := bufio.NewScanner(in)

	app.Confirm = func(prompt string) bool {
		fmt.Fprintf(app.Out, "%s [y/N] ", prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}
	defer func() { app.Confirm = nil }()

	fmt.Fprintln(app.Out, app.Renderer.Theme().Header.Render("xplore shell"))
	fmt.Fprintln(app.Out, `type a command ("help" lists them); cd, up, pwd, clear, exit are built in`)

	for {
		prompt := app.Renderer.Theme().Prompt.Render(shortPath(app.Session.WorkingDir()))
		fmt.Fprintf(app.Out, "%s > ", prompt)

		if !scanner.Scan() {
			fmt.Fprintln(app.Out)
			return scanner.Err()
		}

		args, err := SplitCommand(scanner.Text())
		if err != nil {
			app.Renderer.Error(app.ErrOut, err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		// A scan interrupted with Ctrl-C cancels; mutating operations do
		// not take a context and always run to completion.
		lineCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		err = app.Dispatch(lineCtx, args)
		stop()
		if err != nil {
			app.Renderer.Error(app.ErrOut, err)
		}
	}
}

// Dispatch executes one already-split command line: session built-ins
// directly, everything else through a fresh command tree.
func (a *App) Dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "cd":
		target := "~"
		if len(args) > 1 {
			target = args[1]
		}
		return a.Session.ChangeDir(target)
	case "up":
		return a.Session.Up()
	case "pwd":
		fmt.Fprintln(a.Out, a.Session.WorkingDir())
		return nil
	case "clear":
		fmt.Fprint(a.Out, "\x1b[2J\x1b[H")
		return nil
	case "shell", "repl":
		return errors.New("already in a shell")
	}

	root := NewRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.Out)
	root.SetErr(a.ErrOut)
	return root.ExecuteContext(ctx)
}

// shortPath abbreviates the home directory to ~ for the prompt.
func shortPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" || home == "/" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}
