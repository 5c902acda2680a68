package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand runs the root command with stdin and args from an empty
// working directory and returns stdout, stderr and the exit status.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("CLICOLOR_FORCE", "0")

	resetFlags(rootCmd)
	cfgFile = ""

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	code := execute(rootCmd)
	return stdout.String(), stderr.String(), code
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})
}
