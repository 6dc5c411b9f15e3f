// nbdsetsize - A utility to set the size of Linux network block devices.
// Copyright (c) 2023 The Linsk Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X github.com/AlexSSD7/nbdsetsize/cmd.version=...".
var version = "dev"

const (
	exitOK           = 0
	exitFailure      = 1
	exitSizeRejected = 2
)

type exitCodeError int

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %v", int(e))
}

func newRootCmd(stderr io.Writer, open openDeviceFunc) *cobra.Command {
	var humanSizeFlag bool
	var verboseFlag bool

	rootCmd := &cobra.Command{
		Use:   "nbdsetsize DEV SIZE",
		Short: "Set the size of a Linux network block device.",
		Long: `Nbdsetsize sets the logical size of a network block device by issuing a single NBD_SET_SIZE request to the device node. ` +
			`SIZE is a number of bytes in decimal, or hex and octal with "0x" and "0" prefixes. ` +
			`The exit status is 2 if the device rejected the size and 1 on any other failure.`,
		Version: version,
		Args:    cobra.ArbitraryArgs,

		// Errors and usage are reported by runSetSize and execute.
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode := runSetSize(setSizeConfig{
				Logger:    newLogger(stderr, verboseFlag),
				Stderr:    stderr,
				UsageLine: cmd.UseLine(),
				Open:      open,
				HumanSize: humanSizeFlag,
			}, args)
			if exitCode != exitOK {
				return exitCodeError(exitCode)
			}

			return nil
		},
	}

	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate(fmt.Sprintf("nbdsetsize %v %v/%v %v\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version()))

	// Everything after DEV is positional, so that a SIZE like "-1" reaches the size parser.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().BoolVarP(&humanSizeFlag, "human", "H", false, `Also accept sizes with SI and IEC unit suffixes, e.g. "512MiB" or "4 GB".`)
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enables debug logging.")

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func execute(rootCmd *cobra.Command, args []string) int {
	// A nil slice would make cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))

	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}

	var codeErr exitCodeError
	if errors.As(err, &codeErr) {
		return int(codeErr)
	}

	// Anything else comes from cobra itself, e.g. an unknown flag.
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\nusage: %v\n", err, rootCmd.UseLine())

	return exitFailure
}

func Execute() {
	os.Exit(execute(newRootCmd(os.Stderr, openNBDDevice), os.Args[1:]))
}
