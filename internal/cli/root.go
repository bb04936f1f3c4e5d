/*
 * root.go, part of cebeconf.
 *
 *
 * Copyright 2026 The cebeconf authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

//Package cli implements the cebeconf command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rmera/cebeconf/internal/config"
	"github.com/rmera/cebeconf/internal/logging"
)

//Build information, set with -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

//app holds what every command needs once the flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
	stdout     io.Writer
}

//NewRootCommand returns the cebeconf command with all its subcommands.
//Given a file and no subcommand, it predicts.
func NewRootCommand() *cobra.Command {
	return newRoot(&app{stdout: os.Stdout})
}

func newRoot(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cebeconf [FILE.xyz]",
		Short: "Machine-learning prediction of 1s core electron binding energies",
		Long: "cebeconf predicts the 1s core electron binding energies of the C, N, O and F\n" +
			"atoms of a molecule, given its XYZ geometry, with kernel ridge regression\n" +
			"models trained on atomic Coulomb-matrix descriptors.",
		Version:       fmt.Sprintf("%s (commit %s)", Version, GitCommit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.predict(cmd.Context(), args[0])
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	pf.StringP("data", "d", "./data", "directory with the model files")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	predictFlags(cmd.Flags())

	cmd.AddCommand(
		newPredictCommand(a),
		newServeCommand(a),
		newModelsCommand(a),
		newVersionCommand(a),
	)
	return cmd
}

func predictFlags(fs *pflag.FlagSet) {
	fs.StringP("kernel", "k", "laplacian", "kernel (laplacian, gaussian)")
	fs.IntP("workers", "w", 0, "atoms evaluated concurrently, 0 for one per CPU")
	fs.StringP("output", "o", "text", "report format (text, json)")
	fs.String("spectrum", "", "also plot the broadened spectrum to this file (.png, .svg, .pdf)")
	fs.Float64("fwhm", 0.5, "full width at half maximum of the spectrum lines, in eV")
	fs.String("shape", "gaussian", "line shape of the spectrum (gaussian, lorentzian)")
}

func (a *app) init(fs *pflag.FlagSet) error {
	cfg, err := config.Load(a.configPath, fs)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

//Execute runs the command line and returns the error of the command, if
//any, after logging it. SIGINT and SIGTERM cancel the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a := &app{stdout: os.Stdout}
	err := newRoot(a).ExecuteContext(ctx)
	if a.log != nil {
		if err != nil {
			a.log.Error("cebeconf failed", zap.Error(err))
		}
		_ = a.log.Sync()
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "cebeconf: %v\n", err)
	}
	return err
}
