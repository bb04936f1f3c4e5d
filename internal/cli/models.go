/*
 * models.go, part of cebeconf.
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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/cebeconf/model"
)

func newModelsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect and repackage the model files",
	}
	cmd.AddCommand(newModelsCheckCommand(a), newModelsCompressCommand(a))
	return cmd
}

func newModelsCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every model and print its size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := model.LoadAll(cmd.Context(), a.cfg.Store(), model.Elements)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%-8s %10s %8s %16s\n", "element", "training", "width", "sigma")
			for _, e := range model.Elements {
				s := sets[e]
				fmt.Fprintf(a.stdout, "%-8s %10d %8d %16.8f\n", e, s.Len(), s.Width(), a.cfg.Sigmas[e])
			}
			return nil
		},
	}
}

func newModelsCompressCommand(a *app) *cobra.Command {
	var out, comp string
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Copy the models to another directory, compressed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseCompression(comp)
			if err != nil {
				return err
			}
			if out == "" {
				return fmt.Errorf("models compress: --out is required")
			}
			sets, err := model.LoadAll(cmd.Context(), a.cfg.Store(), model.Elements)
			if err != nil {
				return err
			}
			dst := model.DirStore{Dir: out}
			for _, e := range model.Elements {
				if err := dst.Save(sets[e], c); err != nil {
					return err
				}
				a.log.Info("model written", zap.String("element", e), zap.String("dir", out), zap.String("suffix", c.Suffix()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "destination directory")
	cmd.Flags().StringVar(&comp, "compression", "zstd", "compression (none, zstd, gzip)")
	return cmd
}
