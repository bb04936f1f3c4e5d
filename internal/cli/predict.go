/*
 * predict.go, part of cebeconf.
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
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/coulomb"
	"github.com/rmera/cebeconf/krr"
	"github.com/rmera/cebeconf/model"
	"github.com/rmera/cebeconf/report"
	"github.com/rmera/cebeconf/spectrum"
)

func newPredictCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict FILE.xyz",
		Short: "Predict the core binding energies of the atoms in an XYZ file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.predict(cmd.Context(), args[0])
		},
	}
	predictFlags(cmd.Flags())
	return cmd
}

//loadPredictor loads every element model and returns the predictor and the
//time spent loading.
func (a *app) loadPredictor(ctx context.Context) (*krr.Predictor, time.Duration, error) {
	gen, err := coulomb.New(a.cfg.CoulombOptions())
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	sets, err := model.LoadAll(ctx, a.cfg.Store(), model.Elements)
	if err != nil {
		return nil, 0, err
	}
	load := time.Since(start)
	reg, err := krr.NewRegistry(sets, a.cfg.KernelKind(), a.cfg.Sigmas, gen.Width())
	if err != nil {
		return nil, 0, err
	}
	p, err := krr.NewPredictor(reg, gen)
	if err != nil {
		return nil, 0, err
	}
	p.Workers = a.cfg.Workers
	a.log.Info("models loaded",
		zap.String("dir", a.cfg.DataDir),
		zap.Strings("elements", reg.Elements()),
		zap.String("kernel", a.cfg.KernelKind().String()),
		zap.Duration("took", load))
	return p, load, nil
}

//predict runs the whole pipeline on one file. Nothing is written to
//stdout unless every step succeeds.
func (a *app) predict(ctx context.Context, file string) error {
	start := time.Now()
	mol, err := cebe.XYZFileRead(file)
	if err != nil {
		return err
	}
	a.log.Debug("geometry read", zap.String("file", file), zap.Int("atoms", mol.Len()), zap.String("formula", cebe.Formula(mol)))
	p, load, err := a.loadPredictor(ctx)
	if err != nil {
		return err
	}
	preds, err := p.Molecule(ctx, mol)
	if err != nil {
		return err
	}
	r := &report.Report{
		Source:      file,
		Title:       mol.Title,
		Predictions: preds,
		Timings:     report.Timings{Load: load, Total: time.Since(start)},
	}
	if a.cfg.Output == "json" {
		err = report.JSON(a.stdout, r)
	} else {
		if err = report.Banner(a.stdout, start); err == nil {
			err = report.Text(a.stdout, r)
		}
	}
	if err != nil {
		return err
	}
	if a.cfg.Spectrum.File == "" {
		return nil
	}
	return a.plot(mol.Title, preds)
}

func (a *app) plot(title string, preds []krr.Prediction) error {
	shape, err := spectrum.ParseShape(a.cfg.Spectrum.Shape)
	if err != nil {
		return err
	}
	curves, err := spectrum.Broaden(preds, shape, a.cfg.Spectrum.FWHM, a.cfg.Spectrum.Step)
	if err != nil {
		return err
	}
	if err := spectrum.Plot(curves, title, a.cfg.Spectrum.File); err != nil {
		return err
	}
	a.log.Info("spectrum written", zap.String("file", a.cfg.Spectrum.File))
	return nil
}
