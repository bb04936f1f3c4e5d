/*
 * serve.go, part of cebeconf.
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
	"github.com/spf13/cobra"

	"github.com/rmera/cebeconf/internal/metrics"
	"github.com/rmera/cebeconf/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.loadPredictor(cmd.Context())
			if err != nil {
				return err
			}
			m := metrics.New()
			m.ModelsLoaded.Set(float64(len(p.Registry)))
			p.Observe = m.Observe
			s := server.New(p, a.log, m, server.Options{
				Addr:         a.cfg.Server.Addr,
				MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
				Elements:     p.Registry.Elements(),
			})
			return s.Run(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "address to listen on")
	cmd.Flags().StringP("kernel", "k", "laplacian", "kernel (laplacian, gaussian)")
	cmd.Flags().IntP("workers", "w", 0, "atoms evaluated concurrently per request, 0 for one per CPU")
	return cmd
}
