/*
 * main.go, part of cebeconf.
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

//Command cebeconf predicts 1s core electron binding energies of molecules.
package main

import (
	"os"

	"github.com/rmera/cebeconf/internal/cli"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = commit
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
