/*
 * main.go, part of refprep.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Command refprep prepares a coordinate file for refinement: it finds a
// definition for every monomer, builds ad-hoc ones if asked, detects
// covalent links and writes everything as a single mmCIF file.
package main

import (
	"fmt"
	"os"

	"github.com/rmera/refprep/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.SetOutput(os.Stderr)
		logger.Error(err)
		os.Exit(1)
	}
}

var version = "dev"

func versionString() string {
	return fmt.Sprintf("refprep version %s", version)
}
