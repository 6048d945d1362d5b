/*
 * doc.go, part of refprep.
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

/*
Package chem is the main package of refprep. It provides the atom, residue,
chain and model structures, the unit cell and its symmetry operations, the
connection table, and readers for PDB and mmCIF coordinate files, plain or
compressed.

	**refprep Capabilities**

	Reads PDB and mmCIF files, gzip or zstd compressed, with all their
	models, cell, symmetry operations and connections (LINK, SSBOND,
	_struct_conn).

	Finds a definition for every monomer of a model in the user's
	libraries, the installed monomer library and the fallback libraries,
	and builds ad-hoc definitions, from the observed geometry, for those
	missing.

	Detects covalent links between residues, including those made with
	the crystallographic images of the model.

	Assigns cis peptides from the coordinates and removes hydrogens.

	Writes the prepared model and its monomer definitions as one mmCIF
	file, and plots the distances of the link candidates.
*/
package chem
