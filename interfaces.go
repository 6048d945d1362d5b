/*
 * interfaces.go, part of refprep.
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

package chem

// Error is the interface for errors that all packages in this module
// implement. The Decorate method allows to add and retrieve information from
// the error: each call appends the name of a function in the calling stack to
// a copy of the trail, and returns it. An empty string just returns the current
// trail.
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// FileError is implemented by errors that come from reading a file.
type FileError interface {
	Error
	FileName() string
}
