/*
 * errors.go, part of refprep.
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

package neighbor

import (
	"errors"
	"fmt"
	"slices"

	chem "github.com/rmera/refprep"
)

// Error is the error type of the neighbor package.
type Error struct {
	message  string
	deco     []string
	critical bool
	cause    error
}

func (err Error) Error() string { return err.message }

// Unwrap returns the error from another package that err carries, if any.
func (err Error) Unwrap() error { return err.cause }

// Decorate adds dec to the call trail of the error and returns the trail.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical is always true for errors from Build.
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.deco = append(slices.Clip(e.deco), caller)
		return e
	}
	var e chem.Error
	if errors.As(err, &e) {
		return Error{message: err.Error(), deco: append(slices.Clone(e.Decorate("")), caller), critical: e.Critical(), cause: err}
	}
	return fmt.Errorf("%s: %w", caller, err)
}
