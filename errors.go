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

package chem

import (
	"errors"
	"fmt"
	"slices"
)

// CError is the error type of the chem package.
type CError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	cause    error //the error from another package that this one carries, if any.
}

func (err CError) Error() string {
	if err.filename != "" {
		return fmt.Sprintf("%s: %s", err.filename, err.message)
	}
	return err.message
}

// Decorate adds dec to the call trail and returns the trail.
func (err CError) Decorate(dec string) []string {
	//The receiver is a copy, so the caller only sees the new trail through the
	//returned slice. errDecorate keeps it in a new error.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the file that produced the error, if any.
func (err CError) FileName() string {
	var f FileError
	if err.filename == "" && errors.As(err.cause, &f) {
		return f.FileName()
	}
	return err.filename
}

// Unwrap returns the error from another package that err carries, if any.
func (err CError) Unwrap() error { return err.cause }

// Critical is true if the data read up to the error can't be used.
func (err CError) Critical() bool { return err.critical }

// errDecorate returns err with caller added to its trail. A decorated error
// from another package is carried by a CError that keeps its message and trail.
// Other errors are wrapped.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(CError); ok {
		e.deco = append(slices.Clip(e.deco), caller)
		return e
	}
	var e Error
	if errors.As(err, &e) {
		return CError{
			message:  err.Error(),
			deco:     append(slices.Clone(e.Decorate("")), caller),
			critical: e.Critical(),
			cause:    err,
		}
	}
	return fmt.Errorf("%s: %w", caller, err)
}
