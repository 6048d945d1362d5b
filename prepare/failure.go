/*
 * failure.go, part of refprep.
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

package prepare

import (
	"fmt"
	"strings"

	"github.com/rmera/refprep/monlib"
)

// Kind classifies a Failure.
type Kind int

const (
	ConfigError Kind = iota
	EmptyModel
	MissingMonomers
	NoTemplate
)

func (K Kind) String() string {
	switch K {
	case ConfigError:
		return "configuration error"
	case EmptyModel:
		return "empty model"
	case MissingMonomers:
		return "missing monomers"
	case NoTemplate:
		return "no template"
	}
	return fmt.Sprintf("Kind(%d)", int(K))
}

// Failure is a named failure of the preparation. Only NoTemplate failures
// are not critical: they concern one residue name and the run goes on.
type Failure struct {
	Kind    Kind
	Names   []string //residue names involved, if any
	Message string
	deco    []string
}

func (F Failure) Error() string {
	return F.Message
}

// Critical is true if the failure aborts the run.
func (F Failure) Critical() bool {
	return F.Kind != NoTemplate
}

// Decorate adds dec to the call trail of the failure and returns the trail.
func (F Failure) Decorate(dec string) []string {
	if dec != "" {
		F.deco = append(F.deco, dec)
	}
	return F.deco
}

func missingFailure(names []string) Failure {
	return Failure{
		Kind:    MissingMonomers,
		Names:   names,
		Message: "Missing monomer definitions: " + strings.Join(names, " "),
		deco:    []string{"ResolveAndPrepare"},
	}
}

// LibraryDir returns the directory of the installed monomer library: the
// explicit argument if not empty, otherwise the value of $CLIBD_MON as given
// by getenv. getenv may be nil.
func LibraryDir(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if getenv != nil {
		if dir := getenv("CLIBD_MON"); dir != "" {
			return dir, nil
		}
	}
	return "", Failure{Kind: ConfigError, Message: "Set $CLIBD_MON or use option --monomers.", deco: []string{"LibraryDir"}}
}

// Installed opens the installed monomer library in dir. An unusable
// directory is a ConfigError.
func Installed(dir string) (*monlib.InstalledLibrary, error) {
	lib, err := monlib.NewInstalled(dir)
	if err != nil {
		return nil, Failure{Kind: ConfigError, Message: err.Error(), deco: []string{"Installed"}}
	}
	return lib, nil
}
