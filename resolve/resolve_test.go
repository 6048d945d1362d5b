/*
 * resolve_test.go, part of refprep.
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

package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/refprep/cif"
	"github.com/rmera/refprep/monlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource records the names it is asked for.
type fakeSource struct {
	have   map[string]bool
	asked  [][]string
	broken bool
}

func (F *fakeSource) Lookup(names []string) ([]*monlib.ChemComp, error) {
	F.asked = append(F.asked, append([]string(nil), names...))
	if F.broken {
		return nil, errors.New("library unreadable")
	}
	var ret []*monlib.ChemComp
	var missing []string
	for _, n := range names {
		if F.have[n] {
			ret = append(ret, &monlib.ChemComp{ID: n, Origin: monlib.Installed})
		} else {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return ret, errors.New("not found: " + strings.Join(missing, " "))
	}
	return ret, nil
}

func installed(names ...string) *fakeSource {
	f := &fakeSource{have: make(map[string]bool)}
	for _, n := range names {
		f.have[n] = true
	}
	return f
}

func loader(files map[string][]string) Loader {
	return func(path string) ([]*monlib.ChemComp, error) {
		ids, ok := files[path]
		if !ok {
			return nil, errors.New(path + ": no such file")
		}
		ret := make([]*monlib.ChemComp, len(ids))
		for i, id := range ids {
			ret[i] = &monlib.ChemComp{ID: id, Name: path, Origin: monlib.User}
		}
		return ret, nil
	}
}

func TestOverridesWin(t *testing.T) {
	src := installed("ALA", "GLY", "XYZ")
	res := Resolve(Request{
		Names:     []string{"ALA", "GLY", "ALA"},
		Overrides: []string{"first.cif", "second.cif"},
		Installed: src,
		Loader:    loader(map[string][]string{"first.cif": {"ALA"}, "second.cif": {"ALA", "HOH"}}),
	})
	assert.Empty(t, res.Unmet)
	assert.Empty(t, res.Warnings)
	ala := res.Library.Get("ALA")
	require.NotNil(t, ala)
	assert.Equal(t, monlib.User, ala.Origin)
	assert.Equal(t, "first.cif", ala.Name)
	//overrides contribute everything they have
	assert.True(t, res.Library.Has("HOH"))
	assert.Equal(t, monlib.Installed, res.Library.Get("GLY").Origin)
	//the installed library is only asked for what is still missing
	require.Len(t, src.asked, 1)
	assert.Equal(t, []string{"GLY"}, src.asked[0])
	assert.Contains(t, res.Notes, "Reading user's library first.cif...")
	assert.Contains(t, res.Notes, "Monomers read so far: ALA HOH")
}

func TestInstalledNotQueriedWhenComplete(t *testing.T) {
	src := installed("ALA")
	res := Resolve(Request{
		Names:     []string{"ALA"},
		Overrides: []string{"lib.cif"},
		Installed: src,
		Loader:    loader(map[string][]string{"lib.cif": {"ALA"}}),
	})
	assert.Empty(t, res.Unmet)
	assert.Empty(t, src.asked)
}

func TestFallbacksFillOnlyMissing(t *testing.T) {
	src := installed("ALA")
	res := Resolve(Request{
		Names:     []string{"ALA", "XYZ", "QQQ"},
		Fallbacks: []string{"low1.cif", "low2.cif"},
		Installed: src,
		Loader:    loader(map[string][]string{"low1.cif": {"ALA", "XYZ", "EXTRA"}, "low2.cif": {"XYZ"}}),
	})
	assert.Equal(t, []string{"QQQ"}, res.Unmet)
	assert.Equal(t, monlib.Installed, res.Library.Get("ALA").Origin)
	assert.Equal(t, "low1.cif", res.Library.Get("XYZ").Name)
	assert.False(t, res.Library.Has("EXTRA"))
	//the installed lookup error is a warning
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "XYZ")
}

func TestReadErrorsAreWarnings(t *testing.T) {
	src := installed()
	src.broken = true
	res := Resolve(Request{
		Names:     []string{"ALA"},
		Overrides: []string{"missing.cif"},
		Fallbacks: []string{"alsomissing.cif"},
		Installed: src,
		Loader:    loader(nil),
	})
	assert.Equal(t, []string{"ALA"}, res.Unmet)
	assert.Len(t, res.Warnings, 3)
	assert.Equal(t, 0, res.Library.Len())
}

func TestEmptyOverrideIsNoop(t *testing.T) {
	res := Resolve(Request{
		Names:     []string{"ALA"},
		Overrides: []string{"empty.cif"},
		Loader:    loader(map[string][]string{"empty.cif": {}}),
	})
	assert.Empty(t, res.Warnings)
	assert.Equal(t, []string{"ALA"}, res.Unmet)
}

const embedded = `data_1ABC
_cell.length_a 10
data_comp_LIG
loop_
_chem_comp_atom.comp_id
_chem_comp_atom.atom_id
_chem_comp_atom.type_symbol
LIG C1 C
LIG O1 O
`

func TestEmbeddedSource(t *testing.T) {
	doc, err := cif.Read(strings.NewReader(embedded), "1abc.cif")
	require.NoError(t, err)
	src := installed("LIG", "ALA")
	res := Resolve(Request{
		Names:     []string{"ALA", "LIG"},
		Overrides: []string{EmbeddedSource},
		Installed: src,
		Embedded:  doc,
	})
	assert.Empty(t, res.Unmet)
	lig := res.Library.Get("LIG")
	require.NotNil(t, lig)
	assert.Equal(t, monlib.Embedded, lig.Origin)
	assert.Len(t, lig.Atoms, 2)
	assert.Equal(t, []string{"ALA"}, src.asked[0])

	res = Resolve(Request{Names: []string{"LIG"}, Overrides: []string{EmbeddedSource}})
	assert.Equal(t, []string{"LIG"}, res.Unmet)
	assert.Len(t, res.Warnings, 1)
}

func TestEachCallReturnsNewLibrary(t *testing.T) {
	req := Request{Names: []string{"ALA"}, Installed: installed("ALA")}
	a := Resolve(req)
	b := Resolve(req)
	assert.NotSame(t, a.Library, b.Library)
	a.Library.Add(&monlib.ChemComp{ID: "GLY"})
	assert.False(t, b.Library.Has("GLY"))
}

func TestUserLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.cif")
	require.NoError(t, os.WriteFile(path, []byte(embedded), 0o644))
	res := Resolve(Request{Names: []string{"LIG"}, Overrides: []string{path}})
	assert.Empty(t, res.Unmet)
	assert.Equal(t, monlib.User, res.Library.Get("LIG").Origin)
}
