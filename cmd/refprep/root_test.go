/*
 * root_test.go, part of refprep.
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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/cif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = `data_test
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
ATOM 1 N N ALA A 1 0 0 0
ATOM 2 C CA ALA A 1 1.46 0 0
HETATM 3 C C1 XYZ B 1 1.46 1.8 0
HETATM 4 O O1 XYZ B 1 1.46 3.0 0
`

const embeddedXYZ = `data_comp_XYZ
loop_
_chem_comp_atom.comp_id
_chem_comp_atom.atom_id
_chem_comp_atom.type_symbol
XYZ C1 C
XYZ O1 O
`

const alanine = `data_comp_ALA
loop_
_chem_comp_atom.comp_id
_chem_comp_atom.atom_id
_chem_comp_atom.type_symbol
ALA N N
ALA CA C
`

// setup writes the input file and a monomer library with ALA, and isolates
// the test from the user's environment.
func setup(t *testing.T, in string) (dir, inPath, monomers string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CLIBD_MON", "")
	inPath = filepath.Join(dir, "in.cif")
	require.NoError(t, os.WriteFile(inPath, []byte(in), 0o644))
	monomers = filepath.Join(dir, "monomers")
	require.NoError(t, os.MkdirAll(filepath.Join(monomers, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(monomers, "a", "ALA.cif"), []byte(alanine), 0o644))
	return dir, inPath, monomers
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func origins(t *testing.T, path string) map[string]string {
	t.Helper()
	doc, err := cif.ReadFile(path)
	require.NoError(t, err)
	tab, ok := doc.Block("comp_list").Find("_chem_comp.", "id", "refprep_origin")
	require.True(t, ok)
	ret := make(map[string]string)
	for i := 0; i < tab.Len(); i++ {
		ret[tab.Str(i, 0)] = tab.Str(i, 1)
	}
	return ret
}

func TestRunAutoLigandAndLink(t *testing.T) {
	dir, in, mon := setup(t, input)
	out := filepath.Join(dir, "out.cif")
	hist := filepath.Join(dir, "contacts.png")
	log, err := execute(t, "--monomers", mon, "--auto-ligand", "--auto-link", "--link-histogram", hist, "-v", in, out)
	require.NoError(t, err, log)
	assert.Contains(t, log, "WARNING: definition not found for XYZ.")
	assert.Contains(t, log, "Automatic link: A/ALA 1/CA - B/XYZ 1/C1")
	assert.Contains(t, log, "Reading "+in)
	assert.Equal(t, map[string]string{"ALA": "installed", "XYZ": "ad-hoc"}, origins(t, out))

	doc, err := cif.ReadFile(out)
	require.NoError(t, err)
	st, err := chem.StructureFromDoc(doc)
	require.NoError(t, err)
	require.Len(t, st.Connections, 1)
	assert.Equal(t, "added1", st.Connections[0].Name)
	_, err = os.Stat(hist)
	assert.NoError(t, err)
}

func TestRunEmbeddedLibrary(t *testing.T) {
	dir, in, mon := setup(t, input+embeddedXYZ)
	out := filepath.Join(dir, "out.cif.gz")
	log, err := execute(t, "--monomers", mon, "--lib", "+", in, out)
	require.NoError(t, err, log)
	assert.NotContains(t, log, "WARNING")
	assert.Equal(t, map[string]string{"ALA": "installed", "XYZ": "embedded"}, origins(t, out))
}

func TestRunMissingMonomers(t *testing.T) {
	dir, in, mon := setup(t, input)
	out := filepath.Join(dir, "out.cif")
	_, err := execute(t, "--monomers", mon, in, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XYZ")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunNeedsLibraryDir(t *testing.T) {
	dir, in, mon := setup(t, input)
	_, err := execute(t, in, filepath.Join(dir, "out.cif"))
	require.Error(t, err)
	assert.Equal(t, "Set $CLIBD_MON or use option --monomers.", err.Error())

	t.Setenv("CLIBD_MON", mon)
	_, err = execute(t, "--auto-ligand", in, filepath.Join(dir, "out.cif"))
	assert.NoError(t, err)
}

func TestRunConfigFile(t *testing.T) {
	dir, in, mon := setup(t, input)
	cfg := filepath.Join(dir, "refprep.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("monomers = \""+filepath.ToSlash(mon)+"\"\nauto_ligand = true\n"), 0o600))
	out := filepath.Join(dir, "out.cif")
	_, err := execute(t, "--config", cfg, in, out)
	require.NoError(t, err)
	assert.Equal(t, "ad-hoc", origins(t, out)["XYZ"])

	//flags that were set win over the file
	_, err = execute(t, "--config", cfg, "--auto-ligand=false", in, out)
	assert.Error(t, err)
}

func TestHydrogenFlagsExclusive(t *testing.T) {
	dir, in, mon := setup(t, input)
	_, err := execute(t, "--monomers", mon, "-H", "--keep-hydrogens", in, filepath.Join(dir, "out.cif"))
	assert.Error(t, err)
}

func TestArgs(t *testing.T) {
	_, err := execute(t, "only-one.cif")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	original := version
	version = "test-1.0"
	defer func() { version = original }()
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "refprep version test-1.0\n", out)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, ".refprep", "config.toml"))
	_, err = execute(t, "config", "init")
	assert.Error(t, err)
	_, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}
