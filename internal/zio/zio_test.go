/*
 * zio_test.go, part of refprep.
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

package zio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = "data_test\n_cell.length_a 10\n"

func writeFile(t *testing.T, name string, wrap func(io.Writer) io.WriteCloser) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := wrap(f)
	_, err = io.WriteString(w, payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestOpen(t *testing.T) {
	cases := map[string]func(io.Writer) io.WriteCloser{
		"plain.cif": func(w io.Writer) io.WriteCloser { return nopWriteCloser{w} },
		"gz.cif.GZ": func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) },
		"zs.cif.zst": func(w io.Writer) io.WriteCloser {
			zw, err := zstd.NewWriter(w)
			require.NoError(t, err)
			return zw
		},
	}
	for name, wrap := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, wrap)
			assert.True(t, Exists(path))
			r, err := Open(path)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
			assert.NoError(t, r.Close())
		})
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.cif"))
	assert.Error(t, err)

	path := writeFile(t, "fake.cif.gz", func(w io.Writer) io.WriteCloser { return nopWriteCloser{w} })
	_, err = Open(path)
	assert.Error(t, err)
}

func TestStripExt(t *testing.T) {
	assert.Equal(t, "a/1abc.cif", StripExt("a/1abc.cif.gz"))
	assert.Equal(t, "1abc.pdb", StripExt("1abc.pdb.ZST"))
	assert.Equal(t, "1abc.pdb", StripExt("1abc.pdb"))
	assert.False(t, Exists("/nonexistent/file"))
}

func TestNewWriter(t *testing.T) {
	for _, name := range []string{"out.cif", "out.cif.gz", "out.cif.zst"} {
		path := filepath.Join(t.TempDir(), name)
		f, err := os.Create(path)
		require.NoError(t, err)
		w, err := NewWriter(f, name)
		require.NoError(t, err)
		_, err = io.WriteString(w, payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, f.Close())

		r, err := Open(path)
		require.NoError(t, err, name)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, payload, string(got), name)
	}
}
