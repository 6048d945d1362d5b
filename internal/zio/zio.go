/*
 * zio.go, part of refprep.
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

// Package zio reads and writes plain, gzip and zstd compressed files,
// choosing the codec from the file extension.
package zio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression extensions recognized by Open, lowercase.
const (
	GzipExt = ".gz"
	ZstdExt = ".zst"
)

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens name and, if it ends in .gz or .zst, wraps it in the
// corresponding decompressor.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, name)
	if err != nil {
		f.Close()
		return nil, err
	}
	rc := r.(*readCloser)
	rc.closers = append([]func() error{f.Close}, rc.closers...)
	return rc, nil
}

// NewReader wraps r in the decompressor implied by the extension of name.
// Closing the returned reader does not close r.
func NewReader(r io.Reader, name string) (io.ReadCloser, error) {
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, GzipExt):
		gz, err := gzip.NewReader(bufio.NewReader(r))
		if err != nil {
			return nil, fmt.Errorf("zio: %s: %w", name, err)
		}
		return &readCloser{Reader: gz, closers: []func() error{gz.Close}}, nil
	case strings.HasSuffix(lname, ZstdExt):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zio: %s: %w", name, err)
		}
		return &readCloser{Reader: zr, closers: []func() error{func() error { zr.Close(); return nil }}}, nil
	}
	return &readCloser{Reader: r}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter wraps w in the compressor implied by the extension of name.
// Closing the returned writer flushes the compressor but does not close w.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, GzipExt):
		return gzip.NewWriter(w), nil
	case strings.HasSuffix(lname, ZstdExt):
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zio: %s: %w", name, err)
		}
		return zw, nil
	}
	return nopCloser{w}, nil
}

// StripExt removes a trailing compression extension from name, if any.
func StripExt(name string) string {
	lname := strings.ToLower(name)
	for _, ext := range []string{GzipExt, ZstdExt} {
		if strings.HasSuffix(lname, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// Exists reports whether name is present on disk.
func Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
