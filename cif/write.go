/*
 * write.go, part of refprep.
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

package cif

import (
	"fmt"
	"io"
	"strings"
)

func isKeyword(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "_") || strings.HasPrefix(l, "data_") ||
		strings.HasPrefix(l, "save_") || l == "loop_" || l == "global_" || l == "stop_"
}

// Quote returns v in a form that can be written as a single CIF value.
// The null values ? and . are returned unchanged.
func Quote(v string) string {
	if v == "" {
		return "''"
	}
	if IsNull(v) {
		return v
	}
	needs := isKeyword(v) || strings.ContainsAny(v[:1], "_#$'\";[]") || strings.ContainsAny(v, " \t")
	if strings.Contains(v, "\n") {
		return "\n;" + v + "\n;\n"
	}
	if !needs {
		return v
	}
	if !strings.Contains(v, "' ") && !strings.HasSuffix(v, "'") {
		return "'" + v + "'"
	}
	if !strings.Contains(v, "\" ") && !strings.HasSuffix(v, "\"") {
		return "\"" + v + "\""
	}
	return "\n;" + v + "\n;\n"
}

// Writer emits CIF syntax to an underlying io.Writer. The first write error
// is kept and returned by Err; later writes are no-ops.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (W *Writer) printf(format string, args ...any) {
	if W.err != nil {
		return
	}
	_, W.err = fmt.Fprintf(W.w, format, args...)
}

// Block starts a new data block.
func (W *Writer) Block(name string) {
	W.printf("data_%s\n#\n", name)
}

// Pair writes a single tag-value pair.
func (W *Writer) Pair(tag, value string) {
	W.printf("%s %s\n", tag, Quote(value))
}

// Loop writes a loop with the given tags; rows must have len(tags) values each.
// Nothing is written for an empty loop.
func (W *Writer) Loop(tags []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	W.printf("loop_\n")
	for _, t := range tags {
		W.printf("%s\n", t)
	}
	for _, r := range rows {
		q := make([]string, len(r))
		for i, v := range r {
			q[i] = Quote(v)
		}
		W.printf("%s\n", strings.Join(q, " "))
	}
	W.printf("#\n")
}

// Comment writes a # comment line.
func (W *Writer) Comment(text string) {
	W.printf("# %s\n", text)
}

// Err returns the first error encountered while writing.
func (W *Writer) Err() error {
	return W.err
}
