/*
 * prepare.go, part of refprep.
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

// Package prepare turns a loaded structure into a model ready for
// restraint generation: every residue with a monomer definition and the
// covalent links between residues recorded as connections.
package prepare

import (
	"fmt"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/adhoc"
	"github.com/rmera/refprep/cif"
	"github.com/rmera/refprep/internal/logger"
	"github.com/rmera/refprep/link"
	"github.com/rmera/refprep/monlib"
	"github.com/rmera/refprep/resolve"
)

// Hydrogens tells what to do with the hydrogens of the input.
type Hydrogens int

const (
	Keep Hydrogens = iota
	Remove
)

// Options controls ResolveAndPrepare.
type Options struct {
	Overrides  []string      //user libraries, highest priority first. resolve.EmbeddedSource is allowed.
	Fallbacks  []string      //libraries used only for names nothing else defines
	Installed  monlib.Source //may be nil
	AutoLink   bool
	AutoLigand bool //build ad-hoc definitions for missing monomers
	AutoCis    bool
	Hydrogens  Hydrogens
	Detector   *link.Detector //nil means link.NewDetector()
	Inferrer   adhoc.Inferrer //nil means adhoc.NewDistanceInferrer()
}

// DefaultOptions returns the options used when nothing is said.
func DefaultOptions() Options {
	return Options{AutoCis: true}
}

// Prepared is the result of ResolveAndPrepare. Model is the first model of
// Structure, the only one prepared.
type Prepared struct {
	Structure      *chem.Structure
	Model          *chem.Model
	Library        *monlib.Library
	NewConnections []chem.Connection
	Candidates     []link.Candidate
	Failures       []Failure //per-name, non-critical failures
	Warnings       []string
	RemovedH       int
	CisPeptides    int
}

func (P *Prepared) warn(w string) {
	P.Warnings = append(P.Warnings, w)
	logger.Warn("%s", w)
}

// checkConnections warns about declared connections with a partner that is
// not in the model, for instance a hydrogen that was removed.
func (P *Prepared) checkConnections() {
	for _, c := range P.Structure.Connections {
		for _, ad := range []chem.AtomAddress{c.Partner1, c.Partner2} {
			if _, ok := chem.FindCRA(P.Model, ad); !ok {
				P.warn(fmt.Sprintf("connection %s: atom %s not found in the model.", c.Name, ad))
			}
		}
	}
}

// ResolveAndPrepare resolves a definition for every residue of the first
// model of st and, if asked, synthesizes the missing ones and detects
// covalent links, which are appended to st.Connections. doc is the document
// st was read from, used for embedded monomers; it may be nil.
// The returned error, if any, is a critical Failure.
func ResolveAndPrepare(st *chem.Structure, doc *cif.Document, opts Options) (*Prepared, error) {
	if st == nil || len(st.Models) == 0 || st.Models[0].Count() == 0 {
		name := ""
		if st != nil {
			name = st.Name
		}
		return nil, Failure{Kind: EmptyModel, Message: fmt.Sprintf("No atoms found in the input structure %s", name), deco: []string{"ResolveAndPrepare"}}
	}
	m := st.Models[0]
	p := &Prepared{Structure: st, Model: m}
	if opts.Hydrogens == Remove {
		p.RemovedH = chem.RemoveHydrogens(m)
		logger.Info("Removed %d hydrogen atoms.", p.RemovedH)
		if m.Count() == 0 {
			return nil, Failure{Kind: EmptyModel, Message: "No atoms left after removing hydrogens", deco: []string{"ResolveAndPrepare"}}
		}
	}

	p.checkConnections()

	logger.Section("Monomers")
	res := resolve.Resolve(resolve.Request{
		Names:     m.ResidueNames(),
		Overrides: opts.Overrides,
		Fallbacks: opts.Fallbacks,
		Installed: opts.Installed,
		Embedded:  doc,
	})
	for _, n := range res.Notes {
		logger.Info("%s", n)
	}
	for _, w := range res.Warnings {
		p.warn(w)
	}
	p.Library = res.Library
	for _, name := range res.Unmet {
		p.warn(fmt.Sprintf("definition not found for %s.", name))
	}
	if len(res.Unmet) > 0 {
		if !opts.AutoLigand {
			return nil, missingFailure(res.Unmet)
		}
		defs, still, warnings := adhoc.Synthesize(res.Unmet, m, opts.Inferrer)
		for _, w := range warnings {
			p.warn(w)
		}
		for _, cc := range defs {
			p.Library.Add(cc)
		}
		for _, name := range still {
			p.Failures = append(p.Failures, Failure{
				Kind:    NoTemplate,
				Names:   []string{name},
				Message: fmt.Sprintf("no definition could be built for %s", name),
				deco:    []string{"ResolveAndPrepare"},
			})
		}
	}

	if opts.AutoCis {
		p.CisPeptides = chem.AssignCisFlags(m)
		logger.Info("%d cis peptide bonds found.", p.CisPeptides)
	}

	if opts.AutoLink {
		logger.Section("Links")
		det := opts.Detector
		if det == nil {
			det = link.NewDetector()
		}
		cands, err := det.Candidates(m, st)
		if err != nil {
			return nil, Failure{Kind: ConfigError, Message: err.Error(), deco: []string{"ResolveAndPrepare"}}
		}
		p.Candidates = cands
		p.NewConnections = link.Connections(cands, st)
		st.Connections = append(st.Connections, p.NewConnections...)
		s := link.Summarize(cands)
		logger.Info("%d contacts examined (%.2f-%.2f A, mean %.2f, sd %.2f), %d already connected.", s.N, s.Min, s.Max, s.Mean, s.Std, s.Existing)
		if s.Hist != nil {
			logger.Info("Contact distances:\n%s", s.Hist)
		}
		for _, c := range p.NewConnections {
			logger.Print("Automatic link: %s - %s (%.2f Å)", c.Partner1, c.Partner2, c.Distance)
		}
	}
	return p, nil
}
