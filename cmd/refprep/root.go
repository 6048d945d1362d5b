/*
 * root.go, part of refprep.
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
	"fmt"
	"os"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/chemplot"
	"github.com/rmera/refprep/internal/config"
	"github.com/rmera/refprep/internal/logger"
	"github.com/rmera/refprep/link"
	"github.com/rmera/refprep/mmcif"
	"github.com/rmera/refprep/prepare"
	"github.com/spf13/cobra"
)

// flags holds the command-line values. Only those set explicitly override
// the configuration file.
type flags struct {
	config        string
	monomers      string
	lib           []string
	low           []string
	autoLink      bool
	autoLigand    bool
	autoCis       bool
	searchRadius  float64
	contactCutoff float64
	noHydrogens   bool
	keepHydrogens bool
	workers       int
	histogram     string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	def := config.Default()
	root := &cobra.Command{
		Use:   "refprep [flags] INPUT OUTPUT",
		Short: "Prepare a structure for refinement",
		Long: `Reads a coordinate file (PDB or mmCIF, optionally gzip or zstd compressed),
finds a definition for every monomer in the user's libraries, the installed
monomer library ($CLIBD_MON or --monomers) and the fallback libraries, and
writes the model with its connections and monomer definitions to OUTPUT.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], args[1])
		},
	}
	fl := root.Flags()
	fl.StringVar(&f.config, "config", "", "configuration file (default ~/.refprep/config.toml)")
	fl.StringVar(&f.monomers, "monomers", "", "monomer library dir (default: $CLIBD_MON)")
	fl.StringArrayVar(&f.lib, "lib", nil, "user's monomer library, read before the installed one. Can be repeated; + reads the monomers in INPUT")
	fl.StringArrayVar(&f.low, "low", nil, "like --lib, but used only for monomers not found elsewhere")
	fl.BoolVar(&f.autoLink, "auto-link", def.AutoLink, "find and add covalent links between residues")
	fl.BoolVar(&f.autoLigand, "auto-ligand", def.AutoLigand, "build ad-hoc restraints for monomers without a definition")
	fl.BoolVar(&f.autoCis, "auto-cis", def.AutoCis, "assign cis peptide bonds from the coordinates")
	fl.Float64Var(&f.searchRadius, "search-radius", def.SearchRadius, "radius of the neighbor search (A)")
	fl.Float64Var(&f.contactCutoff, "contact-cutoff", def.ContactCutoff, "largest distance considered for a link (A)")
	fl.BoolVarP(&f.noHydrogens, "no-hydrogens", "H", false, "remove hydrogens")
	fl.BoolVar(&f.keepHydrogens, "keep-hydrogens", false, "keep the hydrogens of the input (default)")
	fl.IntVar(&f.workers, "workers", def.Workers, "goroutines used in the neighbor search")
	fl.StringVar(&f.histogram, "link-histogram", "", "plot the distances of the link candidates to this file (png, svg or pdf)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	root.MarkFlagsMutuallyExclusive("no-hydrogens", "keep-hydrogens")

	root.AddCommand(newVersionCmd(), newConfigCmd())
	return root
}

// settings merges the configuration file with the flags set in cmd.
func settings(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return cfg, err
	}
	set := cmd.Flags().Changed
	if set("monomers") {
		cfg.Monomers = f.monomers
	}
	if set("lib") {
		cfg.Lib = f.lib
	}
	if set("low") {
		cfg.Low = f.low
	}
	if set("auto-link") {
		cfg.AutoLink = f.autoLink
	}
	if set("auto-ligand") {
		cfg.AutoLigand = f.autoLigand
	}
	if set("auto-cis") {
		cfg.AutoCis = f.autoCis
	}
	if set("search-radius") {
		cfg.SearchRadius = f.searchRadius
	}
	if set("contact-cutoff") {
		cfg.ContactCutoff = f.contactCutoff
	}
	if set("workers") {
		cfg.Workers = f.workers
	}
	if f.noHydrogens {
		cfg.Hydrogens = config.HydrogensRemove
	}
	if f.keepHydrogens {
		cfg.Hydrogens = config.HydrogensKeep
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, f *flags, input, output string) error {
	logger.SetOutput(cmd.OutOrStdout())
	logger.SetVerbose(f.verbose)
	cfg, err := settings(cmd, f)
	if err != nil {
		return err
	}
	dir, err := prepare.LibraryDir(cfg.Monomers, os.Getenv)
	if err != nil {
		return err
	}
	installed, err := prepare.Installed(dir)
	if err != nil {
		return err
	}
	logger.Info("Reading %s ...", input)
	st, doc, err := chem.ReadStructureFile(input)
	if err != nil {
		return err
	}
	det := link.NewDetector()
	det.SearchRadius = cfg.SearchRadius
	det.ContactCutoff = cfg.ContactCutoff
	det.Workers = cfg.Workers
	opts := prepare.Options{
		Overrides:  cfg.Lib,
		Fallbacks:  cfg.Low,
		Installed:  installed,
		AutoLink:   cfg.AutoLink,
		AutoLigand: cfg.AutoLigand,
		AutoCis:    cfg.AutoCis,
		Detector:   det,
	}
	if cfg.Hydrogens == config.HydrogensRemove {
		opts.Hydrogens = prepare.Remove
	}
	p, err := prepare.ResolveAndPrepare(st, doc, opts)
	if err != nil {
		return err
	}
	for _, fail := range p.Failures {
		logger.Warn("%v", fail)
	}
	if f.histogram != "" {
		if len(p.Candidates) == 0 {
			logger.Warn("no link candidates to plot in %s", f.histogram)
		} else if err := chemplot.ContactHistogram(p.Candidates, cfg.ContactCutoff, f.histogram); err != nil {
			return err
		}
	}
	logger.Info("Writing %s", output)
	return mmcif.WriteFile(output, p)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(versionString())
		},
	}
}

func newConfigCmd() *cobra.Command {
	var force bool
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)
	return cfgCmd
}
