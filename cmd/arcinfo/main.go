// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Command arcinfo inspects a data.arc archive from the command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/suprsokr/arc"
	"github.com/suprsokr/arc/labels"
)

func main() {
	extractCmd := flag.NewFlagSet("extract", flag.ExitOnError)
	extractArchive := extractCmd.String("archive", "", "path to data.arc")
	extractPath := extractCmd.String("path", "", "in-archive file path to extract")
	extractRegion := extractCmd.String("region", "none", "region to extract (e.g. us_en)")
	extractOut := extractCmd.String("out", "", "output file path ('-' for stdout)")

	statCmd := flag.NewFlagSet("stat", flag.ExitOnError)
	statArchive := statCmd.String("archive", "", "path to data.arc")
	statPath := statCmd.String("path", "", "in-archive file path to describe")
	statRegion := statCmd.String("region", "none", "region to describe (e.g. us_en)")
	statLabels := statCmd.String("labels", "", "optional newline-delimited label file")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: arcinfo <extract|stat> [flags]")
		os.Exit(2)
	}

	switch os.Args[1] {
	case "extract":
		extractCmd.Parse(os.Args[2:])
		runExtract(*extractArchive, *extractPath, *extractRegion, *extractOut)
	case "stat":
		statCmd.Parse(os.Args[2:])
		runStat(*statArchive, *statPath, *statRegion, *statLabels)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		os.Exit(2)
	}
}

func runExtract(archivePath, path, region, out string) {
	if archivePath == "" || path == "" {
		log.Fatal("extract: -archive and -path are required")
	}

	a, err := arc.Open(archivePath)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	contents, err := a.GetFileContents(arc.Hash40FromStr(path), arc.RegionFromString(region))
	if err != nil {
		log.Fatal(err)
	}

	if out == "" || out == "-" {
		os.Stdout.Write(contents)
		return
	}
	if err := os.WriteFile(out, contents, 0o644); err != nil {
		log.Fatal(err)
	}
}

func runStat(archivePath, path, region, labelsPath string) {
	if archivePath == "" || path == "" {
		log.Fatal("stat: -archive and -path are required")
	}

	a, err := arc.Open(archivePath)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	var dict *labels.Dictionary
	if labelsPath != "" {
		dict, err = labels.FromFile(labelsPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	hash := arc.Hash40FromStr(path)
	meta, err := a.GetFileMetadata(hash, arc.RegionFromString(region))
	if err != nil {
		log.Fatal(err)
	}

	label := path
	if dict != nil {
		if l, ok := dict.Label(hash); ok {
			label = l
		}
	}

	fmt.Printf("path:        %s (%s)\n", label, hash)
	fmt.Printf("offset:      0x%X\n", meta.Offset)
	fmt.Printf("comp_size:   %d\n", meta.CompSize)
	fmt.Printf("decomp_size: %d\n", meta.DecompSize)
	fmt.Printf("shared:      %t\n", meta.IsShared)
	fmt.Printf("redirect:    %t\n", meta.IsRedirect)
	fmt.Printf("regional:    %t\n", meta.IsRegional)
	fmt.Printf("localized:   %t\n", meta.IsLocalized)
	fmt.Printf("compressed:  %t (zstd=%t)\n", meta.IsCompressed, meta.UsesZstd)
}
