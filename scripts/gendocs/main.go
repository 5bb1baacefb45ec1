// Package main extracts CLI and metamodel metadata from leapmeta source code
// and generates markdown documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=model -outdir=docs/model
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, model, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

func main() {
	flag.Parse()

	validGenFlags := map[string]bool{"cli": true, "model": true, "all": true}
	if !validGenFlags[*genFlag] {
		log.Fatalf("unknown -gen value: %s (use: cli, model, all)", *genFlag)
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	switch *genFlag {
	case "cli":
		if err := generateCLIDocs(outDir(projectRoot, "cli")); err != nil {
			log.Fatalf("failed to generate CLI docs: %v", err)
		}

	case "model":
		if err := generateModelDocs(outDir(projectRoot, "model")); err != nil {
			log.Fatalf("failed to generate model docs: %v", err)
		}

	case "all":
		if err := generateCLIDocs(filepath.Join(projectRoot, "docs", "cli")); err != nil {
			log.Fatalf("failed to generate CLI docs: %v", err)
		}
		if err := generateModelDocs(filepath.Join(projectRoot, "docs", "model")); err != nil {
			log.Fatalf("failed to generate model docs: %v", err)
		}
	}

	log.Println("Done!")
}

// outDir returns -outdir when set, else docs/<section> under root.
func outDir(root, section string) string {
	if *outDirFlag != "" {
		return *outDirFlag
	}
	return filepath.Join(root, "docs", section)
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
