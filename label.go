package main

import (
	"os"
	"path"

	log "github.com/sirupsen/logrus"

	"github.com/hudmiller/magician/label"
	"github.com/hudmiller/magician/magicianfs"
)

func createLabel(conf *Config, out string) {
	raw, err := os.ReadFile(path.Join(conf.Mount, magicianfs.ControlFile))
	if err != nil {
		log.Fatal(err)
	}
	if len(raw) == 0 {
		log.Fatal("No card has been picked, nothing to render")
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	log.Infof("Generating a label for the current card into %v", out)
	if err := label.Create(string(raw), f); err != nil {
		log.Fatal(err)
	}
}
