package main

import (
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"

	"github.com/hudmiller/magician/card"
	"github.com/hudmiller/magician/magicianfs"
)

func setCard(conf *Config) {
	value := []byte(*setValue)
	if *setFile != "" {
		raw, err := os.ReadFile(*setFile)
		if err != nil {
			log.Fatal(err)
		}
		value = raw
	}

	if len(value) >= card.MaxSize {
		log.Warnf("Value is too long, truncating to %v bytes", card.MaxSize-1)
		value = value[:card.MaxSize-1]
	}

	if err := os.WriteFile(path.Join(conf.Mount, magicianfs.ControlFile), value, 0o644); err != nil {
		log.Fatal(err)
	}

	if len(value) == 0 {
		fmt.Println("Card cleared.")
	} else {
		fmt.Printf("Card picked (%v bytes).\n", len(value))
	}
}
