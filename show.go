package main

import (
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"

	"github.com/hudmiller/magician/magicianfs"
)

func showCard(conf *Config) {
	raw, err := os.ReadFile(path.Join(conf.Mount, magicianfs.ControlFile))
	if err != nil {
		log.Fatal(err)
	}

	if len(raw) == 0 {
		fmt.Println("No card has been picked...")
		return
	}
	fmt.Println(string(raw))
}
