package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/hudmiller/magician/magicianfs"
)

func streamCard(conf *Config, count int64) {
	f, err := os.Open(path.Join(conf.Mount, magicianfs.StreamFile))
	if err != nil {
		if errors.Is(err, syscall.EBUSY) {
			log.Fatal("The magician is busy with another spectator. Try again later.")
		}
		log.Fatal(err)
	}
	defer f.Close()

	n, err := io.CopyN(os.Stdout, f, count)
	if err != nil && err != io.EOF {
		log.Fatal(err)
	}
	if n == 0 {
		fmt.Println("No card has been picked...")
		return
	}
	fmt.Println()
}
