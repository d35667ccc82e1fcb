package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/hudmiller/magician/card"
	"github.com/hudmiller/magician/magicianfs"
)

func startServer(conf *Config) {
	store := card.NewStore()

	server, err := magicianfs.Mount(magicianfs.Options{
		Mountpoint: conf.Mount,
		Store:      store,
		AllowOther: conf.AllowOther,
	})
	if err != nil {
		log.Fatal(err)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	log.Info("Unmounting...")
	if err := server.Unmount(); err != nil {
		log.Error(err)
	}
}
