package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("magician", "Pick a card, any card. Serves a device pair that repeats the picked card endlessly, the way the classic trick goes: is this your card?")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Read the configuration from this file.").String()

	start      = app.Command("start", "Mount the magician filesystem and serve until interrupted.")
	mountPoint = start.Flag("mount", "Directory to mount the filesystem on.").String()
	allowOther = start.Flag("allow-other", "Allow other users to access the mount.").Bool()

	set      = app.Command("set", "Pick the card that the magician should repeat.")
	setValue = set.Arg("value", "The value to pick. An empty value clears the card.").String()
	setFile  = set.Flag("file", "Read the value from this file instead of the argument.").String()

	show = app.Command("show", "Show the currently picked card.")

	stream      = app.Command("stream", "Read from the endless stream and print it on standard out.")
	streamCount = stream.Flag("count", "Number of bytes to read.").Default("256").Int64()

	makeLabel = app.Command("label", "Render the picked card as a printable label.")
	labelOut  = makeLabel.Flag("out", "File to write the label PNG to.").Default("card.png").String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *mountPoint != "" {
		conf.Mount = *mountPoint
	}
	if *allowOther {
		conf.AllowOther = true
	}

	switch command {
	case start.FullCommand():
		startServer(conf)
	case set.FullCommand():
		setCard(conf)
	case show.FullCommand():
		showCard(conf)
	case stream.FullCommand():
		streamCard(conf, *streamCount)
	case makeLabel.FullCommand():
		createLabel(conf, *labelOut)
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
}
