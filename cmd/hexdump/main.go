package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tekkamanendless/dji-video-repair/hexdump"
)

func main() {
	byteLimit := flag.Int64("byte-limit", 0, "The number of bytes to read.  If this is 0, then the whole file will be read.")
	width := flag.Int("width", hexdump.DefaultWidth, "The number of bytes per row.")

	flag.Parse()

	if len(flag.Args()) == 0 {
		fmt.Printf("Missing filename.\n")
		os.Exit(1)
	}
	if len(flag.Args()) > 1 {
		fmt.Printf("Too many arguments.\n")
		os.Exit(1)
	}
	filename := flag.Args()[0]

	log.Debugf("Byte limit: %d", *byteLimit)
	log.Debugf("Filename: %s", filename)

	handle, err := os.Open(filename)
	if err != nil {
		fmt.Printf("Could not open file '%s': %v\n", filename, err)
		os.Exit(1)
	}

	err = hexdump.Print(handle, *byteLimit, *width)
	if err != nil {
		fmt.Printf("Could not dump file: %v\n", err)
		os.Exit(1)
	}
	handle.Close()
}
