package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ian-shakespeare/libtex/internal/interpret"
)

func main() {
	catcodes := flag.String("catcodes", "", "YAML file with category code assignments")
	makeCatcodes := flag.Bool("make-catcodes", false, "write the default category codes as YAML and exit")
	trace := flag.Bool("trace", false, "log every executed token to stderr")
	echo := flag.Bool("echo", false, "write characters that pass through to stdout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] [file ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *makeCatcodes {
		if err := interpret.DefaultConfig().Write(os.Stdout); err != nil {
			log.Fatal(err.Error())
		}
		return
	}

	state := interpret.NewState()
	defer state.Close()

	if *catcodes != "" {
		fd, err := os.Open(*catcodes)
		if err != nil {
			log.Fatal(err.Error())
		}
		config, err := interpret.LoadConfig(fd)
		fd.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
		config.Apply(state)
	}

	if *trace {
		state.Logger = log.New(os.Stderr, "", 0)
	}

	out := bufio.NewWriter(os.Stdout)
	if *echo {
		state.Output = func(token interpret.Token) error {
			_, err := out.WriteRune(token.Char)
			return err
		}
	}

	files := flag.Args()
	if len(files) == 0 {
		state.PushInput("<stdin>", os.Stdin)
	}
	// The last pushed input is read first.
	for i := len(files) - 1; i >= 0; i-- {
		path, err := filepath.Abs(files[i])
		if err != nil {
			log.Fatal(err.Error())
		}
		if err := state.Include(path); err != nil {
			log.Fatal(err.Error())
		}
		// \input resolves against the directory of the first file.
		state.BaseDir = filepath.Dir(path)
	}

	err := state.Run()
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		log.Fatal(err.Error())
	}
}
