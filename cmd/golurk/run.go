package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"golang.org/x/term"
)

func runCmd(args []string) error {
	flags := commonFlags("run")
	inPath := flags.String("in", "", "read commands from this file instead of stdin")
	if err := flags.Parse(args); err != nil {
		return err
	}

	a, cleanup, err := setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	in := io.Reader(os.Stdin)
	interactive := *inPath == "" && term.IsTerminal(int(os.Stdin.Fd()))
	if *inPath != "" {
		file, err := os.Open(*inPath)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	b, err := a.runStream(in, interactive)
	a.saveReplay(context.Background(), b)
	return err
}

// runStream feeds every line of in to a battle stream and prints the output chunks. Bad commands
// are reported and skipped.
func (a *app) runStream(in io.Reader, interactive bool) (*golurk.Battle, error) {
	stream := golurk.NewStream(a.dex)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	prompt := func() {
		if interactive {
			fmt.Fprint(os.Stderr, "> ")
		}
	}

	prompt()
	for scanner.Scan() {
		err := stream.Write(scanner.Text())
		for _, chunk := range stream.Read() {
			fmt.Fprintf(a.out, "%s\n\n", chunk)
		}

		var choiceErr *golurk.ChoiceError
		if err != nil && !errors.As(err, &choiceErr) {
			a.logger.Warn().Err(err).Str("line", scanner.Text()).Msg("Command rejected")
			if errors.Is(err, golurk.ErrInvariant) {
				return stream.Battle(), err
			}
		}
		prompt()
	}
	return stream.Battle(), scanner.Err()
}
