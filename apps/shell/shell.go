package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/shlex"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/gradebook"
)

const prompt = "gradebook> "

type shell struct {
	book *gradebook.Book
	out  io.Writer
}

func newShell(book *gradebook.Book, out io.Writer) *shell {
	return &shell{book: book, out: out}
}

// run executes the commands read from in until EOF or `quit`.
// Command failures are printed and never stop the loop.
func (sh *shell) run(in io.Reader, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			_, _ = fmt.Fprint(sh.out, prompt)
		}
		if !scanner.Scan() {
			break
		}

		quit, err := sh.exec(scanner.Text())
		if err != nil {
			_, _ = fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	if interactive {
		_, _ = fmt.Fprintln(sh.out)
	}
	return errors.Wrap(scanner.Err(), "reading input")
}

// exec runs a single command line. It reports whether the shell should stop.
func (sh *shell) exec(line string) (bool, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, errors.Wrap(err, "parsing command")
	}
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "quit", "exit":
		return true, nil
	}

	root := sh.newRootCmd()
	root.SetArgs(args)
	return false, root.Execute()
}
