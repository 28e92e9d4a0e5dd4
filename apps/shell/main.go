// Command shell is an interactive gradebook. Commands are read line by line from stdin.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
	emailsvc "github.com/trezcool/gradebook/services/email"
	logsvc "github.com/trezcool/gradebook/services/logger"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "SHELL : ", log.LstdFlags|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	book := gradebook.New(
		inmemdb.NewDirectoryRepository(db),
		inmemdb.NewGradeRepository(db),
		mailSvc,
		core.NewValidator(),
	)

	sh := newShell(book, os.Stdout)
	if err = sh.run(os.Stdin, term.IsTerminal(int(os.Stdin.Fd()))); err != nil {
		logger.Fatal(fmt.Sprintf("shell: %v", err), err)
	}
}
