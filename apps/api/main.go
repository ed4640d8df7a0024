package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundalabs/funda/apps/api/echo"
	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/assignment"
	"github.com/fundalabs/funda/core/comms"
	"github.com/fundalabs/funda/core/identity"
	"github.com/fundalabs/funda/core/student"
	"github.com/fundalabs/funda/services/email"
	"github.com/fundalabs/funda/services/generate"
	"github.com/fundalabs/funda/services/generate/dummy"
	"github.com/fundalabs/funda/services/logger"
	"github.com/fundalabs/funda/storage/local"
	"github.com/fundalabs/funda/storage/snapshot"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" : ", log.LstdFlags|log.Lshortfile)

	// set up logger
	var appLogger core.Logger
	if core.Conf.Debug {
		appLogger = logsvc.NewConsoleLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up storage
	snap, err := openSnapshotStore()
	errAndDie(std, err)
	db, err := localdb.Open(snap, appLogger)
	errAndDie(std, err)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}

	var generator assignment.Generator
	if core.Conf.Debug && core.Conf.GeminiAPIKey == "" {
		generator = dummygen.NewService()
	} else {
		generator = gensvc.NewGeminiService(appLogger)
	}

	assignmentSvc := assignment.NewService(localdb.NewAssignmentRepository(db))
	studentSvc := student.NewService(localdb.NewStudentRepository(db), assignmentSvc)
	identitySvc := identity.NewService(
		localdb.NewCreditRepository(db),
		localdb.NewProRepository(db),
		studentSvc,
		core.Conf.Credit,
	)
	commsSvc := comms.NewService(localdb.NewCommsRepository(db), studentSvc, mailSvc)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:          core.Conf.Server.Address(),
			Logger:        appLogger,
			IdentitySvc:   identitySvc,
			StudentSvc:    studentSvc,
			AssignmentSvc: assignmentSvc,
			CommsSvc:      commsSvc,
			Generator:     generator,
		},
		shutdown,
	)
	go app.Start()
	appLogger.Info("serving on " + core.Conf.Server.Address())

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = app.Stop(ctx); err != nil {
		appLogger.Error("stopping server: " + err.Error())
	}
}

func openSnapshotStore() (core.SnapshotStore, error) {
	if core.Conf.Snapshot.Backend == "postgres" {
		return snapshot.NewPostgresStore(core.Conf.Snapshot.PostgresURL)
	}
	return snapshot.NewFileStore(core.Conf.Snapshot.Dir)
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
