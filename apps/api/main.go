package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	echoapi "github.com/trezcool/studentportal/apps/api/echo"
	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
	emailsvc "github.com/trezcool/studentportal/services/email"
	logsvc "github.com/trezcool/studentportal/services/logger"
	"github.com/trezcool/studentportal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	ctx := context.Background()
	ns, closeNs, err := storage.Open(ctx, conf)
	if err != nil {
		return errors.Wrapf(err, "opening %s storage", conf.Storage.Driver)
	}
	defer func() {
		if err := closeNs(); err != nil {
			logger.Error("closing storage", err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	store := student.NewRecordStore(ns, logger)
	sessions := student.NewSessionManager(ns, logger)
	v := student.NewValidator(validator.New(), core.NewTranslator())

	// =========================================================================
	// Start API Service

	logger.Info("Application initializing", map[string]interface{}{"build": conf.Build, "storage": conf.Storage.Driver})
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			AppName:        conf.AppName,
			Address:        conf.Server.Address,
			Debug:          conf.Debug,
			TestMode:       conf.TestMode,
			DisableReqLogs: conf.Server.DisableReqLogs,
			PendingDelay:   conf.UI.PendingDelay,
			Logger:         logger,
			Registerer:     prometheus.DefaultRegisterer,
			Gatherer:       prometheus.DefaultGatherer,
			Store:          store,
			Registrations:  student.NewRegistrationService(store, v, mailSvc, conf),
			Auth:           student.NewAuthenticationService(store, sessions, conf),
			Dashboard:      student.NewDashboardController(store, sessions),
		},
		func() { shutdown <- syscall.SIGTERM },
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		logger.Info("Start shutdown...", map[string]interface{}{"signal": sig.String()})

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}
