package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ebbabire/call-reminder/internal/app"
	"github.com/Ebbabire/call-reminder/internal/app/deps"
	"github.com/Ebbabire/call-reminder/internal/app/services"
	dl "github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	sched := scheduler.New(
		deps.Logger,
		services.RunTick,
		deps.SseServer,
		deps.Config.SchedulerInterval,
		deps.Config.SchedulerLivenessLogEvery,
	)
	sched.Start()

	httpServer := app.InitHttpServer(deps, services, sched)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, sched, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("vapiConfigured", deps.VoiceCaller.IsConfigured()),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	sched *scheduler.Scheduler,
	deps *deps.Deps,
	shutdownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	sched.Stop()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutdownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
