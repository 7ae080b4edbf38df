package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/Astemirdum/firebase-auth/pkg/logger"
	"github.com/Astemirdum/firebase-auth/pkg/postgres"
	"github.com/Astemirdum/firebase-auth/pkg/server"
	"github.com/Astemirdum/firebase-auth/stats/config"
	"github.com/Astemirdum/firebase-auth/stats/internal/handler"
	"github.com/Astemirdum/firebase-auth/stats/internal/repository"
	"github.com/Astemirdum/firebase-auth/stats/internal/service"
	"github.com/Astemirdum/firebase-auth/stats/migrations"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "stats")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return errors.Wrap(err, "repo events")
	}
	svc := service.NewService(repo, log)

	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StatsConsumerGroup)
	if err != nil {
		return errors.Wrap(err, "kafka.NewConsumer")
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		return kafka.Consume(ctx, consumer, handler.NewConsumer(svc.SaveEvent, log), log, kafka.AuthTopic)
	})
	gg.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return srv.Run()
	})
	gg.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := srv.Stop(closeCtx); err != nil {
			log.Error("srv.Stop", zap.Error(err))
		}
		return consumer.Close()
	})

	if err := gg.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
