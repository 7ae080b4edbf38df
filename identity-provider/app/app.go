package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/firebase-auth/identity-provider/config"
	"github.com/Astemirdum/firebase-auth/identity-provider/internal/handler"
	"github.com/Astemirdum/firebase-auth/identity-provider/internal/service"
	"github.com/Astemirdum/firebase-auth/pkg/circuit_breaker"
	"github.com/Astemirdum/firebase-auth/pkg/firebaseauth"
	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/Astemirdum/firebase-auth/pkg/logger"
	"github.com/Astemirdum/firebase-auth/pkg/server"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "identity-provider")
	defer log.Sync() //nolint:errcheck

	var producer sarama.SyncProducer
	if cfg.Kafka.Enable {
		p, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka.NewProducer")
		}
		defer p.Close()
		producer = p
	}

	opts := []firebaseauth.Option{firebaseauth.WithLogger(log)}
	if cfg.Firebase.BaseURL != "" {
		opts = append(opts, firebaseauth.WithBaseURL(cfg.Firebase.BaseURL))
	}
	client := firebaseauth.New(cfg.Firebase.APIKey, opts...)

	svc := service.NewService(client, service.NewEnqueuer(producer), circuit_breaker.New(cfg.Breaker), log)
	h := handler.New(svc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
