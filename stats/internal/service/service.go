package service

import (
	"context"

	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/Astemirdum/firebase-auth/stats/internal/model"
	statsRepo "github.com/Astemirdum/firebase-auth/stats/internal/repository"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo statsRepo.Repository
}

func NewService(repo statsRepo.Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

// GetStats aggregates stored events per operation.
func (s *Service) GetStats(ctx context.Context, filter model.StatsFilter) (model.StatsInfo, error) {
	return s.repo.GetStats(ctx, filter)
}

// SaveEvent used by kafka consumer.
func (s *Service) SaveEvent(ctx context.Context, event kafka.EventAuth) error {
	return s.repo.SaveEvent(ctx, event)
}
