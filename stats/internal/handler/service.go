package handler

import (
	"context"

	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/Astemirdum/firebase-auth/stats/internal/model"
	"github.com/Astemirdum/firebase-auth/stats/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type StatsService interface {
	GetStats(ctx context.Context, filter model.StatsFilter) (model.StatsInfo, error)
	SaveEvent(ctx context.Context, event kafka.EventAuth) error
}

var _ StatsService = (*service.Service)(nil)
