package service

import (
	"context"
	"time"

	"github.com/Astemirdum/firebase-auth/identity-provider/internal/model"
	"github.com/Astemirdum/firebase-auth/pkg/circuit_breaker"
	"github.com/Astemirdum/firebase-auth/pkg/firebaseauth"
	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Provider is the subset of *firebaseauth.Client the service calls.
type Provider interface {
	SignUp(ctx context.Context, req firebaseauth.SignUpRequest) (firebaseauth.SignUpResponse, error)
	SignIn(ctx context.Context, req firebaseauth.SignInRequest) (firebaseauth.SignInResponse, error)
	SendPasswordResetEmail(ctx context.Context, req firebaseauth.SendPasswordResetEmailRequest) (firebaseauth.SendPasswordResetEmailResponse, error)
	VerifyPasswordResetCode(ctx context.Context, req firebaseauth.VerifyPasswordResetCodeRequest) (firebaseauth.VerifyPasswordResetCodeResponse, error)
	ConfirmPasswordReset(ctx context.Context, req firebaseauth.ConfirmPasswordResetRequest) (firebaseauth.ConfirmPasswordResetResponse, error)
}

var _ Provider = (*firebaseauth.Client)(nil)

type Service struct {
	log      *zap.Logger
	provider Provider
	enqueuer Enqueuer
	cb       circuit_breaker.CircuitBreaker
	now      func() time.Time
}

func NewService(provider Provider, enqueuer Enqueuer, cb circuit_breaker.CircuitBreaker, log *zap.Logger) *Service {
	return &Service{
		log:      log.Named("service"),
		provider: provider,
		enqueuer: enqueuer,
		cb:       cb,
		now:      time.Now,
	}
}

// guard runs fn through the circuit breaker. Only failures to reach the
// provider or to read its answer count against it: an error envelope is a
// normal provider reply, and a canceled caller says nothing about the provider.
func guard[Resp any](ctx context.Context, cb circuit_breaker.CircuitBreaker, fn func(context.Context) (Resp, error)) (Resp, error) {
	var (
		resp    Resp
		callErr error
	)
	err := cb.Call(func() error {
		resp, callErr = fn(ctx)
		if callErr == nil || ctx.Err() != nil {
			return nil
		}
		if _, ok := firebaseauth.AsResponseError(callErr); ok {
			return nil
		}
		return callErr
	})
	if errors.Is(err, circuit_breaker.ErrOpenCB) {
		return resp, err
	}
	return resp, callErr
}

func (s *Service) SignUp(ctx context.Context, req firebaseauth.SignUpRequest) (firebaseauth.SignUpResponse, error) {
	resp, err := guard(ctx, s.cb, func(ctx context.Context) (firebaseauth.SignUpResponse, error) {
		return s.provider.SignUp(ctx, req)
	})
	s.audit(model.OpSignUp, req.Email, err)
	return resp, err
}

func (s *Service) SignIn(ctx context.Context, req firebaseauth.SignInRequest) (firebaseauth.SignInResponse, error) {
	resp, err := guard(ctx, s.cb, func(ctx context.Context) (firebaseauth.SignInResponse, error) {
		return s.provider.SignIn(ctx, req)
	})
	s.audit(model.OpSignIn, req.Email, err)
	return resp, err
}

func (s *Service) SendPasswordResetEmail(ctx context.Context, req firebaseauth.SendPasswordResetEmailRequest) (firebaseauth.SendPasswordResetEmailResponse, error) {
	resp, err := guard(ctx, s.cb, func(ctx context.Context) (firebaseauth.SendPasswordResetEmailResponse, error) {
		return s.provider.SendPasswordResetEmail(ctx, req)
	})
	s.audit(model.OpSendPasswordResetEmail, req.Email, err)
	return resp, err
}

func (s *Service) VerifyPasswordResetCode(ctx context.Context, req firebaseauth.VerifyPasswordResetCodeRequest) (firebaseauth.VerifyPasswordResetCodeResponse, error) {
	resp, err := guard(ctx, s.cb, func(ctx context.Context) (firebaseauth.VerifyPasswordResetCodeResponse, error) {
		return s.provider.VerifyPasswordResetCode(ctx, req)
	})
	s.audit(model.OpVerifyPasswordResetCode, resp.Email, err)
	return resp, err
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, req firebaseauth.ConfirmPasswordResetRequest) (firebaseauth.ConfirmPasswordResetResponse, error) {
	resp, err := guard(ctx, s.cb, func(ctx context.Context) (firebaseauth.ConfirmPasswordResetResponse, error) {
		return s.provider.ConfirmPasswordReset(ctx, req)
	})
	s.audit(model.OpConfirmPasswordReset, resp.Email, err)
	return resp, err
}

// audit publishes the outcome of one provider call. Publish failures are
// logged and never change the caller's result.
func (s *Service) audit(op model.Operation, email string, callErr error) {
	event := kafka.EventAuth{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Operation: string(op),
		Email:     email,
		Success:   callErr == nil,
	}
	if callErr != nil {
		event.ErrorMessage = callErr.Error()
		if respErr, ok := firebaseauth.AsResponseError(callErr); ok {
			event.ErrorMessage = respErr.Err.Message
		}
	}
	if err := s.enqueuer.Enqueue(kafka.AuthTopic, event); err != nil {
		s.log.Warn("enqueue auth event", zap.String("op", string(op)), zap.Error(err))
	}
}
