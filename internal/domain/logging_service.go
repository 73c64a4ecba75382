package domain

import (
	"context"
	"log/slog"
)

type loggingAccountService struct {
	logger *slog.Logger
	next   AccountService
}

func NewLoggingAccountService(logger *slog.Logger, next AccountService) AccountService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingAccountService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingAccountService) Register(ctx context.Context, input RegisterInput) error {
	err := s.next.Register(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "registration failed", "email", input.Email, "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "user registered", "email", input.Email, "role", input.Role)
	return nil
}

func (s *loggingAccountService) Login(ctx context.Context, input LoginInput) (string, error) {
	token, err := s.next.Login(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "login failed", "email", input.Email, "err", err.Error())
		return "", err
	}

	s.logger.InfoContext(ctx, "user logged in", "email", input.Email)
	return token, nil
}
