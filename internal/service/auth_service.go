package service

import (
	"context"
	"time"

	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/pkg/googleauth"
	"hand-analysis-be/internal/pkg/logger"
	"hand-analysis-be/internal/repository/specification"
	"hand-analysis-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAuthService interface {
	// GoogleLogin verifies the ID token and upserts the user keyed on the
	// Google subject id.
	GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.GoogleLoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	verifier   googleauth.Verifier
	log        logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	verifier googleauth.Verifier,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		verifier:   verifier,
		log:        log,
	}
}

func (s *authService) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.GoogleLoginResponse, error) {
	profile, err := s.verifier.Verify(ctx, req.IdToken)
	if err != nil {
		s.log.Warn("auth", "google token rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, dto.ErrAuthFailed
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByGoogleSub{Sub: profile.Sub})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	isNew := user == nil

	if isNew {
		user = &entity.User{
			Id:           uuid.New(),
			DisplayName:  profile.Name,
			Email:        profile.Email,
			AuthProvider: entity.AuthProviderGoogle,
			GoogleSub:    profile.Sub,
			LastActiveAt: now,
			CreatedAt:    now,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	} else {
		// Google is the source of truth for profile fields.
		user.DisplayName = profile.Name
		user.Email = profile.Email
		user.LastActiveAt = now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return &dto.GoogleLoginResponse{
		Ok: true,
		User: dto.AuthUserDTO{
			Id:          user.Id,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
		IsNew: isNew,
	}, nil
}
