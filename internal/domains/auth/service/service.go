package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"starhotel/config"
	"starhotel/infras/jwt"
	"starhotel/infras/otel"
	accessModel "starhotel/internal/domains/access/model"
	accessRepository "starhotel/internal/domains/access/repository"
	"starhotel/internal/domains/auth/model/dto"
	userModel "starhotel/internal/domains/user/model"
	userRepository "starhotel/internal/domains/user/repository"
	"starhotel/shared"
	"starhotel/shared/constant"
	"starhotel/shared/failure"
	"starhotel/shared/password"
)

const (
	msgUserNotFound    = "User ID not found"
	msgFrozen          = "Your User ID has been frozen. Please contact System Administrator."
	msgTooManyAttempts = "Too many attempts. Your User ID has been frozen."
	msgInvalidPassword = "Invalid password, please try again"
	msgWrongCurrent    = "Current password is incorrect"
	msgAccessDisabled  = "Your access has been disabled"
	msgPasswordTooWeak = "Password must be at least 4 characters"
)

const minPasswordLength = 4

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (dto.TokenResponse, error)
	Verify(ctx context.Context, token string) (*jwt.Claims, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
	CheckModuleAccess(ctx context.Context, group, moduleID int) (bool, error)
}

type serviceImpl struct {
	userRepo   userRepository.User
	accessRepo accessRepository.ModuleAccess
	jwt        jwt.JWT
	cfg        *config.Config
	otel       otel.Otel
}

func New(userRepo userRepository.User, accessRepo accessRepository.ModuleAccess, jwtSvc jwt.JWT, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		accessRepo: accessRepo,
		jwt:        jwtSvc,
		cfg:        cfg,
		otel:       otel,
	}
}

// Login authenticates an operator. Accounts outside the administrator group
// accumulate failed attempts and freeze at the configured limit; the freeze
// check runs before the password comparison so an already-exhausted account
// locks even when the submitted password is correct.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := req.NormalizedUserID()

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldUserID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.UserID == "" {
		return res, failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Forbidden(msgFrozen) // nolint:wrapcheck
	}

	if user.UserGroup > userModel.GroupAdministrator && user.LoginAttempts >= s.cfg.Hotel.MaxLoginAttempts {
		if err = s.freeze(ctx, user); err != nil {
			return res, err
		}

		return res, failure.Forbidden(msgFrozen) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		return res, s.handleFailedAttempt(ctx, user)
	}

	if user.LoginAttempts > 0 {
		if err = s.updateUser(ctx, user.UserID, map[string]any{userModel.FieldLoginAttempts: 0}); err != nil {
			return res, err
		}
	}

	allowed, err := s.CheckModuleAccess(ctx, user.UserGroup, accessModel.ModuleDashboard)
	if err != nil {
		return res, err
	}

	if !allowed {
		return res, failure.Forbidden(msgAccessDisabled) // nolint:wrapcheck
	}

	pair, err := s.jwt.GenerateTokenPair(user.UserID, user.UserName, user.UserGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return res, fmt.Errorf("failed to generate token pair: %w", err)
	}

	log.Info().Str("userId", user.UserID).Int("userGroup", user.UserGroup).Msg("user logged in")

	return dto.LoginResponse{
		AccessToken:    pair.AccessToken,
		RefreshToken:   pair.RefreshToken,
		TokenType:      pair.TokenType,
		ExpiresIn:      pair.ExpiresIn,
		UserID:         user.UserID,
		UserName:       user.UserName,
		UserGroup:      user.UserGroup,
		Idle:           user.Idle,
		ChangePassword: user.ChangePassword,
	}, nil
}

// handleFailedAttempt records a wrong password. Administrators are never
// counted so the installation cannot lock itself out entirely.
func (s *serviceImpl) handleFailedAttempt(ctx context.Context, user userModel.User) error {
	if user.UserGroup == userModel.GroupAdministrator {
		return failure.Unauthorized(msgInvalidPassword) // nolint:wrapcheck
	}

	attempts := user.LoginAttempts + 1

	if attempts >= s.cfg.Hotel.MaxLoginAttempts {
		updatedFields := map[string]any{
			userModel.FieldLoginAttempts: attempts,
			userModel.FieldActive:        false,
		}
		if err := s.updateUser(ctx, user.UserID, updatedFields); err != nil {
			return err
		}

		log.Warn().Str("userId", user.UserID).Int("attempts", attempts).Msg("user frozen after too many attempts")

		return failure.Forbidden(msgTooManyAttempts) // nolint:wrapcheck
	}

	if err := s.updateUser(ctx, user.UserID, map[string]any{userModel.FieldLoginAttempts: attempts}); err != nil {
		return err
	}

	return failure.Unauthorized(msgInvalidPassword) // nolint:wrapcheck
}

func (s *serviceImpl) freeze(ctx context.Context, user userModel.User) error {
	if err := s.updateUser(ctx, user.UserID, map[string]any{userModel.FieldActive: false}); err != nil {
		return err
	}

	log.Warn().Str("userId", user.UserID).Msg("user frozen before password check")

	return nil
}

func (s *serviceImpl) updateUser(ctx context.Context, userID string, fields map[string]any) error {
	filter := shared.FilterByID(userID, userModel.FieldUserID, userModel.TableName)

	if err := s.userRepo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Refresh(ctx context.Context, req dto.RefreshRequest) (res dto.TokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	pair, err := s.jwt.RefreshTokens(req.RefreshToken)
	if err != nil {
		return res, failure.Unauthorized("Invalid refresh token") // nolint:wrapcheck
	}

	return dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (s *serviceImpl) Verify(ctx context.Context, token string) (claims *jwt.Claims, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err = s.jwt.ValidateToken(token, jwt.AccessToken)
	if err != nil {
		return nil, failure.Unauthorized("Invalid or expired token") // nolint:wrapcheck
	}

	return claims, nil
}

// ChangePassword verifies the current password and stores a new hash. The
// forced-change flag set on freshly created accounts is cleared here.
func (s *serviceImpl) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldUserID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.UserID == "" {
		return failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	if err = password.Verify(req.OldPassword, user.Password); err != nil {
		return failure.Unauthorized(msgWrongCurrent) // nolint:wrapcheck
	}

	if len(req.NewPassword) < minPasswordLength {
		return failure.BadRequestFromString(msgPasswordTooWeak) // nolint:wrapcheck
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	updatedFields := map[string]any{
		userModel.FieldPassword:       hash,
		userModel.FieldChangePassword: false,
	}

	if err = s.updateUser(ctx, user.UserID, updatedFields); err != nil {
		return err
	}

	log.Info().Str("userId", user.UserID).Msg("password changed")

	return nil
}

// CheckModuleAccess resolves the per-group flag for a module. Missing or
// inactive modules and unknown groups all resolve to denied, never to an
// error.
func (s *serviceImpl) CheckModuleAccess(ctx context.Context, group, moduleID int) (allowed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckModuleAccess")
	defer scope.End()
	defer scope.TraceIfError(err)

	module, err := s.accessRepo.Get(ctx, shared.FilterByID(moduleID, accessModel.FieldModuleID, accessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get module access")

		return false, fmt.Errorf("failed to get module access: %w", err)
	}

	if module.ModuleID == 0 {
		return false, nil
	}

	return module.AllowsGroup(group), nil
}
