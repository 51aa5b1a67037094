package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"starhotel/config"
	"starhotel/infras/otel"
	accessModel "starhotel/internal/domains/access/model"
	accessRepository "starhotel/internal/domains/access/repository"
	"starhotel/internal/domains/admin/model/dto"
	companyModel "starhotel/internal/domains/company/model"
	companyRepository "starhotel/internal/domains/company/repository"
	userModel "starhotel/internal/domains/user/model"
	userRepository "starhotel/internal/domains/user/repository"
	"starhotel/shared"
	"starhotel/shared/clock"
	"starhotel/shared/constant"
	gDto "starhotel/shared/dto"
	"starhotel/shared/failure"
	gModel "starhotel/shared/model"
	"starhotel/shared/password"
)

const minPasswordLength = 4

const defaultIdleSeconds = 900

type Admin interface {
	GetUsers(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) error
	ResetUser(ctx context.Context, userID string) error
	GetModuleAccess(ctx context.Context) ([]dto.ModuleAccessResponse, error)
	UpdateModuleAccess(ctx context.Context, moduleID int, req dto.UpdateModuleAccessRequest) error
	GetCompany(ctx context.Context) (dto.CompanyResponse, error)
	UpdateCompany(ctx context.Context, req dto.UpdateCompanyRequest) error
}

type serviceImpl struct {
	userRepo    userRepository.User
	accessRepo  accessRepository.ModuleAccess
	companyRepo companyRepository.Company
	cfg         *config.Config
	otel        otel.Otel
	clock       clock.Clock
}

func New(
	userRepo userRepository.User,
	accessRepo accessRepository.ModuleAccess,
	companyRepo companyRepository.Company,
	cfg *config.Config,
	otel otel.Otel,
	clock clock.Clock,
) Admin {
	return &serviceImpl{
		userRepo:    userRepo,
		accessRepo:  accessRepo,
		companyRepo: companyRepo,
		cfg:         cfg,
		otel:        otel,
		clock:       clock,
	}
}

func (s *serviceImpl) GetUsers(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUsers")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.userRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, params.Limit)

	return res, nil
}

// CreateUser provisions an operator account. New accounts must change their
// password on first login.
func (s *serviceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(req.Password) < minPasswordLength {
		return failure.BadRequestFromString("Password must be at least 4 characters") // nolint:wrapcheck
	}

	userID := req.NormalizedUserID()
	filter := shared.FilterByID(userID, userModel.FieldUserID, userModel.TableName)

	exist, err := s.userRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exist {
		return failure.Conflict("User ID already exists") // nolint:wrapcheck
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	idle := req.Idle
	if idle == 0 {
		idle = defaultIdleSeconds
	}

	user := userModel.User{
		UserID:         userID,
		UserName:       req.UserName,
		UserGroup:      req.UserGroup,
		Password:       hash,
		Idle:           idle,
		LoginAttempts:  0,
		ChangePassword: true,
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}

	if err = s.userRepo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("userId", userID).Int("userGroup", req.UserGroup).Msg("user created")

	return nil
}

// ResetUser unfreezes an account: attempts back to zero, active again.
func (s *serviceImpl) ResetUser(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, userModel.FieldUserID, userModel.TableName)

	exist, err := s.userRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("User ID not found") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := map[string]any{
		userModel.FieldLoginAttempts: 0,
		userModel.FieldActive:        true,
		constant.FieldModifiedAt:     s.clock.Now(),
		constant.FieldModifiedBy:     actor,
	}

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to reset user")

		return fmt.Errorf("failed to reset user: %w", err)
	}

	log.Info().Str("userId", userID).Msg("user reset")

	return nil
}

func (s *serviceImpl) GetModuleAccess(ctx context.Context) (res []dto.ModuleAccessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetModuleAccess")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: accessModel.FieldModuleID, SortDir: "ASC"}

	modules, err := s.accessRepo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get module access")

		return nil, fmt.Errorf("failed to get module access: %w", err)
	}

	res = make([]dto.ModuleAccessResponse, 0, len(modules))

	for _, m := range modules {
		row := dto.ModuleAccessResponse{}
		row.FromModel(m)
		res = append(res, row)
	}

	return res, nil
}

func (s *serviceImpl) UpdateModuleAccess(ctx context.Context, moduleID int, req dto.UpdateModuleAccessRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateModuleAccess")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(moduleID, accessModel.FieldModuleID, accessModel.TableName)

	module, err := s.accessRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get module access")

		return fmt.Errorf("failed to get module access: %w", err)
	}

	if module.ModuleID == 0 {
		return failure.NotFound(fmt.Sprintf("Module %d not found", moduleID)) // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := map[string]any{
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: actor,
	}

	if req.Group1 != nil {
		updatedFields[accessModel.FieldGroup1] = *req.Group1
	}

	if req.Group2 != nil {
		updatedFields[accessModel.FieldGroup2] = *req.Group2
	}

	if req.Group3 != nil {
		updatedFields[accessModel.FieldGroup3] = *req.Group3
	}

	if req.Group4 != nil {
		updatedFields[accessModel.FieldGroup4] = *req.Group4
	}

	if req.Active != nil {
		updatedFields[accessModel.FieldActive] = *req.Active
	}

	if err = s.accessRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update module access")

		return fmt.Errorf("failed to update module access: %w", err)
	}

	log.Info().Int("moduleId", moduleID).Msg("module access updated")

	return nil
}

func (s *serviceImpl) GetCompany(ctx context.Context) (res dto.CompanyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCompany")
	defer scope.End()
	defer scope.TraceIfError(err)

	company, err := s.companyRepo.Get(ctx, s.activeCompanyFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get company profile")

		return res, fmt.Errorf("failed to get company profile: %w", err)
	}

	res.FromModel(company)

	return res, nil
}

func (s *serviceImpl) UpdateCompany(ctx context.Context, req dto.UpdateCompanyRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCompany")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, actor)

	if err = s.companyRepo.Update(ctx, updatedFields, s.activeCompanyFilter()); err != nil {
		log.Error().Err(err).Msg("failed to update company profile")

		return fmt.Errorf("failed to update company profile: %w", err)
	}

	log.Info().Msg("company profile updated")

	return nil
}

func (s *serviceImpl) activeCompanyFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    companyModel.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    companyModel.TableName,
			},
		},
	}
}
