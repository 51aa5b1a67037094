package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"starhotel/config"
	otelMocks "starhotel/infras/otel/mocks"
	accessMocks "starhotel/internal/domains/access/mocks"
	accessModel "starhotel/internal/domains/access/model"
	"starhotel/internal/domains/admin/model/dto"
	"starhotel/internal/domains/admin/service"
	companyMocks "starhotel/internal/domains/company/mocks"
	companyModel "starhotel/internal/domains/company/model"
	userMocks "starhotel/internal/domains/user/mocks"
	userModel "starhotel/internal/domains/user/model"
	"starhotel/shared/clock"
	"starhotel/shared/constant"
	gDto "starhotel/shared/dto"
	"starhotel/shared/password"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	userRepo    *userMocks.MockUser
	accessRepo  *accessMocks.MockModuleAccess
	companyRepo *companyMocks.MockCompany
	svc         service.Admin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	userRepo := userMocks.NewMockUser(ctrl)
	accessRepo := accessMocks.NewMockModuleAccess(ctrl)
	companyRepo := companyMocks.NewMockCompany(ctrl)

	return &fixture{
		userRepo:    userRepo,
		accessRepo:  accessRepo,
		companyRepo: companyRepo,
		svc:         service.New(userRepo, accessRepo, companyRepo, &config.Config{}, otelMocks.NewOtel(), clock.Fixed(testNow)),
	}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "ADMIN")
}

func TestAdminService_CreateUser(t *testing.T) {
	req := dto.CreateUserRequest{
		UserID:    "frontdesk",
		UserName:  "Front Desk",
		UserGroup: userModel.GroupFrontDesk,
		Password:  "secret",
	}

	t.Run("creates an uppercase account that must change its password", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)
		f.userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u userModel.User) error {
				assert.Equal(t, "FRONTDESK", u.UserID)
				assert.True(t, u.ChangePassword)
				assert.True(t, u.Active)
				assert.Zero(t, u.LoginAttempts)
				assert.NoError(t, password.Verify("secret", u.Password))
				return nil
			})

		assert.NoError(t, f.svc.CreateUser(testContext(), req))
	})

	t.Run("short password", func(t *testing.T) {
		f := newFixture(t)

		short := req
		short.Password = "abc"

		err := f.svc.CreateUser(testContext(), short)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Password must be at least 4 characters")
	})

	t.Run("duplicate user id", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := f.svc.CreateUser(testContext(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User ID already exists")
	})
}

func TestAdminService_ResetUser(t *testing.T) {
	t.Run("unfreezes and clears attempts", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 0, fields[userModel.FieldLoginAttempts])
				assert.Equal(t, true, fields[userModel.FieldActive])
				return nil
			})

		assert.NoError(t, f.svc.ResetUser(testContext(), "FRONTDESK"))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.ResetUser(testContext(), "GHOST")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User ID not found")
	})
}

func TestAdminService_UpdateModuleAccess(t *testing.T) {
	t.Run("applies only the provided flags", func(t *testing.T) {
		f := newFixture(t)

		f.accessRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(accessModel.ModuleAccess{ModuleID: accessModel.ModuleRooms, Active: true}, nil)
		f.accessRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, fields[accessModel.FieldGroup3])
				assert.NotContains(t, fields, accessModel.FieldGroup1)
				assert.NotContains(t, fields, accessModel.FieldActive)
				return nil
			})

		enable := true

		err := f.svc.UpdateModuleAccess(testContext(), accessModel.ModuleRooms, dto.UpdateModuleAccessRequest{Group3: &enable})
		assert.NoError(t, err)
	})

	t.Run("unknown module", func(t *testing.T) {
		f := newFixture(t)

		f.accessRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(accessModel.ModuleAccess{}, nil)

		err := f.svc.UpdateModuleAccess(testContext(), 99, dto.UpdateModuleAccessRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Module 99 not found")
	})
}

func TestAdminService_Company(t *testing.T) {
	t.Run("returns the active profile", func(t *testing.T) {
		f := newFixture(t)

		f.companyRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(companyModel.Company{CompanyName: "STAR HOTEL", CurrencySymbol: "$", Active: true}, nil)

		res, err := f.svc.GetCompany(testContext())
		require.NoError(t, err)
		assert.Equal(t, "STAR HOTEL", res.CompanyName)
	})

	t.Run("updates the active profile", func(t *testing.T) {
		f := newFixture(t)

		f.companyRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "STAR HOTEL & SPA", fields["company_name"])
				return nil
			})

		err := f.svc.UpdateCompany(testContext(), dto.UpdateCompanyRequest{CompanyName: "STAR HOTEL & SPA"})
		assert.NoError(t, err)
	})
}
