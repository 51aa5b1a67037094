//go:build wireinject
// +build wireinject

package di

import (
	"starhotel/config"
	"starhotel/infras/jwt"
	"starhotel/infras/kafka"
	"starhotel/infras/otel"
	"starhotel/infras/postgres"
	"starhotel/infras/redis"
	"starhotel/permissions"
	"starhotel/shared/cache"
	"starhotel/shared/clock"
	"starhotel/transport/http"
	"starhotel/transport/http/middleware"
	"starhotel/transport/http/router"

	accessRepository "starhotel/internal/domains/access/repository"
	adminService "starhotel/internal/domains/admin/service"
	authService "starhotel/internal/domains/auth/service"
	bookingRepository "starhotel/internal/domains/booking/repository"
	bookingService "starhotel/internal/domains/booking/service"
	companyRepository "starhotel/internal/domains/company/repository"
	dashboardService "starhotel/internal/domains/dashboard/service"
	roomRepository "starhotel/internal/domains/room/repository"
	roomService "starhotel/internal/domains/room/service"
	userRepository "starhotel/internal/domains/user/repository"

	adminHandler "starhotel/internal/handlers/admin"
	authHandler "starhotel/internal/handlers/auth"
	bookingHandler "starhotel/internal/handlers/booking"
	dashboardHandler "starhotel/internal/handlers/dashboard"
	roomHandler "starhotel/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewLog,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewLog,
	bookingService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	accessRepository.New,
	authService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var adminDomain = wire.NewSet(
	companyRepository.New,
	adminService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	authDomain,
	dashboardDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	dashboardHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
