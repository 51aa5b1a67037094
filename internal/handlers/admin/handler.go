package admin

import (
	"net/http"
	"strconv"

	"starhotel/infras/otel"
	"starhotel/internal/domains/admin/model/dto"
	"starhotel/internal/domains/admin/service"
	userModel "starhotel/internal/domains/user/model"
	"starhotel/shared"
	"starhotel/shared/constant"
	gDto "starhotel/shared/dto"
	"starhotel/shared/failure"
	"starhotel/shared/validator"
	"starhotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/users", handler.GetUsers)
		routerGroup.Post("/users", handler.CreateUser)
		routerGroup.Post("/users/{id}/reset", handler.ResetUser)
		routerGroup.Get("/modules", handler.GetModuleAccess)
		routerGroup.Patch("/modules/{id}", handler.UpdateModuleAccess)
		routerGroup.Get("/company", handler.GetCompany)
		routerGroup.Patch("/company", handler.UpdateCompany)
	})
}

// GetUsers lists operator accounts with optional group and active filters.
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if group, err := strconv.Atoi(r.URL.Query().Get(userModel.FieldUserGroup)); err == nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    userModel.FieldUserGroup,
			Operator: gDto.FilterOperatorEq,
			Value:    group,
			Table:    userModel.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(userModel.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    userModel.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    userModel.TableName,
		})
	}

	users, err := handler.service.GetUsers(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Users retrieved successfully")

	response.WithJSON(w, http.StatusOK, users)
}

// CreateUser provisions a new operator account.
func (handler *Handler) CreateUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	req := dto.CreateUserRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CreateUser(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create user")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User created successfully by " + user)

	response.WithMessage(writer, http.StatusCreated, "User created successfully")
}

// ResetUser unfreezes a locked account and clears its failed attempt counter.
func (handler *Handler) ResetUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetUser")
	defer scope.End()

	userID := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.ResetUser(ctx, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset user")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User " + userID + " reset by " + admin)

	response.WithMessage(w, http.StatusOK, "User reset successfully")
}

// GetModuleAccess lists the per-group access flags of every module.
func (handler *Handler) GetModuleAccess(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetModuleAccess")
	defer scope.End()

	modules, err := handler.service.GetModuleAccess(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get module access")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Module access retrieved successfully")

	response.WithJSON(w, http.StatusOK, modules)
}

// UpdateModuleAccess edits which groups may use a module.
func (handler *Handler) UpdateModuleAccess(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateModuleAccess")
	defer scope.End()

	moduleID, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		err := failure.BadRequestFromString("Invalid module ID")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateModuleAccessRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateModuleAccess(ctx, moduleID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update module access")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Module access updated by " + admin)

	response.WithMessage(w, http.StatusOK, "Module access updated successfully")
}

// GetCompany returns the hotel's company profile used on receipts.
func (handler *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCompany")
	defer scope.End()

	company, err := handler.service.GetCompany(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get company profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Company profile retrieved successfully")

	response.WithJSON(w, http.StatusOK, company)
}

// UpdateCompany edits the hotel's company profile.
func (handler *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCompany")
	defer scope.End()

	req := dto.UpdateCompanyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateCompany(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update company profile")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Company profile updated by " + admin)

	response.WithMessage(w, http.StatusOK, "Company profile updated successfully")
}
