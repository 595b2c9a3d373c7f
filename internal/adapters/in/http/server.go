// Package http is the inbound REST adapter. It binds requests into
// commands and queries, maps domain errors onto statuses, and keeps GeoJSON
// coordinate order confined to the wire.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
)

// Server wires the REST routes to the use-case handlers.
type Server struct {
	createDeliveryHandler     commands.CreateDeliveryCommandHandler
	changeStatusHandler       commands.ChangeStatusCommandHandler
	assignDriverHandler       commands.AssignDriverCommandHandler
	attachProofHandler        commands.AttachProofCommandHandler
	deleteDeliveryHandler     commands.DeleteDeliveryCommandHandler
	registerUserHandler       commands.RegisterUserCommandHandler
	toggleAvailabilityHandler commands.ToggleAvailabilityCommandHandler
	changePasswordHandler     commands.ChangePasswordCommandHandler

	listDeliveriesHandler   queries.ListDeliveriesQueryHandler
	getDeliveryHandler      queries.GetDeliveryQueryHandler
	trackDeliveryHandler    queries.TrackDeliveryQueryHandler
	getDeliveryStatsHandler queries.GetDeliveryStatsQueryHandler
	loginHandler            queries.LoginQueryHandler
	getAccountHandler       queries.GetAccountQueryHandler

	tokens *TokenIssuer
}

// NewServer creates the HTTP server facade.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	changeStatusHandler commands.ChangeStatusCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	attachProofHandler commands.AttachProofCommandHandler,
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler,
	registerUserHandler commands.RegisterUserCommandHandler,
	toggleAvailabilityHandler commands.ToggleAvailabilityCommandHandler,
	changePasswordHandler commands.ChangePasswordCommandHandler,
	listDeliveriesHandler queries.ListDeliveriesQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	trackDeliveryHandler queries.TrackDeliveryQueryHandler,
	getDeliveryStatsHandler queries.GetDeliveryStatsQueryHandler,
	loginHandler queries.LoginQueryHandler,
	getAccountHandler queries.GetAccountQueryHandler,
	tokens *TokenIssuer,
) *Server {
	return &Server{
		createDeliveryHandler:     createDeliveryHandler,
		changeStatusHandler:       changeStatusHandler,
		assignDriverHandler:       assignDriverHandler,
		attachProofHandler:        attachProofHandler,
		deleteDeliveryHandler:     deleteDeliveryHandler,
		registerUserHandler:       registerUserHandler,
		toggleAvailabilityHandler: toggleAvailabilityHandler,
		changePasswordHandler:     changePasswordHandler,
		listDeliveriesHandler:     listDeliveriesHandler,
		getDeliveryHandler:        getDeliveryHandler,
		trackDeliveryHandler:      trackDeliveryHandler,
		getDeliveryStatsHandler:   getDeliveryStatsHandler,
		loginHandler:              loginHandler,
		getAccountHandler:         getAccountHandler,
		tokens:                    tokens,
	}
}

// RegisterRoutes mounts every route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(MetricsMiddleware())

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.GET("/auth/me", s.Me, s.tokens.Authenticate)
	api.PUT("/auth/password", s.ChangePassword, s.tokens.Authenticate)
	api.PUT("/auth/availability", s.ToggleAvailability, s.tokens.Authenticate, RequireRole(account.RoleDriver))
	api.GET("/track/:code", s.TrackDelivery)

	deliveries := api.Group("/deliveries", s.tokens.Authenticate)
	deliveries.POST("", s.CreateDelivery)
	deliveries.GET("", s.ListDeliveries)
	deliveries.GET("/stats", s.DeliveryStats, RequireRole(account.RoleAdmin))
	deliveries.GET("/:id", s.GetDelivery)
	deliveries.PATCH("/:id/status", s.ChangeStatus)
	deliveries.POST("/:id/assign", s.AssignDriver, RequireRole(account.RoleAdmin))
	deliveries.POST("/:id/proof", s.AttachProof, RequireRole(account.RoleDriver, account.RoleAdmin))
	deliveries.DELETE("/:id", s.DeleteDelivery)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Register handles POST /api/v1/auth/register.
func (s *Server) Register(ctx echo.Context) error {
	var request RegisterRequest
	if err := ctx.Bind(&request); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	role, err := account.ParseRole(request.Role)
	if err != nil {
		return writeError(ctx, err)
	}
	// Admin accounts are provisioned out of band, never via the public
	// registration endpoint.
	if role == account.RoleAdmin {
		return respond(ctx, http.StatusForbidden, "Cannot self-register as admin")
	}

	var driver *account.DriverProfile
	if request.Driver != nil {
		driver = &account.DriverProfile{
			VehicleType:   request.Driver.VehicleType,
			VehicleNumber: request.Driver.VehicleNumber,
			LicenseNumber: request.Driver.LicenseNumber,
		}
	}

	cmd, err := commands.NewRegisterUserCommand(
		kernel.NewUUID(), request.Name, request.Email, request.Phone,
		request.Password, role, driver,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	user, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	token, err := s.tokens.Issue(user, time.Now().UTC())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, AuthResponse{Token: token, User: userFromDomain(user)})
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var request LoginRequest
	if err := ctx.Bind(&request); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	query, err := queries.NewLoginQuery(request.Email, request.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	user, err := s.loginHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	token, err := s.tokens.Issue(user, time.Now().UTC())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AuthResponse{Token: token, User: userFromDomain(user)})
}

// Me handles GET /api/v1/auth/me.
func (s *Server) Me(ctx echo.Context) error {
	query, err := queries.NewGetAccountQuery(actorID(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	user, err := s.getAccountHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, userFromDomain(user))
}

// ChangePassword handles PUT /api/v1/auth/password.
func (s *Server) ChangePassword(ctx echo.Context) error {
	var request ChangePasswordRequest
	if err := ctx.Bind(&request); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewChangePasswordCommand(actorID(ctx),
		request.CurrentPassword, request.NewPassword)
	if err != nil {
		return writeError(ctx, err)
	}

	user, err := s.changePasswordHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, userFromDomain(user))
}

// ToggleAvailability handles PUT /api/v1/auth/availability. It flips the
// driver's availability flag; the request carries no body.
func (s *Server) ToggleAvailability(ctx echo.Context) error {
	cmd, err := commands.NewToggleAvailabilityCommand(actorID(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	user, err := s.toggleAvailabilityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, userFromDomain(user))
}

// TrackDelivery handles GET /api/v1/track/:code. It is the only public
// delivery view and never exposes internal details.
func (s *Server) TrackDelivery(ctx echo.Context) error {
	query, err := queries.NewTrackDeliveryQuery(ctx.Param("code"))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.trackDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var request CreateDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	pickup, err := request.PickupAddress.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	dropoff, err := request.DeliveryAddress.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	pkg, err := request.Package.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	priority, err := parsePriority(request.Priority)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(), actorID(ctx), request.CustomerName, request.CustomerPhone,
		pickup, dropoff, pkg, priority, request.SpecialInstructions,
		request.EstimatedDeliveryTime,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryFromDomain(aggregate))
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))

	query, err := queries.NewListDeliveriesQuery(actorID(ctx), actorRole(ctx),
		queries.ListDeliveriesFilters{
			Status:   ctx.QueryParam("status"),
			Priority: ctx.QueryParam("priority"),
			Search:   ctx.QueryParam("search"),
			Page:     page,
			PageSize: pageSize,
		})
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.listDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, listFromReadModel(response))
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID, actorID(ctx), actorRole(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(aggregate))
}

// DeliveryStats handles GET /api/v1/deliveries/stats.
func (s *Server) DeliveryStats(ctx echo.Context) error {
	response, err := s.getDeliveryStatsHandler.Handle(ctx.Request().Context(),
		queries.NewGetDeliveryStatsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeStatus handles PATCH /api/v1/deliveries/:id/status.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	target, err := delivery.ParseStatus(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}
	location, err := request.Location.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeStatusCommand(deliveryID, target, location,
		request.Note, actorID(ctx), actorRole(ctx), time.Now().UTC())
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(aggregate))
}

// AssignDriver handles POST /api/v1/deliveries/:id/assign.
func (s *Server) AssignDriver(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request AssignDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(deliveryID, driverID, time.Now().UTC())
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(aggregate))
}

// AttachProof handles POST /api/v1/deliveries/:id/proof.
func (s *Server) AttachProof(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request AttachProofRequest
	if err := ctx.Bind(&request); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	location, err := request.Location.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	now := time.Now().UTC()
	proof, err := delivery.NewProofOfDelivery(request.PhotoURL, request.PhotoID,
		request.Signature, request.ReceivedBy, request.Notes, location, now)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAttachProofCommand(deliveryID, proof, actorID(ctx), actorRole(ctx), now)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.attachProofHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(aggregate))
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:id.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID, actorID(ctx), actorRole(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
