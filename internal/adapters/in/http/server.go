// Package http exposes the parcel engine over a small JSON API. It
// coordinates between HTTP handlers and application use cases; every access
// decision stays in the core, the handlers only translate wire shapes and
// error kinds.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"parceltrack/internal/adapters/out/authbridge"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// Server wires the HTTP boundary to the application's commands and queries.
type Server struct {
	registerParcelHandler commands.RegisterParcelCommandHandler
	updateStatusHandler   commands.UpdateParcelStatusCommandHandler

	getByReferenceHandler queries.GetParcelByReferenceQueryHandler
	listParcelsHandler    queries.ListParcelsQueryHandler

	profiles ports.ProfileRepository
	verifier *authbridge.TokenVerifier
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	registerParcelHandler commands.RegisterParcelCommandHandler,
	updateStatusHandler commands.UpdateParcelStatusCommandHandler,
	getByReferenceHandler queries.GetParcelByReferenceQueryHandler,
	listParcelsHandler queries.ListParcelsQueryHandler,
	profiles ports.ProfileRepository,
	verifier *authbridge.TokenVerifier,
) *Server {
	return &Server{
		registerParcelHandler: registerParcelHandler,
		updateStatusHandler:   updateStatusHandler,
		getByReferenceHandler: getByReferenceHandler,
		listParcelsHandler:    listParcelsHandler,
		profiles:              profiles,
		verifier:              verifier,
	}
}

// RegisterRoutes mounts every route on the given echo instance. The health
// endpoint stays outside the authenticated group.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", BearerAuth(s.verifier))
	api.POST("/parcels", s.RegisterParcel)
	api.GET("/parcels", s.ListParcels)
	api.GET("/parcels/:reference", s.GetParcelByReference)
	api.PUT("/parcels/:id/status", s.UpdateParcelStatus)
	api.GET("/profile", s.GetProfile)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterParcel handles POST /api/v1/parcels.
func (s *Server) RegisterParcel(ctx echo.Context) error {
	_, caller, err := callerIdentity(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request RegisterParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return writeErrorStatus(ctx, http.StatusBadRequest, "invalid request body")
	}

	sender, receiver, items, err := request.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRegisterParcelCommand(kernel.NewUUID(), caller, sender, receiver, items)
	if err != nil {
		return writeError(ctx, err)
	}

	registered, err := s.registerParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toParcelResponse(registered))
}

// GetParcelByReference handles GET /api/v1/parcels/:reference.
func (s *Server) GetParcelByReference(ctx echo.Context) error {
	_, caller, err := callerIdentity(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelByReferenceQuery(caller, ctx.Param("reference"))
	if err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsRequired) {
			// a malformed code can never name a parcel
			return writeErrorStatus(ctx, http.StatusNotFound, "not found")
		}
		return writeError(ctx, err)
	}

	found, err := s.getByReferenceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(found))
}

// ListParcels handles GET /api/v1/parcels.
func (s *Server) ListParcels(ctx echo.Context) error {
	_, caller, err := callerIdentity(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListParcelsQuery(caller)
	if err != nil {
		return writeError(ctx, err)
	}

	listed, err := s.listParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponses(listed))
}

// UpdateParcelStatus handles PUT /api/v1/parcels/:id/status.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	_, caller, err := callerIdentity(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeErrorStatus(ctx, http.StatusNotFound, "not found")
	}

	var request UpdateStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return writeErrorStatus(ctx, http.StatusBadRequest, "invalid request body")
	}

	next, err := parcel.ParseStatus(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(parcelID, caller, next)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(updated))
}

// GetProfile handles GET /api/v1/profile. The profile is created from the
// token's identity metadata the first time the user is seen and persisted,
// including the phone index entry.
func (s *Server) GetProfile(ctx echo.Context) error {
	identity, _, err := callerIdentity(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	requestCtx := ctx.Request().Context()

	profile, err := s.profiles.Get(requestCtx, identity.UserID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		profile, err = user.ProfileFromMetadata(identity.UserID, identity.Metadata, identity.AccountCreatedAt)
		if err != nil {
			return writeError(ctx, err)
		}
		if err := s.profiles.Save(requestCtx, profile); err != nil {
			return writeError(ctx, err)
		}
	} else if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProfileResponse(profile))
}
