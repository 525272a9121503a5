// Package http exposes the public operations over REST using echo.
// It owns the mapping from typed domain errors to HTTP status codes; the
// core layers below never see transport concerns.
package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	userIDHeader = "X-User-Id"
	adminHeader  = "X-Admin"

	photoURLExpiry = 24 * time.Hour
	ratesCacheTTL  = 15 * time.Minute
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	ReceivePackage        commands.ReceivePackageCommandHandler
	AttachPackagePhoto    commands.AttachPackagePhotoCommandHandler
	UpdatePackageStatus   commands.UpdatePackageStatusCommandHandler
	ReconcilePackage      commands.ReconcilePackageCommandHandler
	CreateConsolidation   commands.CreateConsolidationCommandHandler
	CompleteConsolidation commands.CompleteConsolidationCommandHandler
	CancelConsolidation   commands.CancelConsolidationCommandHandler
	CreateShipment        commands.CreateShipmentCommandHandler
	CreateCarrierLabel    commands.CreateCarrierLabelCommandHandler
	UpdateShipmentStatus  commands.UpdateShipmentStatusCommandHandler
	PackagesByOwner       queries.GetPackagesByOwnerQueryHandler
	ShipmentTracking      queries.GetShipmentTrackingQueryHandler
}

// Server coordinates between HTTP requests and the application use cases.
type Server struct {
	handlers   Handlers
	photoStore ports.PhotoStore
	carrier    ports.CarrierLabelService
	rateCache  ports.RateCache
}

// NewServer creates a new HTTP server.
func NewServer(
	handlers Handlers,
	photoStore ports.PhotoStore,
	carrier ports.CarrierLabelService,
	rateCache ports.RateCache,
) *Server {
	return &Server{
		handlers:   handlers,
		photoStore: photoStore,
		carrier:    carrier,
		rateCache:  rateCache,
	}
}

// RegisterRoutes mounts all public operations under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/packages", s.ReceivePackage)
	api.GET("/packages", s.ListPackages)
	api.POST("/packages/:id/photos", s.UploadPackagePhoto)
	api.PATCH("/packages/:id/status", s.UpdatePackageStatus)
	api.POST("/packages/:id/reconcile", s.ReconcilePackage)

	api.POST("/consolidations", s.CreateConsolidation)
	api.POST("/consolidations/:id/complete", s.CompleteConsolidation)
	api.POST("/consolidations/:id/cancel", s.CancelConsolidation)

	api.POST("/shipments", s.CreateShipment)
	api.POST("/shipments/:id/label", s.CreateCarrierLabel)
	api.PATCH("/shipments/:id/status", s.UpdateShipmentStatus)
	api.GET("/shipments/:id/tracking", s.GetShipmentTracking)

	api.GET("/rates", s.GetRates)

	e.GET("/health", s.Health)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type actor struct {
	id      kernel.UUID
	isAdmin bool
}

func (s *Server) actorFrom(ctx echo.Context) (actor, error) {
	raw := ctx.Request().Header.Get(userIDHeader)
	if raw == "" {
		return actor{}, errs.NewValueIsRequiredError(userIDHeader)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return actor{}, err
	}

	return actor{
		id:      id,
		isAdmin: ctx.Request().Header.Get(adminHeader) == "true",
	}, nil
}

// writeError maps typed domain errors to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrExternalService),
		errors.Is(err, errs.ErrPartialFailure):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type receivePackageRequest struct {
	OwnerID        string  `json:"ownerId"`
	TrackingNumber string  `json:"trackingNumber"`
	Retailer       string  `json:"retailer"`
	Description    string  `json:"description"`
	WeightValue    float64 `json:"weightValue"`
	WeightUnit     string  `json:"weightUnit"`
	Length         float64 `json:"length"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	DimensionUnit  string  `json:"dimensionUnit"`
	DeclaredValue  float64 `json:"declaredValue"`
	Currency       string  `json:"currency"`
}

// ReceivePackage handles POST /api/v1/packages, the warehouse intake.
func (s *Server) ReceivePackage(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if !act.isAdmin {
		return writeError(ctx, errs.NewForbiddenError("package", "", act.id.String()))
	}

	var req receivePackageRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return writeError(ctx, err)
	}
	weight, err := kernel.NewWeight(req.WeightValue, kernel.WeightUnit(req.WeightUnit))
	if err != nil {
		return writeError(ctx, err)
	}
	dimensions, err := kernel.NewDimensions(req.Length, req.Width, req.Height,
		kernel.DimensionUnit(req.DimensionUnit))
	if err != nil {
		return writeError(ctx, err)
	}
	value, err := kernel.NewMoney(req.DeclaredValue, req.Currency)
	if err != nil {
		return writeError(ctx, err)
	}

	packageID := kernel.NewUUID()
	cmd, err := commands.NewReceivePackageCommand(packageID, ownerID, req.TrackingNumber,
		req.Retailer, req.Description, weight, dimensions, value)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ReceivePackage.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": packageID.String()})
}

// ListPackages handles GET /api/v1/packages, the caller's package listing.
func (s *Server) ListPackages(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPackagesByOwnerQuery(act.id)
	if err != nil {
		return writeError(ctx, err)
	}

	packages, err := s.handlers.PackagesByOwner.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, packages)
}

// UploadPackagePhoto handles POST /api/v1/packages/:id/photos. The photo
// goes to object storage first, then its key is attached to the package.
// The response carries a time-limited download URL.
func (s *Server) UploadPackagePhoto(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		return writeError(ctx, errs.NewValueIsRequiredError("photo"))
	}

	src, err := file.Open()
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("photo", err))
	}
	defer src.Close()

	photoType := kernel.PhotoType(ctx.FormValue("type"))
	key := fmt.Sprintf("packages/%s/%s-%s", packageID, kernel.NewUUID(), file.Filename)

	contentType := file.Header.Get("Content-Type")
	storedKey, err := s.photoStore.Put(ctx.Request().Context(), key, src, file.Size, contentType)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAttachPackagePhotoCommand(packageID, act.id, act.isAdmin,
		storedKey, photoType, time.Now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.handlers.AttachPackagePhoto.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	url, err := s.photoStore.PresignedURL(ctx.Request().Context(), storedKey, photoURLExpiry)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"key": storedKey, "url": url})
}

type updatePackageStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdatePackageStatus handles PATCH /api/v1/packages/:id/status, the
// administrative status override.
func (s *Server) UpdatePackageStatus(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updatePackageStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := pack.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdatePackageStatusCommand(packageID, act.id, act.isAdmin, status, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.UpdatePackageStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReconcilePackage handles POST /api/v1/packages/:id/reconcile, the manual
// trigger for linking a stray consolidated package.
func (s *Server) ReconcilePackage(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if !act.isAdmin {
		return writeError(ctx, errs.NewForbiddenError("package", ctx.Param("id"), act.id.String()))
	}

	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReconcilePackageCommand(packageID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ReconcilePackage.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createConsolidationRequest struct {
	PackageIDs            []string `json:"packageIds"`
	RemovePackaging       bool     `json:"removePackaging"`
	AddProtection         bool     `json:"addProtection"`
	RequestUnpackedPhotos bool     `json:"requestUnpackedPhotos"`
	Instructions          string   `json:"instructions"`
}

// CreateConsolidation handles POST /api/v1/consolidations.
func (s *Server) CreateConsolidation(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req createConsolidationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	packageIDs, err := parseUUIDs(req.PackageIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	consolidationID := kernel.NewUUID()
	cmd, err := commands.NewCreateConsolidationCommand(consolidationID, act.id, packageIDs,
		consolidation.Preferences{
			RemovePackaging:       req.RemovePackaging,
			AddProtection:         req.AddProtection,
			RequestUnpackedPhotos: req.RequestUnpackedPhotos,
		}, req.Instructions)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateConsolidation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": consolidationID.String()})
}

type completeConsolidationRequest struct {
	WeightValue   float64 `json:"weightValue"`
	WeightUnit    string  `json:"weightUnit"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	DimensionUnit string  `json:"dimensionUnit"`
	Notes         string  `json:"notes"`
}

// CompleteConsolidation handles POST /api/v1/consolidations/:id/complete,
// the warehouse completion with the repacked box measurements.
func (s *Server) CompleteConsolidation(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	consolidationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req completeConsolidationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	weight, err := kernel.NewWeight(req.WeightValue, kernel.WeightUnit(req.WeightUnit))
	if err != nil {
		return writeError(ctx, err)
	}
	dimensions, err := kernel.NewDimensions(req.Length, req.Width, req.Height,
		kernel.DimensionUnit(req.DimensionUnit))
	if err != nil {
		return writeError(ctx, err)
	}

	resultingPackageID := kernel.NewUUID()
	cmd, err := commands.NewCompleteConsolidationCommand(consolidationID, resultingPackageID,
		act.id, act.isAdmin, weight, dimensions, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CompleteConsolidation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"resultingPackageId": resultingPackageID.String()})
}

// CancelConsolidation handles POST /api/v1/consolidations/:id/cancel.
func (s *Server) CancelConsolidation(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	consolidationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelConsolidationCommand(consolidationID, act.id, act.isAdmin)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CancelConsolidation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createShipmentRequest struct {
	PackageIDs   []string `json:"packageIds"`
	Carrier      string   `json:"carrier"`
	ServiceLevel string   `json:"serviceLevel"`
	Destination  struct {
		Name       string `json:"name"`
		Street     string `json:"street"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`
	} `json:"destination"`
	Customs struct {
		ContentsType  string  `json:"contentsType"`
		Description   string  `json:"description"`
		DeclaredValue float64 `json:"declaredValue"`
		Currency      string  `json:"currency"`
	} `json:"customs"`
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req createShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	packageIDs, err := parseUUIDs(req.PackageIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	destination, err := shipment.NewDestination(req.Destination.Name, req.Destination.Street,
		req.Destination.City, req.Destination.State, req.Destination.PostalCode,
		req.Destination.Country)
	if err != nil {
		return writeError(ctx, err)
	}

	declared, err := kernel.NewMoney(req.Customs.DeclaredValue, req.Customs.Currency)
	if err != nil {
		return writeError(ctx, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, act.id, packageIDs,
		req.Carrier, req.ServiceLevel, destination, shipment.CustomsInfo{
			ContentsType:  req.Customs.ContentsType,
			Description:   req.Customs.Description,
			DeclaredValue: declared,
		})
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": shipmentID.String()})
}

// CreateCarrierLabel handles POST /api/v1/shipments/:id/label.
func (s *Server) CreateCarrierLabel(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateCarrierLabelCommand(shipmentID, act.id, act.isAdmin)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateCarrierLabel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type updateShipmentStatusRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// UpdateShipmentStatus handles PATCH /api/v1/shipments/:id/status.
func (s *Server) UpdateShipmentStatus(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateShipmentStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := shipment.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(shipmentID, act.id, act.isAdmin,
		status, req.Location, req.Description)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.UpdateShipmentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipmentTracking handles GET /api/v1/shipments/:id/tracking.
func (s *Server) GetShipmentTracking(ctx echo.Context) error {
	act, err := s.actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetShipmentTrackingQuery(shipmentID, act.id)
	if err != nil {
		return writeError(ctx, err)
	}

	tracking, err := s.handlers.ShipmentTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, tracking)
}

type ratesQuery struct {
	WeightKg float64 `query:"weightKg"`
	LengthCm float64 `query:"lengthCm"`
	WidthCm  float64 `query:"widthCm"`
	HeightCm float64 `query:"heightCm"`
	Country  string  `query:"country"`
}

// GetRates handles GET /api/v1/rates. Quotes come from the carrier API and
// are cached by request shape to keep repeat quoting off the carrier.
func (s *Server) GetRates(ctx echo.Context) error {
	if _, err := s.actorFrom(ctx); err != nil {
		return writeError(ctx, err)
	}

	var req ratesQuery
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("query", err))
	}
	if req.WeightKg <= 0 {
		return writeError(ctx, errs.NewValueIsInvalidError("weightKg"))
	}
	if req.Country == "" {
		return writeError(ctx, errs.NewValueIsRequiredError("country"))
	}

	key := fmt.Sprintf("%s:%.2f:%.0fx%.0fx%.0f",
		req.Country, req.WeightKg, req.LengthCm, req.WidthCm, req.HeightCm)

	requestCtx := ctx.Request().Context()
	if rates, ok, err := s.rateCache.Get(requestCtx, key); err == nil && ok {
		return ctx.JSON(http.StatusOK, rates)
	}

	rates, err := s.carrier.GetRates(requestCtx, ports.RateRequest{
		WeightKg:           req.WeightKg,
		LengthCm:           req.LengthCm,
		WidthCm:            req.WidthCm,
		HeightCm:           req.HeightCm,
		DestinationCountry: req.Country,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	// A cache write failure only costs the next caller a carrier round trip.
	_ = s.rateCache.Set(requestCtx, key, rates, ratesCacheTTL)

	return ctx.JSON(http.StatusOK, rates)
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := kernel.UUIDFromString(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
