// Package http is the inbound HTTP adapter: echo handlers translating the
// REST surface into commands and queries. Handlers never touch the domain
// directly; all writes go through command handlers.
package http

import (
	"errors"
	"net/http"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/table"
	"comanda/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the API gateway after authentication.
// This service trusts them; token verification happens upstream.
const (
	HeaderTenantID = "X-Tenant-Id"
	HeaderActorID  = "X-Actor-Id"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	checkoutHandler         commands.CheckoutCommandHandler
	openTableHandler        commands.OpenTableCommandHandler
	addTableItemsHandler    commands.AddTableItemsCommandHandler
	closeTableHandler       commands.CloseTableCommandHandler
	transferTableHandler    commands.TransferTableCommandHandler
	updateOrderItemsHandler commands.UpdateOrderItemsCommandHandler
	transitionStatusHandler commands.TransitionOrderStatusCommandHandler
	assignCourierHandler    commands.AssignCourierCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler

	// Query handlers
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getTableBoardHandler   queries.GetTableBoardQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	openTableHandler commands.OpenTableCommandHandler,
	addTableItemsHandler commands.AddTableItemsCommandHandler,
	closeTableHandler commands.CloseTableCommandHandler,
	transferTableHandler commands.TransferTableCommandHandler,
	updateOrderItemsHandler commands.UpdateOrderItemsCommandHandler,
	transitionStatusHandler commands.TransitionOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getTableBoardHandler queries.GetTableBoardQueryHandler,
) *Server {
	return &Server{
		checkoutHandler:         checkoutHandler,
		openTableHandler:        openTableHandler,
		addTableItemsHandler:    addTableItemsHandler,
		closeTableHandler:       closeTableHandler,
		transferTableHandler:    transferTableHandler,
		updateOrderItemsHandler: updateOrderItemsHandler,
		transitionStatusHandler: transitionStatusHandler,
		assignCourierHandler:    assignCourierHandler,
		cancelOrderHandler:      cancelOrderHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
		getTableBoardHandler:    getTableBoardHandler,
	}
}

// RegisterRoutes wires the REST surface onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.Checkout)
	api.GET("/orders/active", s.GetActiveOrders)
	api.PUT("/orders/:orderID/items", s.UpdateOrderItems)
	api.POST("/orders/:orderID/status", s.TransitionOrderStatus)
	api.POST("/orders/:orderID/courier", s.AssignCourier)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)

	api.GET("/tables/board", s.GetTableBoard)
	api.POST("/tables/:tableID/open", s.OpenTable)
	api.POST("/tables/:tableID/items", s.AddTableItems)
	api.POST("/tables/:tableID/close", s.CloseTable)
	api.POST("/tables/:tableID/transfer", s.TransferTable)
}

// ErrorResponse is the JSON error body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// identity extracts the tenant and actor set by the gateway.
func identity(ctx echo.Context) (tenantID, actorID kernel.UUID, err error) {
	tenantID, err = kernel.UUIDFromString(ctx.Request().Header.Get(HeaderTenantID))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(HeaderTenantID, err)
	}

	actorID, err = kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(HeaderActorID, err)
	}

	return tenantID, actorID, nil
}

// respondError maps domain and validation errors onto HTTP status codes:
// not-found to 404 (cross-tenant access looks identical to absence),
// validation failures to 400, business-rule rejections to 409.
func respondError(ctx echo.Context, err error) error {
	var (
		notFound     *errs.ObjectNotFoundError
		required     *errs.ValueIsRequiredError
		invalid      *errs.ValueIsInvalidError
		outOfRange   *errs.ValueIsOutOfRangeError
		ruleViolated *errs.BusinessRuleViolatedError
	)

	switch {
	case errors.As(err, &notFound):
		return respond(ctx, http.StatusNotFound, err)
	case errors.As(err, &required), errors.As(err, &invalid), errors.As(err, &outOfRange):
		return respond(ctx, http.StatusBadRequest, err)
	case errors.As(err, &ruleViolated),
		errors.Is(err, table.ErrTableIsNotFree),
		errors.Is(err, table.ErrTableIsNotOccupied),
		errors.Is(err, order.ErrNumberConflict):
		return respond(ctx, http.StatusConflict, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func respond(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
