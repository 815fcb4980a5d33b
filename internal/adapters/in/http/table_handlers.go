package http

import (
	"net/http"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// OpenTable handles POST /api/v1/tables/{tableID}/open.
func (s *Server) OpenTable(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	tableID, err := kernel.UUIDFromString(ctx.Param("tableID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req OpenTableRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}
	customerID, err := optionalID(req.CustomerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewOpenTableCommand(
		orderID, tenantID, actorID, tableID, customerID, req.CustomerName)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.openTableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{OrderID: orderID.String()})
}

// AddTableItems handles POST /api/v1/tables/{tableID}/items.
func (s *Server) AddTableItems(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	tableID, err := kernel.UUIDFromString(ctx.Param("tableID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req AddTableItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}
	items, err := toItemInputs(req.Items)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddTableItemsCommand(tenantID, actorID, tableID, items)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.addTableItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CloseTable handles POST /api/v1/tables/{tableID}/close.
func (s *Server) CloseTable(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	tableID, err := kernel.UUIDFromString(ctx.Param("tableID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req CloseTableRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}
	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCloseTableCommand(tenantID, actorID, tableID, paymentMethod)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.closeTableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransferTable handles POST /api/v1/tables/{tableID}/transfer.
func (s *Server) TransferTable(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	sourceTableID, err := kernel.UUIDFromString(ctx.Param("tableID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req TransferTableRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}
	targetTableID, err := kernel.UUIDFromString(req.TargetTableID)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewTransferTableCommand(tenantID, actorID, sourceTableID, targetTableID)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.transferTableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTableBoard handles GET /api/v1/tables/board.
func (s *Server) GetTableBoard(ctx echo.Context) error {
	tenantID, _, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetTableBoardQuery(tenantID)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	board, err := s.getTableBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]tableBoardResponse, len(board))
	for i, tbl := range board {
		response[i] = tableBoardResponse{
			ID:          tbl.ID.String(),
			Number:      tbl.Number,
			Capacity:    tbl.Capacity,
			Status:      tbl.Status.String(),
			OccupiedAt:  tbl.OccupiedAt,
			OrderNumber: tbl.OrderNumber,
		}
		if tbl.OrderID != nil {
			id := tbl.OrderID.String()
			response[i].OrderID = &id
		}
		if tbl.OrderTotal != nil {
			cents := tbl.OrderTotal.Cents()
			response[i].TotalCents = &cents
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
