package http

import (
	"net/http"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Checkout handles POST /api/v1/orders - a counter/POS or storefront sale.
func (s *Server) Checkout(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	mode, err := order.ModeFromString(req.Mode)
	if err != nil {
		return respondError(ctx, err)
	}
	customerID, err := optionalID(req.CustomerID)
	if err != nil {
		return respondError(ctx, err)
	}
	tableID, err := optionalID(req.TableID)
	if err != nil {
		return respondError(ctx, err)
	}
	items, err := toItemInputs(req.Items)
	if err != nil {
		return respondError(ctx, err)
	}

	paymentMethod := order.PaymentMethodUnknown
	if req.PaymentMethod != "" {
		if paymentMethod, err = order.PaymentMethodFromString(req.PaymentMethod); err != nil {
			return respondError(ctx, err)
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(
		orderID, tenantID, actorID, mode,
		customerID, req.CustomerName, req.CustomerPhone,
		kernel.NewMoneyFromCents(req.DeliveryFeeCents),
		tableID, paymentMethod, items,
	)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{OrderID: orderID.String()})
}

// UpdateOrderItems handles PUT /api/v1/orders/{orderID}/items - a storefront edit.
func (s *Server) UpdateOrderItems(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req UpdateOrderItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}
	items, err := toItemUpdateInputs(req.Items)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderItemsCommand(tenantID, actorID, orderID, items)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.updateOrderItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrderStatus handles POST /api/v1/orders/{orderID}/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req TransitionStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}
	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(tenantID, actorID, orderID, target)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.transitionStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/{orderID}/courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewAssignCourierCommand(tenantID, actorID, orderID, courierID)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderID}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	tenantID, actorID, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewCancelOrderCommand(tenantID, actorID, orderID, req.Reason)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	tenantID, _, err := identity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(tenantID)
	if err != nil {
		return respond(ctx, http.StatusBadRequest, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]activeOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = activeOrderResponse{
			ID:            o.ID.String(),
			Number:        o.Number,
			Status:        o.Status.String(),
			Mode:          o.Mode.String(),
			CustomerName:  o.CustomerName,
			TotalCents:    o.Total.Cents(),
			PaymentStatus: o.PaymentStatus.String(),
			CreatedAt:     o.CreatedAt,
		}
		if o.TableID != nil {
			id := o.TableID.String()
			response[i].TableID = &id
		}
		if o.CourierID != nil {
			id := o.CourierID.String()
			response[i].CourierID = &id
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
