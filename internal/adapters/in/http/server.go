package http

import (
	"errors"
	"log/slog"
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder  commands.CreateOrderCommandHandler
	UpdateOrder  commands.UpdateOrderCommandHandler
	DeleteOrder  commands.DeleteOrderCommandHandler
	AddLine      commands.AddLineCommandHandler
	UpdateLine   commands.UpdateLineCommandHandler
	RemoveLine   commands.RemoveLineCommandHandler
	SubmitOrder  commands.SubmitOrderCommandHandler
	ConfirmOrder commands.ConfirmOrderCommandHandler
	CancelOrder  commands.CancelOrderCommandHandler
	PayOrder     commands.PayOrderCommandHandler

	GetOrder     queries.GetOrderQueryHandler
	ListOrders   queries.ListOrdersQueryHandler
	ListPayments queries.ListPaymentsQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		handlers: handlers,
		logger:   logger,
	}
}

// ListOrders handles GET /api/v1/orders - lists orders newest first.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(status, params.From, params.To)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/v1/orders - opens a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	staffID, err := StaffID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.NewOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderType, err := order.ParseType(body.Type)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderType,
		body.PartySize,
		deref(body.TableNo),
		deref(body.TakeoutName),
		deref(body.TakeoutPhone),
		staffID,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, queries.NewOrderResponse(created))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PUT /api/v1/orders/{orderId}.
func (s *Server) UpdateOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.OrderDetails
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderCommand(
		id,
		body.PartySize,
		deref(body.TableNo),
		deref(body.TakeoutName),
		deref(body.TakeoutPhone),
		staffID,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusOK)(s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId} - only drafts can be deleted.
func (s *Server) DeleteOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id, staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderLine handles POST /api/v1/orders/{orderId}/items.
func (s *Server) AddOrderLine(ctx echo.Context, orderId servers.OrderId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.NewLine
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	menuItemID, err := toUUID(body.MenuItemId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAddLineCommand(id, menuItemID, body.Quantity, deref(body.Note), staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusCreated)(s.handlers.AddLine.Handle(ctx.Request().Context(), cmd))
}

// UpdateOrderLine handles PUT /api/v1/orders/{orderId}/items/{lineId}.
func (s *Server) UpdateOrderLine(ctx echo.Context, orderId servers.OrderId, lineId servers.LineId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	line, err := toUUID(lineId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.LineChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateLineCommand(id, line, body.Quantity, deref(body.Note), staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusOK)(s.handlers.UpdateLine.Handle(ctx.Request().Context(), cmd))
}

// RemoveOrderLine handles DELETE /api/v1/orders/{orderId}/items/{lineId}.
func (s *Server) RemoveOrderLine(ctx echo.Context, orderId servers.OrderId, lineId servers.LineId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	line, err := toUUID(lineId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveLineCommand(id, line, staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusOK)(s.handlers.RemoveLine.Handle(ctx.Request().Context(), cmd))
}

// SubmitOrder handles POST /api/v1/orders/{orderId}/submit.
func (s *Server) SubmitOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitOrderCommand(id, staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusOK)(s.handlers.SubmitOrder.Handle(ctx.Request().Context(), cmd))
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(id, staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusOK)(s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusOK)(s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd))
}

// PayOrder handles POST /api/v1/orders/{orderId}/pay.
func (s *Server) PayOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, staffID, err := s.target(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.NewPayment
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	amount, err := kernel.MoneyFromString(body.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}
	method, err := order.ParseMethod(body.Method)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPayOrderCommand(id, amount, method, staffID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respond(ctx, http.StatusOK)(s.handlers.PayOrder.Handle(ctx.Request().Context(), cmd))
}

// ListPayments handles GET /api/v1/orders/{orderId}/payments.
func (s *Server) ListPayments(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListPaymentsQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.handlers.ListPayments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// target resolves the order addressed by the path and the staff member making
// the change.
func (s *Server) target(ctx echo.Context, orderId servers.OrderId) (kernel.UUID, kernel.UUID, error) {
	staffID, err := StaffID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	id, err := toUUID(orderId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return id, staffID, nil
}

// respond renders the order returned by a command handler.
func (s *Server) respond(ctx echo.Context, status int) func(*order.Order, error) error {
	return func(o *order.Order, err error) error {
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(status, queries.NewOrderResponse(o))
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	if errors.Is(err, ErrStaffNotAuthenticated) {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return writeError(ctx, s.logger, err)
}

func toUUID(id servers.OrderId) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
