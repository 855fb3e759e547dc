// Package servers holds the HTTP contract of the order API: the OpenAPI
// document, the request and error bodies, and the echo binding that decodes
// path and query parameters before calling a ServerInterface.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Type         string  `json:"type"`
	PartySize    *int    `json:"partySize,omitempty"`
	TableNo      *string `json:"tableNo,omitempty"`
	TakeoutName  *string `json:"takeoutName,omitempty"`
	TakeoutPhone *string `json:"takeoutPhone,omitempty"`
}

// OrderDetails defines model for OrderDetails.
type OrderDetails struct {
	PartySize    *int    `json:"partySize,omitempty"`
	TableNo      *string `json:"tableNo,omitempty"`
	TakeoutName  *string `json:"takeoutName,omitempty"`
	TakeoutPhone *string `json:"takeoutPhone,omitempty"`
}

// NewLine defines model for NewLine.
type NewLine struct {
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
	Note       *string            `json:"note,omitempty"`
}

// LineChange defines model for LineChange.
type LineChange struct {
	Quantity int     `json:"quantity"`
	Note     *string `json:"note,omitempty"`
}

// NewPayment defines model for NewPayment. Amount is a decimal string.
type NewPayment struct {
	Amount string `json:"amount"`
	Method string `json:"method"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// LineId defines model for LineId.
type LineId = openapi_types.UUID

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *string    `form:"status,omitempty" json:"status,omitempty"`
	From   *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To     *time.Time `form:"to,omitempty" json:"to,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders, newest first
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Open a new order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// (PUT /api/v1/orders/{orderId})
	UpdateOrder(ctx echo.Context, orderId OrderId) error
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId OrderId) error
	// (POST /api/v1/orders/{orderId}/items)
	AddOrderLine(ctx echo.Context, orderId OrderId) error
	// (PUT /api/v1/orders/{orderId}/items/{lineId})
	UpdateOrderLine(ctx echo.Context, orderId OrderId, lineId LineId) error
	// (DELETE /api/v1/orders/{orderId}/items/{lineId})
	RemoveOrderLine(ctx echo.Context, orderId OrderId, lineId LineId) error
	// (POST /api/v1/orders/{orderId}/submit)
	SubmitOrder(ctx echo.Context, orderId OrderId) error
	// (POST /api/v1/orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderId OrderId) error
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId OrderId) error
	// (POST /api/v1/orders/{orderId}/pay)
	PayOrder(ctx echo.Context, orderId OrderId) error
	// (GET /api/v1/orders/{orderId}/payments)
	ListPayments(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

func bindLineID(ctx echo.Context) (LineId, error) {
	var lineId LineId
	err := runtime.BindStyledParameterWithOptions("simple", "lineId", ctx.Param("lineId"), &lineId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return lineId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lineId: %s", err))
	}
	return lineId, nil
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error
	var params ListOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// UpdateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.UpdateOrder(ctx, orderId)
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.DeleteOrder(ctx, orderId)
}

// AddOrderLine converts echo context to params.
func (w *ServerInterfaceWrapper) AddOrderLine(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.AddOrderLine(ctx, orderId)
}

// UpdateOrderLine converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderLine(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	lineId, err := bindLineID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.UpdateOrderLine(ctx, orderId, lineId)
}

// RemoveOrderLine converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveOrderLine(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	lineId, err := bindLineID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.RemoveOrderLine(ctx, orderId, lineId)
}

// SubmitOrder converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.SubmitOrder(ctx, orderId)
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.ConfirmOrder(ctx, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CancelOrder(ctx, orderId)
}

// PayOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PayOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.PayOrder(ctx, orderId)
}

// ListPayments converts echo context to params.
func (w *ServerInterfaceWrapper) ListPayments(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListPayments(ctx, orderId)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL. Middleware
// such as authentication is attached to router by the caller.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId", wrapper.UpdateOrder)
	router.DELETE(baseURL+"/api/v1/orders/:orderId", wrapper.DeleteOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/items", wrapper.AddOrderLine)
	router.PUT(baseURL+"/api/v1/orders/:orderId/items/:lineId", wrapper.UpdateOrderLine)
	router.DELETE(baseURL+"/api/v1/orders/:orderId/items/:lineId", wrapper.RemoveOrderLine)
	router.POST(baseURL+"/api/v1/orders/:orderId/submit", wrapper.SubmitOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/confirm", wrapper.ConfirmOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/pay", wrapper.PayOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/payments", wrapper.ListPayments)
}
