package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/despacho-pro/internal/application/dto"
	"github.com/tu-usuario/despacho-pro/internal/application/sales"
)

// SalesHandler maneja las peticiones HTTP de órdenes de venta (protegido).
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una orden de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "product_id, committed_qty, unit_price"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.Context(), Identity(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSalesOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de venta del tenant
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (default 1)"
// @Param        limit  query  int  false  "Tamaño (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	orders, total, err := h.uc.List(c.Context(), Identity(c), page.Limit, page.Offset())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.SalesOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToSalesOrderResponse(o))
	}
	return c.JSON(fiber.Map{
		"data": out,
		"pagination": dto.PageResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: (total + page.Limit - 1) / page.Limit,
		},
	})
}

// GetByID godoc
// @Summary      Obtener una orden de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), Identity(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToSalesOrderResponse(order))
}

// Remaining godoc
// @Summary      Cantidad pendiente de despachar de una orden
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.RemainingQtyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/remaining [get]
func (h *SalesHandler) Remaining(c *fiber.Ctx) error {
	remaining, err := h.uc.Remaining(c.Context(), Identity(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(remaining)
}

// MarkProductionCompleted godoc
// @Summary      Marcar producción terminada
// @Description  Legal solo desde Pending; cualquier otro origen responde 409.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/production-completed [patch]
func (h *SalesHandler) MarkProductionCompleted(c *fiber.Ctx) error {
	order, err := h.uc.MarkProductionCompleted(c.Context(), Identity(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToSalesOrderResponse(order))
}

// DirectDispatch godoc
// @Summary      Enviar una orden a despacho por override manual
// @Description  Transición de escape: fuerza approved y estado Dispatch desde
//
//	cualquier estado, sin verificar cobertura del libro de despachos.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.DirectDispatchRequest  true  "status debe ser Dispatch"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/direct-dispatch [patch]
func (h *SalesHandler) DirectDispatch(c *fiber.Ctx) error {
	var in dto.DirectDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.DirectSendToDispatch(c.Context(), Identity(c), c.Params("id"), in.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToSalesOrderResponse(order))
}
