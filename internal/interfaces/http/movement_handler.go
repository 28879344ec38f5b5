package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastaneda/kardex-api/internal/application/dto"
	"github.com/jcastaneda/kardex-api/internal/application/kardex"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	create    *kardex.CreateMovementUseCase
	edit      *kardex.EditMovementUseCase
	authorize *kardex.AuthorizeMovementUseCase
	cancel    *kardex.CancelMovementUseCase
	query     *kardex.MovementQueryUseCase
	voucher   *kardex.VoucherUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	create *kardex.CreateMovementUseCase,
	edit *kardex.EditMovementUseCase,
	authorize *kardex.AuthorizeMovementUseCase,
	cancel *kardex.CancelMovementUseCase,
	query *kardex.MovementQueryUseCase,
	voucher *kardex.VoucherUseCase,
) *MovementHandler {
	return &MovementHandler{
		create:    create,
		edit:      edit,
		authorize: authorize,
		cancel:    cancel,
		query:     query,
		voucher:   voucher,
	}
}

// Create godoc
// @Summary      Crear movimiento de inventario (pendiente)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "warehouse_id, type (ENTRADA/SALIDA/...), details"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "token inválido"})
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	mov, err := h.create.Create(c.Context(), userID, toMovementInput(in))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementDTO(mov))
}

// Edit godoc
// @Summary      Editar movimiento pendiente (reemplaza cabecera y detalles)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "cabecera y detalles nuevos"
// @Success      200   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [put]
func (h *MovementHandler) Edit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "token inválido"})
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	mov, err := h.edit.Edit(c.Context(), c.Params("id"), userID, toMovementInput(in))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toMovementDTO(mov))
}

// Authorize godoc
// @Summary      Autorizar movimiento (aplica detalles al stock, atómico)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.AuthorizeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/authorize [post]
func (h *MovementHandler) Authorize(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "token inválido"})
	}
	res, err := h.authorize.Authorize(c.Context(), c.Params("id"), userID)
	if err != nil {
		return errorJSON(c, err)
	}
	stocks := make([]dto.StockResultDTO, 0, len(res.Stocks))
	for _, s := range res.Stocks {
		stocks = append(stocks, dto.StockResultDTO{ProductVariant: s.ProductVariantID, NewStock: s.NewQuantity})
	}
	return c.JSON(dto.AuthorizeResponse{
		Success:      true,
		MovementID:   res.MovementID,
		Stocks:       stocks,
		AuthorizedBy: res.AuthorizedBy,
		AuthorizedAt: res.AuthorizedAt,
	})
}

// Cancel godoc
// @Summary      Cancelar movimiento autorizado (crea y autoriza el reverso)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del movimiento"
// @Param        body  body  dto.CancelRequest  true  "motivo de la cancelación"
// @Success      200   {object}  dto.CancelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/cancel [post]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "token inválido"})
	}
	var in dto.CancelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	res, err := h.cancel.Cancel(c.Context(), c.Params("id"), userID, in.Reason)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.CancelResponse{
		Status: "success",
		Data: dto.CancelData{
			CancelledMovementID: res.CancelledMovementID,
			ReverseMovementID:   res.ReverseMovementID,
			Reason:              res.Reason,
			CancelledAt:         res.CancelledAt,
		},
	})
}

// GetByID godoc
// @Summary      Obtener movimiento con detalles
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.query.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toMovementDTO(mov))
}

// List godoc
// @Summary      Listar movimientos de una bodega (kardex)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "Bodega"
// @Param        limit         query  int     false "Límites de página"
// @Param        offset        query  int     false "Desplazamiento"
// @Success      200  {array}  dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.query.ListByWarehouse(c.Context(), c.Query("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	items := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(items), "movements": items})
}

// GetStock godoc
// @Summary      Consultar existencia de una variante en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_variant_id  query  string  true  "Variante"
// @Param        warehouse_id        query  string  true  "Bodega"
// @Success      200  {object}  dto.StockDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *MovementHandler) GetStock(c *fiber.Ctx) error {
	entry, err := h.query.GetStock(c.Context(), c.Query("product_variant_id"), c.Query("warehouse_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := dto.StockDTO{
		ProductVariantID: entry.ProductVariantID,
		WarehouseID:      entry.WarehouseID,
		Quantity:         entry.Quantity,
	}
	if !entry.UpdatedAt.IsZero() {
		t := entry.UpdatedAt
		out.UpdatedAt = &t
	}
	return c.JSON(out)
}

// Voucher godoc
// @Summary      Comprobante PDF del movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/pdf [get]
func (h *MovementHandler) Voucher(c *fiber.Ctx) error {
	pdfBytes, err := h.voucher.GeneratePDF(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante.pdf"`)
	return c.Send(pdfBytes)
}

func toMovementInput(in dto.MovementRequest) kardex.MovementInput {
	details := make([]kardex.DetailInput, 0, len(in.Details))
	for _, d := range in.Details {
		details = append(details, kardex.DetailInput{
			ProductVariantID: d.ProductVariantID,
			Quantity:         d.Quantity,
			Price:            d.Price,
			Total:            d.Total,
			Lote:             d.Lote,
			ExpirationDate:   d.ExpirationDate,
			Notes:            d.Notes,
		})
	}
	return kardex.MovementInput{
		WarehouseID:       in.WarehouseID,
		Type:              in.Type,
		ReferenceDocument: in.ReferenceDocument,
		Notes:             in.Notes,
		Details:           details,
	}
}

func toMovementDTO(m *entity.Movement) *dto.MovementDTO {
	if m == nil {
		return nil
	}
	details := make([]dto.MovementDetailDTO, 0, len(m.Details))
	for _, d := range m.Details {
		details = append(details, dto.MovementDetailDTO{
			ID:               d.ID,
			ProductVariantID: d.ProductVariantID,
			Direction:        string(d.Direction),
			Quantity:         d.Quantity,
			Price:            d.Price,
			Total:            d.Total,
			Lote:             d.Lote,
			ExpirationDate:   d.ExpirationDate,
			Notes:            d.Notes,
		})
	}
	return &dto.MovementDTO{
		ID:                 m.ID,
		WarehouseID:        m.WarehouseID,
		Type:               m.Type,
		Authorized:         m.Authorized,
		AuthorizedBy:       m.AuthorizedBy,
		AuthorizedAt:       m.AuthorizedAt,
		Cancelled:          m.Cancelled,
		CancelledBy:        m.CancelledBy,
		CancelledAt:        m.CancelledAt,
		CancellationReason: m.CancellationReason,
		Reversal:           m.Reversal,
		OriginalMovementID: m.OriginalMovementID,
		ReferenceDocument:  m.ReferenceDocument,
		Notes:              m.Notes,
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
		Details:            details,
	}
}
