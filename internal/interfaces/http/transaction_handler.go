package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/usecase"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// TransactionHandler entradas y salidas de stock.
type TransactionHandler struct {
	uc *usecase.MovementUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *usecase.MovementUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Entry godoc
// @Summary      Registrar entrada de stock
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/entry [post]
func (h *TransactionHandler) Entry(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeEntry)
}

// Exit godoc
// @Summary      Registrar salida de stock
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/transactions/exit [post]
func (h *TransactionHandler) Exit(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeExit)
}

func (h *TransactionHandler) register(c *fiber.Ctx, movementType string) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.UserContext(), movementType, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
