package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/localnerve/moodjournal/internal/types"
	"github.com/localnerve/moodjournal/internal/utils"
)

// SecurityHandler handles PIN and lock routes
type SecurityHandler struct {
	Security *services.Security
}

// PinRequest carries a PIN
type PinRequest struct {
	Pin string `json:"pin"`
}

// GetStatus handles GET /api/security/status
// @Summary Lock status
// @Description Whether a PIN is set and whether the session is locked
// @Tags Security
// @Produce json
// @Success 200 {object} SecurityStatus
// @Router /security/status [get]
func (h *SecurityHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.status()
	if err != nil {
		return serviceError(c, err, "securityStatus")
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// SetPin handles POST /api/security/pin
// @Summary Set the PIN
// @Description Store a new PIN and lock the session
// @Tags Security
// @Accept json
// @Produce json
// @Param pin body PinRequest true "New PIN"
// @Success 200 {object} SecurityStatus
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /security/pin [post]
func (h *SecurityHandler) SetPin(c *fiber.Ctx) error {
	var req PinRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	if err := h.Security.SetPin(req.Pin); err != nil {
		return serviceError(c, err, "setPin")
	}

	status, err := h.status()
	if err != nil {
		return serviceError(c, err, "setPin")
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// Unlock handles POST /api/security/unlock
// @Summary Unlock
// @Description Verify the PIN and unlock the session
// @Tags Security
// @Accept json
// @Produce json
// @Param pin body PinRequest true "PIN"
// @Success 200 {object} SecurityStatus
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /security/unlock [post]
func (h *SecurityHandler) Unlock(c *fiber.Ctx) error {
	var req PinRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	ok, err := h.Security.Unlock(req.Pin)
	if err != nil {
		return serviceError(c, err, "unlock")
	}
	if !ok {
		return types.NewCustomError(fiber.StatusUnauthorized, "security.pin", "Incorrect PIN")
	}

	status, err := h.status()
	if err != nil {
		return serviceError(c, err, "unlock")
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// Lock handles POST /api/security/lock
// @Summary Lock
// @Description Lock the session
// @Tags Security
// @Produce json
// @Success 200 {object} SecurityStatus
// @Router /security/lock [post]
func (h *SecurityHandler) Lock(c *fiber.Ctx) error {
	h.Security.Session.Lock()

	status, err := h.status()
	if err != nil {
		return serviceError(c, err, "lock")
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

func (h *SecurityHandler) status() (SecurityStatus, error) {
	hasPin, err := h.Security.HasPin()
	if err != nil {
		return SecurityStatus{}, err
	}
	state := h.Security.Session.State()
	return SecurityStatus{
		HasPin: hasPin,
		State:  state.String(),
		Locked: hasPin && state == services.Locked,
	}, nil
}
