package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/employee-registry/internal/api/dto"
	"github.com/spec-kit/employee-registry/internal/service"
	apperrors "github.com/spec-kit/employee-registry/pkg/util/errorutil"
)

// Response messages.
const (
	MsgInvalidBody = "Corpo da requisição inválido"
	MsgUpdated     = "Funcionário atualizado com sucesso"
	MsgDeleted     = "Funcionário deletado com sucesso"
)

// EmployeesHandler exposes the /funcionarios endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// Create POST /funcionarios.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest(MsgInvalidBody)
	}

	employee, err := h.service.Create(c.UserContext(), req.Fields())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEmployeeResponse(employee))
}

// List GET /funcionarios.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, dto.NewEmployeeResponse(&employees[i]))
	}
	return c.JSON(items)
}

// Get GET /funcionarios/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.service.Get(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(employee))
}

// Update PUT /funcionarios/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest(MsgInvalidBody)
	}

	if err := h.service.Update(c.UserContext(), utils.CopyString(c.Params("id")), req.Fields()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: MsgUpdated})
}

// Delete DELETE /funcionarios/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), utils.CopyString(c.Params("id"))); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: MsgDeleted})
}
