package employee

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"empdir/inner/common"
	"empdir/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	server          *web.Server
	employeeService Svc
	logger          *common.Logger
}

// интерфейс сервиса employee.Service
type Svc interface {
	FindAll(ctx context.Context) (ListResponse, error)
	FindById(ctx context.Context, id int64) (Response, error)
	CreateEmployee(ctx context.Context, request CreateRequest) (int64, error)
	ReplaceEmployee(ctx context.Context, id int64, request CreateRequest) error
	UpdateEmployee(ctx context.Context, id int64, request UpdateRequest) error
	DeleteById(ctx context.Context, id int64) error
}

func NewController(server *web.Server, employeeService Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:          server,
		employeeService: employeeService,
		logger:          logger,
	}
}

// функция для регистрации маршрутов
func (c *Controller) RegisterRoutes() {
	api := c.server.GroupPublic
	api.Get("/employees", c.FindAllEmployees)
	api.Get("/employees/:id", c.GetEmployee)
	api.Post("/employees", c.CreateEmployee)
	api.Put("/employees/:id", c.ReplaceEmployee)
	api.Patch("/employees/:id", c.UpdateEmployee)
	api.Delete("/employees/:id", c.DeleteEmployee)
}

// FindAllEmployees
// @Summary      List employees
// @Description  All employees sorted by years with company (descending) with total and averages
// @Tags         employees
// @Produce      json
// @Success      200  {object}  ListResponse
// @Failure      500  {object}  common.ErrorBody
// @Router       /employees [get]
func (c *Controller) FindAllEmployees(ctx *fiber.Ctx) error {
	employees, err := c.employeeService.FindAll(ctx.UserContext())
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return common.OkResponse(ctx, employees)
}

// GetEmployee
// @Summary      Get employee
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  common.ErrorBody
// @Failure      500  {object}  common.ErrorBody
// @Router       /employees/{id} [get]
func (c *Controller) GetEmployee(ctx *fiber.Ctx) error {
	id, err := c.employeeId(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	employee, err := c.employeeService.FindById(ctx.UserContext(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return common.OkResponse(ctx, employee)
}

// функция-хендлер, которая будет вызываться при POST запросе по маршруту "/employees"
// @Summary      Add employee
// @Description  The id is assigned by the service
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Employee"
// @Success      200      {object}  common.StatusBody
// @Failure      400      {object}  common.ErrorBody
// @Failure      404      {object}  common.ErrorBody  "missing required field"
// @Failure      409      {object}  common.ErrorBody
// @Failure      500      {object}  common.ErrorBody
// @Router       /employees [post]
func (c *Controller) CreateEmployee(ctx *fiber.Ctx) error {
	c.logger.DebugCtx(ctx, "Create employee request", common.ParseRequestBody(ctx.Body())...)

	// анмаршалим JSON body запроса в структуру CreateRequest, пустое тело - это запрос без полей
	var request CreateRequest
	if err := parseBody(ctx, &request); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	var newEmployeeId, err = c.employeeService.CreateEmployee(ctx.UserContext(), request)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	c.logger.InfoCtx(ctx, "New employee added", zap.Int64("id", newEmployeeId))
	return common.StatusResponse(ctx, "New employee added", newEmployeeId)
}

// ReplaceEmployee
// @Summary      Replace employee
// @Description  Overwrites every field; all fields are required
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "Employee ID"
// @Param        request  body      CreateRequest  true  "Employee"
// @Success      200      {object}  common.StatusBody
// @Failure      400      {object}  common.ErrorBody
// @Failure      404      {object}  common.ErrorBody  "not found or missing required field"
// @Failure      500      {object}  common.ErrorBody
// @Router       /employees/{id} [put]
func (c *Controller) ReplaceEmployee(ctx *fiber.Ctx) error {
	id, err := c.employeeId(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var request CreateRequest
	if err := parseBody(ctx, &request); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.employeeService.ReplaceEmployee(ctx.UserContext(), id, request); err != nil {
		return c.errorResponse(ctx, err)
	}
	return common.StatusResponse(ctx, "Employee updated")
}

// UpdateEmployee
// @Summary      Modify employee
// @Description  Changes only the fields present in the body; at least one is required
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "Employee ID"
// @Param        request  body      UpdateRequest  true  "Fields to change"
// @Success      200      {object}  common.StatusBody
// @Failure      400      {object}  common.ErrorBody
// @Failure      404      {object}  common.ErrorBody  "not found or no field supplied"
// @Failure      500      {object}  common.ErrorBody
// @Router       /employees/{id} [patch]
func (c *Controller) UpdateEmployee(ctx *fiber.Ctx) error {
	id, err := c.employeeId(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	var request UpdateRequest
	if err := parseBody(ctx, &request); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.employeeService.UpdateEmployee(ctx.UserContext(), id, request); err != nil {
		return c.errorResponse(ctx, err)
	}
	return common.StatusResponse(ctx, "Employee modified")
}

// DeleteEmployee
// @Summary      Delete employee
// @Description  Deleting an absent employee also succeeds
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  common.StatusBody
// @Failure      500  {object}  common.ErrorBody
// @Router       /employees/{id} [delete]
func (c *Controller) DeleteEmployee(ctx *fiber.Ctx) error {
	id, ok := ParseId(ctx.Params("id"))
	if !ok {
		// такого сотрудника быть не может, удалять нечего
		c.logger.WarnCtx(ctx, "Delete requested for malformed employee id", zap.String("id", ctx.Params("id")))
		return common.StatusResponse(ctx, "Employee deleted")
	}

	if err := c.employeeService.DeleteById(ctx.UserContext(), id); err != nil {
		return c.errorResponse(ctx, err)
	}
	return common.StatusResponse(ctx, "Employee deleted")
}

// parseBody читает JSON-тело запроса в out. Пустое тело и тело не в JSON означают "поля не переданы",
// ошибка возвращается только для повреждённого JSON.
func parseBody(ctx *fiber.Ctx, out any) error {
	body := ctx.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	// без Content-Type тело всё равно пробуем прочитать как JSON
	if len(ctx.Request().Header.ContentType()) == 0 {
		return ctx.App().Config().JSONDecoder(body, out)
	}
	if !ctx.Is("json") {
		return nil
	}
	return ctx.BodyParser(out)
}

func (c *Controller) employeeId(ctx *fiber.Ctx) (int64, error) {
	raw := ctx.Params("id")
	id, ok := ParseId(raw)
	if !ok {
		return 0, common.NewNotFoundError(fmt.Sprintf("Employee %s not found", raw))
	}
	return id, nil
}

// errorResponse переводит ошибку сервиса в единственный ответ клиенту
func (c *Controller) errorResponse(ctx *fiber.Ctx, err error) error {
	var notFoundErr common.NotFoundError
	var missingFieldErr common.MissingFieldError
	var validationErr common.RequestValidationError
	var alreadyExistsErr common.AlreadyExistsError

	switch {
	case errors.As(err, &notFoundErr):
		return common.ErrResponse(ctx, fiber.StatusNotFound, notFoundErr.Message)

	// отсутствие обязательных полей клиенты исторически получают как 404
	case errors.As(err, &missingFieldErr):
		return common.ErrResponse(ctx, fiber.StatusNotFound, missingFieldErr.Message)

	case errors.As(err, &validationErr):
		return common.ValidationErrorResponse(ctx, fiber.StatusBadRequest, validationErr)

	case errors.As(err, &alreadyExistsErr):
		return common.ErrResponse(ctx, fiber.StatusConflict, alreadyExistsErr.Message)

	// подробности ошибок хранилища клиенту не отдаём
	default:
		c.logger.ErrorCtx(ctx, "Employee request failed",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusInternalServerError, common.InternalErrorMessage)
	}
}
