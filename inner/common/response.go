package common

import (
	"github.com/gofiber/fiber/v2"
)

const InternalErrorMessage = "Internal Server Error"

// тело ответа с ошибкой
type ErrorBody struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
} // @name ErrorBody

// тело ответа на изменяющие запросы
type StatusBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Id      *int64 `json:"id,omitempty"`
} // @name StatusBody

func ErrResponse(
	c *fiber.Ctx,
	code int,
	message string,
	data ...any,
) error {
	response := ErrorBody{
		Message: message,
	}
	if len(data) > 0 {
		response.Data = data[0]
	}
	return c.Status(code).JSON(response)
}

// OkResponse отдаёт данные как есть, без обёртки
func OkResponse[T any](
	c *fiber.Ctx,
	data T,
) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// StatusResponse формирует ответ {status, message} и, если передан, id
func StatusResponse(c *fiber.Ctx, message string, id ...int64) error {
	body := StatusBody{
		Status:  fiber.StatusOK,
		Message: message,
	}
	if len(id) > 0 {
		body.Id = &id[0]
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// ValidationErrorResponse формирует ответ с ошибками валидации
func ValidationErrorResponse(ctx *fiber.Ctx, code int, err RequestValidationError) error {
	if err.Data != nil {
		return ErrResponse(ctx, code, err.Message, err.Data)
	}
	return ErrResponse(ctx, code, err.Message)
}

// NewNotFoundError создаёт новую ошибку "not found"
func NewNotFoundError(message string) error {
	return NotFoundError{Message: message}
}
