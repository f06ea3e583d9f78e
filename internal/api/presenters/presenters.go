package presenters

import (
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     string      `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
	}
	if err != nil {
		res.Errors = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}
