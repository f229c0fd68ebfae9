package util

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the response wrapper shared by every forms endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func RespondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorBody{
		Success: false,
		Message: detail,
		Detail:  detail,
	})
}
