package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
)

// Envelope is the common response contract: success responses carry data,
// failures carry a message (a string, or a list of field errors for
// validation failures).
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message interface{} `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends a success response carrying only a message.
func Message(c *gin.Context, status int, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Success: true, Message: message})
}

// Error sends a failure response converting the error to the common shape.
// Validation errors surface their field list as the message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")

	envelope := Envelope{Success: false, Message: appErr.Message}
	if len(appErr.Fields) > 0 {
		envelope.Message = appErr.Fields
	}
	if appErr.Status >= http.StatusInternalServerError && appErr.Err != nil {
		envelope.Error = appErr.Err.Error()
	}
	c.JSON(appErr.Status, envelope)
}
