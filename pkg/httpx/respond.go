package httpx

import (
	"errors"
	"log"
	"net/http"

	"taskforge-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Fail converts an error from a usecase into the JSON envelope the API
// speaks: {"msg": ...} with the status carried by the apperr, or a logged
// 500 with a generic message for anything unexpected.
func Fail(c *gin.Context, err error) {
	if appErr := apperr.From(err); appErr != nil {
		c.JSON(appErr.Status, gin.H{"msg": appErr.Msg})
		return
	}
	log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
}

// Validation reports gin binding failures as {"errors": [...]}, one message
// per failed field.
func Validation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": msgs})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}
