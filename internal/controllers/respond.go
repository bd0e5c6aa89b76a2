package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindingErrors renders a binding failure as the API's validation shape:
// a 400 body carrying an array of per-field messages.
func bindingErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, gin.H{"msg": fieldMessage(fe)})
		}
		return gin.H{"errors": msgs}
	}
	return gin.H{"errors": []gin.H{{"msg": "Invalid request body"}}}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required field", field)
	case "email":
		return "the email has an invalid format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func errorList(msg string) gin.H {
	return gin.H{"errors": []gin.H{{"msg": msg}}}
}
