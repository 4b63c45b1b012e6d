package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
)

var validate = validator.New()

// ValidationError 單一欄位的驗證錯誤
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// BadRequestErrorResponse 400 回應
type BadRequestErrorResponse struct {
	Message string            `json:"message"`
	Details []ValidationError `json:"details"`
}

// ValidateRequest 依 struct tag 驗證請求，全部通過回傳 nil
func ValidateRequest(obj any) []ValidationError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error(), Type: "invalid"}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value must be at least " + fe.Param()
	case "max":
		return "Value must be at most " + fe.Param()
	default:
		return "Invalid value"
	}
}

func RespondWithValidationError(c *gin.Context, errs []ValidationError) {
	log.Printf("[HTTP] %s %s -> 400: %d invalid field(s)", c.Request.Method, c.Request.URL.Path, len(errs))
	c.JSON(http.StatusBadRequest, BadRequestErrorResponse{
		Message: "Invalid request data",
		Details: errs,
	})
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"message": message,
	})
}

// RespondWithDomainError 將 domain 錯誤轉成 HTTP 狀態碼
func RespondWithDomainError(c *gin.Context, err error) {
	code := statusCode(err)
	log.Printf("[HTTP] %s %s -> %d: %v", c.Request.Method, c.Request.URL.Path, code, err)
	if code == http.StatusInternalServerError {
		RespondWithError(c, code, "Internal error")
		return
	}
	RespondWithError(c, code, err.Error())
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrBalanceOverflow),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAccountID),
		errors.Is(err, domain.ErrInvalidBalance):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
