package validator

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"unicode"

	"eventbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func init() {
	validate = validator.New()
	registerRules(validate)
	RegisterGinRules()
}

// RegisterGinRules installs the custom rules on gin's binding validator so
// `binding:"..."` tags can use them.
func RegisterGinRules() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerRules(v)
		}
	})
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("has_upper", hasUpper)
	_ = v.RegisterValidation("trimmed_len", trimmedLen)
}

// has_upper: at least one uppercase letter.
func hasUpper(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// trimmed_len: length after trimming spaces is within 2..50.
func trimmedLen(fl validator.FieldLevel) bool {
	n := len([]rune(strings.TrimSpace(fl.Field().String())))
	return n >= 2 && n <= 50
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	return FieldErrors(validate.Struct(v))
}

// FieldErrors flattens validation errors into field -> failed rule. Errors
// that are not validation errors (malformed JSON, wrong types) yield nil.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// BindJSON decodes and validates the request body. On failure it writes a
// 400 envelope and returns false.
func BindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if details := FieldErrors(err); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", details)
	} else {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Malformed JSON body")
	}
	return false
}
