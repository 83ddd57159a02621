package handler

import (
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbook-api/pkg/apperror"
)

var registerOnce sync.Once

// RegisterValidation makes binding errors report JSON (or form) field names
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// resolveAdmin reconciles the admin id named by the request with the one
// carried by the token. Without a token the request's id is used as is. A
// request acting on another admin's data is refused with 403.
func resolveAdmin(c *gin.Context, requested int64) (int64, bool) {
	authID, ok := middleware.AuthenticatedAdmin(c)
	if !ok {
		return requested, true
	}
	if requested == 0 || requested == authID {
		return authID, true
	}
	response.Forbidden(c, "You can only access your own records")
	return 0, false
}

// adminParam reads an admin id path parameter and resolves it
func adminParam(c *gin.Context, name string) (int64, bool) {
	id, ok := idParam(c, name)
	if !ok {
		return 0, false
	}
	return resolveAdmin(c, id)
}

// idParam parses a positive integer path parameter
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, []apperror.FieldError{{Field: name, Message: "Invalid " + name}})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into obj. An empty body is treated as an empty
// object so optional payloads (e.g. DELETE) still validate.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	return handleBindError(c, err)
}

// bindQuery decodes the query string into obj
func bindQuery(c *gin.Context, obj interface{}) bool {
	return handleBindError(c, c.ShouldBindQuery(obj))
}

func handleBindError(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.ValidationError(c, fieldErrors(verrs))
		return false
	}
	response.BadRequest(c, "Invalid request: "+err.Error())
	return false
}

func fieldErrors(verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace, giving
// paths like "service_taken[0].name"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "min":
		return field + " must be at least " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " is invalid"
	}
}
