package serverutils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a parsed request body. The
// returned validator.ValidationErrors is mapped to bad_request by the error
// handler middleware.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
