package employee

import (
	errors "github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/core/common/validation"
)

// CreateEmployeeDTO comes in as multipart form fields so the profile photo
// can ride along in the same request.
type CreateEmployeeDTO struct {
	Name     string
	Phone    string
	Email    string
	Address  string
	Password string
}

func (d CreateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("phone", d.Phone).Required().Phone()
	v.Field("email", d.Email).Email()
	v.Field("password", d.Password).Required().MinLength(6)
	return v.Validate()
}

// UpdateEmployeeDTO leaves Password empty to keep the current one. A
// non-empty password is a reset and logs the employee out everywhere.
type UpdateEmployeeDTO struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (d UpdateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("phone", d.Phone).Required().Phone()
	v.Field("email", d.Email).Email()
	if d.Password != "" {
		v.Field("password", d.Password).MinLength(6)
	}
	return v.Validate()
}
