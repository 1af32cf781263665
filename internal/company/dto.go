package company

import (
	errors "github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/core/common/validation"
)

// CreateCompanyDTO carries the company fields together with the bootstrap
// admin credentials. Both rows commit or neither does.
type CreateCompanyDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	AdminName     string `json:"admin_name"`
	AdminUsername string `json:"admin_username"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

func (d CreateCompanyDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("email", d.Email).Required().Email()
	v.Field("phone", d.Phone).Phone()
	v.Field("admin_name", d.AdminName).Required().MaxLength(255)
	v.Field("admin_username", d.AdminUsername).Required().MinLength(3).MaxLength(64)
	v.Field("admin_email", d.AdminEmail).Required().Email()
	v.Field("admin_password", d.AdminPassword).Required().MinLength(6)
	return v.Validate()
}

type UpdateCompanyDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

func (d UpdateCompanyDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("email", d.Email).Required().Email()
	v.Field("phone", d.Phone).Phone()
	v.Field("status", d.Status).Required().OneOf(StatusActive, StatusInactive)
	return v.Validate()
}
