package customer

import (
	errors "github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/core/common/validation"
)

// CustomerDTO is the admin-side shape: locality referenced by id.
type CustomerDTO struct {
	LocalityID int64  `json:"locality_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}

func (d CustomerDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("locality_id", d.LocalityID).Required().PositiveInt()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("phone", d.Phone).Required().Phone()
	v.Field("email", d.Email).Email()
	return v.Validate()
}

// FieldCustomerDTO is the employee-side shape: locality referenced by name,
// created on the fly when the tenant doesn't have it yet.
type FieldCustomerDTO struct {
	LocalityName string `json:"locality_name"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

func (d FieldCustomerDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("locality_name", d.LocalityName).Required().MaxLength(255)
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("phone", d.Phone).Required().Phone()
	v.Field("email", d.Email).Email()
	return v.Validate()
}
