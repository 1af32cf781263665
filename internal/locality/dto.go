package locality

import (
	errors "github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/core/common/validation"
)

type LocalityDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d LocalityDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("description", d.Description).MaxLength(1000)
	return v.Validate()
}
