package product

import (
	errors "github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/core/common/validation"
)

type ProductDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	Unit        string `json:"unit"`
}

func (d ProductDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("description", d.Description).MaxLength(1000)
	v.Field("unit_price", d.UnitPrice).Required().PositiveInt()
	v.Field("unit", d.Unit).MaxLength(32)
	return v.Validate()
}
