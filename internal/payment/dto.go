package payment

import (
	errors "github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/core/common/validation"
)

type SubmitPaymentDTO struct {
	OrderID int64  `json:"order_id"`
	Amount  int64  `json:"amount"`
	Method  string `json:"method"`
	Note    string `json:"note"`
}

func (d SubmitPaymentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("order_id", d.OrderID).Required().PositiveInt()
	v.Field("amount", d.Amount).Required().PositiveInt()
	v.Field("method", d.Method).Required().MaxLength(64)
	v.Field("note", d.Note).MaxLength(1000)
	return v.Validate()
}

type ProcessPaymentDTO struct {
	Note string `json:"note"`
}

func (d ProcessPaymentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("note", d.Note).MaxLength(1000)
	return v.Validate()
}
