package order

import (
	"fmt"

	errors "github.com/frahmantamala/salesops/internal"
	"github.com/frahmantamala/salesops/internal/core/common/validation"
)

type OrderItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderDTO struct {
	CustomerID int64          `json:"customer_id"`
	Items      []OrderItemDTO `json:"items"`
}

func (d CreateOrderDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("customer_id", d.CustomerID).Required().PositiveInt()
	if err := v.Validate(); err != nil {
		return err
	}

	if len(d.Items) == 0 {
		return errors.NewValidationFieldError("items", "order must have at least one item", errors.ErrCodeValidationFailed)
	}
	for i, item := range d.Items {
		if item.ProductID <= 0 {
			field := fmt.Sprintf("items[%d].product_id", i)
			return errors.NewValidationFieldError(field, "product_id must be positive", errors.ErrCodeValidationFailed)
		}
		if item.Quantity <= 0 {
			field := fmt.Sprintf("items[%d].quantity", i)
			return errors.NewValidationFieldError(field, "quantity must be positive", errors.ErrCodeValidationFailed)
		}
	}
	return nil
}

// CreateOrderResponse returns the snapshot the transaction committed.
type CreateOrderResponse struct {
	Order   Order    `json:"order"`
	Details []Detail `json:"details"`
}
