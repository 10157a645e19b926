package materials

import (
	"bytes"
	"encoding/json"
)

// MaterialForm carries a create or update payload. Every field is a pointer so
// a partial update can distinguish absent fields from zero values; the create
// path enforces presence of the required fields during validation.
//
// price and maxStock are nullable columns, so for those two fields an explicit
// JSON null is recorded separately from an absent key and clears the stored
// value on update.
type MaterialForm struct {
	Code          *string  `json:"code"`
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Specification *string  `json:"specification"`
	Unit          *string  `json:"unit"`
	Price         *float64 `json:"price"`
	Stock         *int     `json:"stock"`
	MinStock      *int     `json:"minStock"`
	MaxStock      *int     `json:"maxStock"`
	Supplier      *string  `json:"supplier"`
	Location      *string  `json:"location"`
	Description   *string  `json:"description"`
	Status        *string  `json:"status"`

	clearPrice    bool
	clearMaxStock bool
}

func (f *MaterialForm) UnmarshalJSON(data []byte) error {
	type form MaterialForm
	var v form
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = MaterialForm(v)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	null := []byte("null")
	if raw, ok := keys["price"]; ok && bytes.Equal(raw, null) {
		f.clearPrice = true
	}
	if raw, ok := keys["maxStock"]; ok && bytes.Equal(raw, null) {
		f.clearMaxStock = true
	}
	return nil
}

// BulkDeleteRequest is the body of DELETE /api/materials.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// applyDefaults fills the documented create defaults for omitted fields.
func (f *MaterialForm) applyDefaults() {
	if f.Stock == nil {
		zero := 0
		f.Stock = &zero
	}
	if f.MinStock == nil {
		zero := 0
		f.MinStock = &zero
	}
	if f.Status == nil {
		active := StatusActive
		f.Status = &active
	}
}

// material builds a new entity from a validated, defaulted create form.
func (f *MaterialForm) material() Material {
	return Material{
		Code:          *f.Code,
		Name:          *f.Name,
		Category:      *f.Category,
		Specification: f.Specification,
		Unit:          *f.Unit,
		Price:         f.Price,
		Stock:         *f.Stock,
		MinStock:      *f.MinStock,
		MaxStock:      f.MaxStock,
		Supplier:      f.Supplier,
		Location:      f.Location,
		Description:   f.Description,
		Status:        *f.Status,
	}
}

// patch merges the present form fields into an existing record.
func (f *MaterialForm) patch(m *Material) {
	if f.Code != nil {
		m.Code = *f.Code
	}
	if f.Name != nil {
		m.Name = *f.Name
	}
	if f.Category != nil {
		m.Category = *f.Category
	}
	if f.Specification != nil {
		m.Specification = f.Specification
	}
	if f.Unit != nil {
		m.Unit = *f.Unit
	}
	if f.Price != nil {
		m.Price = f.Price
	} else if f.clearPrice {
		m.Price = nil
	}
	if f.Stock != nil {
		m.Stock = *f.Stock
	}
	if f.MinStock != nil {
		m.MinStock = *f.MinStock
	}
	if f.MaxStock != nil {
		m.MaxStock = f.MaxStock
	} else if f.clearMaxStock {
		m.MaxStock = nil
	}
	if f.Supplier != nil {
		m.Supplier = f.Supplier
	}
	if f.Location != nil {
		m.Location = f.Location
	}
	if f.Description != nil {
		m.Description = f.Description
	}
	if f.Status != nil {
		m.Status = *f.Status
	}
}
