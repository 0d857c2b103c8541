package entity

import "strings"

// Mutate flags which action controls render for a row.
type Mutate struct {
	Update        bool `json:"UPDATE,omitempty"`
	Delete        bool `json:"DELETE,omitempty"`
	ReturnRemoved bool `json:"RETURN_REMOVED_PRODUCT,omitempty"`
}

// Any is true when at least one control is enabled.
func (mt Mutate) Any() bool {
	return mt.Update || mt.Delete || mt.ReturnRemoved
}

// Row wraps a product with the action flags it is rendered with.
type Row struct {
	Product Product
	Mutate  Mutate
	Origin  ListKind
}

// Key returns the stable identity of the row.
func (row Row) Key() int64 {
	return row.Product.Id
}

// Value returns the value accessed by a column key.
func (row Row) Value(key string) Value {

	prd := row.Product

	switch strings.ToLower(key) {
	case "id":
		return Value{Raw: prd.Id}
	case "title":
		return Value{Raw: prd.Title}
	case "price":
		return Value{Raw: prd.Price}
	case "countinstock":
		return Value{Raw: prd.CountInStock}
	case "description":
		return Value{Raw: prd.Description}
	case "status":
		return Value{Raw: prd.Status}
	case "createdat":
		return timeValue(prd.CreatedAt)
	case "updatedat":
		return timeValue(prd.UpdatedAt)
	case "images":
		return Value{Raw: prd.Images}
	case "brand":
		if prd.Brand == nil {
			return Value{}
		}
		return Value{Raw: *prd.Brand}
	case "categories":
		return Value{Raw: prd.Categories}
	case "mutate":
		return Value{Raw: row.Mutate}
	}
	return Value{}
}
