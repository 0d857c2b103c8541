package detail

import nt "shopkeep/entity"

type DetailMsg interface {
	isDetailMsg()
}

func (SizeMsg) isDetailMsg()    {}
func (ProductMsg) isDetailMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

type ProductMsg struct {
	Product nt.Product
}
