package cart

// Outcome reports what a mutation did. Only Applied changes the cart.
type Outcome int

const (
	Applied Outcome = iota
	NotInCart
	InvalidQuantity
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NotInCart:
		return "not_in_cart"
	case InvalidQuantity:
		return "invalid_quantity"
	default:
		return "unknown"
	}
}

func (o Outcome) Applied() bool {
	return o == Applied
}
