package discount

import "tillpos/internal/money"

// Descriptor types understood by the factory. The catalog speaks in these
// type tags; the engine only sees the resulting strategies.
const (
	TypeItemBased       = "ITEM_BASED"
	TypeTotalPercent    = "TOTAL_PERCENT"
	TypeCustomerPercent = "CUSTOMER_PERCENT"
)

// Descriptor is the catalog's wire description of one eligible discount.
// Value is a flat amount for ITEM_BASED and a decimal rate for the
// percentage types.
type Descriptor struct {
	Type        string
	Value       money.Money
	Description string
}

// BuildStrategies converts catalog descriptors into strategy instances.
// Descriptors with an unknown type are skipped.
func BuildStrategies(descriptors []Descriptor) []Strategy {
	strategies := make([]Strategy, 0, len(descriptors))
	for _, d := range descriptors {
		switch d.Type {
		case TypeItemBased:
			strategies = append(strategies, NewFixedAmount(d.Value, d.Description))
		case TypeTotalPercent:
			strategies = append(strategies, NewTotalPercentage(d.Value, d.Description))
		case TypeCustomerPercent:
			strategies = append(strategies, NewCustomerPercentage(d.Value, d.Description))
		}
	}
	return strategies
}
