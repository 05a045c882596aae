package domain

// OrderLineItem is one ordered menu entry inside an order. ItemName and
// ItemPrice are captured when the item is added, so later catalog price
// changes never alter an existing order. OrderID never changes after insert.
type OrderLineItem struct {
	ID              uint
	OrderID         uint
	MenuItemID      string
	ItemName        string
	ItemPrice       string
	Quantity        int
	SpecialRequests string
}
