package repository

import "fmt"

// Watch topics published by the repositories. A write notifies every topic
// whose predicate it could affect.
const topicOrders = "orders"

func orderTopic(id uint) string {
	return fmt.Sprintf("order:%d", id)
}

func orderItemsTopic(orderID uint) string {
	return fmt.Sprintf("order_items:%d", orderID)
}

func lineItemTopic(id uint) string {
	return fmt.Sprintf("order_item:%d", id)
}
