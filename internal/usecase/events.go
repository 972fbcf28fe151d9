package usecase

// Messages published to the order.events exchange. Consumers downstream
// (analytics, notifications) are free to ignore fields they do not know.

type OrderCreatedMsg struct {
	Type        string `json:"type"`
	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	TotalAmount string `json:"total_amount"`
}

type StatusChangedMsg struct {
	Type    string `json:"type"`
	OrderID string `json:"order_id"`
	AWBCode string `json:"awb,omitempty"`
	Status  string `json:"status"`
}
