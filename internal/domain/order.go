package domain

// OrderItem is the minimal projection of a line item sent when placing an
// order.
type OrderItem struct {
	ProductID int `json:"id_produto"`
	Quantity  int `json:"quantidade"`
}

// OrderPayload is the request body for order submission. TotalValue is
// recomputed from the cart at build time, never cached.
type OrderPayload struct {
	Items      []OrderItem `json:"itens"`
	TotalValue float64     `json:"valor_total"`
}

// Order mirrors the backend order resource (summary fields the client
// displays in order listings).
type Order struct {
	ID            int     `json:"id_pedido"`
	Number        string  `json:"numero_pedido"`
	UserID        int     `json:"id_usuario"`
	PlacedAt      string  `json:"data_pedido"`
	TotalValue    float64 `json:"valor_total"`
	Status        string  `json:"status"`
	ItemCount     int     `json:"quantidade_itens"`
	TrackingCode  string  `json:"codigo_rastreio,omitempty"`
	CanBeCanceled bool    `json:"pode_ser_cancelado"`
}

// Delivery mirrors the backend delivery resource consumed by the courier
// views.
type Delivery struct {
	ID        int    `json:"id_entrega"`
	OrderID   int    `json:"id_pedido"`
	CourierID int    `json:"id_entregador,omitempty"`
	Status    string `json:"status"`
	Notes     string `json:"observacoes,omitempty"`
}
