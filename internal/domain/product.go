package domain

// Category groups catalog products.
type Category struct {
	ID          int    `json:"id_categoria"`
	Name        string `json:"nome"`
	Description string `json:"descricao,omitempty"`
	Active      bool   `json:"ativo"`
}

// Product is a catalog entry as served by the backend. Only the fields the
// client uses are mapped; quantidade here is stock on hand, not a cart
// quantity.
type Product struct {
	ID          int     `json:"id_produto"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao,omitempty"`
	Price       float64 `json:"preco"`
	Stock       int     `json:"quantidade"`
	ImageURL    string  `json:"imagem_principal_url,omitempty"`
	Active      bool    `json:"ativo"`
}
