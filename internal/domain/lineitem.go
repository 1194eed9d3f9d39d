package domain

// LineItem represents a single product entry in the local cart. The stored
// JSON keeps the backend wire format so a cart persisted by older app
// versions still loads.
type LineItem struct {
	ProductID   int     `json:"id_produto"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao,omitempty"`
	Price       float64 `json:"preco"`
	Quantity    int     `json:"quantidade"`
	ImageURL    string  `json:"imagem_principal_url,omitempty"`

	// LegacyImageURL is the pre-rename image field. Carts written before the
	// rename carry it; it is folded into ImageURL at load time.
	LegacyImageURL string `json:"imagem_url,omitempty"`
}

// LineItems is the canonical cart sequence.
type LineItems []LineItem

// TotalQuantity returns the sum of quantities across all entries.
func (items LineItems) TotalQuantity() int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// TotalValue returns the sum of price times quantity across all entries.
func (items LineItems) TotalValue() float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// FindIndex returns the index of the entry matching the given product ID.
// Returns -1 if not found.
func (items LineItems) FindIndex(productID int) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
