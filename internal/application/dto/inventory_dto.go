package dto

// TransactionRequest body de POST /transactions/entry y /transactions/exit.
type TransactionRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// TransactionResponse movimiento registrado y stock resultante.
type TransactionResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	Type         string `json:"type"`
	Quantity     int    `json:"quantity"`
	CurrentStock int    `json:"current_stock"`
}
