package model

// CustomerAccount is a login account owned by exactly one customer.
type CustomerAccount struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CustomerID   int64  `json:"customer_id"`
}

// CustomerAccountInput is a validated account payload; Password is plaintext
// and must be hashed before it reaches the store.
type CustomerAccountInput struct {
	Username   string
	Password   string
	CustomerID int64
}

// CustomerAccountDetail is returned by the nested account lookup.
type CustomerAccountDetail struct {
	Customer        Customer        `json:"customer"`
	CustomerAccount CustomerAccount `json:"customer_account"`
}
