package models

// Etf is a single instrument record.
type Etf struct {
	ID           int64   `json:"id"`
	Ticker       string  `json:"ticker"`
	Description  string  `json:"description"`
	AssetClass   string  `json:"assetClass"`
	ExpenseRatio float64 `json:"expenseRatio"`
	UserID       int64   `json:"userId"`
	IsPublic     bool    `json:"isPublic"`
}
