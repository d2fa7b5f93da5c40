package models

// Portfolio is a named collection of instruments. Same visibility rules
// as Etf.
type Portfolio struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	UserID   int64  `json:"userId"`
	IsPublic bool   `json:"isPublic"`
}
