package currency

import "time"

// Price is a single record of the price feed. Currency is the identity key.
type Price struct {
	Currency string    `json:"currency" bson:"currency"`
	Price    float64   `json:"price" bson:"price"`
	Date     time.Time `json:"date" bson:"date"`
}
