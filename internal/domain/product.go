package domain

import "time"

type Product struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description" json:"description"`
	Price         float64   `bson:"price" json:"price"`
	Category      string    `bson:"category" json:"category"`
	Weight        string    `bson:"weight" json:"weight"`
	ImageURL      string    `bson:"image_url" json:"image_url"`
	StockQuantity int       `bson:"stock_quantity" json:"stock_quantity"`
	Featured      bool      `bson:"featured" json:"featured"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
