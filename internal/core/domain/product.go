package domain

// Product is a catalog entry. The core treats the catalog as an opaque
// provider of these records; stock is informational and never reserved.
type Product struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Price       float64 `json:"price" bson:"price"`
	Stock       int     `json:"stock" bson:"stock"`
	Category    string  `json:"category" bson:"category"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}
