package models

import "time"

type Wishlist struct {
	UserID     string    `bson:"_id" json:"user_id"`
	ProductIDs []string  `bson:"product_ids" json:"product_ids"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

func (Wishlist) CollectionName() string {
	return "wishlists"
}

func (w Wishlist) GetID() string {
	return w.UserID
}
