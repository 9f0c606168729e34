package models

import "time"

type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Level     string     `json:"level"` // spice level / variant, optional
	Image     *string    `json:"image"`
	HPP       int64      `json:"hpp"` // unit cost
	Price     int64      `json:"price"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// MenuItem is the public view of a product, without cost.
type MenuItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Level string  `json:"level"`
	Price int64   `json:"price"`
	Image *string `json:"image"`
}

func (p Product) MenuItem() MenuItem {
	return MenuItem{ID: p.ID, Name: p.Name, Level: p.Level, Price: p.Price, Image: p.Image}
}
