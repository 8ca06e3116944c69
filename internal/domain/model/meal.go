package model

import (
	"time"
)

type Meal struct {
	ID          string    `json:"id"`
	ChefEmail   string    `json:"chef_email"`
	ChefName    string    `json:"chef_name,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
