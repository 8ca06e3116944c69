package model

import (
	"time"
)

type Review struct {
	ID        string    `json:"id"`
	MealID    string    `json:"meal_id"`
	UserEmail string    `json:"user_email"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}
