package model

import (
	"time"
)

type Favorite struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	MealID    string    `json:"meal_id"`
	AddedTime time.Time `json:"added_time"`
}
