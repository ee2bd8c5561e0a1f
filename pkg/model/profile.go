package model

import "time"

type ProfileStats struct {
	BookingsCount int      `json:"bookings_count"`
	TotalSpend    *float64 `json:"total_spend,omitempty"`
	TotalEarnings *float64 `json:"total_earnings,omitempty"`
}

type ProfileSummary struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Name      string       `json:"name"`
	Email     string       `json:"email,omitempty"`
	AvatarURL string       `json:"avatar_url"`
	Subject   string       `json:"subject,omitempty"`
	Price     *float64     `json:"price,omitempty"`
	Stats     ProfileStats `json:"stats"`
}

type UserSummary struct {
	ID            string    `json:"id"`
	Role          Role      `json:"role"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	BookingsCount int       `json:"bookings_count"`
	CreatedAt     time.Time `json:"created_at"`
}
