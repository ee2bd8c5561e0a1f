package model

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Principal is the verified identity behind a request.
type Principal struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
}

type Student struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email,max=254"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type Teacher struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email,max=254"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	Subject      string    `json:"subject" bson:"subject" validate:"required,min=1,max=100"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty" validate:"max=2000"`
	ImageURL     string    `json:"image_url,omitempty" bson:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	Price        float64   `json:"price" bson:"price" validate:"gte=0"`
	Slots        []string  `json:"slots" bson:"slots" validate:"max=96,dive,required,max=32"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// HasSlot reports whether label is one of the teacher's bookable slots.
func (t *Teacher) HasSlot(label string) bool {
	for _, s := range t.Slots {
		if s == label {
			return true
		}
	}
	return false
}

type Admin struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Credentials is the subset of any account document needed to log in.
type Credentials struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
}

type AccountSummary struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type AuthResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Account   AccountSummary `json:"account"`
}
