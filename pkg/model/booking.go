package model

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusStarting  BookingStatus = "starting"
	StatusOngoing   BookingStatus = "ongoing"
	StatusCompleted BookingStatus = "completed"
)

// Booking reserves one teacher slot on one date. The (teacher_id, date, time)
// triple is unique across the collection.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	StudentID string    `json:"student_id" bson:"student_id"`
	TeacherID string    `json:"teacher_id" bson:"teacher_id"`
	Date      string    `json:"date" bson:"date"`
	Time      string    `json:"time" bson:"time"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type TeacherSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Subject  string  `json:"subject,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	Price    float64 `json:"price"`
}

type StudentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type BookingDetails struct {
	Booking
	Teacher TeacherSummary `json:"teacher"`
	Student StudentSummary `json:"student"`
}

type AdminBooking struct {
	BookingDetails
	Status BookingStatus `json:"status"`
}

type SlotAvailability struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}
