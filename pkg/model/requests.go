package model

type SignupRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=100"`
	Email    string   `json:"email" validate:"required,email,max=254"`
	Password string   `json:"password" validate:"required,min=6,max=72"`
	Subject  string   `json:"subject,omitempty" validate:"max=100"`
	Bio      string   `json:"bio,omitempty" validate:"max=2000"`
	ImageURL string   `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Slots    []string `json:"slots,omitempty" validate:"max=96,dive,required,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type StudentRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
}

type CreateBookingRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,max=32"`
	Note      string `json:"note,omitempty" validate:"max=1000"`
}
