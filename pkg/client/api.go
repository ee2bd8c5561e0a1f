package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/model"
)

const apiPrefix = "/api/v1"

// API is a typed client for the tutorbook HTTP API. Failed calls return the
// server's *errors.AppError with its HTTP status filled in.
type API struct {
	http *HttpClient
}

func NewAPI(baseURL string) *API {
	return &API{http: NewHttpClient(baseURL)}
}

func (a *API) SetToken(token string) {
	a.http.SetToken(token)
}

func (a *API) ListTeachers(ctx context.Context, query string) ([]model.Teacher, error) {
	path := apiPrefix + "/teachers"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	resp, err := a.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.Teacher](resp, http.StatusOK)
}

func (a *API) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	resp, err := a.http.GET(ctx, apiPrefix+"/teachers/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	teacher, err := decodeData[model.Teacher](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (a *API) Availability(ctx context.Context, teacherID, date string) ([]model.SlotAvailability, error) {
	path := fmt.Sprintf("%s/teachers/%s/availability?date=%s", apiPrefix, url.PathEscape(teacherID), url.QueryEscape(date))
	resp, err := a.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.SlotAvailability](resp, http.StatusOK)
}

func (a *API) EnsureStudent(ctx context.Context, req model.StudentRequest) (*model.Student, error) {
	resp, err := a.http.POST(ctx, apiPrefix+"/students", req)
	if err != nil {
		return nil, err
	}
	student, err := decodeData[model.Student](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Signup registers a student or teacher and keeps the returned credential
// for later calls.
func (a *API) Signup(ctx context.Context, role model.Role, req model.SignupRequest) (*model.AuthResult, error) {
	resp, err := a.http.POST(ctx, fmt.Sprintf("%s/auth/%s/signup", apiPrefix, role), req)
	if err != nil {
		return nil, err
	}
	return a.keepToken(resp, http.StatusCreated)
}

// Login authenticates any account kind, admins included, and keeps the
// returned credential for later calls.
func (a *API) Login(ctx context.Context, role model.Role, req model.LoginRequest) (*model.AuthResult, error) {
	resp, err := a.http.POST(ctx, fmt.Sprintf("%s/auth/%s/login", apiPrefix, role), req)
	if err != nil {
		return nil, err
	}
	return a.keepToken(resp, http.StatusOK)
}

func (a *API) keepToken(resp *Response, want int) (*model.AuthResult, error) {
	result, err := decodeData[model.AuthResult](resp, want)
	if err != nil {
		return nil, err
	}
	a.SetToken(result.Token)
	return &result, nil
}

func (a *API) Me(ctx context.Context) (*model.ProfileSummary, error) {
	resp, err := a.http.GET(ctx, apiPrefix+"/me")
	if err != nil {
		return nil, err
	}
	profile, err := decodeData[model.ProfileSummary](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *API) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	resp, err := a.http.POST(ctx, apiPrefix+"/bookings", req)
	if err != nil {
		return nil, err
	}
	booking, err := decodeData[model.Booking](resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (a *API) DeleteBooking(ctx context.Context, id string) error {
	resp, err := a.http.DELETE(ctx, apiPrefix+"/bookings/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}
	return nil
}

func (a *API) MyBookings(ctx context.Context) ([]model.BookingDetails, error) {
	resp, err := a.http.GET(ctx, apiPrefix+"/my-bookings")
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.BookingDetails](resp, http.StatusOK)
}

func (a *API) AdminBookings(ctx context.Context) ([]model.AdminBooking, error) {
	resp, err := a.http.GET(ctx, apiPrefix+"/admin/bookings")
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.AdminBooking](resp, http.StatusOK)
}

func (a *API) AdminUsers(ctx context.Context) ([]model.UserSummary, error) {
	resp, err := a.http.GET(ctx, apiPrefix+"/admin/users")
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.UserSummary](resp, http.StatusOK)
}

func decodeData[T any](resp *Response, want int) (T, error) {
	var zero T
	if resp.StatusCode != want {
		return zero, decodeError(resp)
	}

	var wrapper struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return zero, fmt.Errorf("could not decode response %s: %w", resp.ToString(), err)
	}
	return wrapper.Data, nil
}

func decodeError(resp *Response) error {
	var body apperrors.ErrorResponse
	if err := resp.DecodeJSON(&body); err != nil || body.Code == "" {
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unexpected response %s", resp.ToString()), resp.StatusCode)
	}
	return apperrors.New(body.Code, body.Message, resp.StatusCode).WithDetails(body.Details)
}
