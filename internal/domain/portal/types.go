// Package portal contains the department content records served by the portal REST API.
package portal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Notice categories offered by the notice management form.
var NoticeCategories = []string{"Academic", "Exam", "Event", "Admission", "General"}

// Notice is a department announcement.
type Notice struct {
	ID          string `json:"id"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Img         string `json:"img,omitempty"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Important   bool   `json:"important"`
	Date        string `json:"date,omitempty"`
}

// NoticeInput is the writable part of a notice.
type NoticeInput struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Img         string `json:"img,omitempty"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Important   bool   `json:"important"`
}

// Validate checks required fields.
func (n NoticeInput) Validate() error {
	var errs []error
	if strings.TrimSpace(n.Topic) == "" {
		errs = append(errs, errors.New("topic is required"))
	}
	if strings.TrimSpace(n.Description) == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if strings.TrimSpace(n.Author) == "" {
		errs = append(errs, errors.New("author is required"))
	}
	if n.Category != "" && !slices.Contains(NoticeCategories, n.Category) {
		errs = append(errs, fmt.Errorf("unknown category %q", n.Category))
	}
	return errors.Join(errs...)
}

// Event is a department event listing.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// GalleryItem is one gallery photo.
type GalleryItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
}

// GalleryCategories lists the gallery filters; "All" disables filtering.
var GalleryCategories = []string{"All", "Events", "Facilities", "Activities", "Academic", "Campus"}

// Facility identifies a bookable space.
type Facility struct {
	ID       string
	Name     string
	Capacity int
	Kind     BookingKind
}

// BookingKind selects which bookings endpoint a facility belongs to.
type BookingKind string

const (
	BookingClassroom BookingKind = "classroom"
	BookingLab       BookingKind = "lab"
)

// Facilities offered on the booking screen.
var Facilities = []Facility{
	{ID: "classroom", Name: "Classroom 401", Capacity: 60, Kind: BookingClassroom},
	{ID: "lab", Name: "Computer Lab", Capacity: 40, Kind: BookingLab},
	{ID: "seminar", Name: "Seminar Hall", Capacity: 150, Kind: BookingClassroom},
	{ID: "auditorium", Name: "Auditorium", Capacity: 300, Kind: BookingClassroom},
}

// TimeSlots are the bookable start times.
var TimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
}

const slotLayout = "03:04 PM"

// FacilityByID returns the facility with id.
func FacilityByID(id string) (Facility, bool) {
	for _, f := range Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return Facility{}, false
}

// Booking is a classroom or lab reservation.
type Booking struct {
	ID        string `json:"id,omitempty"`
	Room      string `json:"room"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Purpose   string `json:"purpose"`
	BookedBy  string `json:"bookedBy"`
	Email     string `json:"email"`
	Status    string `json:"status,omitempty"`
}

// BookingRequest is the booking form as submitted.
type BookingRequest struct {
	Facility string
	Date     string
	Time     string
	Duration int
	Purpose  string
}

// Build validates the request and produces the booking record for the API.
func (r BookingRequest) Build(bookedBy, email string, today time.Time) (Booking, BookingKind, error) {
	f, ok := FacilityByID(r.Facility)
	if !ok {
		return Booking{}, "", errors.New("select a facility")
	}
	day, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return Booking{}, "", errors.New("date must be YYYY-MM-DD")
	}
	y, m, d := today.Date()
	if day.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return Booking{}, "", errors.New("date cannot be in the past")
	}
	if !slices.Contains(TimeSlots, r.Time) {
		return Booking{}, "", errors.New("select a time slot")
	}
	if r.Duration < 1 || r.Duration > 8 {
		return Booking{}, "", errors.New("duration must be between 1 and 8 hours")
	}
	if strings.TrimSpace(r.Purpose) == "" {
		return Booking{}, "", errors.New("purpose is required")
	}
	start, _ := time.Parse(slotLayout, r.Time)
	end := start.Add(time.Duration(r.Duration) * time.Hour)
	return Booking{
		Room:      f.Name,
		Date:      r.Date,
		StartTime: r.Time,
		EndTime:   end.Format(slotLayout),
		Purpose:   strings.TrimSpace(r.Purpose),
		BookedBy:  bookedBy,
		Email:     email,
	}, f.Kind, nil
}

// Dashboard summarizes a visitor's activity.
type Dashboard struct {
	TotalBookings  int `json:"totalBookings"`
	ActiveBookings int `json:"activeBookings"`
	Notifications  int `json:"notifications"`
}
