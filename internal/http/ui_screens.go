package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jnu-cse/cse-portal/internal/domain/portal"
	"github.com/jnu-cse/cse-portal/internal/domain/route"
	apperrors "github.com/jnu-cse/cse-portal/internal/errors"
)

const (
	msgLoadFailed        = "Could not load data from the department server. Please try again later."
	msgDurationNotNumber = "Duration must be a whole number of hours."
)

// apiFailed logs an API error and returns the inline message for it.
func (h *UIHandlers) apiFailed(ctx context.Context, what string, err error) string {
	h.logger().WarnContext(ctx, "portal api call failed", "call", what, "error", err)
	if apperrors.IsValidation(err) {
		return err.Error()
	}
	return msgLoadFailed
}

// listError is the inline message for one section of a screen, empty when err is nil.
func (h *UIHandlers) listError(ctx context.Context, what string, err error) string {
	if err == nil {
		return ""
	}
	return h.apiFailed(ctx, what, err)
}

// Home shows the latest notices and upcoming events.
// GET /.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageHome)
	ctx := r.Context()
	var (
		notices            []portal.Notice
		events             []portal.Event
		noticesErr, evsErr error
	)
	// A failed list must not cancel its sibling; each one reports its own error.
	var g errgroup.Group
	g.Go(func() error {
		notices, noticesErr = h.API.LatestNotices(ctx)
		return nil
	})
	g.Go(func() error {
		events, evsErr = h.API.ListEvents(ctx)
		return nil
	})
	_ = g.Wait()
	pd.With("NoticesError", h.listError(ctx, "latest notices", noticesErr)).
		With("EventsError", h.listError(ctx, "list events", evsErr))
	pd.With("Notices", notices).With("Events", events)
	h.render(w, r, d, http.StatusOK, pd)
}

// Notices lists every notice.
// GET /notices.
func (h *UIHandlers) Notices(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageNotices)
	notices, err := h.API.ListNotices(r.Context())
	if err != nil {
		pd.WithError(h.apiFailed(r.Context(), "list notices", err))
	}
	pd.With("Notices", notices)
	h.render(w, r, d, http.StatusOK, pd)
}

// Notice shows one notice.
// GET /notice/{id}.
func (h *UIHandlers) Notice(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageNotice)
	n, err := h.API.GetNotice(r.Context(), r.PathValue("id"))
	switch {
	case apperrors.IsNotFound(err):
		h.NotFound(w, r)
		return
	case err != nil:
		pd.WithError(h.apiFailed(r.Context(), "get notice", err))
	default:
		pd.Title = n.Topic
		pd.With("Notice", n)
	}
	h.render(w, r, d, http.StatusOK, pd)
}

// ManageNotices lists notices with create, edit and delete forms.
// GET /manage-notices.
func (h *UIHandlers) ManageNotices(w http.ResponseWriter, r *http.Request) {
	h.renderManageNotices(w, r, http.StatusOK, "", portal.NoticeInput{})
}

func (h *UIHandlers) renderManageNotices(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	errMsg string,
	draft portal.NoticeInput,
) {
	d, pd := h.page(r, route.PageManageNotices)
	notices, err := h.API.ListNotices(r.Context())
	if err != nil && errMsg == "" {
		errMsg = h.apiFailed(r.Context(), "list notices", err)
	}
	switch r.URL.Query().Get("done") {
	case "created":
		pd.Flash = "Notice published."
	case "updated":
		pd.Flash = "Notice updated."
	case "deleted":
		pd.Flash = "Notice deleted."
	}
	pd.WithError(errMsg).
		With("Notices", notices).
		With("Draft", draft).
		With("Categories", portal.NoticeCategories)
	h.render(w, r, d, status, pd)
}

func noticeFromForm(r *http.Request) portal.NoticeInput {
	return portal.NoticeInput{
		Topic:       strings.TrimSpace(r.PostFormValue("topic")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Img:         strings.TrimSpace(r.PostFormValue("img")),
		Author:      strings.TrimSpace(r.PostFormValue("author")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Important:   r.PostFormValue("important") != "",
	}
}

// CreateNotice publishes a notice.
// POST /manage-notices.
func (h *UIHandlers) CreateNotice(w http.ResponseWriter, r *http.Request) {
	in := noticeFromForm(r)
	if err := h.API.CreateNotice(r.Context(), in); err != nil {
		h.renderManageNotices(w, r, statusFor(err), h.apiFailed(r.Context(), "create notice", err), in)
		return
	}
	navigate(w, r, "/manage-notices?done=created")
}

// UpdateNotice edits a notice.
// POST /manage-notices/{id}.
func (h *UIHandlers) UpdateNotice(w http.ResponseWriter, r *http.Request) {
	in := noticeFromForm(r)
	if err := h.API.UpdateNotice(r.Context(), r.PathValue("id"), in); err != nil {
		h.renderManageNotices(w, r, statusFor(err), h.apiFailed(r.Context(), "update notice", err), in)
		return
	}
	navigate(w, r, "/manage-notices?done=updated")
}

// DeleteNotice removes a notice.
// POST /manage-notices/{id}/delete.
func (h *UIHandlers) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeleteNotice(r.Context(), r.PathValue("id")); err != nil {
		h.renderManageNotices(w, r, statusFor(err), h.apiFailed(r.Context(), "delete notice", err), portal.NoticeInput{})
		return
	}
	navigate(w, r, "/manage-notices?done=deleted")
}

// statusFor maps an API failure to the status of the re-rendered form.
func statusFor(err error) int {
	if apperrors.IsValidation(err) {
		return http.StatusUnprocessableEntity
	}
	return apperrors.HTTPStatus(err)
}

// Bookings lists the existing reservations for one kind of facility.
// GET /classroom and GET /lab.
func (h *UIHandlers) Bookings(page string, kind portal.BookingKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, pd := h.page(r, page)
		bookings, err := h.API.ListBookings(r.Context(), kind)
		if err != nil {
			pd.WithError(h.apiFailed(r.Context(), "list bookings", err))
		}
		pd.With("Bookings", bookings).With("Kind", string(kind))
		h.render(w, r, d, http.StatusOK, pd)
	}
}

// BookingForm renders the facility booking form.
// GET /booking.
func (h *UIHandlers) BookingForm(w http.ResponseWriter, r *http.Request) {
	h.renderBookingForm(w, r, http.StatusOK, "", portal.BookingRequest{Duration: 1})
}

func (h *UIHandlers) renderBookingForm(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	errMsg string,
	req portal.BookingRequest,
) {
	d, pd := h.page(r, route.PageBooking)
	if r.URL.Query().Get("booked") != "" {
		pd.Flash = "Booking request submitted."
	}
	pd.WithError(errMsg).
		With("Facilities", portal.Facilities).
		With("TimeSlots", portal.TimeSlots).
		With("Today", h.now().Format("2006-01-02")).
		With("Request", req)
	h.render(w, r, d, status, pd)
}

// Book submits a booking for the signed-in visitor.
// POST /booking.
func (h *UIHandlers) Book(w http.ResponseWriter, r *http.Request) {
	id, ok := CurrentIdentity(r.Context())
	if !ok {
		navigate(w, r, loginURL("/booking"))
		return
	}
	req := portal.BookingRequest{
		Facility: r.PostFormValue("facility"),
		Date:     r.PostFormValue("date"),
		Time:     r.PostFormValue("time"),
		Purpose:  r.PostFormValue("purpose"),
	}
	if raw := strings.TrimSpace(r.PostFormValue("duration")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.renderBookingForm(w, r, http.StatusUnprocessableEntity, msgDurationNotNumber, req)
			return
		}
		req.Duration = n
	}

	booking, kind, err := req.Build(id.Name(), id.Email, h.now())
	if err != nil {
		h.renderBookingForm(w, r, http.StatusUnprocessableEntity, err.Error(), req)
		return
	}
	if err := h.API.CreateBooking(r.Context(), kind, booking); err != nil {
		h.renderBookingForm(w, r, statusFor(err), h.apiFailed(r.Context(), "create booking", err), req)
		return
	}
	navigate(w, r, "/booking?booked=1")
}

// Dashboard shows the visitor's booking summary, their bookings and the profile form.
// GET /dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageDashboard)
	id, ok := CurrentIdentity(r.Context())
	if !ok {
		navigate(w, r, loginURL("/dashboard"))
		return
	}

	ctx := r.Context()
	var (
		summary                           portal.Dashboard
		classrooms, labs                  []portal.Booking
		summaryErr, classroomErr, labsErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		summary, summaryErr = h.API.UserDashboard(ctx, id.Email)
		return nil
	})
	g.Go(func() error {
		classrooms, classroomErr = h.API.BookingsByUser(ctx, portal.BookingClassroom, id.Email)
		return nil
	})
	g.Go(func() error {
		labs, labsErr = h.API.BookingsByUser(ctx, portal.BookingLab, id.Email)
		return nil
	})
	_ = g.Wait()
	pd.With("SummaryError", h.listError(ctx, "user dashboard", summaryErr)).
		With("ClassroomError", h.listError(ctx, "classroom bookings", classroomErr)).
		With("LabError", h.listError(ctx, "lab bookings", labsErr))

	switch r.URL.Query().Get("profile") {
	case "updated":
		pd.Flash = "Profile updated."
	case "error":
		pd.WithError("Failed to update profile.")
	}
	pd.With("Summary", summary).
		With("ClassroomBookings", classrooms).
		With("LabBookings", labs)
	h.render(w, r, d, http.StatusOK, pd)
}

// Events lists department events.
// GET /events.
func (h *UIHandlers) Events(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageEvents)
	events, err := h.API.ListEvents(r.Context())
	if err != nil {
		pd.WithError(h.apiFailed(r.Context(), "list events", err))
	}
	pd.With("Events", events)
	h.render(w, r, d, http.StatusOK, pd)
}

// Gallery lists gallery photos, optionally filtered by ?category=.
// GET /gallery.
func (h *UIHandlers) Gallery(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageGallery)
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "All"
	}
	items, err := h.API.ListGallery(r.Context(), category)
	if err != nil {
		pd.WithError(h.apiFailed(r.Context(), "list gallery", err))
	}
	pd.With("Items", items).
		With("Category", category).
		With("Categories", portal.GalleryCategories)
	h.render(w, r, d, http.StatusOK, pd)
}
