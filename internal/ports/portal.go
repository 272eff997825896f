package ports

import (
	"context"

	"github.com/jnu-cse/cse-portal/internal/domain/portal"
)

// PortalAPI is the department REST API the screens read from and write to.
type PortalAPI interface {
	ListNotices(ctx context.Context) ([]portal.Notice, error)
	LatestNotices(ctx context.Context) ([]portal.Notice, error)
	GetNotice(ctx context.Context, id string) (portal.Notice, error)
	CreateNotice(ctx context.Context, in portal.NoticeInput) error
	UpdateNotice(ctx context.Context, id string, in portal.NoticeInput) error
	DeleteNotice(ctx context.Context, id string) error

	ListBookings(ctx context.Context, kind portal.BookingKind) ([]portal.Booking, error)
	BookingsByUser(ctx context.Context, kind portal.BookingKind, email string) ([]portal.Booking, error)
	CreateBooking(ctx context.Context, kind portal.BookingKind, b portal.Booking) error

	UserDashboard(ctx context.Context, email string) (portal.Dashboard, error)

	ListGallery(ctx context.Context, category string) ([]portal.GalleryItem, error)
	ListEvents(ctx context.Context) ([]portal.Event, error)
}
