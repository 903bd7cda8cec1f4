// Package pages holds the site's templ pages. Run `do gen` after editing a
// .templ file to refresh its _templ.go output.
package pages

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/hairstudio/salon/internal/config"
	"github.com/hairstudio/salon/internal/ctxkeys"
	"github.com/hairstudio/salon/internal/model"
)

type HomeData struct {
	Works     []*model.Work
	Featured  []*model.Review
	HairTypes []string
	HairType  string
}

type AboutData struct {
	Stats    model.RatingStats
	Featured []*model.Review
	Bio      *model.Page
}

type ReviewsData struct {
	Reviews []*model.Review
	Works   []*model.Work
	Stars   int
	Sort    string
}

type AdminReviewsData struct {
	Pending  []*model.Review
	Approved []*model.Review
}

type AdminAppointmentsData struct {
	Pending   []*model.Appointment
	Confirmed []*model.Appointment
}

var errorMessages = map[int]string{
	http.StatusBadRequest:            "That request didn't make sense to us.",
	http.StatusUnauthorized:          "You need to sign in to see this page.",
	http.StatusForbidden:             "Your session expired or the form was tampered with. Reload the page and try again.",
	http.StatusNotFound:              "We couldn't find what you were looking for.",
	http.StatusMethodNotAllowed:      "That action isn't allowed here.",
	http.StatusRequestEntityTooLarge: "That upload is too large.",
	http.StatusTooManyRequests:       "Too many attempts. Please wait a few minutes and try again.",
	http.StatusInternalServerError:   "Something went wrong on our side. Please try again.",
}

type ErrorData struct {
	Status  int
	Text    string
	Message string
}

func Error(status int) templ.Component {
	message, ok := errorMessages[status]
	if !ok {
		message = errorMessages[http.StatusInternalServerError]
	}
	return errorPage(ErrorData{Status: status, Text: http.StatusText(status), Message: message})
}

var starOptions = []int{5, 4, 3, 2, 1}

func appConfig(ctx context.Context) *config.Config {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg
	}
	return &config.Config{AppName: "Hair Studio"}
}

func isCurrent(ctx context.Context, path string) bool {
	return ctxkeys.URLPath(ctx) == path
}

// imageURL resolves a stored filename in bucket to its public URL.
func imageURL(ctx context.Context, bucket, name string) string {
	return ctxkeys.ImageURL(ctx, bucket+"/"+name)
}

func clientURL(phone string) templ.SafeURL {
	return templ.URL("/admin/client/" + url.PathEscape(phone))
}

// stars renders a 1-5 rating as filled and empty stars.
func stars(n int) string {
	n = max(0, min(n, 5))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func formatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// formatRating prints an optional average, "-" when there is none.
func formatRating(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func reviewStatus(r *model.Review) string {
	if r.IsApproved {
		return "Approved"
	}
	return "Pending"
}
