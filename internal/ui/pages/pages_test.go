package pages_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/hairstudio/salon/internal/ctxkeys"
	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/ui/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func ptr(s string) *string { return &s }

func TestHomeRendersWorksAndFeatured(t *testing.T) {
	ctx := ctxkeys.WithImageURL(context.Background(), func(p string) string { return "https://cdn.test/" + p })
	ctx = templ.WithNonce(ctx, "n0nce")

	html := render(t, ctx, pages.Home(pages.HomeData{
		Works: []*model.Work{{
			ID: "w1", Title: "Curly bob", HairType: "curly",
			BeforeImage: "b.jpg", AfterImage: "a.jpg",
			ReelLink: ptr("https://www.instagram.com/reel/abc/embed"),
		}},
		Featured:  []*model.Review{{CustomerName: "Asha", Rating: 4, Content: "great"}},
		HairTypes: []string{"curly"},
		HairType:  "curly",
	}))

	assert.Contains(t, html, "https://cdn.test/before/b.jpg")
	assert.Contains(t, html, "https://cdn.test/after/a.jpg")
	assert.Contains(t, html, `nonce="n0nce"`)
	assert.Contains(t, html, "★★★★☆")
	assert.Contains(t, html, "instagram.com/reel/abc/embed")
}

func TestReviewsPageEscapesContent(t *testing.T) {
	ctx := ctxkeys.WithCSRFToken(context.Background(), "tok")
	html := render(t, ctx, pages.Reviews(pages.ReviewsData{
		Reviews: []*model.Review{{ID: "r1", CustomerName: "<b>x</b>", Rating: 5, Content: "hi", CreatedAt: time.Now()}},
		Stars:   5,
		Sort:    model.ReviewSortNewest,
	}))

	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, html, `value="tok"`)
	assert.Contains(t, html, `data-review="r1"`)
}

func TestErrorPages(t *testing.T) {
	for _, status := range []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusMethodNotAllowed,
		http.StatusRequestEntityTooLarge,
		http.StatusInternalServerError,
	} {
		html := render(t, context.Background(), pages.Error(status))
		assert.Contains(t, html, http.StatusText(status))
	}
}

func TestAdminPagesRender(t *testing.T) {
	avg := 4.5
	ctx := ctxkeys.WithAdmin(context.Background(), &model.AdminIdentity{Username: "owner"})
	review := &model.Review{ID: "r1", CustomerName: "Asha", PhoneNumber: "+911", Rating: 5, Content: "ok", ImageFront: ptr("f.jpg")}
	appt := &model.Appointment{ID: "a1", CustomerName: "Asha", PhoneNumber: "+911", Service: "cut"}

	components := []templ.Component{
		pages.AdminLogin(),
		pages.AdminDashboard(model.DashboardCounts{Works: 2, PendingReviews: 1}),
		pages.AdminTransformations([]*model.Work{{ID: "w1", Title: "Bob"}}),
		pages.AdminReviews(pages.AdminReviewsData{Pending: []*model.Review{review}}),
		pages.AdminAppointments(pages.AdminAppointmentsData{Pending: []*model.Appointment{appt}}),
		pages.AdminClients([]*model.ClientSummary{
			{Phone: "+911", Name: "Asha", AvgRating: &avg, ReviewCount: 1},
			{Phone: "+922", Name: "Ravi"},
		}),
		pages.AdminClient(&model.ClientProfile{Phone: "+911", Name: "Asha", Reviews: []*model.Review{review}}),
	}
	for _, c := range components {
		html := render(t, ctx, c)
		assert.Contains(t, html, "/logout")
	}

	clients := render(t, ctx, components[5])
	assert.Contains(t, clients, "4.5")
	assert.Contains(t, clients, "<td>-</td>")

	reviews := render(t, ctx, components[3])
	assert.Contains(t, reviews, "/uploads/reviews/f.jpg")
	assert.Contains(t, reviews, "/admin/approve_review/r1")
}

func TestContentPageRendersHTML(t *testing.T) {
	html := render(t, context.Background(), pages.Content(&model.Page{Title: "Privacy", Content: "<p>kept</p>"}))
	assert.Contains(t, html, "<p>kept</p>")
}

func TestLayoutMarksCurrentPageAndShowsFlashes(t *testing.T) {
	ctx := ctxkeys.WithURLPath(context.Background(), "/reviews")
	ctx = ctxkeys.WithFlashes(ctx, []ctxkeys.FlashMessage{{Category: "success", Message: "Review submitted"}})

	html := render(t, ctx, pages.Reviews(pages.ReviewsData{Sort: model.ReviewSortKudos}))

	assert.Contains(t, html, `<a href="/reviews" class="active">Reviews</a>`)
	assert.Contains(t, html, `<a href="/">Works</a>`)
	assert.Contains(t, html, `<p class="flash flash-success">Review submitted</p>`)
	assert.Contains(t, html, `<option value="kudos" selected>`)
	assert.NotContains(t, html, `/logout`)
}

func TestReviewTableLinksClientByPhone(t *testing.T) {
	ctx := ctxkeys.WithAdmin(context.Background(), &model.AdminIdentity{Username: "owner"})
	html := render(t, ctx, pages.AdminReviews(pages.AdminReviewsData{
		Approved: []*model.Review{{ID: "r2", CustomerName: "Ravi", PhoneNumber: "+922 333", IsApproved: true, IsFeatured: true}},
	}))

	assert.Contains(t, html, `href="/admin/client/+922%20333"`)
	assert.Contains(t, html, `href="/admin/toggle_feature/r2">Unfeature</a>`)
	assert.NotContains(t, html, "/admin/approve_review/r2")
}
