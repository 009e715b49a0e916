package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/clock"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/testutil"
)

func intPtr(i int) *int { return &i }

func newPropertyFixture(t *testing.T) (*PropertyService, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(testNow)
	return NewPropertyService(testutil.NewPropertyRepo(), clk), clk
}

func TestCreatePropertyDerivesSlug(t *testing.T) {
	svc, _ := newPropertyFixture(t)
	p, err := svc.Create(context.Background(), PropertyRequest{
		Title:    " Sunny Loft ",
		Location: strPtr("Austin, TX"),
		Price:    intPtr(450000),
		Images:   model.JSONDocument(`["a.jpg","b.jpg"]`),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Slug != "sunny-loft-austin-tx" {
		t.Errorf("slug = %q", p.Slug)
	}
	if p.Title != "Sunny Loft" || !p.IsForSale || p.ID == 0 {
		t.Errorf("property = %+v", p)
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	svc, _ := newPropertyFixture(t)
	tests := []struct {
		name string
		req  PropertyRequest
		msg  string
	}{
		{"no title", PropertyRequest{}, "Title is required"},
		{"negative price", PropertyRequest{Title: "x", Price: intPtr(-1)}, "Price must not be negative"},
		{"negative sqft", PropertyRequest{Title: "x", Sqft: intPtr(-5)}, "Sqft must not be negative"},
		{"broken details", PropertyRequest{Title: "x", Details: model.JSONDocument(`{"a":`)}, "Details must be valid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			if common.HTTPStatusFromError(err) != http.StatusBadRequest || common.PublicMessage(err) != tt.msg {
				t.Errorf("err = %v, want 400 %q", err, tt.msg)
			}
		})
	}
}

func TestPropertySlugConflict(t *testing.T) {
	svc, _ := newPropertyFixture(t)
	ctx := context.Background()
	req := PropertyRequest{Title: "Cabin", Location: strPtr("Tahoe")}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, req)
	if common.HTTPStatusFromError(err) != http.StatusConflict {
		t.Errorf("duplicate Create: err = %v, want 409", err)
	}
}

func TestUpdateAndDeleteProperty(t *testing.T) {
	svc, clk := newPropertyFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, PropertyRequest{Title: "Barn"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	clk.Advance(time.Hour)
	updated, err := svc.Update(ctx, p.ID, PropertyRequest{Title: "Red Barn", IsForSale: boolPtr(false)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != "red-barn" || updated.IsForSale || !updated.UpdatedAt.Equal(clk.Now()) || !updated.CreatedAt.Equal(testNow) {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); common.HTTPStatusFromError(err) != http.StatusNotFound {
		t.Errorf("Get after delete: err = %v, want 404", err)
	}
	if _, err := svc.Update(ctx, p.ID, PropertyRequest{Title: "Ghost"}); common.HTTPStatusFromError(err) != http.StatusNotFound {
		t.Errorf("Update after delete: err = %v, want 404", err)
	}
}

func TestListPropertiesPaginatesAndFilters(t *testing.T) {
	svc, clk := newPropertyFixture(t)
	ctx := context.Background()
	for _, title := range []string{"Alpha House", "Beta Condo", "Gamma House", "Delta House"} {
		forSale := title != "Beta Condo"
		if _, err := svc.Create(ctx, PropertyRequest{Title: title, IsForSale: &forSale}); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		clk.Advance(time.Minute)
	}

	page, err := svc.List(ctx, 1, 2, model.PropertyFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 4 || len(page.Properties) != 2 || page.Properties[0].Title != "Delta House" {
		t.Errorf("page 1 = %+v", page)
	}

	forSale := false
	page, err = svc.List(ctx, 1, 0, model.PropertyFilter{ForSale: &forSale})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 || page.PageSize != DefaultPropertyPageSize {
		t.Errorf("not-for-sale page = %+v", page)
	}

	page, err = svc.List(ctx, 2, 1, model.PropertyFilter{Search: " house "})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 3 || len(page.Properties) != 1 || page.Properties[0].Title != "Gamma House" {
		t.Errorf("search page 2 = %+v", page)
	}
}
