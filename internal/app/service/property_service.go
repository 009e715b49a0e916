package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/clock"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/repository"

	"github.com/gosimple/slug"
)

const (
	DefaultPropertyPageSize = 20
	MaxPropertyPageSize     = 100
)

var errPropertyNotFound = common.NewError(common.ErrNotFound, "Property not found")

type PropertyService struct {
	propertyRepo repository.PropertyRepository
	clock        clock.Clock
}

func NewPropertyService(propertyRepo repository.PropertyRepository, clk clock.Clock) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo, clock: clk}
}

// PropertyRequest is the body of a create or full update.
type PropertyRequest struct {
	Zpid         *string            `json:"zpid"`
	Title        string             `json:"title"`
	Location     *string            `json:"location"`
	Price        *int               `json:"price"`
	Description  *string            `json:"description"`
	ImageURL     *string            `json:"imageUrl"`
	Bedrooms     *int               `json:"bedrooms"`
	Bathrooms    *int               `json:"bathrooms"`
	Sqft         *int               `json:"sqft"`
	PropertyType *string            `json:"propertyType"`
	IsForSale    *bool              `json:"isForSale"`
	Images       model.JSONDocument `json:"images"`
	Details      model.JSONDocument `json:"details"`
}

type PropertyPage struct {
	Properties []model.Property `json:"properties"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

func (req PropertyRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return common.Validationf("Title is required")
	}
	counts := []struct {
		field string
		v     *int
	}{
		{"Price", req.Price},
		{"Bedrooms", req.Bedrooms},
		{"Bathrooms", req.Bathrooms},
		{"Sqft", req.Sqft},
	}
	for _, c := range counts {
		if c.v != nil && *c.v < 0 {
			return common.Validationf("%s must not be negative", c.field)
		}
	}
	if len(req.Images) > 0 && !json.Valid(req.Images) {
		return common.Validationf("Images must be valid JSON")
	}
	if len(req.Details) > 0 && !json.Valid(req.Details) {
		return common.Validationf("Details must be valid JSON")
	}
	return nil
}

// propertySlug derives the slug from the title and, when present, the location.
func propertySlug(title string, location *string) string {
	base := title
	if location != nil && strings.TrimSpace(*location) != "" {
		base += " " + *location
	}
	return slug.Make(base)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (req PropertyRequest) apply(p *model.Property) {
	p.Zpid = trimmedOrNil(req.Zpid)
	p.Title = strings.TrimSpace(req.Title)
	p.Location = trimmedOrNil(req.Location)
	p.Price = req.Price
	p.Description = trimmedOrNil(req.Description)
	p.ImageURL = trimmedOrNil(req.ImageURL)
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.Sqft = req.Sqft
	p.PropertyType = trimmedOrNil(req.PropertyType)
	p.IsForSale = req.IsForSale == nil || *req.IsForSale
	p.Images = req.Images
	p.Details = req.Details
	p.Slug = propertySlug(p.Title, p.Location)
}

func (s *PropertyService) Create(ctx context.Context, req PropertyRequest) (*model.Property, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	p := &model.Property{CreatedAt: now, UpdatedAt: now}
	req.apply(p)

	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, propertyError("creating property", err)
	}
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, id int64, req PropertyRequest) (*model.Property, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, propertyError("loading property", err)
	}
	req.apply(p)
	p.UpdatedAt = s.clock.Now()

	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, propertyError("updating property", err)
	}
	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, id int64) (*model.Property, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, propertyError("loading property", err)
	}
	return p, nil
}

func (s *PropertyService) List(ctx context.Context, page, pageSize int, filter model.PropertyFilter) (*PropertyPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > MaxPropertyPageSize {
		pageSize = DefaultPropertyPageSize
	}
	filter.Search = strings.TrimSpace(filter.Search)

	properties, total, err := s.propertyRepo.List(ctx, pageSize, (page-1)*pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	return &PropertyPage{Properties: properties, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return propertyError("deleting property", err)
	}
	return nil
}

func propertyError(op string, err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return errPropertyNotFound
	case errors.Is(err, common.ErrConflict):
		return common.NewError(common.ErrConflict, "A property with this title and location already exists")
	}
	return fmt.Errorf("%s: %w", op, err)
}
