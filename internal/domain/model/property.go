package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type Property struct {
	ID           int64        `json:"id" db:"id"`
	Slug         string       `json:"slug" db:"slug"`
	Zpid         *string      `json:"zpid" db:"zpid"`
	Title        string       `json:"title" db:"title"`
	Location     *string      `json:"location" db:"location"`
	Price        *int         `json:"price" db:"price"`
	Description  *string      `json:"description" db:"description"`
	ImageURL     *string      `json:"imageUrl" db:"image_url"`
	Bedrooms     *int         `json:"bedrooms" db:"bedrooms"`
	Bathrooms    *int         `json:"bathrooms" db:"bathrooms"`
	Sqft         *int         `json:"sqft" db:"sqft"`
	PropertyType *string      `json:"propertyType" db:"property_type"`
	IsForSale    bool         `json:"isForSale" db:"is_for_sale"`
	Images       JSONDocument `json:"images" db:"images"`
	Details      JSONDocument `json:"details" db:"details"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// PropertyFilter narrows a property listing.
type PropertyFilter struct {
	ForSale      *bool
	PropertyType string
	Search       string
}

// JSONDocument holds a raw jsonb column. An empty document is NULL.
type JSONDocument []byte

func (j JSONDocument) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSONDocument) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[:0], data...)
	return nil
}

func (j JSONDocument) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONDocument) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(JSONDocument(nil), v...)
	case string:
		*j = JSONDocument(v)
	default:
		return fmt.Errorf("JSONDocument: cannot scan %T", src)
	}
	return nil
}
