package domain

import "time"

// ServiceCatalogItem is an administrator-maintained tuning option. Price and
// active flag are mutable; edits never affect jobs already created, because
// jobs carry their own priced snapshot.
type ServiceCatalogItem struct {
	ID         int32     `json:"id"`
	Code       string    `json:"code"` // unique, stable, e.g. "STAGE_1"
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Active     bool      `json:"active"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// PricedItem is one line of a job's immutable price snapshot, captured from
// the catalog at creation time.
type PricedItem struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}
