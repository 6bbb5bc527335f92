// Package models defines the wire and storage types of the classification
// domain.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	Value string `json:"value"`
}

// Classification is the outcome returned to clients. Scheme is one of the
// recognized badge labels (DOI, ARK, arXiv, bibcode, CSTR, Handle, URL,
// unknown).
type Classification struct {
	Scheme          string `json:"scheme"`
	NormalizedValue string `json:"normalizedValue"`
}

// BatchClassifyRequest is the body of POST /classify/batch.
type BatchClassifyRequest struct {
	Values []string `json:"values"`
}

// BatchClassifyResponse carries one result per submitted value, in order.
type BatchClassifyResponse struct {
	Results []Classification `json:"results"`
}

// SchemesResponse lists the recognized scheme labels for override dropdowns.
type SchemesResponse struct {
	Schemes []string `json:"schemes"`
}

// Record is one classification history entry.
type Record struct {
	ID              uuid.UUID `json:"id"`
	RawValue        string    `json:"rawValue"`
	Scheme          string    `json:"scheme"`
	NormalizedValue string    `json:"normalizedValue"`
	CreatedAt       time.Time `json:"createdAt"`
}

// HistoryResponse is the body of GET /admin/history.
type HistoryResponse struct {
	Records []Record `json:"records"`
}

// PurgeResponse is the body of DELETE /admin/history.
type PurgeResponse struct {
	Purged int64 `json:"purged"`
}
