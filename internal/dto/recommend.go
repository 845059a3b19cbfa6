package dto

import "github.com/tofind/freelead/internal/entity"

// RecommendRequest is the payload for a geographic business search.
type RecommendRequest struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Niche  string  `json:"niche"`
	Radius int     `json:"radius,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// NextBatchRequest re-paginates a previously returned batch without
// re-running discovery.
type NextBatchRequest struct {
	AllBusinesses []entity.RankedBusiness `json:"allBusinesses"`
	Offset        int                     `json:"offset"`
	Niche         string                  `json:"niche,omitempty"`
}

// BatchMetadata describes pagination state for a ranked batch.
type BatchMetadata struct {
	TotalFound    int    `json:"totalFound"`
	HasMore       bool   `json:"hasMore"`
	NextOffset    int    `json:"nextOffset"`
	CurrentOffset int    `json:"currentOffset"`
	Radius        int    `json:"radius,omitempty"`
	Niche         string `json:"niche"`
}

// RecommendResponse carries one page of ranked businesses plus the full
// batch so clients can page without another search.
type RecommendResponse struct {
	Businesses    []entity.RankedBusiness `json:"businesses"`
	Metadata      BatchMetadata           `json:"metadata"`
	AllBusinesses []entity.RankedBusiness `json:"allBusinesses"`
}
