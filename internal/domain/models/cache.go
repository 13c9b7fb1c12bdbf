package models

import "time"

// CacheEntry is the document shape of the provisioned cache table.
type CacheEntry struct {
	CID       string    `json:"cid" bson:"cid"`
	Value     []byte    `json:"value" bson:"value"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}
