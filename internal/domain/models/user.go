// Package models contains domain models for the chat service.
package models

import "time"

// User represents a registered chat user.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Mail      string    `json:"mail" bson:"mail"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Password  string    `json:"-" bson:"password,omitempty"`
	Avatar    string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
