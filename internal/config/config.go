package config

import "time"

const (
	// Auth
	BcryptCost     = 10
	TokenTTL       = 72 * time.Hour
	TokenIssuer    = "homechefs-service"
	MinPasswordLen = 8

	// Messaging
	NotifyPollInterval = 5 * time.Second
	MessageChannel     = "homechefs:messages"

	// Orders
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusDeclined  = "declined"
	OrderStatusCompleted = "completed"

	// Catalog
	VisibilityPublic  = "Public"
	VisibilityPrivate = "Private"
)
