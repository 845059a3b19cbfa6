package middleware

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserNiche = "user_niche"
	ContextKeyRequestID = "request_id"
)
