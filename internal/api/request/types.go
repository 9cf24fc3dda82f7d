package request

// RegisterRequest is the request body for registering a visitor
type RegisterRequest struct {
	VisitorID string `json:"visitor_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}
