package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// registerUserRequest leaves the name, email and client checks to the
// registration gates so that they surface as rejections rather than payload
// errors. Only the date has to parse.
type registerUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	ClientID    int    `json:"client_id"`
}

type clientResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type userLinks struct {
	Self   string `json:"self"`
	Client string `json:"client"`
}

type userResponse struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email"`
	DateOfBirth    string         `json:"date_of_birth"`
	Client         clientResponse `json:"client"`
	HasCreditLimit bool           `json:"has_credit_limit"`
	CreditLimit    *int           `json:"credit_limit,omitempty"`
	CreatedAt      string         `json:"created_at"`
	Links          userLinks      `json:"_links"`
}
