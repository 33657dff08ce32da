package handler

import (
	"strconv"
	"time"

	"github.com/legacyapp/user-service/internal/core/domain"
	"github.com/legacyapp/user-service/internal/core/ports"
)

func toRegisterUserInput(req registerUserRequest) (ports.RegisterUserInput, error) {
	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return ports.RegisterUserInput{}, err
	}
	return ports.RegisterUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: dob,
		ClientID:    req.ClientID,
	}, nil
}

func toClientResponse(c domain.Client) clientResponse {
	return clientResponse{ID: c.ID, Name: c.Name, Type: c.Type.String()}
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.EmailAddress,
		DateOfBirth:    u.DateOfBirth.UTC().Format(time.DateOnly),
		Client:         toClientResponse(u.Client),
		HasCreditLimit: u.HasCreditLimit,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
		Links: userLinks{
			Self:   "/v1/users/" + u.ID,
			Client: "/v1/clients/" + strconv.Itoa(u.Client.ID),
		},
	}
	if u.HasCreditLimit {
		limit := u.CreditLimit
		resp.CreditLimit = &limit
	}
	return resp
}
