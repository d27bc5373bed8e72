package dto

import (
	"strings"

	"github.com/spec-kit/dreamhome-service/internal/domain"
)

// CreateClientRequest payload for POST /client. Only clientNo is required.
type CreateClientRequest struct {
	ClientNo  string  `json:"clientNo"`
	FirstName *string `json:"fname"`
	LastName  *string `json:"lname"`
	Telephone *string `json:"telno"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	Email     *string `json:"email"`
	PrefType  *string `json:"preftype"`
	MaxRent   Amount  `json:"maxrent"`
}

// ToDomain maps the request; blank optional strings are stored as NULL.
func (r CreateClientRequest) ToDomain() *domain.Client {
	return &domain.Client{
		ClientNo:  strings.TrimSpace(r.ClientNo),
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Telephone: nonBlank(r.Telephone),
		Street:    nonBlank(r.Street),
		City:      nonBlank(r.City),
		Email:     nonBlank(r.Email),
		PrefType:  nonBlank(r.PrefType),
		MaxRent:   r.MaxRent.Ptr(),
	}
}

// UpdateClientRequest payload for PUT /client.
type UpdateClientRequest struct {
	ClientNo  string  `json:"clientno"`
	Telephone *string `json:"telno"`
	Email     *string `json:"email"`
	PrefType  *string `json:"preftype"`
	MaxRent   Amount  `json:"maxrent"`
}

// ToDomain maps the request; blank strings leave the stored values untouched.
func (r UpdateClientRequest) ToDomain() domain.ClientUpdate {
	return domain.ClientUpdate{
		ClientNo:  strings.TrimSpace(r.ClientNo),
		Telephone: nonBlank(r.Telephone),
		Email:     nonBlank(r.Email),
		PrefType:  nonBlank(r.PrefType),
		MaxRent:   r.MaxRent.Ptr(),
	}
}

// ClientResponse is the list view of a client.
type ClientResponse struct {
	ClientID   string   `json:"client_id"`
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	Telephone  *string  `json:"telephone"`
	Street     *string  `json:"street"`
	City       *string  `json:"city"`
	Email      *string  `json:"email"`
	PreferType *string  `json:"prefer_type"`
	MaxRent    *float64 `json:"max_rent"`
}

// NewClientResponse maps a domain client.
func NewClientResponse(c domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:   c.ClientNo,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Telephone:  c.Telephone,
		Street:     c.Street,
		City:       c.City,
		Email:      c.Email,
		PreferType: c.PrefType,
		MaxRent:    c.MaxRent,
	}
}
