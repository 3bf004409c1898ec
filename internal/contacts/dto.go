package contacts

import "time"

// ContactResponse is the outward-facing representation of a contact.
type ContactResponse struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Role                 string    `json:"role"`
	Company              string    `json:"company"`
	Email                string    `json:"email"`
	LinkedIn             string    `json:"linkedin"`
	Status               string    `json:"status"`
	RelationshipStrength string    `json:"relationshipStrength"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ContactRequest is the inbound payload for creating or updating a contact.
type ContactRequest struct {
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Company              string `json:"company"`
	Email                string `json:"email"`
	LinkedIn             string `json:"linkedin"`
	Status               string `json:"status"`
	RelationshipStrength string `json:"relationshipStrength"`
	Notes                string `json:"notes"`
}

func toResponse(contact Contact) ContactResponse {
	return ContactResponse{
		ID:                   contact.ID,
		Name:                 contact.Name,
		Role:                 contact.Role,
		Company:              contact.Company,
		Email:                contact.Email,
		LinkedIn:             contact.LinkedIn,
		Status:               string(contact.Status),
		RelationshipStrength: string(contact.RelationshipStrength),
		Notes:                contact.Notes,
		CreatedAt:            contact.CreatedAt,
		UpdatedAt:            contact.UpdatedAt,
	}
}

func fromRequest(req ContactRequest) Contact {
	return Contact{
		Name:                 req.Name,
		Role:                 req.Role,
		Company:              req.Company,
		Email:                req.Email,
		LinkedIn:             req.LinkedIn,
		Status:               Status(req.Status),
		RelationshipStrength: Strength(req.RelationshipStrength),
		Notes:                req.Notes,
	}
}
