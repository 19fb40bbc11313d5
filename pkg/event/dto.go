package event

import "time"

// DTO is the JSON shape of an event shared by the catalogue and calendar endpoints.
type DTO struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Image            string    `json:"image,omitempty"`
	Type             string    `json:"type"`
	OtherTypeName    string    `json:"other_type_name,omitempty"`
	Category         string    `json:"category"`
	MinParticipants  int       `json:"minTeamParticipants"`
	MaxParticipants  int       `json:"maxTeamParticipants"`
	Location         string    `json:"location"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Price            string    `json:"price"`
	Free             bool      `json:"free"`
	Organizer        string    `json:"organizer"`
	ContactInfo      string    `json:"contact_info,omitempty"`
	RegistrationLink string    `json:"registrationLink,omitempty"`
}

func ToDTO(e Event) DTO {
	return DTO{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Image:            e.Image,
		Type:             e.Type,
		OtherTypeName:    e.OtherTypeName,
		Category:         e.Category.DisplayName(),
		MinParticipants:  e.MinParticipants,
		MaxParticipants:  e.MaxParticipants,
		Location:         e.Location,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		Price:            e.Price.StringFixed(2),
		Free:             e.IsFree(),
		Organizer:        e.Organizer,
		ContactInfo:      e.ContactInfo,
		RegistrationLink: e.RegistrationLink,
	}
}

func ToDTOs(events []Event) []DTO {
	dtos := make([]DTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, ToDTO(e))
	}
	return dtos
}
