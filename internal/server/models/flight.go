package models

// Schedule holds the standard departure (std) and arrival (sta) instants
// as ISO-8601 strings, kept exactly as submitted.
type Schedule struct {
	STD string `json:"std" validate:"required,iso8601"`
	STA string `json:"sta" validate:"required,iso8601"`
}

// Flight is a booking owned by exactly one user. UserID is set on creation
// and never changes.
type Flight struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	Aircraft     string   `json:"aircraft"`
	FlightNumber string   `json:"flightNumber"`
	Schedule     Schedule `json:"schedule"`
	Departure    string   `json:"departure"`
	Destination  string   `json:"destination"`
}

// FlightPayload carries every mutable field of a flight. It is used both
// for creation and for full replacement on update.
type FlightPayload struct {
	Aircraft     string   `json:"aircraft" validate:"required,max=10"`
	FlightNumber string   `json:"flightNumber" validate:"required,max=10"`
	Schedule     Schedule `json:"schedule" validate:"required"`
	Departure    string   `json:"departure" validate:"required,len=4"`
	Destination  string   `json:"destination" validate:"required,len=4"`
}

// Apply overwrites the mutable fields of f with p.
func (p FlightPayload) Apply(f *Flight) {
	f.Aircraft = p.Aircraft
	f.FlightNumber = p.FlightNumber
	f.Schedule = p.Schedule
	f.Departure = p.Departure
	f.Destination = p.Destination
}
