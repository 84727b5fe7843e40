package docs

// swagger:parameters findEventById updateEvent deactivateEvent enroll cancelEnrollment listUserEvents listEventAttendees deactivateUser
type IdParam struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:response
type Error struct {
	// The error message
	//in: body
	Message string
}
