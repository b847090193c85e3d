package domain

// ResponseState classifies a raw model answer before it is returned to the caller
type ResponseState int

const (
	// StateIncomplete means the answer was too short to trust and gets replaced
	StateIncomplete ResponseState = iota
	// StateMissingSection means the answer lacks both section headers and gets the item list appended
	StateMissingSection
	// StateComplete means the answer is returned as is
	StateComplete
)

func (s ResponseState) String() string {
	switch s {
	case StateIncomplete:
		return "incomplete"
	case StateMissingSection:
		return "missing_section"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// MarshalText encodes the state by name so it reads as a string in JSON
func (s ResponseState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FashionResponse is the validated description returned for a match
type FashionResponse struct {
	Text       string        `json:"response"`
	Header     string        `json:"section"`
	ExactMatch bool          `json:"exactMatch"`
	State      ResponseState `json:"state"`
}
