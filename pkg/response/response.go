package response

// Envelope is the body shape of every CRUD endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func Success(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// Error builds a failed envelope carrying a detail payload.
func Error(message string, detail any) Envelope {
	return Envelope{Success: false, Message: message, Error: detail}
}
