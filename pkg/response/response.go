package response

// Envelope is the standard JSON body returned by every endpoint.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Errors     []ValidationError `json:"errors,omitempty"`
	Count      *int64            `json:"count,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination echoes the page window applied to a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Success wraps data in a success envelope.
func Success(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// List wraps a page of results together with the total count.
func List(data interface{}, total int64, page, limit int) Envelope {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Envelope{
		Success: true,
		Data:    data,
		Count:   &total,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// Error wraps an error message in a failure envelope.
func Error(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// ValidationFailed wraps field-level validation errors.
func ValidationFailed(errs []ValidationError) Envelope {
	return Envelope{Success: false, Error: "Validation failed", Errors: errs}
}
