package dto

import "time"

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Message      string    `json:"message" example:"trade statistics unavailable"`
	ErrorDetails string    `json:"error_details,omitempty" example:"source I/O error: load trade statistics: connection refused"`
	Timestamp    time.Time `json:"timestamp" example:"2018-09-01T12:00:00Z"`
}

// Error implements error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(message string, err error) ErrorResponse {
	e := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		e.ErrorDetails = err.Error()
	}
	return e
}
