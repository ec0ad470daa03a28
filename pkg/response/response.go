package response

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	// Warning carries a non-blocking problem (e.g. a failed persistence
	// write) alongside an otherwise successful result.
	Warning string `json:"warning,omitempty"`
	// Fields carries per-field validation messages for 422 responses.
	Fields map[string]string `json:"fields,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// SuccessWithWarning returns a success response that still surfaces a
// non-fatal problem to the user.
func SuccessWithWarning(statusCode int, data interface{}, warning string) Response {
	resp := Success(statusCode, data)
	resp.Warning = warning
	return resp
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ValidationFailed returns an error response carrying the field-error mapping
// the form surface renders inline.
func ValidationFailed(statusCode int, fields map[string]string) Response {
	resp := Error(statusCode, "validation failed")
	resp.Fields = fields
	return resp
}
