package pkg

// AppError is the error envelope returned by the HTTP API.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    []string
	Err        error
}

// HTTPError is the JSON body of an error response.
type HTTPError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: status}
}

// WithDetails attaches identifiers the caller has to act on.
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = append(e.Details, details...)
	return e
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ToHTTPError drops the wrapped cause; it is logged, never returned to clients.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message, Details: e.Details}
}
