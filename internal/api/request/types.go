// Package request defines API request body types
package request

// ScanRequest carries a decoded badge payload from the client-side
// scanner. Image uploads use multipart form data instead.
type ScanRequest struct {
	Payload string `json:"payload"`
}

// SelectGameRequest picks one game from the fixed list
type SelectGameRequest struct {
	Game string `json:"game"`
}

// AddEmployeeRequest stages one employee in a badge batch
type AddEmployeeRequest struct {
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_id,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ContactRequest is the contact/quote form body
type ContactRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Consent  bool   `json:"consent"`
	Source   string `json:"source,omitempty"`
}
