package qr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tirehaus/arcade/internal/model"
)

// Payload is the wire format carried inside a badge QR code.
// uuid and name are required; empId is optional and always present
// in encoded output so a generated badge round-trips exactly.
type Payload struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	EmpID string `json:"empId"`
}

// ParsePayload decodes a scanned text payload. Any shape other than a
// JSON object with non-empty uuid and name fields is malformed.
func ParsePayload(text string) (*Payload, error) {
	var p Payload
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}
	if strings.TrimSpace(p.UUID) == "" {
		return nil, fmt.Errorf("%w: missing uuid", model.ErrMalformedPayload)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: missing name", model.ErrMalformedPayload)
	}
	return &p, nil
}

// PayloadForEmployee builds the badge payload for an employee record
func PayloadForEmployee(e *model.Employee) *Payload {
	return &Payload{
		UUID:  string(e.ID),
		Name:  e.Name,
		EmpID: e.EmployeeCode,
	}
}

// Encode serializes the payload to its wire form
func (p *Payload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
