package model

import "time"

// EmployeeID uniquely identifies an employee across the system.
// It is the opaque identifier printed inside the badge QR payload.
type EmployeeID string

// Employee is a directory record for a badge holder.
// Created by the badge generator; read-only to the entry flow.
type Employee struct {
	ID           EmployeeID `json:"uuid"`
	Name         string     `json:"name"`
	EmployeeCode string     `json:"employee_id,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
