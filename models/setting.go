package models

// Setting is the single platform settings row (maintenance and registration
// switches consulted by the auth handlers).
type Setting struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	Name           string `json:"name"`
	Company        string `json:"company"`
	Maintenance    bool   `json:"maintenance"`
	ClosedRegister bool   `json:"closed_register"`
}
