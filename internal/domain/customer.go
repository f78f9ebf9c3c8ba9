package domain

// Customer is a single customer record. ID is zero until the store assigns one.
type Customer struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// PhoneOrEmpty returns the phone number, or "" when none was recorded.
func (c Customer) PhoneOrEmpty() string {
	if c.Phone == nil {
		return ""
	}
	return *c.Phone
}

// HasPhone reports whether a phone number was recorded.
func (c Customer) HasPhone() bool {
	return c.Phone != nil
}
