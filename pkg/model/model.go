// Package model holds the JSON documents exchanged with the address book service.
package model

// Contact is the data structure for a person that we know. The birthday, if present, is written
// as DD.MM.YYYY.
type Contact struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday *string  `json:"birthday,omitempty"`
}

// Phone is the body of requests that add or replace a phone number.
type Phone struct {
	Phone string `json:"phone"`
}

// Birthday is the body of the request that sets a birthday.
type Birthday struct {
	Birthday string `json:"birthday"`
}

// Upcoming is a contact together with the date its next birthday is celebrated on.
type Upcoming struct {
	Date    string  `json:"date"`
	Contact Contact `json:"contact"`
}

// Birthdays is the birthdays report. Skipped names the contacts whose birthday could not be placed
// in the report window.
type Birthdays struct {
	Upcoming []Upcoming `json:"upcoming"`
	Skipped  []string   `json:"skipped,omitempty"`
}
