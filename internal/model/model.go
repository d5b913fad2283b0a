// Package model holds the validated values a contact is made of and the contact record itself.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the only text form in which birthdays are read and written.
const DateLayout = "02.01.2006"

// phoneLength is the number of characters a phone number must have.
const phoneLength = 10

var (
	ErrEmptyField         = errors.New("field is empty")
	ErrInvalidPhone       = errors.New("phone number must contain ten digits")
	ErrInvalidDateFormat  = errors.New("invalid date format, use DD.MM.YYYY")
	ErrBirthdayAlreadySet = errors.New("birthday is already set")
	ErrPhoneNotFound      = errors.New("phone not found")

	// ErrNoSuchDate is returned when a recurring month and day does not exist in a given year,
	// which only happens for 29 February.
	ErrNoSuchDate = errors.New("date does not exist in that year")
)

// PhoneNotFoundError reports which phone could not be found on a record. It matches
// ErrPhoneNotFound with errors.Is.
type PhoneNotFoundError struct {
	Phone Phone
}

func (e *PhoneNotFoundError) Error() string {
	return fmt.Sprintf("phone %s: %s", e.Phone, ErrPhoneNotFound)
}

func (e *PhoneNotFoundError) Is(target error) bool {
	return target == ErrPhoneNotFound
}

// Name is the trimmed, non-empty name of a contact. It is the key of a record in an address book.
type Name struct {
	value string
}

// NewName trims the raw value and rejects it if nothing is left.
func NewName(raw string) (Name, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Name{}, fmt.Errorf("name: %w", ErrEmptyField)
	}
	return Name{value: name}, nil
}

func (n Name) String() string { return n.value }

// Phone is a phone number of exactly ten characters. Phones are compared by value, so two phones
// built from the same trimmed text are equal with ==.
type Phone struct {
	value string
}

// NewPhone trims the raw value and checks its length. The characters themselves are not checked.
func NewPhone(raw string) (Phone, error) {
	phone := strings.TrimSpace(raw)
	if utf8.RuneCountInString(phone) != phoneLength {
		return Phone{}, fmt.Errorf("%q: %w", phone, ErrInvalidPhone)
	}
	return Phone{value: phone}, nil
}

// MustPhone is like NewPhone but panics on invalid input. Use it for constants and in tests.
func MustPhone(raw string) Phone {
	p, err := NewPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Phone) String() string { return p.value }

// Birthday is a calendar date without time of day.
type Birthday struct {
	date time.Time
}

// ParseBirthday reads a date in the DD.MM.YYYY form. Anything else, including single-digit days or
// months and dates that do not exist in the calendar, is rejected.
func ParseBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Birthday{}, fmt.Errorf("%q: %w", raw, ErrInvalidDateFormat)
	}
	return Birthday{date: t}, nil
}

// BirthdayFromTime keeps the calendar date of t and drops everything else.
func BirthdayFromTime(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Month returns the month of the birthday.
func (b Birthday) Month() time.Month { return b.date.Month() }

// Day returns the day of the month of the birthday.
func (b Birthday) Day() int { return b.date.Day() }

// Time returns the birthday as midnight UTC.
func (b Birthday) Time() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(DateLayout) }

// DateIn builds the date of the given year on which month and day fall. Unlike time.Date it does
// not normalise, so 29 February in a common year is an ErrNoSuchDate.
func DateIn(year int, month time.Month, day int) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%02d.%02d.%04d: %w", day, month, year, ErrNoSuchDate)
	}
	return t, nil
}
