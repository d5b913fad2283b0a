package model

import (
	"fmt"
	"slices"
	"strings"
)

// Record is the data structure for a person that we know: a name, any number of distinct phone
// numbers in the order they were added, and a birthday that can be set once.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record without phones or birthday.
func NewRecord(rawName string) (*Record, error) {
	name, err := NewName(rawName)
	if err != nil {
		return nil, err
	}
	return &Record{name: name}, nil
}

// Name returns the name of the contact.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone numbers in insertion order.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// Birthday returns the birthday and whether it has been set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends the phone unless the record already has it.
func (r *Record) AddPhone(raw string) error {
	phone, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if !slices.Contains(r.phones, phone) {
		r.phones = append(r.phones, phone)
	}
	return nil
}

// FindPhone looks up a phone by value. A missing phone is reported by the boolean, not by the
// error, which is only set when raw is not a valid phone.
func (r *Record) FindPhone(raw string) (Phone, bool, error) {
	phone, err := NewPhone(raw)
	if err != nil {
		return Phone{}, false, err
	}
	i := slices.Index(r.phones, phone)
	if i < 0 {
		return Phone{}, false, nil
	}
	return r.phones[i], true, nil
}

// DeletePhone removes the phone from the record.
func (r *Record) DeletePhone(raw string) error {
	phone, err := NewPhone(raw)
	if err != nil {
		return err
	}
	i := slices.Index(r.phones, phone)
	if i < 0 {
		return &PhoneNotFoundError{Phone: phone}
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw by newRaw at the same position. Both values are validated before the
// record is touched. If the record already holds newRaw elsewhere, oldRaw is removed instead so that
// every phone is stored once.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	oldPhone, err := NewPhone(oldRaw)
	if err != nil {
		return err
	}
	newPhone, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	i := slices.Index(r.phones, oldPhone)
	if i < 0 {
		return &PhoneNotFoundError{Phone: oldPhone}
	}
	if j := slices.Index(r.phones, newPhone); j >= 0 {
		if j != i {
			r.phones = slices.Delete(r.phones, i, i+1)
		}
		return nil
	}
	r.phones[i] = newPhone
	return nil
}

// AddBirthday sets the birthday. A birthday that is already set is never overwritten.
func (r *Record) AddBirthday(raw string) error {
	if r.birthday != nil {
		return fmt.Errorf("%s: %w", r.name, ErrBirthdayAlreadySet)
	}
	birthday, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &birthday
	return nil
}

// SetBirthday is AddBirthday for an already validated value.
func (r *Record) SetBirthday(birthday Birthday) error {
	if r.birthday != nil {
		return fmt.Errorf("%s: %w", r.name, ErrBirthdayAlreadySet)
	}
	r.birthday = &birthday
	return nil
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(phones, "; "))
}
