// Package book implements the address book: the records of all contacts, keyed by name, in the
// order in which they were added.
package book

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gitlab.com/dirk.krummacker/address-book/internal/model"
)

var (
	ErrRecordAlreadyExists = errors.New("record already exists")
	ErrRecordNotFound      = errors.New("record not found")
)

// lookahead is the number of days after today that the birthdays report covers.
const lookahead = 7

// AddressBook maps contact names to records. It is not safe for concurrent use.
type AddressBook struct {
	index   map[string]int
	records []*model.Record
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{index: make(map[string]int)}
}

// AddRecord stores the record under its name.
func (b *AddressBook) AddRecord(r *model.Record) error {
	name := r.Name().String()
	if _, ok := b.index[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrRecordAlreadyExists)
	}
	b.index[name] = len(b.records)
	b.records = append(b.records, r)
	return nil
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*model.Record, error) {
	i, ok := b.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrRecordNotFound)
	}
	return b.records[i], nil
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) error {
	i, ok := b.index[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrRecordNotFound)
	}
	delete(b.index, name)
	b.records = slices.Delete(b.records, i, i+1)
	for j := i; j < len(b.records); j++ {
		b.index[b.records[j].Name().String()] = j
	}
	return nil
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*model.Record { return slices.Clone(b.records) }

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// Upcoming is a birthday that falls into the report window, on the day it will be celebrated.
type Upcoming struct {
	Date   time.Time
	Record *model.Record
}

func (u Upcoming) String() string {
	return u.Date.Format(model.DateLayout) + "  " + u.Record.String()
}

// UpcomingBirthdays returns the birthdays celebrated in the seven days after today. A birthday on a
// Saturday or Sunday is celebrated the following Monday, so it may be moved into or out of the
// window. Entries are in insertion order of the records, not in date order.
//
// A birthday on 29 February has no date in a common year. Such records are left out. When the
// window covers 28 February or 1 March of that year, the returned error names them, wrapping
// model.ErrNoSuchDate once per record; the other entries are returned regardless.
func (b *AddressBook) UpcomingBirthdays(today time.Time) ([]Upcoming, error) {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	firstDay := today.AddDate(0, 0, 1)
	lastDay := today.AddDate(0, 0, lookahead)

	var upcoming []Upcoming
	var errs []error
	for _, r := range b.records {
		birthday, ok := r.Birthday()
		if !ok {
			continue
		}
		date, ok, err := celebration(birthday, firstDay, lastDay)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
			continue
		}
		if ok && !date.Before(firstDay) && !date.After(lastDay) {
			upcoming = append(upcoming, Upcoming{Date: date, Record: r})
		}
	}
	return upcoming, errors.Join(errs...)
}

// celebration places the birthday in the year of firstDay, or in the year of lastDay if it has
// already passed, and moves weekend dates to the next Monday. It reports false when the birthday
// has no date in that year; the error is set only if the missing date borders the window.
func celebration(birthday model.Birthday, firstDay, lastDay time.Time) (time.Time, bool, error) {
	date, err := model.DateIn(firstDay.Year(), birthday.Month(), birthday.Day())
	if err != nil || date.Before(firstDay) {
		date, err = model.DateIn(lastDay.Year(), birthday.Month(), birthday.Day())
		if err != nil {
			if bordersWindow(lastDay.Year(), birthday, firstDay, lastDay) {
				return time.Time{}, false, err
			}
			return time.Time{}, false, nil
		}
	}
	switch date.Weekday() {
	case time.Saturday:
		date = date.AddDate(0, 0, 2)
	case time.Sunday:
		date = date.AddDate(0, 0, 1)
	}
	return date, true, nil
}

// bordersWindow reports whether the day before or the day after the missing birthday of year lies
// in [firstDay, lastDay].
func bordersWindow(year int, birthday model.Birthday, firstDay, lastDay time.Time) bool {
	// time.Date normalises the missing day, so day-1 and day+1 land on its neighbours.
	for _, offset := range []int{-1, 1} {
		d := time.Date(year, birthday.Month(), birthday.Day()+offset, 0, 0, 0, 0, time.UTC)
		if !d.Before(firstDay) && !d.After(lastDay) {
			return true
		}
	}
	return false
}

// BirthdaysReport renders UpcomingBirthdays one entry per line.
func (b *AddressBook) BirthdaysReport(today time.Time) (string, error) {
	upcoming, err := b.UpcomingBirthdays(today)
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = u.String()
	}
	return strings.Join(lines, "\n"), err
}
