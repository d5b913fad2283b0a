package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/address-book/internal/model"
)

// addContact creates a record with an optional birthday and adds it to the book.
func addContact(t *testing.T, b *AddressBook, name string, birthday string) *model.Record {
	t.Helper()
	r, err := model.NewRecord(name)
	require.NoError(t, err)
	require.NoError(t, r.AddPhone("0123456789"))
	if birthday != "" {
		require.NoError(t, r.AddBirthday(birthday))
	}
	require.NoError(t, b.AddRecord(r))
	return r
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// TestAddRecordDuplicate checks that a second record with the same name is rejected and the first
// one stays untouched.
func TestAddRecordDuplicate(t *testing.T) {
	b := New()
	original := addContact(t, b, "Anna", "12.01.1990")

	duplicate, err := model.NewRecord("Anna")
	require.NoError(t, err)
	assert.ErrorIs(t, b.AddRecord(duplicate), ErrRecordAlreadyExists)

	found, err := b.Find("Anna")
	require.NoError(t, err)
	assert.Same(t, original, found)
	assert.Equal(t, 1, b.Len())
}

// TestFindAndDeleteMissing checks that unknown names are reported as not found.
func TestFindAndDeleteMissing(t *testing.T) {
	b := New()
	_, err := b.Find("Nobody")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, b.Delete("Nobody"), ErrRecordNotFound)
}

// TestDeleteKeepsOrder checks that the remaining records keep their order and can still be found
// after a record in the middle has been deleted.
func TestDeleteKeepsOrder(t *testing.T) {
	b := New()
	addContact(t, b, "Anna", "")
	addContact(t, b, "Bob", "")
	addContact(t, b, "Carl", "")
	addContact(t, b, "Dora", "")

	require.NoError(t, b.Delete("Bob"))

	var names []string
	for _, r := range b.Records() {
		names = append(names, r.Name().String())
	}
	assert.Equal(t, []string{"Anna", "Carl", "Dora"}, names)
	for _, name := range names {
		r, err := b.Find(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name().String())
	}
	_, err := b.Find("Bob")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// TestUpcomingBirthdayOnWeekday checks a birthday on a Friday inside the window.
func TestUpcomingBirthdayOnWeekday(t *testing.T) {
	b := New()
	addContact(t, b, "Anna", "12.01.1990")

	report, err := b.BirthdaysReport(day(2024, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, "12.01.2024  Contact name: Anna, phones: 0123456789", report)
}

// TestUpcomingBirthdayOnSaturday checks that a Saturday birthday moves to the next Monday.
func TestUpcomingBirthdayOnSaturday(t *testing.T) {
	b := New()
	addContact(t, b, "Bob", "13.01.1985")

	upcoming, err := b.UpcomingBirthdays(day(2024, time.January, 10))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, day(2024, time.January, 15), upcoming[0].Date)
	assert.Equal(t, "15.01.2024  Contact name: Bob, phones: 0123456789", upcoming[0].String())
}

// TestUpcomingBirthdayOnSunday checks that a Sunday birthday moves to the next day.
func TestUpcomingBirthdayOnSunday(t *testing.T) {
	b := New()
	addContact(t, b, "Bob", "14.01.1985")

	upcoming, err := b.UpcomingBirthdays(day(2024, time.January, 10))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, day(2024, time.January, 15), upcoming[0].Date)
}

// TestUpcomingBirthdayAcrossNewYear checks a window that spans the end of the year.
func TestUpcomingBirthdayAcrossNewYear(t *testing.T) {
	b := New()
	addContact(t, b, "Carl", "02.01.1970")

	upcoming, err := b.UpcomingBirthdays(day(2024, time.December, 28))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, day(2025, time.January, 2), upcoming[0].Date)
}

// TestUpcomingBirthdayShiftedOutOfWindow checks that a Saturday birthday on the last day of the
// window is moved past it and therefore left out.
func TestUpcomingBirthdayShiftedOutOfWindow(t *testing.T) {
	b := New()
	addContact(t, b, "Dora", "13.01.2000")

	upcoming, err := b.UpcomingBirthdays(day(2024, time.January, 6))
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

// TestUpcomingBirthdayWindowBounds checks that today is excluded and today plus seven days is
// included.
func TestUpcomingBirthdayWindowBounds(t *testing.T) {
	b := New()
	addContact(t, b, "Today", "10.01.1990")
	addContact(t, b, "Tomorrow", "11.01.1990")
	addContact(t, b, "LastDay", "17.01.1990")
	addContact(t, b, "TooLate", "18.01.1990")

	upcoming, err := b.UpcomingBirthdays(day(2024, time.January, 10))
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Tomorrow", upcoming[0].Record.Name().String())
	assert.Equal(t, "LastDay", upcoming[1].Record.Name().String())
}

// TestUpcomingBirthdaysInsertionOrder checks that entries follow the order of the records, not
// the order of the dates.
func TestUpcomingBirthdaysInsertionOrder(t *testing.T) {
	b := New()
	addContact(t, b, "Late", "16.01.1990")
	addContact(t, b, "NoBirthday", "")
	addContact(t, b, "Early", "11.01.1990")

	report, err := b.BirthdaysReport(day(2024, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t,
		"16.01.2024  Contact name: Late, phones: 0123456789\n"+
			"11.01.2024  Contact name: Early, phones: 0123456789",
		report)
}

// TestUpcomingBirthdayLeapDay checks 29 February in a leap year and in a common year. In a common
// year the record is skipped with an error while the other records are still reported.
func TestUpcomingBirthdayLeapDay(t *testing.T) {
	b := New()
	addContact(t, b, "Leap", "29.02.2000")
	addContact(t, b, "Regular", "27.02.1990")

	upcoming, err := b.UpcomingBirthdays(day(2024, time.February, 25))
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, day(2024, time.February, 29), upcoming[0].Date)

	upcoming, err = b.UpcomingBirthdays(day(2025, time.February, 25))
	assert.ErrorIs(t, err, model.ErrNoSuchDate)
	assert.Contains(t, err.Error(), "Leap")
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Regular", upcoming[0].Record.Name().String())
}

// TestUpcomingBirthdayLeapDayFarFromFebruary checks that a birthday on 29 February is not reported
// as skipped when the window of a common year is nowhere near the end of February.
func TestUpcomingBirthdayLeapDayFarFromFebruary(t *testing.T) {
	b := New()
	addContact(t, b, "Leap", "29.02.2000")
	addContact(t, b, "Summer", "12.07.1990")

	upcoming, err := b.UpcomingBirthdays(day(2025, time.July, 10))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Summer", upcoming[0].Record.Name().String())

	// The window 02.03.2025 - 08.03.2025 starts after 1 March.
	upcoming, err = b.UpcomingBirthdays(day(2025, time.March, 1))
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	// The window 21.02.2025 - 27.02.2025 ends before 28 February.
	_, err = b.UpcomingBirthdays(day(2025, time.February, 20))
	require.NoError(t, err)

	// The window 22.02.2025 - 28.02.2025 ends on 28 February.
	_, err = b.UpcomingBirthdays(day(2025, time.February, 21))
	assert.ErrorIs(t, err, model.ErrNoSuchDate)
}

// TestUpcomingBirthdaysIgnoresTimeOfDay checks that the clock time of today does not matter.
func TestUpcomingBirthdaysIgnoresTimeOfDay(t *testing.T) {
	b := New()
	addContact(t, b, "Anna", "17.01.1990")

	upcoming, err := b.UpcomingBirthdays(time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

// TestBirthdaysReportEmpty checks that an empty report is an empty string.
func TestBirthdaysReportEmpty(t *testing.T) {
	report, err := New().BirthdaysReport(day(2024, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, "", report)
}
