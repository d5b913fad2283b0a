package assistant

import (
	"errors"
	"strings"

	"gitlab.com/dirk.krummacker/address-book/internal/model"
)

// addContact creates a new contact with one phone.
func (a *Assistant) addContact(args []string) (string, error) {
	r, err := model.NewRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(args[1]); err != nil {
		return "", err
	}
	if err := a.book.AddRecord(r); err != nil {
		return "", err
	}
	return "Contact added.", nil
}

// addPhone adds one more phone to an existing contact.
func (a *Assistant) addPhone(args []string) (string, error) {
	r, err := a.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(args[1]); err != nil {
		return "", err
	}
	return "Phone added.", nil
}

// changeContact with two arguments replaces the first phone of the contact, whichever phone the
// user had in mind. With three arguments it replaces the given phone.
func (a *Assistant) changeContact(args []string) (string, error) {
	r, err := a.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if len(args) == 3 {
		err = r.EditPhone(args[1], args[2])
	} else {
		phones := r.Phones()
		if len(phones) == 0 {
			return noPhoneToEdit, nil
		}
		err = r.EditPhone(phones[0].String(), args[1])
	}
	if err != nil {
		return "", err
	}
	return "Contact changed.", nil
}

func (a *Assistant) deletePhone(args []string) (string, error) {
	r, err := a.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.DeletePhone(args[1]); err != nil {
		return "", err
	}
	return "Phone deleted.", nil
}

func (a *Assistant) showContact(args []string) (string, error) {
	r, err := a.book.Find(args[0])
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (a *Assistant) deleteContact(args []string) (string, error) {
	if err := a.book.Delete(args[0]); err != nil {
		return "", err
	}
	return "Contact deleted.", nil
}

// allContacts lists every contact, one per line.
func (a *Assistant) allContacts([]string) (string, error) {
	if a.book.Len() == 0 {
		return noContacts, nil
	}
	records := a.book.Records()
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) addBirthday(args []string) (string, error) {
	r, err := a.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

func (a *Assistant) showBirthday(args []string) (string, error) {
	r, err := a.book.Find(args[0])
	if err != nil {
		return "", err
	}
	birthday, ok := r.Birthday()
	if !ok {
		return noBirthday, nil
	}
	return birthday.String(), nil
}

// birthdays reports the upcoming birthdays. Records whose birthday cannot be placed in the window
// are listed after the report instead of failing the whole command.
func (a *Assistant) birthdays([]string) (string, error) {
	report, err := a.book.BirthdaysReport(a.now())
	var lines []string
	if report != "" {
		lines = append(lines, report)
	}
	if err != nil {
		for _, e := range unwrapAll(err) {
			if !errors.Is(e, model.ErrNoSuchDate) {
				return "", err
			}
			lines = append(lines, Message(e))
		}
	}
	if len(lines) == 0 {
		return noBirthdays, nil
	}
	return strings.Join(lines, "\n"), nil
}

// unwrapAll returns the errors joined in err, or err itself.
func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
