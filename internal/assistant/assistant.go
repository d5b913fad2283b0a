// Package assistant is the command layer of the address book. It turns a line of text into a call
// on the address book and the outcome, successful or not, into a line of text.
package assistant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/address-book/internal/book"
	"gitlab.com/dirk.krummacker/address-book/internal/model"
)

// ErrMissingArgument is returned when a command gets the wrong number of arguments.
var ErrMissingArgument = errors.New("wrong number of arguments")

const (
	greeting      = "Welcome to the assistant bot!"
	prompt        = "Enter a command: "
	farewell      = "Good bye!"
	invalidInput  = "Invalid command."
	noContacts    = "The list of contacts is empty."
	noBirthday    = "No information yet"
	noBirthdays   = "No birthdays in the next week."
	noPhoneToEdit = "No phone to change."
)

const helpText = `Commands:
  hello                            greet the assistant
  add <name> <phone>               create a contact with one phone
  add-phone <name> <phone>         add another phone to a contact
  change <name> <phone>            replace the first phone of a contact
  change <name> <old> <new>        replace a specific phone of a contact
  delete-phone <name> <phone>      remove a phone from a contact
  phone <name>                     show a contact
  delete <name>                    remove a contact
  all                              show all contacts
  add-birthday <name> <DD.MM.YYYY> set the birthday of a contact
  show-birthday <name>             show the birthday of a contact
  birthdays                        show birthdays of the next seven days
  close, exit                      leave`

// command describes how many arguments a command takes and what it does. A maxArgs of -1 means
// that surplus arguments are ignored.
type command struct {
	minArgs int
	maxArgs int
	run     func(a *Assistant, args []string) (string, error)
}

var commands = map[string]command{
	"hello":         {0, -1, func(*Assistant, []string) (string, error) { return "How can I help you?", nil }},
	"help":          {0, -1, func(*Assistant, []string) (string, error) { return helpText, nil }},
	"add":           {2, 2, (*Assistant).addContact},
	"add-phone":     {2, 2, (*Assistant).addPhone},
	"change":        {2, 3, (*Assistant).changeContact},
	"delete-phone":  {2, 2, (*Assistant).deletePhone},
	"phone":         {1, -1, (*Assistant).showContact},
	"delete":        {1, 1, (*Assistant).deleteContact},
	"all":           {0, -1, (*Assistant).allContacts},
	"add-birthday":  {2, 2, (*Assistant).addBirthday},
	"show-birthday": {1, -1, (*Assistant).showBirthday},
	"birthdays":     {0, -1, (*Assistant).birthdays},
}

// Assistant answers commands against one address book.
type Assistant struct {
	book *book.AddressBook
	log  *zap.Logger
	now  func() time.Time
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock replaces the clock used to determine today for the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(log *zap.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// New returns an assistant working on b.
func New(b *book.AddressBook, opts ...Option) *Assistant {
	a := &Assistant{book: b, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ParseInput splits a line into a lower-case command name and its arguments.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Handle executes one line of input and returns the reply. The boolean is true when the session
// should end. Blank lines produce an empty reply.
func (a *Assistant) Handle(line string) (string, bool) {
	name, args := ParseInput(line)
	switch name {
	case "":
		return "", false
	case "close", "exit":
		return farewell, true
	}
	cmd, ok := commands[name]
	if !ok {
		a.log.Debug("unknown command", zap.String("command", name))
		return invalidInput, false
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return Message(fmt.Errorf("%s: %w", name, ErrMissingArgument)), false
	}
	reply, err := cmd.run(a, args)
	if err != nil {
		a.log.Info("command failed", zap.String("command", name), zap.Error(err))
		return Message(err), false
	}
	a.log.Debug("command done", zap.String("command", name), zap.Int("args", len(args)))
	return reply, false
}

// Message converts an error returned by a command into the line shown to the user.
func Message(err error) string {
	var phoneErr *model.PhoneNotFoundError
	switch {
	case errors.Is(err, ErrMissingArgument):
		return "Enter the argument for the command."
	case errors.Is(err, model.ErrEmptyField):
		return "Name is empty"
	case errors.Is(err, model.ErrInvalidPhone):
		return "Phone number must contain ten digits"
	case errors.Is(err, model.ErrInvalidDateFormat):
		return "Invalid date format. Use DD.MM.YYYY"
	case errors.Is(err, model.ErrBirthdayAlreadySet):
		return "Birthday is already set"
	case errors.As(err, &phoneErr):
		return fmt.Sprintf("Phone %s is not exist", phoneErr.Phone)
	case errors.Is(err, model.ErrPhoneNotFound):
		return "Phone is not exist"
	case errors.Is(err, model.ErrNoSuchDate):
		return "Skipped " + err.Error()
	case errors.Is(err, book.ErrRecordAlreadyExists):
		return "Record is already exist"
	case errors.Is(err, book.ErrRecordNotFound):
		return "No such contact exists."
	default:
		return "Unexpected error: " + err.Error()
	}
}
