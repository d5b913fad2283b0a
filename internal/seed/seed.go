// Package seed imports contacts from the MySQL contacts table into an address book. The database
// is only read; nothing in the address book is ever written back.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/address-book/internal/book"
	"gitlab.com/dirk.krummacker/address-book/internal/model"
)

// selectContacts reads the contacts in the order they were created.
const selectContacts = `
	SELECT name, phone, birthday
	FROM contacts
	ORDER BY id`

// row is one line of the contacts table. All columns are nullable.
type row struct {
	Name     *string    `db:"name"`
	Phone    *string    `db:"phone"`
	Birthday *time.Time `db:"birthday"`
}

// Result counts what an import did.
type Result struct {
	Rows    int // rows read
	Created int // records added to the book
	Skipped int // rows rejected by validation
}

// Open connects to the MySQL database given by dsn.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to seed database: %w", err)
	}
	return db, nil
}

// Load adds the contacts of the database to b. Several rows with the same name are merged into one
// record: their phones are added in order and the first birthday wins. Rows that do not validate
// are logged and skipped; only database errors abort the import.
func Load(ctx context.Context, db *sqlx.DB, b *book.AddressBook, log *zap.Logger) (Result, error) {
	var rows []row
	if err := db.SelectContext(ctx, &rows, selectContacts); err != nil {
		return Result{}, fmt.Errorf("selecting contacts: %w", err)
	}

	result := Result{Rows: len(rows)}
	for i, r := range rows {
		created, err := apply(b, r)
		if err != nil {
			result.Skipped++
			log.Warn("skipping contact row", zap.Int("row", i), zap.Error(err))
			continue
		}
		if created {
			result.Created++
		}
	}
	log.Info("contacts imported",
		zap.Int("rows", result.Rows),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// apply merges one row into the book and reports whether a new record was created.
func apply(b *book.AddressBook, r row) (bool, error) {
	if r.Name == nil {
		return false, fmt.Errorf("name: %w", model.ErrEmptyField)
	}
	name, err := model.NewName(*r.Name)
	if err != nil {
		return false, err
	}
	record, err := b.Find(name.String())
	created := errors.Is(err, book.ErrRecordNotFound)
	if created {
		record, err = model.NewRecord(name.String())
	}
	if err != nil {
		return false, err
	}

	// Validate everything before the record is changed.
	var phone model.Phone
	if r.Phone != nil {
		if phone, err = model.NewPhone(*r.Phone); err != nil {
			return false, err
		}
	}

	if r.Phone != nil {
		if err := record.AddPhone(phone.String()); err != nil {
			return false, err
		}
	}
	if r.Birthday != nil {
		err := record.SetBirthday(model.BirthdayFromTime(*r.Birthday))
		if err != nil && !errors.Is(err, model.ErrBirthdayAlreadySet) {
			return false, err
		}
	}
	if created {
		if err := b.AddRecord(record); err != nil {
			return false, err
		}
	}
	return created, nil
}

// Import connects to the database given by dsn, loads its contacts into b and disconnects.
func Import(ctx context.Context, dsn string, b *book.AddressBook, log *zap.Logger) (Result, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return Result{}, err
	}
	defer db.Close()
	return Load(ctx, db, b, log)
}
