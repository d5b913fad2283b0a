package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/dirk.krummacker/address-book/internal/model"
	apimodel "gitlab.com/dirk.krummacker/address-book/pkg/model"
)

// findContacts responds with the list of all contacts as JSON, in the order they were created.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts
func findContacts(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	records := directory.Records()
	contacts := make([]apimodel.Contact, len(records))
	for i, r := range records {
		contacts[i] = toContact(r)
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// createContact adds the contact specified in the request's JSON to the address book. Duplicate
// phones in the request are stored once. It responds with the contact as stored.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Erika", "phones": ["0815471100"], "birthday": "02.03.1969"}'
func createContact(c *gin.Context) {
	var submitted apimodel.Contact
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	record, err := model.NewRecord(submitted.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	for _, phone := range submitted.Phones {
		if err := record.AddPhone(phone); err != nil {
			abortWithError(c, err)
			return
		}
	}
	if submitted.Birthday != nil {
		if err := record.AddBirthday(*submitted.Birthday); err != nil {
			abortWithError(c, err)
			return
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if err := directory.AddRecord(record); err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, toContact(record))
}

// findContactByName responds with the contact whose name matches the name parameter of the
// request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/Erika
func findContactByName(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	record, err := directory.Find(c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, toContact(record))
}

// deleteContactByName removes the contact whose name matches the name parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/Erika --request "DELETE"
func deleteContactByName(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	if err := directory.Delete(c.Param("name")); err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

// addPhone adds the phone in the request's JSON to the contact. Adding a phone the contact already
// has changes nothing.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/Erika/phones --request "POST" --header "Content-Type: application/json" --data '{"phone": "0815471199"}'
func addPhone(c *gin.Context) {
	var submitted apimodel.Phone
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	mu.Lock()
	defer mu.Unlock()
	record, err := directory.Find(c.Param("name"))
	if err == nil {
		err = record.AddPhone(submitted.Phone)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, toContact(record))
}

// editPhone replaces the phone given in the URL by the phone in the request's JSON, keeping its
// position.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/Erika/phones/0815471100 --request "PUT" --header "Content-Type: application/json" --data '{"phone": "0815471122"}'
func editPhone(c *gin.Context) {
	var submitted apimodel.Phone
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	mu.Lock()
	defer mu.Unlock()
	record, err := directory.Find(c.Param("name"))
	if err == nil {
		err = record.EditPhone(c.Param("phone"), submitted.Phone)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, toContact(record))
}

// deletePhone removes the phone given in the URL from the contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/Erika/phones/0815471100 --request "DELETE"
func deletePhone(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	record, err := directory.Find(c.Param("name"))
	if err == nil {
		err = record.DeletePhone(c.Param("phone"))
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, toContact(record))
}

// setBirthday sets the birthday of the contact. A birthday can be set only once.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/Erika/birthday --request "PUT" --header "Content-Type: application/json" --data '{"birthday": "02.03.1969"}'
func setBirthday(c *gin.Context) {
	var submitted apimodel.Birthday
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	mu.Lock()
	defer mu.Unlock()
	record, err := directory.Find(c.Param("name"))
	if err == nil {
		err = record.AddBirthday(submitted.Birthday)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, toContact(record))
}

// findBirthdays responds with the birthdays celebrated in the seven days after the date given by
// the URL parameter 'today' (DD.MM.YYYY), or after the current date if it is omitted. Contacts
// whose birthday does not exist in the year in question are listed under 'skipped'.
//
// Example REST API calls:
//
//	> curl "http://localhost:8080/birthdays"
//	> curl "http://localhost:8080/birthdays?today=28.12.2024"
func findBirthdays(c *gin.Context) {
	today := now()
	if param := c.Query("today"); param != "" {
		parsed, err := model.ParseBirthday(param)
		if err != nil {
			abortWithError(c, err)
			return
		}
		today = parsed.Time()
	}

	mu.Lock()
	defer mu.Unlock()
	upcoming, err := directory.UpcomingBirthdays(today)
	report := apimodel.Birthdays{Upcoming: make([]apimodel.Upcoming, len(upcoming))}
	for i, u := range upcoming {
		report.Upcoming[i] = apimodel.Upcoming{
			Date:    u.Date.Format(model.DateLayout),
			Contact: toContact(u.Record),
		}
	}
	if err != nil {
		joined, ok := err.(interface{ Unwrap() []error })
		if !ok {
			abortWithError(c, err)
			return
		}
		for _, e := range joined.Unwrap() {
			if !errors.Is(e, model.ErrNoSuchDate) {
				abortWithError(c, e)
				return
			}
			report.Skipped = append(report.Skipped, e.Error())
		}
	}
	c.IndentedJSON(http.StatusOK, report)
}
