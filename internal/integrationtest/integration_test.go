package integrationtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/address-book/internal/assistant"
	"gitlab.com/dirk.krummacker/address-book/internal/book"
	"gitlab.com/dirk.krummacker/address-book/internal/service"
)

// TestContactHappyPath tests a POST, GET, PUT, and DELETE with valid data against the service.
func TestContactHappyPath(t *testing.T) {
	service.SetupDirectory(book.New(), nil)
	gin.SetMode(gin.ReleaseMode)
	router := service.SetupHttpRouter(false)

	// test the endpoint for creating a contact
	postRecorder := httptest.NewRecorder()
	postRequest, _ := http.NewRequest("POST", "/contacts", strings.NewReader(`
		{
			"name": "Erika",
			"phones": ["4908154711"],
			"birthday": "02.03.1969"
		}
	`))
	router.ServeHTTP(postRecorder, postRequest)
	assert.Equal(t, http.StatusCreated, postRecorder.Code)
	var postBody map[string]interface{}
	json.Unmarshal(postRecorder.Body.Bytes(), &postBody)
	assert.Equal(t, "Erika", postBody["name"])
	assert.Equal(t, []interface{}{"4908154711"}, postBody["phones"])
	assert.Equal(t, "02.03.1969", postBody["birthday"])

	// test the endpoint for finding a contact
	getRecorder := httptest.NewRecorder()
	getRequest, _ := http.NewRequest("GET", "/contacts/Erika", nil)
	router.ServeHTTP(getRecorder, getRequest)
	assert.Equal(t, http.StatusOK, getRecorder.Code)
	assert.JSONEq(t, postRecorder.Body.String(), getRecorder.Body.String())

	// test the endpoint for replacing a phone
	putRecorder := httptest.NewRecorder()
	putRequest, _ := http.NewRequest("PUT", "/contacts/Erika/phones/4908154711", strings.NewReader(`
		{
			"phone": "4912345678"
		}
	`))
	router.ServeHTTP(putRecorder, putRequest)
	assert.Equal(t, http.StatusOK, putRecorder.Code)
	var putBody map[string]interface{}
	json.Unmarshal(putRecorder.Body.Bytes(), &putBody)
	assert.Equal(t, []interface{}{"4912345678"}, putBody["phones"])

	// test if the birthdays report sees the contact, 02.03.2024 is a Saturday
	birthdaysRecorder := httptest.NewRecorder()
	birthdaysRequest, _ := http.NewRequest("GET", "/birthdays?today=29.02.2024", nil)
	router.ServeHTTP(birthdaysRecorder, birthdaysRequest)
	assert.Equal(t, http.StatusOK, birthdaysRecorder.Code)
	var birthdaysBody map[string]interface{}
	json.Unmarshal(birthdaysRecorder.Body.Bytes(), &birthdaysBody)
	upcoming, ok := birthdaysBody["upcoming"].([]interface{})
	require.True(t, ok)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "04.03.2024", upcoming[0].(map[string]interface{})["date"])

	// test the endpoint for deleting a contact
	deleteRecorder := httptest.NewRecorder()
	deleteRequest, _ := http.NewRequest("DELETE", "/contacts/Erika", nil)
	router.ServeHTTP(deleteRecorder, deleteRequest)
	assert.Equal(t, http.StatusOK, deleteRecorder.Code)

	// test if a subsequent lookup of the contact fails
	getRecorder = httptest.NewRecorder()
	getRequest, _ = http.NewRequest("GET", "/contacts/Erika", nil)
	router.ServeHTTP(getRecorder, getRequest)
	assert.Equal(t, http.StatusNotFound, getRecorder.Code)
}

// TestConcurrentRequests sends many requests at the same time. It expects that every contact is
// stored exactly once.
func TestConcurrentRequests(t *testing.T) {
	service.SetupDirectory(book.New(), nil)
	gin.SetMode(gin.ReleaseMode)
	router := service.SetupHttpRouter(false)
	server := httptest.NewServer(router)
	defer server.Close()

	const contacts = 50
	errs := make(chan error, contacts)
	for i := 0; i < contacts; i++ {
		go func(i int) {
			body := `{"name": "contact` + string(rune('A'+i%26)) + string(rune('a'+i/26)) + `", "phones": ["0123456789"]}`
			res, err := http.Post(server.URL+"/contacts", "application/json", strings.NewReader(body))
			if err == nil {
				res.Body.Close()
			}
			errs <- err
		}(i)
	}
	for i := 0; i < contacts; i++ {
		require.NoError(t, <-errs)
	}

	res, err := http.Get(server.URL + "/contacts")
	require.NoError(t, err)
	defer res.Body.Close()
	var all []map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&all))
	assert.Len(t, all, contacts)
}

// TestAssistantSession runs a whole session of the command line assistant.
func TestAssistantSession(t *testing.T) {
	today := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	a := assistant.New(book.New(), assistant.WithClock(func() time.Time { return today }))

	in := strings.NewReader(strings.Join([]string{
		"hello",
		"add Anna 0123456789",
		"add-birthday Anna 12.01.1990",
		"add Bob 9876543210",
		"add-birthday Bob 13.01.1985",
		"change Bob 1111111111",
		"phone Bob",
		"show-birthday Bob",
		"birthdays",
		"all",
		"frobnicate",
		"close",
	}, "\n"))
	var out strings.Builder
	require.NoError(t, a.Run(context.Background(), in, &out))

	assert.Equal(t, strings.Join([]string{
		"Welcome to the assistant bot!",
		"Enter a command: How can I help you?",
		"Enter a command: Contact added.",
		"Enter a command: Birthday added.",
		"Enter a command: Contact added.",
		"Enter a command: Birthday added.",
		"Enter a command: Contact changed.",
		"Enter a command: Contact name: Bob, phones: 1111111111",
		"Enter a command: 13.01.1985",
		"Enter a command: 12.01.2024  Contact name: Anna, phones: 0123456789",
		"15.01.2024  Contact name: Bob, phones: 1111111111",
		"Enter a command: Contact name: Anna, phones: 0123456789",
		"Contact name: Bob, phones: 1111111111",
		"Enter a command: Invalid command.",
		"Enter a command: Good bye!",
		"",
	}, "\n"), out.String())
}
