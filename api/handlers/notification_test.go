package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reuniteapp/reunite-api/api/handlers"
	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/databases/mocks"
	"github.com/reuniteapp/reunite-api/models"
)

func TestNotification_NotificationsHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	userID := primitive.NewObjectID()
	req = authenticatedRequest(req, userID)

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{} // can be used as db = &mocks.DatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Notification)
		*arg = []models.Notification{{UserID: userID, Message: "Your missing person report for Jordan Reyes has been submitted successfully.", Type: models.NotificationTypeMissingPerson}}
	})

	var capturedFilter interface{}
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper).Run(func(args mock.Arguments) {
		capturedFilter = args.Get(1)
	})
	db.(*MockDatabaseHelper).On("Collection", "notifications").Return(conn)

	n := handlers.Notification{DB: databases.NewNotificationDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(n.NotificationsHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var got []models.Notification
	json.Unmarshal(rr.Body.Bytes(), &got)

	assert.Len(t, got, 1)
	assert.Equal(t, bson.M{"userId": userID}, capturedFilter)
}

func TestNotification_NotificationsHandlerEmpty(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = authenticatedRequest(req, primitive.NewObjectID())

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil)
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper)
	db.(*MockDatabaseHelper).On("Collection", "notifications").Return(conn)

	n := handlers.Notification{DB: databases.NewNotificationDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(n.NotificationsHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if rr.Body.String() != "[]" {
		t.Errorf("handler returned unexpected body: got %v want []", rr.Body.String())
	}
}

func TestNotification_MarkNotificationReadHandlerNotOwner(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/notifications/608cafe595eb9dc05379b7f4/read", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"notification_id": "608cafe595eb9dc05379b7f4"})
	req = authenticatedRequest(req, primitive.NewObjectID())

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Notification)
		(*arg).UserID = primitive.NewObjectID()
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "notifications").Return(conn)

	n := handlers.Notification{DB: databases.NewNotificationDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(n.MarkNotificationReadHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusForbidden {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusForbidden)
	}

	conn.(*mocks.CollectionHelper).AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotification_MarkNotificationReadHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/notifications/608cafe595eb9dc05379b7f4/read", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"notification_id": "608cafe595eb9dc05379b7f4"})
	userID := primitive.NewObjectID()
	req = authenticatedRequest(req, userID)

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Notification)
		(*arg).UserID = userID
		(*arg).Message = "Your found person report has been submitted successfully."
		(*arg).Read = false
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	conn.(*mocks.CollectionHelper).On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.(*MockDatabaseHelper).On("Collection", "notifications").Return(conn)

	n := handlers.Notification{DB: databases.NewNotificationDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(n.MarkNotificationReadHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	got := models.Notification{}
	json.Unmarshal(rr.Body.Bytes(), &got)

	assert.True(t, got.Read)
	conn.(*mocks.CollectionHelper).AssertNumberOfCalls(t, "UpdateOne", 1)
}

func TestNotification_MarkAllNotificationsReadHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/notifications/read-all", nil)
	if err != nil {
		t.Fatal(err)
	}
	userID := primitive.NewObjectID()
	req = authenticatedRequest(req, userID)

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}

	var capturedFilter interface{}
	conn.(*mocks.CollectionHelper).On("UpdateMany", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Run(func(args mock.Arguments) {
		capturedFilter = args.Get(1)
	})
	db.(*MockDatabaseHelper).On("Collection", "notifications").Return(conn)

	n := handlers.Notification{DB: databases.NewNotificationDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(n.MarkAllNotificationsReadHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var resp map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.Equal(t, "All notifications marked as read", resp["message"])

	assert.Equal(t, bson.M{"userId": userID, "read": false}, capturedFilter)

	// A second call finds nothing unread and still acks with 200
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code on repeat call: got %v want %v", status, http.StatusOK)
	}

	resp = map[string]interface{}{}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.Equal(t, "All notifications marked as read", resp["message"])
	conn.(*mocks.CollectionHelper).AssertNumberOfCalls(t, "UpdateMany", 2)
}
