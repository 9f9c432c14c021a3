package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing.
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.MessageRecipient{},
		&models.MessageAcknowledgment{},
		&models.CareVisit{},
		&models.AuditEvent{},
	)
}

func testContext(w *httptest.ResponseRecorder, viewer *models.User) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	if viewer != nil {
		c.Set("userId", viewer.ID)
		c.Set("viewer", viewer)
	}
	return c, r
}

func createCoordinator(id string) *models.User {
	user := models.User{ID: id, FullName: "Coordinator " + id, Username: "coord_" + id, Role: models.RoleCoordinator}
	database.DB.Create(&user)
	return &user
}

func createCarer(id, coordinatorID string) *models.User {
	user := models.User{ID: id, FullName: "Carer " + id, Username: "carer_" + id, Role: models.RoleCarer, CoordinatorID: &coordinatorID}
	database.DB.Create(&user)
	return &user
}

func TestCreateMessage_Broadcast(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	coord := createCoordinator("h_c1")
	createCarer("h_a1", coord.ID)
	createCarer("h_b1", coord.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Weekly notice",
		"body":        "Timesheets due Friday.",
		"isBroadcast": true,
	})

	w := httptest.NewRecorder()
	c, _ := testContext(w, coord)
	c.Request, _ = http.NewRequest("POST", "/api/messages", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message models.Message `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response.Message.ID)

	var recipients int64
	database.DB.Model(&models.MessageRecipient{}).
		Where("message_id = ?", response.Message.ID).Count(&recipients)
	assert.Equal(t, int64(2), recipients)
}

func TestCreateMessage_CarerForbidden(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	coord := createCoordinator("h_c2")
	carer := createCarer("h_a2", coord.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Nope",
		"body":        "Carers cannot send.",
		"isBroadcast": true,
	})

	w := httptest.NewRecorder()
	c, _ := testContext(w, carer)
	c.Request, _ = http.NewRequest("POST", "/api/messages", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateMessage(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not_coordinator")
}

func TestCreateMessage_UnassociatedRecipient(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	coord := createCoordinator("h_c3")
	other := createCoordinator("h_c3_other")
	createCarer("h_a3", coord.ID)
	createCarer("h_z3", other.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Private",
		"body":     "Body",
		"carerIds": []string{"h_a3", "h_z3"},
	})

	w := httptest.NewRecorder()
	c, _ := testContext(w, coord)
	c.Request, _ = http.NewRequest("POST", "/api/messages", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "h_z3")

	var count int64
	database.DB.Model(&models.Message{}).Where("sender_id = ?", coord.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAcknowledgeMessage_FlowAndConflict(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	coord := createCoordinator("h_c4")
	carer := createCarer("h_a4", coord.ID)

	message := models.Message{SenderID: coord.ID, Title: "Ack me", Body: "Body"}
	database.DB.Create(&message)
	database.DB.Create(&models.MessageRecipient{MessageID: message.ID, CarerID: carer.ID})

	// First acknowledgment succeeds.
	w := httptest.NewRecorder()
	c, _ := testContext(w, carer)
	c.Request, _ = http.NewRequest("POST", "/api/messages/"+message.ID+"/acknowledge", nil)
	c.Params = gin.Params{{Key: "id", Value: message.ID}}

	AcknowledgeMessage(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Second one conflicts.
	w2 := httptest.NewRecorder()
	c2, _ := testContext(w2, carer)
	c2.Request, _ = http.NewRequest("POST", "/api/messages/"+message.ID+"/acknowledge", nil)
	c2.Params = gin.Params{{Key: "id", Value: message.ID}}

	AcknowledgeMessage(c2)
	assert.Equal(t, http.StatusConflict, w2.Code)
	assert.Contains(t, w2.Body.String(), "already acknowledged")
}

func TestAcknowledgeMessage_OtherCarersMessage(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	coord := createCoordinator("h_c5")
	carerA := createCarer("h_a5", coord.ID)
	carerB := createCarer("h_b5", coord.ID)

	message := models.Message{SenderID: coord.ID, Title: "For B", Body: "Body"}
	database.DB.Create(&message)
	database.DB.Create(&models.MessageRecipient{MessageID: message.ID, CarerID: carerB.ID})

	w := httptest.NewRecorder()
	c, _ := testContext(w, carerA)
	c.Request, _ = http.NewRequest("POST", "/api/messages/"+message.ID+"/acknowledge", nil)
	c.Params = gin.Params{{Key: "id", Value: message.ID}}

	AcknowledgeMessage(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAuthoredMessages_UnreadFilter(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	coord := createCoordinator("h_c6")
	carerA := createCarer("h_a6", coord.ID)
	carerB := createCarer("h_b6", coord.ID)

	message := models.Message{SenderID: coord.ID, Title: "Status check", Body: "Body"}
	database.DB.Create(&message)
	database.DB.Create(&models.MessageRecipient{MessageID: message.ID, CarerID: carerA.ID})
	database.DB.Create(&models.MessageRecipient{MessageID: message.ID, CarerID: carerB.ID})
	database.DB.Create(&models.MessageAcknowledgment{MessageID: message.ID, CarerID: carerA.ID})

	w := httptest.NewRecorder()
	c, _ := testContext(w, coord)
	c.Request, _ = http.NewRequest("GET", "/api/messages/authored?status=unread", nil)

	ListAuthoredMessages(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Messages []models.MessageRecipientView `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Messages, 1)
	assert.Equal(t, carerB.ID, response.Messages[0].CarerID)
	assert.Equal(t, models.StatusUnread, response.Messages[0].Status)
}

func TestListReceivedMessages_CoordinatorForbidden(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	coord := createCoordinator("h_c7")

	w := httptest.NewRecorder()
	c, _ := testContext(w, coord)
	c.Request, _ = http.NewRequest("GET", "/api/messages/received", nil)

	ListReceivedMessages(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not_carer")
}
