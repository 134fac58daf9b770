package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/constants"
	"github.com/harukimoto/board-management-api/internal/database"
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/repository"
	"github.com/harukimoto/board-management-api/internal/services"
)

// BoardHandlerTestSuite defines the test suite for BoardHandler
type BoardHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *BoardHandler
}

// SetupTest runs before each test
func (suite *BoardHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Department{},
		&models.Board{},
		&models.Task{},
		&models.Comment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	boardRepo := repository.NewBoardRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	suite.handler = NewBoardHandler(boardRepo, services.NewTaskService(taskRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BoardHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BoardHandlerTestSuite) createTestOrganization(name string) *models.Organization {
	org := &models.Organization{
		Name:        name,
		CreatedByID: 1,
	}
	suite.db.Create(org)
	return org
}

func (suite *BoardHandlerTestSuite) createTestUser(email string, orgID *uint64) *models.User {
	user := &models.User{
		Name:         "Test User",
		Username:     email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         models.RoleAdmin,
		OrgID:        orgID,
	}
	suite.db.Create(user)
	return user
}

func (suite *BoardHandlerTestSuite) createTestBoard(name string, orgID, creatorID, departmentID uint64) *models.Board {
	board := &models.Board{
		Name:         name,
		OrgID:        orgID,
		CreatedByID:  creatorID,
		DepartmentID: departmentID,
	}
	suite.db.Create(board)
	return board
}

func (suite *BoardHandlerTestSuite) createTestTask(title string, creatorID, orgID uint64, boardID *uint64) *models.Task {
	task := &models.Task{
		Title:       title,
		CreatedByID: creatorID,
		OrgID:       orgID,
		BoardID:     boardID,
	}
	suite.db.Create(task)
	return task
}

func (suite *BoardHandlerTestSuite) createAuthContext(method, url string, body []byte, user models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUser, user)

	return c, w
}

func (suite *BoardHandlerTestSuite) TestCreateBoard_Success() {
	org := suite.createTestOrganization("Test Org")
	user := suite.createTestUser("admin@example.com", &org.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"name":          "Engineering Board",
		"org_id":        org.ID,
		"department_id": 1,
	})

	c, w := suite.createAuthContext("POST", "/api/boards", body, *user)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Engineering Board", response["name"])
}

func (suite *BoardHandlerTestSuite) TestCreateBoard_MissingFields() {
	org := suite.createTestOrganization("Test Org")
	user := suite.createTestUser("admin@example.com", &org.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Engineering Board",
	})

	c, w := suite.createAuthContext("POST", "/api/boards", body, *user)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *BoardHandlerTestSuite) TestCreateBoard_ForeignOrganization() {
	org := suite.createTestOrganization("Test Org")
	otherOrg := suite.createTestOrganization("Other Org")
	user := suite.createTestUser("admin@example.com", &org.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"name":          "Sneaky Board",
		"org_id":        otherOrg.ID,
		"department_id": 1,
	})

	c, w := suite.createAuthContext("POST", "/api/boards", body, *user)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *BoardHandlerTestSuite) TestListBoards_FiltersByDepartment() {
	org := suite.createTestOrganization("Test Org")
	user := suite.createTestUser("admin@example.com", &org.ID)
	suite.createTestBoard("Board A", org.ID, user.ID, 1)
	suite.createTestBoard("Board B", org.ID, user.ID, 2)

	c, w := suite.createAuthContext("GET", fmt.Sprintf("/api/boards/%d", org.ID), nil, *user)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", org.ID)}}
	c.Request.URL.RawQuery = "department_id=2"

	suite.handler.ListBoards(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response, 1)
	assert.Equal(suite.T(), "Board B", response[0]["name"])
}

func (suite *BoardHandlerTestSuite) TestDeleteBoard_CascadeDeletesTasks() {
	org := suite.createTestOrganization("Test Org")
	user := suite.createTestUser("admin@example.com", &org.ID)
	board := suite.createTestBoard("Doomed Board", org.ID, user.ID, 1)
	suite.createTestTask("Task 1", user.ID, org.ID, &board.ID)
	suite.createTestTask("Task 2", user.ID, org.ID, &board.ID)

	c, w := suite.createAuthContext("DELETE", "/api/boards/1", nil, *user)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", board.ID)}}

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var boardCount int64
	suite.db.Model(&models.Board{}).Where("id = ?", board.ID).Count(&boardCount)
	assert.Equal(suite.T(), int64(0), boardCount)

	var taskCount int64
	suite.db.Model(&models.Task{}).Where("board_id = ?", board.ID).Count(&taskCount)
	assert.Equal(suite.T(), int64(0), taskCount)
}

func (suite *BoardHandlerTestSuite) TestDeleteBoard_NotFound() {
	org := suite.createTestOrganization("Test Org")
	user := suite.createTestUser("admin@example.com", &org.ID)

	c, w := suite.createAuthContext("DELETE", "/api/boards/9999", nil, *user)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *BoardHandlerTestSuite) TestDeleteBoard_ForeignOrganization() {
	org := suite.createTestOrganization("Test Org")
	otherOrg := suite.createTestOrganization("Other Org")
	user := suite.createTestUser("admin@example.com", &org.ID)
	board := suite.createTestBoard("Foreign Board", otherOrg.ID, 99, 1)

	c, w := suite.createAuthContext("DELETE", "/api/boards/1", nil, *user)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", board.ID)}}

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *BoardHandlerTestSuite) TestGetBoardTasks_StatusFilter() {
	org := suite.createTestOrganization("Test Org")
	user := suite.createTestUser("admin@example.com", &org.ID)
	board := suite.createTestBoard("Busy Board", org.ID, user.ID, 1)

	suite.createTestTask("Pending Task", user.ID, org.ID, &board.ID)
	done := suite.createTestTask("Done Task", user.ID, org.ID, &board.ID)
	suite.db.Model(done).Update("status", models.TaskStatusCompleted)

	c, w := suite.createAuthContext("GET", "/api/boards/1/tasks", nil, *user)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", board.ID)}}
	c.Request.URL.RawQuery = "status=Completed"

	suite.handler.GetBoardTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(1), response["count"])

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
	assert.Equal(suite.T(), "Done Task", tasks[0].(map[string]interface{})["title"])
}

func (suite *BoardHandlerTestSuite) TestGetBoardTasks_BoardNotFound() {
	org := suite.createTestOrganization("Test Org")
	user := suite.createTestUser("admin@example.com", &org.ID)

	c, w := suite.createAuthContext("GET", "/api/boards/9999/tasks", nil, *user)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}

	suite.handler.GetBoardTasks(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestBoardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BoardHandlerTestSuite))
}
