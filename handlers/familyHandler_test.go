package handlers

import (
	"FamCare/cache"
	"FamCare/middlewares"
	"FamCare/models"
	"FamCare/repositories"
	"FamCare/services"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Family{}, &models.Member{}, &models.DoctorAssignment{}, &models.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newFamilyHandler(db *gorm.DB) *FamilyHandler {
	c := cache.New(nil)
	return NewFamilyHandler(services.NewFamilyService(
		repositories.NewFamilyRepository(db, c),
		repositories.NewUserRepository(db, c),
		repositories.NewDoctorRepository(db),
	))
}

// authedContext builds a gin test context carrying the given identity, the way
// the token middleware would.
func authedContext(t *testing.T, w *httptest.ResponseRecorder, req *http.Request, userID int64, role string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	ctx := middlewares.WithTestIdentity(req.Context(), strconv.FormatInt(userID, 10), role)
	c.Request = req.WithContext(ctx)
	return c
}

func TestCreateFamilyPinsHeadToActor(t *testing.T) {
	db := setupTestDB(t)
	h := newFamilyHandler(db)

	head := models.User{Name: "Head", Email: "head@test", Password: "x", Role: models.RoleHeadOfFamily}
	if err := db.Create(&head).Error; err != nil {
		t.Fatalf("seed head: %v", err)
	}

	// Body claims a different head; non-admins are pinned to themselves.
	body := `{"name":"Smith","address":"1 Main St","head_id":9999}`
	req := httptest.NewRequest(http.MethodPost, "/api/families", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c := authedContext(t, w, req, head.ID, models.RoleHeadOfFamily)

	h.CreateFamily(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var created models.Family
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.HeadID != head.ID {
		t.Fatalf("expected head pinned to actor %d got %d", head.ID, created.HeadID)
	}
}

func TestGetFamilyByIDReturnsMemberCount(t *testing.T) {
	db := setupTestDB(t)
	h := newFamilyHandler(db)

	head := models.User{Name: "Head", Email: "head@test", Password: "x", Role: models.RoleHeadOfFamily}
	if err := db.Create(&head).Error; err != nil {
		t.Fatalf("seed head: %v", err)
	}
	family := models.Family{Name: "Smith", HeadID: head.ID}
	if err := db.Create(&family).Error; err != nil {
		t.Fatalf("seed family: %v", err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		member := models.Member{FamilyID: family.ID, Name: name, DateOfBirth: "2010-04-12", Gender: "Female"}
		if err := db.Create(&member).Error; err != nil {
			t.Fatalf("seed member: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/families/%d", family.ID), nil)
	w := httptest.NewRecorder()
	c := authedContext(t, w, req, head.ID, models.RoleHeadOfFamily)
	c.Params = gin.Params{{Key: "family_id", Value: strconv.FormatUint(uint64(family.ID), 10)}}

	h.GetFamilyByID(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Family      models.Family `json:"family"`
		MemberCount int           `json:"member_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.MemberCount != 2 {
		t.Fatalf("expected member_count 2 got %d", payload.MemberCount)
	}
}

func TestGetFamilyByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := newFamilyHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/api/families/42", nil)
	w := httptest.NewRecorder()
	c := authedContext(t, w, req, 1, models.RoleAdmin)
	c.Params = gin.Params{{Key: "family_id", Value: "42"}}

	h.GetFamilyByID(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
