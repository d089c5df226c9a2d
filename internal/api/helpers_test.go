package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealfinder/internal/middleware"
	"github.com/pageza/mealfinder/internal/mocks"
	"github.com/pageza/mealfinder/internal/service"
	"github.com/pageza/mealfinder/internal/session"
)

var anything = mock.Anything

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router *gin.Engine
	db     *mocks.MockMealDB
	store  *session.MemoryStore
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	db := new(mocks.MockMealDB)
	app := newTestApp(t, db)
	app.db = db
	return app
}

// newTestApp wires the handlers around any recipe API client
func newTestApp(t *testing.T, mealDB service.MealDB) *testApp {
	t.Helper()
	store := session.NewMemoryStore(0, 0)
	finder := service.NewFinderService(mealDB)

	router := gin.New()
	site := router.Group("")
	site.Use(middleware.Session(3600))
	NewPageHandler(finder, store, store).RegisterRoutes(site)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.ErrorHandler(StatusFor))
	NewMealsHandler(finder).RegisterRoutes(v1)

	return &testApp{router: router, store: store}
}

func (a *testApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (a *testApp) post(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, cookie)
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}
