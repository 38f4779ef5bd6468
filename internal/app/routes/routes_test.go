package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/app/controllers"
	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/app/repositories/memory"
	"github.com/yigit/devcamper/internal/app/services"
	"github.com/yigit/devcamper/internal/middleware"
)

const userID = "5d7a514b5d2c12c7449be045"

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWith(t, memory.NewRepositories())
}

func newTestAPIWith(t *testing.T, repos *repositories.Repositories) *testAPI {
	t.Helper()

	svc := services.NewServices(repos, services.Options{})

	router := gin.New()
	router.Use(middleware.Recovery(), middleware.ErrorHandler())
	router.NoRoute(middleware.NoRoute)
	SetupRouter(router,
		controllers.NewBootcampController(svc.BootcampService),
		controllers.NewCourseController(svc.CourseService),
		controllers.NewHealthController(repos.Store),
	)
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode(t *testing.T, raw json.RawMessage) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func decodeList(t *testing.T, raw json.RawMessage) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &l))
	return l
}

func (a *testAPI) createBootcamp(name string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/bootcamps", map[string]interface{}{"name": name})
	require.Equal(a.t, http.StatusCreated, status, env.Error)
	return decode(a.t, env.Data)["_id"].(string)
}

func course(title string, tuition float64, bootcampID string) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"description":  "d",
		"weeks":        10,
		"tuition":      tuition,
		"minimumSkill": "beginner",
		"bootcamp":     bootcampID,
		"user":         userID,
	}
}

func TestCreateThenGetBootcamp(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodPost, "/api/v1/bootcamps", map[string]interface{}{
		"name":    "Devworks Bootcamp",
		"website": "https://devworks.com",
		"careers": []string{"Web Development", "UI/UX"},
		"housing": true,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	created := decode(t, env.Data)
	id := created["_id"].(string)
	assert.True(t, primitive.IsValidObjectID(id))
	assert.Equal(t, "no-photo.jpg", created["photo"])
	assert.NotContains(t, created, "averageCost")

	status, env = api.do(http.MethodGet, "/api/v1/bootcamps/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, decode(t, env.Data))

	status, env = api.do(http.MethodGet, "/api/v1/bootcamps", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, env.Count)
	assert.Len(t, decodeList(t, env.Data), 1)
}

func TestBootcampValidationAndDuplicates(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodPost, "/api/v1/bootcamps", map[string]interface{}{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Please add a name, Please add a valid email", env.Error)

	api.createBootcamp("X")
	status, env = api.do(http.MethodPost, "/api/v1/bootcamps", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "duplicate field value is passed: { name: X }", env.Error)

	status, env = api.do(http.MethodPost, "/api/v1/bootcamps", `{"name": 5}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid value for field name: expected string", env.Error)
}

func TestGetBootcampNotFound(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodGet, "/api/v1/bootcamps/123", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Bootcamp not found with id: 123", env.Error)

	missing := primitive.NewObjectID().Hex()
	status, env = api.do(http.MethodGet, "/api/v1/bootcamps/"+missing, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, env.Error, "not found with id: "+missing)
}

func TestUpdateAndDeleteBootcamp(t *testing.T) {
	api := newTestAPI(t)
	id := api.createBootcamp("X")

	status, env := api.do(http.MethodPut, "/api/v1/bootcamps/"+id, map[string]interface{}{"jobGuarantee": true, "averageCost": 1})
	require.Equal(t, http.StatusOK, status)
	updated := decode(t, env.Data)
	assert.Equal(t, "X", updated["name"])
	assert.Equal(t, true, updated["jobGuarantee"])
	assert.NotContains(t, updated, "averageCost")

	status, env = api.do(http.MethodPut, "/api/v1/bootcamps/"+id, map[string]interface{}{"website": "not a url"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please use a valid URL with HTTP or HTTPS", env.Error)

	status, env = api.do(http.MethodPut, "/api/v1/bootcamps/zzz", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", env.Error)

	status, env = api.do(http.MethodDelete, "/api/v1/bootcamps/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, decode(t, env.Data)["_id"])

	status, env = api.do(http.MethodDelete, "/api/v1/bootcamps/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Bootcamp not found with id: "+id, env.Error)
}

func TestAverageCostScenario(t *testing.T) {
	api := newTestAPI(t)
	b1 := api.createBootcamp("X")

	averageCost := func() interface{} {
		status, env := api.do(http.MethodGet, "/api/v1/bootcamps/"+b1, nil)
		require.Equal(t, http.StatusOK, status)
		return decode(t, env.Data)["averageCost"]
	}

	status, env := api.do(http.MethodPost, fmt.Sprintf("/api/v1/bootcamps/%s/courses", b1), course("T1", 1000, b1))
	require.Equal(t, http.StatusCreated, status, env.Error)
	first := decode(t, env.Data)["_id"].(string)
	assert.EqualValues(t, 1000, averageCost())

	status, env = api.do(http.MethodPost, fmt.Sprintf("/api/v1/bootcamps/%s/courses", b1), course("T2", 2000, b1))
	require.Equal(t, http.StatusCreated, status, env.Error)
	second := decode(t, env.Data)["_id"].(string)
	assert.EqualValues(t, 1500, averageCost())

	status, _ = api.do(http.MethodPut, "/api/v1/courses/"+second, map[string]interface{}{"tuition": 2001})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1501, averageCost())

	status, _ = api.do(http.MethodDelete, "/api/v1/courses/"+second, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1000, averageCost())

	status, env = api.do(http.MethodDelete, "/api/v1/courses/"+first, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first, decode(t, env.Data)["_id"])
	assert.Nil(t, averageCost())
}

func TestDuplicateCourseTitle(t *testing.T) {
	api := newTestAPI(t)
	b1 := api.createBootcamp("X")

	status, _ := api.do(http.MethodPost, "/api/v1/bootcamps/"+b1+"/courses", course("T1", 1000, b1))
	require.Equal(t, http.StatusCreated, status)

	status, env := api.do(http.MethodPost, "/api/v1/bootcamps/"+b1+"/courses", course("T1", 500, b1))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "duplicate field value is passed: { title: T1 }", env.Error)
}

func TestCourseValidationAndMissingParent(t *testing.T) {
	api := newTestAPI(t)
	b1 := api.createBootcamp("X")

	bad := course("T1", 1000, b1)
	bad["minimumSkill"] = "expert"
	delete(bad, "weeks")
	status, env := api.do(http.MethodPost, "/api/v1/bootcamps/"+b1+"/courses", bad)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please add a number of weeks, `expert` is not a valid enum value for path `minimumSkill`.", env.Error)

	missing := primitive.NewObjectID().Hex()
	status, env = api.do(http.MethodPost, "/api/v1/bootcamps/"+missing+"/courses", course("T1", 1000, missing))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No bootcamp with the id of "+missing, env.Error)

	status, env = api.do(http.MethodGet, "/api/v1/courses/"+missing, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No course with the id of "+missing, env.Error)

	status, env = api.do(http.MethodGet, "/api/v1/courses/bad-id", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", env.Error)
}

func TestCourseListings(t *testing.T) {
	api := newTestAPI(t)
	b1 := api.createBootcamp("X")
	b2 := api.createBootcamp("Y")

	for i, b := range []string{b1, b1, b2} {
		status, env := api.do(http.MethodPost, "/api/v1/bootcamps/"+b+"/courses", course(fmt.Sprintf("T%d", i), 1000, b))
		require.Equal(t, http.StatusCreated, status, env.Error)
	}

	status, env := api.do(http.MethodGet, "/api/v1/bootcamps/"+b1+"/courses", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
	for _, c := range decodeList(t, env.Data) {
		assert.Equal(t, b1, c["bootcamp"])
	}

	status, env = api.do(http.MethodGet, "/api/v1/courses", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)
	for _, c := range decodeList(t, env.Data) {
		bootcamp, ok := c["bootcamp"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, bootcamp, "name")
		assert.Contains(t, bootcamp, "description")
	}

	status, env = api.do(http.MethodGet, "/api/v1/bootcamps/"+primitive.NewObjectID().Hex()+"/courses", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, *env.Count)
	assert.Equal(t, "[]", string(env.Data))
}

func TestHealthAndUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env = api.do(http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "route not found", env.Error)
}

// unreachableBootcamps fails listings the way a dropped connection would
type unreachableBootcamps struct {
	repositories.BootcampRepository
}

func (unreachableBootcamps) FindAll(context.Context) ([]*models.Bootcamp, error) {
	return nil, errors.New("server selection error: context deadline exceeded")
}

func TestStoreFailureHidesDriverMessage(t *testing.T) {
	repos := memory.NewRepositories()
	repos.BootcampRepository = unreachableBootcamps{repos.BootcampRepository}
	api := newTestAPIWith(t, repos)

	status, env := api.do(http.MethodGet, "/api/v1/bootcamps", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "bad request", env.Error)
}
