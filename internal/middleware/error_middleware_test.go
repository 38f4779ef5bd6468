package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func validationError(messages ...string) error {
	vErr := &apperrors.ValidationError{}
	for i, m := range messages {
		vErr.Add(fmt.Sprintf("field%d", i), m)
	}
	return vErr
}

func TestNormalize(t *testing.T) {
	for name, tc := range map[string]struct {
		err     error
		status  int
		message string
	}{
		"CastError": {
			err:     apperrors.NewCastError("abc", "ObjectId"),
			status:  http.StatusNotFound,
			message: "resource not found",
		},
		"WrappedCastError": {
			err:     apperrors.WithDefaultStatus(fmt.Errorf("updating: %w", apperrors.NewCastError("abc", "ObjectId")), http.StatusBadRequest),
			status:  http.StatusNotFound,
			message: "resource not found",
		},
		"ValidationError": {
			err:     validationError("Please add a course title", "Please add a tuition cost"),
			status:  http.StatusBadRequest,
			message: "Please add a course title, Please add a tuition cost",
		},
		"DuplicateFieldError": {
			err:     apperrors.NewDuplicateFieldError("title", "T1"),
			status:  http.StatusBadRequest,
			message: "duplicate field value is passed: { title: T1 }",
		},
		"RawDriverDuplicate": {
			err: mongo.WriteException{WriteErrors: mongo.WriteErrors{{
				Code:    11000,
				Message: `E11000 duplicate key error collection: devcamper.bootcamps index: name_1 dup key: { name: "X" }`,
			}}},
			status:  http.StatusBadRequest,
			message: "duplicate field value is passed: { name: X }",
		},
		"StatusError": {
			err:     apperrors.NewNotFoundError("Bootcamp not found with id: 1"),
			status:  http.StatusNotFound,
			message: "Bootcamp not found with id: 1",
		},
		"DefaultStatusHidesDriverMessage": {
			err:     apperrors.WithDefaultStatus(fmt.Errorf("error retrieving bootcamps: %w", errors.New("connection refused")), http.StatusBadRequest),
			status:  http.StatusBadRequest,
			message: "bad request",
		},
		"DefaultStatusKeepsCarriedStatus": {
			err:     apperrors.WithDefaultStatus(apperrors.NewNotFoundError("No course with the id of 1"), http.StatusBadRequest),
			status:  http.StatusNotFound,
			message: "No course with the id of 1",
		},
		"EmptyStatusError": {
			err:     apperrors.NewStatusError(0, ""),
			status:  http.StatusInternalServerError,
			message: "server error",
		},
		"PlainError": {
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "boom",
		},
	} {
		t.Run(name, func(t *testing.T) {
			status, message := Normalize(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, message)
		})
	}
}

func TestNormalizeCastWinsOverValidation(t *testing.T) {
	err := errors.Join(validationError("Please add a name"), apperrors.NewCastError("x", "ObjectId"))
	status, message := Normalize(err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", message)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleAPIErrorEnvelope(t *testing.T) {
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		HandleAPIError(c, validationError("Please add a name"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Please add a name", body["error"])
	assert.Len(t, body, 2)
}

func TestErrorHandlerForwardsContextErrors(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.NewCastError("bad", "ObjectId"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "resource not found", decodeEnvelope(t, w)["error"])
}

func TestRecoveryAndNoRoute(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.NoRoute(NoRoute)
	router.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server error", decodeEnvelope(t, w)["error"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", decodeEnvelope(t, w)["error"])
}

func TestBindJSON(t *testing.T) {
	type body struct {
		Weeks *int `json:"weeks"`
	}

	run := func(payload string) (*body, error) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		c.Request.Header.Set("Content-Type", "application/json")
		var b body
		err := BindJSON(c, &b)
		return &b, err
	}

	b, err := run(`{"weeks": 4}`)
	require.NoError(t, err)
	require.NotNil(t, b.Weeks)
	assert.Equal(t, 4, *b.Weeks)

	_, err = run(`{"weeks": "four"}`)
	require.Error(t, err)
	status, message := Normalize(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid value for field weeks: expected int", message)

	_, err = run(`{"weeks" 4}`)
	require.Error(t, err)
	_, message = Normalize(err)
	assert.Equal(t, "Malformed JSON body", message)

	b, err = run(``)
	require.NoError(t, err)
	assert.Nil(t, b.Weeks)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
}
