package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/f1globe/dashboard"
	"github.com/padraicbc/f1globe/dataset"
	mw "github.com/padraicbc/f1globe/middleware"
	"github.com/padraicbc/f1globe/models"
)

var testKey = []byte("test-secret")

func fixtureTables() *dataset.Tables {
	return &dataset.Tables{
		Races: []models.Race{
			{RaceID: "1", Year: "2020", Round: "1", CircuitID: "monza"},
			{RaceID: "2", Year: "2020", Round: "2", CircuitID: "spa"},
			{RaceID: "3", Year: "2020", Round: "3", CircuitID: "monza"},
			{RaceID: "4", Year: "2021", Round: "1", CircuitID: "monza"},
		},
		Circuits: []models.Circuit{
			{CircuitID: "spa", Name: "Circuit de Spa-Francorchamps", Lat: "50.4372", Lng: "5.97139"},
			{CircuitID: "monza", Name: "Autodromo Nazionale di Monza", Lat: "45.6156", Lng: "9.28111"},
		},
		Drivers: []models.Driver{
			{DriverID: "ham", Forename: "Lewis", Surname: "Hamilton", Nationality: "British"},
			{DriverID: "ver", Forename: "Max", Surname: "Verstappen", Nationality: "Dutch"},
		},
		Constructors: []models.Constructor{
			{ConstructorID: "merc", Name: "Mercedes"},
			{ConstructorID: "rbr", Name: "Red Bull"},
		},
		Colors: []models.TeamColor{{ConstructorID: "merc", Color: "#00D2BE"}},
		Results: []models.Result{
			{RaceID: "1", DriverID: "ham", ConstructorID: "merc", Points: "10", FastestLapTime: "1:22.000"},
			{RaceID: "1", DriverID: "ver", ConstructorID: "rbr", Points: "4", FastestLapTime: "1:21.500"},
			{RaceID: "2", DriverID: "ver", ConstructorID: "rbr", Points: "25"},
			{RaceID: "3", DriverID: "ham", ConstructorID: "merc", Points: "6", FastestLapTime: "1:20.000"},
			{RaceID: "4", DriverID: "ham", ConstructorID: "merc", Points: "0", FastestLapTime: "1:19.999"},
		},
	}
}

// newServer wires the protected routes the same way main does, without a
// database.
func newServer(t *testing.T) (*echo.Echo, *Handler) {
	t.Helper()
	h := New(nil, fixtureTables(), testKey, Options{Dashboard: dashboard.DefaultOptions()})

	e := echo.New()
	e.Validator = NewValidator()
	f1 := e.Group("/f1", mw.JWT(testKey))
	f1.GET("/circuits", h.Circuits)
	f1.GET("/circuits/:id", h.Circuit)
	f1.GET("/circuits/:id/constructors", h.ConstructorPoints)
	f1.GET("/circuits/:id/drivers", h.DriverPoints)
	f1.GET("/circuits/:id/laps", h.LapTimes)
	f1.GET("/seasons", h.Seasons)
	f1.GET("/seasons/:year/points", h.SeasonPoints)
	f1.GET("/drivers", h.Drivers)
	f1.GET("/colors", h.Colors)
	f1.GET("/selection", h.GetSelection)
	f1.PUT("/selection", h.PutSelection)
	f1.GET("/view", h.View)
	f1.POST("/password-hash", h.PasswordHash)
	return e, h
}

func do(t *testing.T, e *echo.Echo, h *Handler, user, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		tok, _, err := h.issueToken(user, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRequiresToken(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "", http.MethodGet, "/f1/circuits", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCircuits(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodGet, "/f1/circuits", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[[]circuitData](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "monza", got[0].CircuitID)
	assert.Equal(t, 3, got[0].Races)
	require.NotNil(t, got[0].Lat)
	assert.InDelta(t, 45.6156, *got[0].Lat, 1e-9)
	assert.Equal(t, 1, got[1].Races)

	rec = do(t, e, h, "alice", http.MethodGet, "/f1/circuits/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConstructorPoints(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodGet, "/f1/circuits/monza/constructors?n=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	chart := decode[dashboard.BarChart](t, rec)
	require.Len(t, chart.Bars, 1)
	assert.Equal(t, "merc", chart.Bars[0].ID)
	assert.Equal(t, 16.0, chart.Bars[0].Points)

	rec = do(t, e, h, "alice", http.MethodGet, "/f1/circuits/monza/constructors?n=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownCircuitIsEmptyChart(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodGet, "/f1/circuits/nowhere/drivers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"No data for this circuit","bars":[]}`, rec.Body.String())
}

func TestLapTimes(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodGet, "/f1/circuits/monza/laps?year=2021", "")
	require.Equal(t, http.StatusOK, rec.Code)
	chart := decode[dashboard.LapChart](t, rec)
	require.Len(t, chart.Points, 2)
	assert.Equal(t, "1:20.000", chart.Points[0].LapTime)
	require.NotNil(t, chart.Marker)
	assert.Equal(t, 2021, chart.Marker.Year)

	for _, q := range []string{"from=abc", "to=x", "year=1.5", "from=2022&to=2020"} {
		rec = do(t, e, h, "alice", http.MethodGet, "/f1/circuits/monza/laps?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestSeasons(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodGet, "/f1/seasons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2021, 2020}, decode[[]int](t, rec))
}

func TestSeasonPoints(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodGet, "/f1/seasons/2020/points?drivers=ham,,ver,ham", "")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := decode[[]dashboard.Line](t, rec)
	require.Len(t, lines, 2)
	assert.Equal(t, "ham", lines[0].DriverID)
	assert.Equal(t, "ver", lines[1].DriverID)
	require.Len(t, lines[0].Points, 3)
	assert.Nil(t, lines[0].Points[1].Points)
	require.NotNil(t, lines[0].Points[2].Points)
	assert.Equal(t, 16.0, *lines[0].Points[2].Points)

	rec = do(t, e, h, "alice", http.MethodGet, "/f1/seasons/twenty/points", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, h, "alice", http.MethodGet, "/f1/seasons/2020/points", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDriversAndColors(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodGet, "/f1/drivers?q=max", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []driverData{{DriverID: "ver", Name: "Max Verstappen", Nationality: "Dutch"}},
		decode[[]driverData](t, rec))

	rec = do(t, e, h, "alice", http.MethodGet, "/f1/drivers?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, h, "alice", http.MethodGet, "/f1/colors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"merc":"#00D2BE"}`, rec.Body.String())
}

func TestSelectionRoundTrip(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "alice", http.MethodPut, "/f1/selection",
		`{"circuitId":" monza ","season":2020,"driverIds":["ham","ham"," "]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[dashboard.View](t, rec)
	assert.Equal(t, "Top Constructors at Autodromo Nazionale di Monza", view.Constructors.Title)
	require.NotNil(t, view.Circuit)
	assert.Len(t, view.Season, 1)

	rec = do(t, e, h, "alice", http.MethodGet, "/f1/selection", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dashboard.Selection{CircuitID: "monza", Season: 2020, DriverIDs: []string{"ham"}},
		decode[dashboard.Selection](t, rec))

	// another user starts from an empty selection
	rec = do(t, e, h, "bob", http.MethodGet, "/f1/view", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dashboard.NoCircuitData, decode[dashboard.View](t, rec).Constructors.Title)
	assert.Equal(t, 2, h.Sessions().Len())
}

func TestPutSelectionValidates(t *testing.T) {
	e, h := newServer(t)

	for _, body := range []string{`{"season":1800}`, `{"lapYear":3000}`, `{"season":"x"}`} {
		rec := do(t, e, h, "alice", http.MethodPut, "/f1/selection", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestPasswordHashRequiresAdmin(t *testing.T) {
	e, h := newServer(t)

	rec := do(t, e, h, "bob", http.MethodPost, "/f1/password-hash", `{"username":"x","password":"y"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIsAdmin(t *testing.T) {
	h := New(nil, fixtureTables(), testKey, Options{AdminUsers: []string{"Root", " ops "}})

	assert.True(t, h.isAdmin("root"))
	assert.True(t, h.isAdmin("OPS"))
	assert.False(t, h.isAdmin("admin"))

	def := New(nil, fixtureTables(), testKey, Options{})
	assert.True(t, def.isAdmin("admin"))
}

func TestHashPasswordForUser(t *testing.T) {
	_, err := HashPasswordForUser(" ", "pw")
	assert.Error(t, err)
	_, err = HashPasswordForUser("alice", "")
	assert.Error(t, err)

	hash, err := HashPasswordForUser("alice", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
}

func TestValidator(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&credentials{Username: "a", Password: "b"}))

	err := v.Validate(&credentials{Username: "a"})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
