package integration_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingTestSuite struct {
	BaseSuite
}

func TestBookingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(BookingTestSuite))
}

func setupCatalogTestState(t testing.TB, app *TestApp) {
	executeSQLFile(t, app.DB, "testdata/catalog_down.sql")
	executeSQLFile(t, app.DB, "testdata/catalog_up.sql")
}

func setupBookingTestState(t testing.TB, app *TestApp) {
	setupCatalogTestState(t, app)
	executeSQLFile(t, app.DB, "testdata/bookings_up.sql")
}

func countRows(t testing.TB, app *TestApp, query string, args ...any) int {
	t.Helper()

	var count int
	err := app.DB.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}

func (s *BookingTestSuite) TestCreateBooking() {
	cookies := s.app.authenticatedUserCookies(s.T())

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "POST",
			URL:              "/bookings",
			Body:             strings.NewReader(`{"showId": 1, "seats": [{"row": 1, "col": 1}]}`),
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:             "returns 404 when the show does not exist",
			Method:           "POST",
			URL:              "/bookings",
			Body:             strings.NewReader(`{"showId": 999, "seats": [{"row": 1, "col": 1}]}`),
			Cookies:          cookies,
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "show not found"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupCatalogTestState(t, app)
			},
		},
		{
			Name:           "returns 422 for more than six seats",
			Method:         "POST",
			URL:            "/bookings",
			Body:           strings.NewReader(`{"showId": 1, "seats": [{"row":1,"col":0},{"row":1,"col":1},{"row":1,"col":2},{"row":1,"col":3},{"row":1,"col":4},{"row":1,"col":5},{"row":1,"col":6}]}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			Name:           "returns 422 for duplicate seats",
			Method:         "POST",
			URL:            "/bookings",
			Body:           strings.NewReader(`{"showId": 1, "seats": [{"row":1,"col":1},{"row":1,"col":1}]}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			Name:             "returns 409 when a seat is already booked",
			Method:           "POST",
			URL:              "/bookings",
			Body:             strings.NewReader(`{"showId": 1, "seats": [{"row": 5, "col": 5}]}`),
			Cookies:          cookies,
			ExpectedStatus:   http.StatusConflict,
			ExpectedResponse: `{"message": "One or more of the selected seats are already booked for this show"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				// The conflicting booking must not leave partial rows behind.
				got := countRows(t, app, `SELECT count(*) FROM bookings WHERE user_id = $1`, TestUserId)
				require.Equal(t, 1, got)
			},
		},
		{
			Name:           "books free seats and confirms by mail",
			Method:         "POST",
			URL:            "/bookings",
			Body:           strings.NewReader(`{"showId": 1, "seats": [{"row": 2, "col": 0}, {"row": 2, "col": 1}]}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: `{
				"id": 101,
				"userId": 1,
				"showId": 1,
				"seats": [{"row": 2, "col": 0}, {"row": 2, "col": 1}]
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				got := countRows(t, app, `SELECT count(*) FROM booking_seats WHERE show_id = 1`)
				require.Equal(t, 5, got)

				require.Eventually(t, func() bool {
					for _, mail := range app.Mailer.Sent() {
						if mail.Recipient == TestUserEmail && mail.TemplateFile == "booking_confirmation.tmpl" {
							return true
						}
					}
					return false
				}, 3*time.Second, 50*time.Millisecond, "booking confirmation mail was not sent")
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

// TestConcurrentBookingOfSameSeat races two users for one seat. Exactly
// one booking must win and the seat must end up booked exactly once.
func (s *BookingTestSuite) TestConcurrentBookingOfSameSeat() {
	t := s.T()

	setupCatalogTestState(t, s.app)

	aliceCookies := s.app.sessionCookies(t, TestUserId, false)
	bobCookies := s.app.sessionCookies(t, TestSecondUser, false)

	routes := s.app.App.Routes()
	statuses := make([]int, 2)

	var wg sync.WaitGroup
	for i, cookies := range [][]http.Cookie{aliceCookies, bobCookies} {
		wg.Add(1)
		go func(i int, cookies []http.Cookie) {
			defer wg.Done()

			body := strings.NewReader(`{"showId": 1, "seats": [{"row": 4, "col": 4}]}`)
			req, err := prepareRequest("POST", "/bookings", body, nil, cookies)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, req)
			statuses[i] = rec.Code
		}(i, cookies)
	}
	wg.Wait()

	var created, conflicted int
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}

	require.Equal(t, 1, created, "exactly one booking should win the seat")
	require.Equal(t, 1, conflicted, "the losing booking should get a conflict")

	got := countRows(t, s.app, `SELECT count(*) FROM booking_seats WHERE show_id = 1 AND seat_row = 4 AND seat_col = 4`)
	require.Equal(t, 1, got)
}

func (s *BookingTestSuite) TestGetUserBookings() {
	cookies := s.app.authenticatedUserCookies(s.T())

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "GET",
			URL:              "/bookings/me",
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:             "returns empty list when user has no bookings",
			Method:           "GET",
			URL:              "/bookings/me",
			Cookies:          cookies,
			ExpectedStatus:   http.StatusOK,
			ExpectedResponse: `{"bookings": []}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupCatalogTestState(t, app)
			},
		},
		{
			Name:           "returns only the caller's bookings",
			Method:         "GET",
			URL:            "/bookings/me",
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"bookings": [
					{"id": 1, "userId": 1, "showId": 1, "seats": [{"row": 0, "col": 0}, {"row": 0, "col": 1}]}
				]
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *BookingTestSuite) TestCancelBooking() {
	cookies := s.app.authenticatedUserCookies(s.T())

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "DELETE",
			URL:              "/bookings/1",
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:             "returns 404 for a booking that does not exist",
			Method:           "DELETE",
			URL:              "/bookings/999",
			Cookies:          cookies,
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "booking not found"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
		},
		{
			Name:             "returns 403 when cancelling another user's booking",
			Method:           "DELETE",
			URL:              "/bookings/2",
			Cookies:          cookies,
			ExpectedStatus:   http.StatusForbidden,
			ExpectedResponse: `{"message": "You do not have permission to perform this action"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
		},
		{
			Name:           "cancelling releases the booking's seats",
			Method:         "DELETE",
			URL:            "/bookings/1",
			Cookies:        cookies,
			ExpectedStatus: http.StatusNoContent,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				got := countRows(t, app, `SELECT count(*) FROM booking_seats WHERE booking_id = 1`)
				require.Equal(t, 0, got)

				// The other user's booking is untouched.
				got = countRows(t, app, `SELECT count(*) FROM booking_seats WHERE booking_id = 2`)
				require.Equal(t, 1, got)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *BookingTestSuite) TestGetShowBookings() {
	userCookies := s.app.authenticatedUserCookies(s.T())
	adminCookies := s.app.adminUserCookies(s.T())

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "GET",
			URL:              "/shows/1/bookings",
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:             "returns 403 for a non-admin user",
			Method:           "GET",
			URL:              "/shows/1/bookings",
			Cookies:          userCookies,
			ExpectedStatus:   http.StatusForbidden,
			ExpectedResponse: `{"message": "You do not have permission to perform this action"}`,
		},
		{
			Name:           "returns every booking with owner identity",
			Method:         "GET",
			URL:            "/shows/1/bookings",
			Cookies:        adminCookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"bookings": [
					{"id": 1, "seats": [{"row": 0, "col": 0}, {"row": 0, "col": 1}], "user": {"name": "Alice Example", "email": "alice@example.com"}},
					{"id": 2, "seats": [{"row": 5, "col": 5}], "user": {"name": "Bob Example", "email": "bob@example.com"}}
				]
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *BookingTestSuite) TestGetShowSeatLayout() {
	adminCookies := s.app.adminUserCookies(s.T())

	scenarios := []Scenario{
		{
			Name:             "returns 404 for a show that does not exist",
			Method:           "GET",
			URL:              "/shows/999/seat-layout",
			Cookies:          adminCookies,
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "show not found"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
		},
		{
			Name:           "returns the full grid with booked seat owners",
			Method:         "GET",
			URL:            "/shows/1/seat-layout",
			Cookies:        adminCookies,
			ExpectedStatus: http.StatusOK,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				setupBookingTestState(t, app)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var layout struct {
					ShowId int `json:"showId"`
					Seats  []struct {
						Label  string `json:"label"`
						Booked bool   `json:"booked"`
						User   *struct {
							Name  string `json:"name"`
							Email string `json:"email"`
						} `json:"user"`
					} `json:"seats"`
				}
				require.NoError(t, jsonDecode(res.Body, &layout))

				require.Equal(t, 1, layout.ShowId)
				require.Len(t, layout.Seats, 100)

				byLabel := make(map[string]int)
				for i, seat := range layout.Seats {
					byLabel[seat.Label] = i
				}

				a1 := layout.Seats[byLabel["A1"]]
				require.True(t, a1.Booked)
				require.NotNil(t, a1.User)
				require.Equal(t, TestUserEmail, a1.User.Email)

				f6 := layout.Seats[byLabel["F6"]]
				require.True(t, f6.Booked)
				require.NotNil(t, f6.User)
				require.Equal(t, "bob@example.com", f6.User.Email)

				j10 := layout.Seats[byLabel["J10"]]
				require.False(t, j10.Booked)
				require.Nil(t, j10.User)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
