package integration_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/cinetix/cinema-booking-system/internal/app"
	"github.com/cinetix/cinema-booking-system/internal/mailer"
	"github.com/cinetix/cinema-booking-system/internal/queue"
	"github.com/cinetix/cinema-booking-system/internal/repository"
	appvalidator "github.com/cinetix/cinema-booking-system/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Redis    redis.UniversalClient
	Sessions *scs.SessionManager
	Mailer   *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		queue.NoopPublisher{},
		sessionManager,
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresCinemaRepository(db),
		repository.NewPostgresScreenRepository(db),
		repository.NewPostgresShowRepository(db),
		repository.NewPostgresBookingRepository(db),
	)

	return &TestApp{
		App:      application,
		DB:       db,
		Redis:    redisClient,
		Sessions: sessionManager,
		Mailer:   mockMailer,
	}, nil
}

// sessionCookies mints a session the way the auth collaborator would:
// the user's id and admin flag committed to the shared session store.
func (a *TestApp) sessionCookies(t testing.TB, userId int, isAdmin bool) []http.Cookie {
	t.Helper()

	ctx, err := a.Sessions.Load(context.Background(), "")
	require.NoError(t, err)

	a.Sessions.Put(ctx, app.SessionKeyUserId, userId)
	a.Sessions.Put(ctx, app.SessionKeyIsAdmin, isAdmin)

	token, _, err := a.Sessions.Commit(ctx)
	require.NoError(t, err)

	return []http.Cookie{{Name: a.Sessions.Cookie.Name, Value: token}}
}

func (a *TestApp) authenticatedUserCookies(t testing.TB) []http.Cookie {
	return a.sessionCookies(t, TestUserId, false)
}

func (a *TestApp) adminUserCookies(t testing.TB) []http.Cookie {
	return a.sessionCookies(t, TestAdminId, true)
}
