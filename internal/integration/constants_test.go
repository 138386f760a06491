package integration_test

const (
	// Users seeded by testdata/catalog_up.sql
	TestUserId      = 1
	TestUserName    = "Alice Example"
	TestUserEmail   = "alice@example.com"
	TestSecondUser  = 2
	TestAdminId     = 3
	TestAdminEmail  = "admin@example.com"

	// Catalog seeded by testdata/catalog_up.sql
	TestMovieId  = 1
	TestCinemaId = 1
	TestScreenId = 1
	TestShowId   = 1
	TestShowId2  = 2
)
