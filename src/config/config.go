package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// DATE_PARSE_FORMAT is the only accepted shape for preferred shoot dates.
const DATE_PARSE_FORMAT = "2006-01-02"

// DATE_TIME_SUFFIX is appended to preferred dates on save so the stored value
// renders on the same calendar day in every client timezone.
const DATE_TIME_SUFFIX = "T12:00:00"

// POLL_INTERVAL_SECONDS is how often the synchronizer re-fetches the booking
// collection.
const POLL_INTERVAL_SECONDS = 30
