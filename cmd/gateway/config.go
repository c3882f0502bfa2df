package main

import (
	"flag"
	"os"
	"regexp"
	"strings"

	"github.com/amelchenko/forumpay-gateway/internal/forumpay"
	"github.com/joho/godotenv"
)

type Config struct {
	endpoint               string
	dsn                    string
	logLevel               string
	env                    string
	apiURL                 string
	apiURLOverride         string
	apiUser                string
	apiSecret              string
	posID                  string
	acceptZeroConf         bool
	orderStateAfterPayment string
	widgetSecretKey        string
	storeLocale            string
}

var posIDInvalidChars = regexp.MustCompile(`[^A-Za-z0-9.\-]`)

// sanitizePosID keeps the characters the processor allows in a POS id.
func sanitizePosID(posID string) string {
	return posIDInvalidChars.ReplaceAllString(strings.ReplaceAll(posID, " ", "-"), "")
}

// APIURL returns the configured processor URL, with the override taking
// precedence for testing against a custom environment.
func (c Config) APIURL() string {
	if c.apiURLOverride != "" {
		return c.apiURLOverride
	}
	return c.apiURL
}

func NewConfig() Config {
	// Absence of a .env file is fine; plain env vars still apply.
	_ = godotenv.Load()

	var (
		endpoint string
		dsn      string
	)

	flag.StringVar(&endpoint, "a", "localhost:8090", "address and port to run server")
	flag.StringVar(&dsn, "d", "", "data source name for database connection")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "error"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}

	apiURL := os.Getenv("FORUMPAY_API_URL")
	if apiURL == "" {
		apiURL = forumpay.ProductionURL
	}

	orderState := os.Getenv("ORDER_STATE_AFTER_PAYMENT")
	if orderState == "" {
		orderState = "completed"
	}

	locale := os.Getenv("STORE_LOCALE")
	if locale == "" {
		locale = "en"
	}

	return Config{
		endpoint:               endpoint,
		dsn:                    dsn,
		logLevel:               logLevel,
		env:                    env,
		apiURL:                 apiURL,
		apiURLOverride:         os.Getenv("FORUMPAY_API_URL_OVERRIDE"),
		apiUser:                os.Getenv("FORUMPAY_API_USER"),
		apiSecret:              os.Getenv("FORUMPAY_API_KEY"),
		posID:                  sanitizePosID(os.Getenv("FORUMPAY_POS_ID")),
		acceptZeroConf:         os.Getenv("ACCEPT_ZERO_CONFIRMATIONS") == "true",
		orderStateAfterPayment: orderState,
		widgetSecretKey:        os.Getenv("WIDGET_SECRET_KEY"),
		storeLocale:            locale,
	}
}
