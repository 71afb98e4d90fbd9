package server

import (
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/app"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
)

// Config wires the HTTP server. Store and Client override the defaults
// built from AppConfig, which tests use to inject fakes.
type Config struct {
	ListenAddr string
	AppConfig  *app.Config
	Logger     logging.Logger

	Store  interfaces.SessionStore
	Client interfaces.ResultsClient
}
