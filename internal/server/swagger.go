package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title Explaino Editor Engine API
// @version 0.1
// @description Timeline synchronization, effect rendering and change tracking for recorded explainer sessions.
// @BasePath /
