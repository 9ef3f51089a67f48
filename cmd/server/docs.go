package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Earn API
// @version         0.1.0
// @description     Strategy discovery, positions, and unsigned deposit/withdraw transactions for wallet clients.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
