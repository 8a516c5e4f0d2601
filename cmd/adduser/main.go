// cmd/adduser/main.go
// Creates a dashboard user, or resets the password of an existing one.
//
// Usage:
//
//	go run ./cmd/adduser -username admin -password testing
package main

import (
	"context"
	"flag"
	"strings"

	"go.uber.org/zap"

	"github.com/padraicbc/f1globe/config"
	bundb "github.com/padraicbc/f1globe/db"
	"github.com/padraicbc/f1globe/handlers"
	applog "github.com/padraicbc/f1globe/logger"
	"github.com/padraicbc/f1globe/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	cfg := config.LoadTool()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		logger.Fatal("invalid input", zap.Error(err))
	}

	ctx := context.Background()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}

	user := &models.User{
		Username: strings.TrimSpace(*username),
		Password: hash,
	}
	_, err = db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password").
		Exec(ctx)
	if err != nil {
		logger.Fatal("save user", zap.Error(err))
	}

	logger.Info("user saved", zap.String("username", user.Username))
}
