package main

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/f1globe/config"
	"github.com/padraicbc/f1globe/dashboard"
	"github.com/padraicbc/f1globe/dataset"
	"github.com/padraicbc/f1globe/db"
	"github.com/padraicbc/f1globe/handlers"
	applog "github.com/padraicbc/f1globe/logger"
	mw "github.com/padraicbc/f1globe/middleware"
)

//go:embed all:build/*
var embeddedFiles embed.FS

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	tables, err := loadTables(context.Background(), cfg, bdb)
	if err != nil {
		logger.Fatal("load dataset failed", zap.Error(err))
	}
	logger.Info("dataset loaded", applog.TableCounts(tables.Counts())...)

	h := handlers.New(bdb, tables, cfg.JWTKey(), handlers.Options{
		Dashboard: dashboard.Options{
			TopN:        cfg.TopN,
			MaxDrivers:  cfg.MaxDrivers,
			LapYearFrom: cfg.LapYearFrom,
			LapYearTo:   cfg.LapYearTo,
		},
		SessionTTL: cfg.SessionTTL,
		AdminUsers: cfg.AdminUsers,
	})
	h.Sessions().OnCreate(func(user string, st *dashboard.Store) {
		logger.Debug("session started", zap.String("user", user))
		st.Subscribe(func(v dashboard.View) {
			logger.Info("view updated",
				zap.String("user", user),
				zap.String("circuit", v.Selection.CircuitID),
				zap.Int("season", v.Selection.Season),
				zap.Int("drivers", len(v.Selection.DriverIDs)),
			)
		})
	})

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/f1/signin", h.Signin)

	// Protected: require valid JWT in Authorization header
	f1 := e.Group("/f1", mw.JWT(cfg.JWTKey()))
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

	// Strip the "build/" prefix so URLs work correctly
	subFS, err := fs.Sub(embeddedFiles, "build")
	if err != nil {
		logger.Fatal("open embedded build fs failed", zap.Error(err))
	}
	// Serve static files correctly using Echo's WrapHandler
	fileServer := http.FileServer(http.FS(subFS))
	e.GET("/*", func(c echo.Context) error {
		path := c.Request().URL.Path

		// If request is for a static file, serve it
		if strings.Contains(path, ".") { // Matches JS, CSS, images, etc.
			http.StripPrefix("/", fileServer).ServeHTTP(c.Response(), c.Request())
			return nil
		}
		// Otherwise, serve `index.html` for client-side routing (SPA fallback)
		indexFile, err := subFS.Open("index.html")

		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		defer indexFile.Close()

		return c.Stream(http.StatusOK, "text/html", indexFile)
	})

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

// loadTables reads the CSV dataset when DATA_DIR is set, otherwise the
// tables stored in PostgreSQL.
func loadTables(ctx context.Context, cfg *config.Config, bdb bun.IDB) (*dataset.Tables, error) {
	if cfg.DataDir != "" {
		return dataset.LoadCSVDir(cfg.DataDir)
	}
	return dataset.Load(ctx, bdb)
}
