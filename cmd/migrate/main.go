package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"booking-platform/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	var (
		dir        = flag.String("dir", "file://migrations", "migration directory URL")
		atlasBin   = flag.String("atlas", "atlas", "path to the atlas binary")
		statusOnly = flag.Bool("status", false, "print migration status without applying")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// only the database section is needed here
	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		logger.Error("failed to load database config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", *atlasBin)
	if err != nil {
		logger.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbURL := databaseURL(dbCfg)

	if *statusOnly {
		status, statusErr := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: dbURL, DirURL: *dir})
		if statusErr != nil {
			logger.Error("failed to read migration status", "error", statusErr)
			os.Exit(1)
		}
		logger.Info("migration status",
			"status", status.Status,
			"current", status.Current,
			"next", status.Next,
			"pending", len(status.Pending),
		)
		return
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: dbURL, DirURL: *dir})
	if err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
}

func databaseURL(db config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   fmt.Sprintf("%s:%s", db.Host, db.Port),
		Path:   db.DBName,
	}
	q := u.Query()
	q.Set("sslmode", db.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
