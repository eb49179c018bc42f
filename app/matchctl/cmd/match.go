package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoockh/orbitmatch/config"
	"github.com/yoockh/orbitmatch/internal/api/validation"
	"github.com/yoockh/orbitmatch/internal/bootstrap"
	"github.com/yoockh/orbitmatch/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	matchFile    string
	matchActor   string
	matchTimeout time.Duration
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one match request from a YAML file and print the response as JSON",
	Example: `  matchctl match -f request.yaml
  matchctl match -f request.yaml --actor ops@example.com`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if matchFile == "" {
			return errors.New("-f/--file is required")
		}
		req, err := readMatchRequest(matchFile)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		infra, closeInfra, err := connect()
		if err != nil {
			return err
		}
		defer closeInfra()

		svcs, err := bootstrap.Build(cfg, infra, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), matchTimeout)
		defer cancel()

		resp, err := svcs.Matching.Match(ctx, req, matchActor)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	matchCmd.Flags().StringVarP(&matchFile, "file", "f", "", "match request in YAML")
	matchCmd.Flags().StringVar(&matchActor, "actor", app, "actor recorded on the audit trail")
	matchCmd.Flags().DurationVar(&matchTimeout, "timeout", 30*time.Second, "overall deadline")
}

func readMatchRequest(path string) (*models.MatchRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req models.MatchRequest
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request %s: %w", path, err)
	}
	return &req, nil
}

// connect opens Mongo and, when configured, Redis and the Postgres mirror.
func connect() (bootstrap.Infra, func(), error) {
	if err := config.InitMongo(); err != nil {
		return bootstrap.Infra{}, nil, fmt.Errorf("mongo: %w", err)
	}
	db, err := config.MongoDatabase()
	if err != nil {
		return bootstrap.Infra{}, nil, err
	}
	infra := bootstrap.Infra{Mongo: db}

	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_URI") != "" || os.Getenv("REDIS_URL") != "" {
		if err := config.InitRedis(); err != nil {
			log.WithError(err).Warn("redis unavailable; running without cache and events")
		} else {
			infra.Redis = config.RedisClient
		}
	}
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Warn("postgres unavailable; audit mirror disabled")
	} else {
		infra.Postgres = config.PostgresDB
	}

	return infra, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if infra.Redis != nil {
			_ = infra.Redis.Close()
		}
		_ = config.CloseMongo(ctx)
	}, nil
}
