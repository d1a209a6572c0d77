// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/policymatch"
	"github.com/poiesic/policymatch/ai"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "policymatch",
		Usage: "Hybrid semantic search and eligibility ranking for youth support policies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import policies from a workbook with one sheet per category",
				Action: importCommand,
				Flags: withServiceFlags(
					&cli.StringFlag{
						Name:     "workbook",
						Aliases:  []string{"w"},
						Usage:    "Path to the .xlsx workbook (sheets 중앙부처/지자체/민간 or central/local/private)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "append",
						Usage: "Add to the stored policies instead of replacing them",
					},
					&cli.BoolFlag{
						Name:  "no-dedupe",
						Usage: "Keep duplicate policies",
					},
					&cli.BoolFlag{
						Name:  "warm",
						Usage: "Encode the imported policies into the embedding cache",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Rank policies for a free-text query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: withServiceFlags(withProfileFlags(
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   10,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict results to one category (central, local, private)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				)...),
			},
			{
				Name:   "recommend",
				Usage:  "List policies matching a profile's support needs",
				Action: recommendCommand,
				Flags: withServiceFlags(withProfileFlags(
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of policies to list",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict results to one category (central, local, private)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				)...),
			},
			{
				Name:  "profile",
				Usage: "Manage stored user profiles",
				Subcommands: []*cli.Command{
					{
						Name:   "set",
						Usage:  "Create or replace a user profile",
						Action: profileSetCommand,
						Flags:  withServiceFlags(withProfileFlags()...),
					},
					{
						Name:   "show",
						Usage:  "Print a stored user profile",
						Action: profileShowCommand,
						Flags: withServiceFlags(
							&cli.StringFlag{
								Name:     "user",
								Aliases:  []string{"u"},
								Usage:    "User ID",
								Required: true,
							},
						),
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Precompute the embedding cache for all stored policies",
				Action: reembedCommand,
				Flags: withServiceFlags(
					&cli.IntFlag{
						Name:  "reembed-batch-size",
						Usage: "Number of policies to process in each batch",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N policies",
						Value: 64,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Drop cached vectors for the model and encode everything again",
					},
				),
			},
			{
				Name:   "status",
				Usage:  "Show stored counts and the last search build",
				Action: statusCommand,
				Flags:  withServiceFlags(),
			},
		},
	}
}

// withServiceFlags prepends the flags every command needs to open the store
// and reach the embedding server.
func withServiceFlags(extra ...cli.Flag) []cli.Flag {
	defaults := ai.DefaultConfig()
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			EnvVars:  []string{"POLICYMATCH_DB"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "OpenAI-compatible embedding service host URL",
			EnvVars: []string{"POLICYMATCH_EMBEDDING_HOST"},
			Value:   defaults.Host,
		},
		&cli.StringFlag{
			Name:    "embedding-token",
			Usage:   "API token for the embedding service",
			EnvVars: []string{"POLICYMATCH_EMBEDDING_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "primary-model",
			Usage:   "Domain embedding model tried first",
			EnvVars: []string{"POLICYMATCH_PRIMARY_MODEL"},
			Value:   defaults.PrimaryModel,
		},
		&cli.StringFlag{
			Name:    "secondary-model",
			Usage:   "General multilingual model used when the primary cannot be loaded",
			EnvVars: []string{"POLICYMATCH_SECONDARY_MODEL"},
			Value:   defaults.SecondaryModel,
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of texts per embedding request",
			Value: defaults.BatchSize,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of embedding requests in flight",
			Value: defaults.Workers,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum attempts per embedding request",
			Value: defaults.MaxRetries,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: defaults.RetryDelay,
		},
	}
	return append(flags, extra...)
}

// openService builds the embedding configuration from flags and opens the store.
func openService(c *cli.Context) (*policymatch.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithToken(c.String("embedding-token")),
		ai.WithPrimaryModel(c.String("primary-model")),
		ai.WithSecondaryModel(c.String("secondary-model")),
		ai.WithBatchSize(c.Int("batch-size")),
		ai.WithWorkers(c.Int("workers")),
		ai.WithRetries(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	svc, err := policymatch.NewService(c.String("db"),
		policymatch.WithAIConfig(aiConfig),
		policymatch.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return svc, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}
