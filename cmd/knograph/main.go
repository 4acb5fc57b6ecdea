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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/knograph"
	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/pipeline"
	"github.com/poiesic/knograph/reassess"
)

func main() {
	app := &cli.App{
		Name:  "knograph",
		Usage: "Knowledge graph extraction from natural language text",
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
				Name:   "extract",
				Usage:  "Extract entities and relations from text and write them to the graph",
				Action: extractCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:    "text",
						Aliases: []string{"t"},
						Usage:   "Text to extract from (reads stdin if omitted)",
					},
					&cli.BoolFlag{
						Name:  "social",
						Usage: "Focus the extraction on interpersonal relations",
					},
					&cli.StringFlag{
						Name:  "types",
						Usage: "Result kinds to extract (entities, relations, or both)",
						Value: "entities,relations",
					},
					&cli.BoolFlag{
						Name:  "mask-sensitive",
						Usage: "Scrub email addresses and phone numbers before extraction",
					},
				),
			},
			{
				Name:   "rollup",
				Usage:  "Recompute daily graph statistics",
				Action: rollupCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "date",
						Usage: "Statistics date as YYYY-MM-DD (defaults to today)",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show the statistics row for a date",
				Action: statsCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "date",
						Usage: "Statistics date as YYYY-MM-DD (defaults to today)",
					},
				),
			},
			{
				Name:   "reassess",
				Usage:  "Re-score all stored entities and relations",
				Action: reassessCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of subjects to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N subjects",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed writes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// serviceFlags are the flags shared by every command that opens a database.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "Extraction service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Extraction model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "ai-token",
			Usage: "API token, \"none\" for unauthenticated services",
			Value: "none",
		},
	}
}

func openService(c *cli.Context) (*knograph.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithModel(c.String("ai-model")),
		ai.WithToken(c.String("ai-token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	svc, err := knograph.NewService(c.String("db"), knograph.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return svc, nil
}

func extractCommand(c *cli.Context) error {
	ctx := context.Background()

	text := c.String("text")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no input text")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	operation := pipeline.OpExtract
	if c.Bool("social") {
		operation = pipeline.OpExtractSocial
	}

	resp, err := svc.Dispatch(ctx, operation, pipeline.Request{
		Text:          text,
		Types:         c.String("types"),
		MaskSensitive: c.Bool("mask-sensitive"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func rollupCommand(c *cli.Context) error {
	ctx := context.Background()

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	resp, err := svc.Dispatch(ctx, pipeline.OpRollup, pipeline.Request{
		Date: c.String("date"),
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("rollup failed: %s", resp.Error)
	}

	fmt.Println(resp.Message)
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	date := c.String("date")
	if date == "" {
		date = time.Now().Format(core.StatisticsDateFormat)
	}

	daily, err := svc.StatisticsRepository().GetDailyStatistics(ctx, date)
	if err != nil {
		return fmt.Errorf("no statistics for %s: %w", date, err)
	}

	return printJSON(daily)
}

func reassessCommand(c *cli.Context) error {
	ctx := context.Background()

	config := &reassess.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	reassessor, err := svc.NewReassessor(config)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintln(os.Stderr)

	if err := reassessor.Run(ctx); err != nil {
		return fmt.Errorf("reassessment failed: %w", err)
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
