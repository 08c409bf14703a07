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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sentinelkb/sentinel"
	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/ai/openai"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/ingestion"
	"github.com/sentinelkb/sentinel/reembed"
	"github.com/sentinelkb/sentinel/search"
	"github.com/sentinelkb/sentinel/storage/badger"
)

func main() {
	// A missing .env file is fine; flags and process env still apply
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "sentinel",
		Usage: "Capture content, distill insights, search them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./sentinel_db",
				EnvVars: []string{"SENTINEL_DB"},
			},
			&cli.BoolFlag{
				Name:    "fallback",
				Usage:   "Run on the deterministic fallback provider, without an AI backend",
				EnvVars: []string{"SENTINEL_FALLBACK"},
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "OpenAI-compatible API host URL",
				EnvVars: []string{"SENTINEL_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				EnvVars: []string{"SENTINEL_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "extractor-model",
				Usage:   "Insight extraction model name",
				EnvVars: []string{"SENTINEL_EXTRACTOR_MODEL"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "API token for the AI backend",
				EnvVars: []string{"SENTINEL_TOKEN"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "capture",
				Usage:     "Submit content for capture and insight extraction",
				ArgsUsage: "[text]",
				Action:    captureCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Content type (tweet, article, code, note, other)",
						Value:   "note",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Tag to attach (repeatable)",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source URL or platform identifier",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read content from a file instead of the argument",
					},
					&cli.BoolFlag{
						Name:    "wait",
						Aliases: []string{"w"},
						Usage:   "Wait for processing to finish and print the insight",
					},
					&cli.DurationFlag{
						Name:  "wait-timeout",
						Usage: "How long --wait polls before giving up",
						Value: 2 * time.Minute,
					},
				},
			},
			{
				Name:      "get",
				Usage:     "Show a capture and its insight",
				ArgsUsage: "<capture-id>",
				Action:    getCommand,
			},
			{
				Name:   "recent",
				Usage:  "List the most recently captured records",
				Action: recentCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of captures to list",
						Value:   10,
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only show captures in this status (pending, processing, completed, failed)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search insights by meaning",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum similarity score",
						Value: float64(search.DefaultThreshold),
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print search stages as they run",
					},
				},
			},
			{
				Name:      "tags",
				Usage:     "List tags, or find insights carrying the given tags",
				ArgsUsage: "[tag...]",
				Action:    tagsCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "match-all",
						Usage: "Require every tag instead of any",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored insights with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of insights to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N insights",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openEngine builds an Engine from the global flags.
func openEngine(c *cli.Context) (*sentinel.Engine, error) {
	opts := []sentinel.Option{sentinel.WithLogger(slog.Default())}

	if c.Bool("fallback") {
		opts = append(opts, sentinel.WithFallbackOnly())
	} else {
		config := aiConfigFromFlags(c)
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		opts = append(opts, sentinel.WithAIConfig(config))
	}

	return sentinel.Open(c.String("db"), opts...)
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	var configOpts []ai.ConfigOption
	if host := c.String("host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("extractor-model"); model != "" {
		configOpts = append(configOpts, ai.WithExtractorModel(model))
	}
	if token := c.String("token"); token != "" {
		configOpts = append(configOpts, ai.WithToken(token))
	}
	return ai.NewConfig(configOpts...)
}

func captureCommand(c *cli.Context) error {
	content, err := readContent(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	capture, err := engine.Submit(ctx, ingestion.SubmitRequest{
		SourceURL:   c.String("source"),
		ContentType: core.ParseContentType(c.String("type")),
		RawContent:  content,
		Tags:        c.StringSlice("tag"),
	})
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	fmt.Printf("Captured %d (%s)\n", capture.Id, capture.Status)

	if !c.Bool("wait") {
		return nil
	}

	capture, insight, err := waitForTerminal(ctx, engine, capture.Id, c.Duration("wait-timeout"))
	if err != nil {
		return err
	}
	if capture.Status == core.StatusFailed {
		return fmt.Errorf("processing failed: %s", capture.ErrorMessage)
	}

	printInsight(insight)
	return nil
}

func readContent(c *cli.Context) (string, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	return "", fmt.Errorf("no content: pass text as an argument or use --file")
}

func waitForTerminal(ctx context.Context, engine *sentinel.Engine, id core.ID, timeout time.Duration) (*core.Capture, *core.Insight, error) {
	deadline := time.Now().Add(timeout)
	for {
		capture, insight, err := engine.Get(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if capture.Status.Terminal() {
			return capture, insight, nil
		}
		if time.Now().After(deadline) {
			return nil, nil, fmt.Errorf("capture %d still %s after %v", id, capture.Status, timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func getCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: sentinel get <capture-id>")
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid capture id %q: %w", c.Args().First(), err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	capture, insight, err := engine.Get(context.Background(), core.ID(id))
	if err != nil {
		return err
	}

	fmt.Printf("Capture %d\n", capture.Id)
	fmt.Printf("  Status:   %s\n", capture.Status)
	fmt.Printf("  Type:     %s\n", capture.ContentType)
	if capture.SourceURL != "" {
		fmt.Printf("  Source:   %s\n", capture.SourceURL)
	}
	fmt.Printf("  Captured: %s\n", capture.CapturedAt.Format(time.RFC3339))
	if capture.Status == core.StatusFailed {
		fmt.Printf("  Error:    %s\n", capture.ErrorMessage)
	}
	if insight != nil {
		fmt.Println()
		printInsight(insight)
	}
	return nil
}

func printInsight(insight *core.Insight) {
	fmt.Printf("Insight for capture %d\n", insight.CaptureId)
	fmt.Printf("  Title:   %s\n", insight.Title)
	fmt.Printf("  Summary: %s\n", insight.Summary)
	for _, point := range insight.KeyPoints {
		fmt.Printf("  - %s\n", point)
	}
	for _, item := range insight.ActionItems {
		fmt.Printf("  * %s\n", item)
	}
	if len(insight.Tags) > 0 {
		fmt.Printf("  Tags:    %s\n", strings.Join(insight.Tags, ", "))
	}
}

func recentCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	var captures []*core.Capture
	if name := c.String("status"); name != "" {
		status, parseErr := core.ParseCaptureStatus(name)
		if parseErr != nil {
			return parseErr
		}
		captures, err = engine.CaptureRepository().GetCapturesByStatus(ctx, status)
	} else {
		captures, err = engine.CaptureRepository().GetRecentCaptures(ctx, c.Int("limit"))
	}
	if err != nil {
		return err
	}
	if limit := c.Int("limit"); len(captures) > limit {
		captures = captures[:limit]
	}

	for _, capture := range captures {
		fmt.Printf("%d  %-10s  %-7s  %s\n",
			capture.Id, capture.Status, capture.ContentType, capture.CapturedAt.Format(time.RFC3339))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: sentinel search <query...>")
	}
	query := strings.Join(c.Args().Slice(), " ")

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	topK := c.Int("top-k")
	threshold := float32(c.Float64("threshold"))

	var results []*core.SearchResult
	if c.Bool("verbose") {
		results, err = engine.Searcher().SearchSemanticWithMonitor(ctx, query, topK, threshold, &stageMonitor{out: os.Stderr})
	} else {
		results, err = engine.SearchSemantic(ctx, query, topK, threshold)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %q (capture %d) [%.3f]\n", i+1, hit.Insight.Title, hit.Insight.CaptureId, hit.Score)
	}
	return nil
}

func tagsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	if c.NArg() == 0 {
		tags, err := engine.TagRepository().ListTags(ctx)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			fmt.Println(tag.Name)
		}
		return nil
	}

	insights, err := engine.SearchByTags(ctx, c.Args().Slice(), c.Bool("match-all"))
	if err != nil {
		return fmt.Errorf("tag search failed: %w", err)
	}

	fmt.Printf("Found %d insights\n", len(insights))
	for i, insight := range insights {
		fmt.Printf("%d: %q (capture %d) [%s]\n", i+1, insight.Title, insight.CaptureId, strings.Join(insight.Tags, ", "))
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	dbPath := c.String("db")
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	insightRepo, err := badger.NewInsightRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer insightRepo.Close()

	checkpointRepo := badger.NewCheckpointRepository(backend)

	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder, err := reembed.NewReembedder(insightRepo, checkpointRepo, embedder, reembedConfig, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", aiConfig.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", aiConfig.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

// stageMonitor prints search stages for --verbose.
type stageMonitor struct {
	out *os.File
}

var _ search.SearchMonitor = (*stageMonitor)(nil)

func (m *stageMonitor) Start(query string) {
	fmt.Fprintf(m.out, "searching: %q\n", query)
}

func (m *stageMonitor) AfterQueryEmbedding(vector []float32) {
	fmt.Fprintf(m.out, "query embedded (%d dimensions)\n", len(vector))
}

func (m *stageMonitor) AfterSimilarityScan(matches []*core.SearchResult) {
	fmt.Fprintf(m.out, "similarity scan matched %d insights\n", len(matches))
}

func (m *stageMonitor) Finish(results []*core.SearchResult) {
	fmt.Fprintf(m.out, "returning %d results\n", len(results))
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
