package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"DEBUG", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			app := &cli.App{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: "info"},
				},
				Before: setupLogger,
				Action: func(c *cli.Context) error { return nil },
			}
			err := app.Run([]string{"sentinel", "--log-level", tt.level})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log level")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAIConfigFromFlags(t *testing.T) {
	var captured error
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host"},
			&cli.StringFlag{Name: "embedding-model"},
			&cli.StringFlag{Name: "extractor-model"},
			&cli.StringFlag{Name: "token"},
		},
		Action: func(c *cli.Context) error {
			config := aiConfigFromFlags(c)
			captured = config.Validate()
			assert.Equal(t, "http://example.test/v1", config.EmbeddingHost)
			assert.Equal(t, "http://example.test/v1", config.ExtractorHost)
			assert.Equal(t, "custom-embed", config.EmbeddingModel)
			return nil
		},
	}

	err := app.Run([]string{"sentinel",
		"--host", "http://example.test",
		"--embedding-model", "custom-embed",
	})
	require.NoError(t, err)
	require.NoError(t, captured)
}

func TestReadContent(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := t.TempDir() + "/content.txt"
		require.NoError(t, os.WriteFile(path, []byte("file content"), 0644))

		runWithArgs(t, []string{"sentinel", "--file", path}, func(c *cli.Context) {
			content, err := readContent(c)
			require.NoError(t, err)
			assert.Equal(t, "file content", content)
		})
	})

	t.Run("from args", func(t *testing.T) {
		runWithArgs(t, []string{"sentinel", "some", "captured", "text"}, func(c *cli.Context) {
			content, err := readContent(c)
			require.NoError(t, err)
			assert.Equal(t, "some captured text", content)
		})
	})

	t.Run("nothing given", func(t *testing.T) {
		runWithArgs(t, []string{"sentinel"}, func(c *cli.Context) {
			_, err := readContent(c)
			require.Error(t, err)
		})
	})

	t.Run("missing file", func(t *testing.T) {
		runWithArgs(t, []string{"sentinel", "--file", "/does/not/exist"}, func(c *cli.Context) {
			_, err := readContent(c)
			require.Error(t, err)
		})
	})
}

func runWithArgs(t *testing.T, args []string, fn func(c *cli.Context)) {
	t.Helper()
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}},
		},
		Action: func(c *cli.Context) error {
			fn(c)
			return nil
		},
	}
	require.NoError(t, app.Run(args))
}
