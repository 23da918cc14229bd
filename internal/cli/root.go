package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vlatan/transcript-service/internal/config"
	"github.com/vlatan/transcript-service/internal/integrations/yt"
	"github.com/vlatan/transcript-service/internal/logging"
	"github.com/vlatan/transcript-service/internal/transcripts"
	"go.uber.org/zap"
)

type appState struct {
	verbose  bool
	jsonLogs bool

	logger *zap.Logger
	out    io.Writer

	fetchFn func(ctx context.Context, videoID string) (string, error)
	listFn  func(ctx context.Context, videoID string) ([]*yt.Transcript, error)
}

// NewRootCmd builds the transcript command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&appState{out: os.Stdout})
}

func newRootCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "transcript <videoId>",
		Short:             "Print the English transcript of a YouTube video",
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.fetchFn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.out, text)
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&app.jsonLogs, "json-logs", false, "log as JSON")

	cmd.AddCommand(newListCmd(app))

	return cmd
}

func newListCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "list <videoId>",
		Short: "List the caption tracks of a YouTube video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks, err := app.listFn(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			for _, tr := range tracks {
				kind := "manual"
				if tr.IsGenerated {
					kind = "generated"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", tr.LanguageCode, tr.Language, kind)
			}
			return tw.Flush()
		},
	}
}

// Wire the logger and the YouTube backed functions unless already set
func (app *appState) setup(cmd *cobra.Command, args []string) error {
	if app.out == nil {
		app.out = cmd.OutOrStdout()
	}

	if app.logger == nil {
		logger, err := logging.New(logging.Options{Debug: app.verbose, JSON: app.jsonLogs})
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		app.logger = logger
	}

	if app.fetchFn != nil && app.listFn != nil {
		return nil
	}

	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	client := yt.New(
		yt.WithBaseURL(cfg.YouTubeBaseURL),
		yt.WithTimeout(cfg.ProviderTimeout),
	)

	if app.fetchFn == nil {
		service := transcripts.New(transcripts.NewYouTubeProvider(client), app.logger)
		app.fetchFn = service.Fetch
	}

	if app.listFn == nil {
		app.listFn = func(ctx context.Context, videoID string) ([]*yt.Transcript, error) {
			list, err := client.ListTranscripts(ctx, videoID)
			if err != nil {
				return nil, err
			}
			return list.Transcripts(), nil
		}
	}

	return nil
}
