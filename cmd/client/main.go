package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/client/files"
	"github.com/supchaser/pdf-image-extractor/internal/client/orchestrator"
	"github.com/supchaser/pdf-image-extractor/internal/client/resolver"
	"github.com/supchaser/pdf-image-extractor/internal/client/saver"
	"github.com/supchaser/pdf-image-extractor/internal/client/transport"
	"github.com/supchaser/pdf-image-extractor/internal/config"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"github.com/supchaser/pdf-image-extractor/internal/utils/validate"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// client bundles everything a command needs.
type client struct {
	cfg          *config.ClientConfig
	ui           *UI
	transport    *transport.HTTPTransport
	resolver     *resolver.Resolver
	saver        *saver.DirSaver
	orchestrator *orchestrator.Orchestrator
}

func newClient(c *cli.Context) (*client, error) {
	cfg, err := config.LoadClientConfig(c.String("env"))
	if err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}
	if c.IsSet("api-url") {
		cfg.APIBaseURL = c.String("api-url")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("log-mode") {
		cfg.LogMode = c.String("log-mode")
	}

	if err := logger.Init(cfg.LogMode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Debug("client configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Int("max_upload_size_mb", cfg.MaxUploadSizeMB),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.String("output_dir", cfg.OutputDir),
	)

	maxFileSize := int64(cfg.MaxUploadSizeMB) * validate.MB
	ui := NewUI(c.Bool("no-color"))
	tr := transport.CreateHTTPTransport(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, maxFileSize)
	res := resolver.New(cfg.APIBaseURL)
	dirSaver := saver.CreateDirSaver(cfg.OutputDir)

	opts := orchestrator.DefaultOptions()
	opts.MaxFileSize = maxFileSize

	orch := orchestrator.New(tr, res, dirSaver, ui, opts)
	orch.Subscribe(ui.Render)

	return &client{
		cfg:          cfg,
		ui:           ui,
		transport:    tr,
		resolver:     res,
		saver:        dirSaver,
		orchestrator: orch,
	}, nil
}

func openFiles(c *cli.Context) ([]models.FileHandle, error) {
	if c.NArg() == 0 {
		return nil, cli.Exit("no files given", 2)
	}

	opened, err := files.OpenAll(c.Args().Slice())
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}

	handles := make([]models.FileHandle, 0, len(opened))
	for _, f := range opened {
		handles = append(handles, f)
	}

	return handles, nil
}

func extractAction(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer logger.Sync()

	handles, err := openFiles(c)
	if err != nil {
		return err
	}

	<-cl.orchestrator.RunExtraction(c.Context, handles)

	state := cl.orchestrator.State()
	if state.Phase != models.PhaseSucceeded {
		// the failure was already reported through the notifier
		return cli.Exit("", 1)
	}
	cl.ui.Result(state)

	if c.Bool("download") && state.DisplayedCount() > 0 {
		if _, err := cl.orchestrator.TriggerDownload(c.Context, handles); err != nil {
			return cli.Exit("", 1)
		}
	}

	return nil
}

func downloadAction(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer logger.Sync()

	handles, err := openFiles(c)
	if err != nil {
		return err
	}

	if !c.Bool("per-document") {
		if _, err := cl.orchestrator.TriggerDownload(c.Context, handles); err != nil {
			return cli.Exit("", 1)
		}
		return nil
	}

	failed := 0
	for _, h := range handles {
		if _, err := cl.orchestrator.TriggerDocumentDownload(c.Context, h); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d downloads failed", failed, len(handles)), 1)
	}

	return nil
}

func listAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: list <pdf-id>", 2)
	}

	cl, err := newClient(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer logger.Sync()

	records, err := cl.transport.ListDocumentImages(c.Context, c.Args().First())
	if err != nil {
		return cli.Exit(errs.Message(err), 1)
	}

	for i := range records {
		records[i].URL = cl.resolver.Resolve(records[i].URL)
	}
	cl.ui.Records(records)

	return nil
}

func fetchAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: fetch <image-ref>", 2)
	}

	cl, err := newClient(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer logger.Sync()

	location := cl.resolver.Resolve(c.Args().First())
	data, err := cl.transport.FetchImage(c.Context, location)
	if err != nil {
		var fe *errs.FetchError
		if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
			return cli.Exit("Image not found or has been cleaned up", 1)
		}
		return cli.Exit(errs.Message(err), 1)
	}

	name := location
	if u, err := url.Parse(location); err == nil {
		name = u.Path
	}
	saved, err := cl.saver.Save(c.Context, path.Base(name), data)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cl.ui.Info("Saved %s", saved)

	return nil
}

func main() {
	app := &cli.App{
		Name:  "pdf-images",
		Usage: "extract embedded images from PDF documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to a .env file",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "api-url",
				Aliases: []string{"u"},
				Usage:   "base URL of the extraction service",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory for downloaded archives and images",
			},
			&cli.StringFlag{
				Name:  "log-mode",
				Usage: "debug or release",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "disable colored output",
				EnvVars: []string{"NO_COLOR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "list the images of one or more PDFs",
				ArgsUsage: "<file.pdf>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "download",
						Aliases: []string{"d"},
						Usage:   "also save the images as extracted_images.zip",
					},
				},
				Action: extractAction,
			},
			{
				Name:      "download",
				Usage:     "save the images of one or more PDFs as a zip archive",
				ArgsUsage: "<file.pdf>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "per-document",
						Usage: "save one {name}_images.zip per document",
					},
				},
				Action: downloadAction,
			},
			{
				Name:      "list",
				Usage:     "list the stored images of an extracted document",
				ArgsUsage: "<pdf-id>",
				Action:    listAction,
			},
			{
				Name:      "fetch",
				Usage:     "download a single extracted image",
				ArgsUsage: "<image-ref>",
				Action:    fetchAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
