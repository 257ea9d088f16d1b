package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/descriptor"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
)

func main() {
	descriptors := flag.String("descriptors", "", "JSON or YAML descriptor file")
	openapiPath := flag.String("openapi", "", "OpenAPI document to build descriptors from")
	schema := flag.String("schema", "", "component schema name used with -openapi")
	valuesPath := flag.String("values", "", "JSON or YAML file seeding the related model")
	renderer := flag.String("renderer", "html", "renderer to use: html, json or tui")
	output := flag.String("output", "", "output file (stdout if empty)")
	action := flag.String("action", "", "form action attribute")
	name := flag.String("name", "", "form name")
	validate := flag.Bool("validate", false, "run validators before rendering")
	attempts := flag.Int("attempts", tui.DefaultMaxAttempts, "prompt attempts per invalid field (tui)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := orchestrator.Request{
		Path:          strings.TrimSpace(*descriptors),
		Schema:        strings.TrimSpace(*schema),
		Name:          *name,
		Renderer:      *renderer,
		RenderOptions: render.Options{Action: *action},
		Validate:      *validate,
	}
	if *openapiPath != "" {
		data, err := os.ReadFile(*openapiPath)
		if err != nil {
			logger.Fatal("read openapi document", zap.String("path", *openapiPath), zap.Error(err))
		}
		req.OpenAPI = data
	}
	if *valuesPath != "" {
		values, err := descriptor.LoadValuesFile(*valuesPath)
		if err != nil {
			logger.Fatal("load values", zap.String("path", *valuesPath), zap.Error(err))
		}
		req.Values = values
	}

	gen := orchestrator.New(orchestrator.WithLogger(logger))
	session, err := gen.Build(ctx, req)
	if err != nil {
		logger.Fatal("build form", zap.Error(err))
	}
	defer session.Close()

	var out []byte
	if *renderer == "tui" {
		filler := tui.NewFiller(
			tui.WithLogger(logger),
			tui.WithMaxAttempts(*attempts),
			tui.WithDriverOutput(os.Stderr),
		)
		if err := filler.Fill(ctx, session.Form); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				logger.Info("aborted")
				return
			}
			logger.Fatal("fill form", zap.Error(err))
		}
		out, err = json.MarshalIndent(session.Related.Attributes(), "", "  ")
		if err != nil {
			logger.Fatal("encode related model", zap.Error(err))
		}
	} else {
		out, err = gen.Render(ctx, session, *renderer, req.RenderOptions)
		if err != nil {
			logger.Fatal("render form", zap.Error(err))
		}
		logger.Debug("related model", zap.Any("attributes", session.Related.Attributes()))
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			logger.Fatal("write output", zap.String("path", *output), zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}
