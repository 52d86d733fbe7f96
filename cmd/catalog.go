package cmd

import (
	"context"
	"io"
	"os"

	"github.com/davidcollom/denvr-catalog/pkg/catalog"
	"github.com/davidcollom/denvr-catalog/pkg/logger"
	"github.com/davidcollom/denvr-catalog/pkg/offersource"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type catalogOptions struct {
	username   string
	password   string
	output     string
	configFile string
	summary    bool
	progress   bool
}

func runCatalog(ctx context.Context, o *catalogOptions, getenv func(string) string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := catalog.NewConfig()
	if o.configFile != "" {
		var err error
		cfg, err = catalog.ParseConfig(o.configFile)
		if err != nil {
			return err
		}
	}

	creds, err := catalog.ResolveCredentials(o.username, o.password, getenv)
	if err != nil {
		return err
	}

	source, err := offersource.GetOfferingSource(cfg.Provider, cfg.BaseURL, cfg.ResourcePool)
	if err != nil {
		return err
	}
	logger.Debugf("Using provider %s for %d clusters", source.Name(), len(cfg.Clusters))

	tokens, err := source.Authenticate(ctx, creds)
	if err != nil {
		return err
	}

	builder := catalog.NewBuilder(source, cfg)
	if o.progress {
		builder.Progress = os.Stderr
	}
	summary, err := builder.Build(ctx, tokens, o.output)
	if err != nil {
		return errors.Wrapf(err, "catalog %s is incomplete", o.output)
	}

	logger.Infof("%s catalog saved to %s (%s offerings)", source.Name(), summary.OutputPath, humanize.Comma(summary.Rows()))
	if o.summary {
		summary.Render(out)
	}
	return nil
}
