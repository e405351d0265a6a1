package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	swagger "github.com/restbind/swagger-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DescribeConfig captures the options for the describe command after
// merging defaults and CLI overrides.
type DescribeConfig struct {
	URL     string
	Timeout time.Duration
	Verbose bool
}

var describeRunner = runDescribe

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "List the resources and operations a service declares",
		Long: "Load a Swagger resource listing and print every resource with its " +
			"operations, methods, and declared parameters.",
		Example: strings.TrimSpace(`  swaggerctl describe --url http://localhost:8088/ari/api-docs/resources.json`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveDescribeConfig(cmd)
			if err != nil {
				return err
			}
			return describeRunner(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("url", "", "URL of the Swagger resource listing")
	flags.Duration("timeout", 10*time.Second, "Per-request HTTP timeout")

	return cmd
}

func resolveDescribeConfig(cmd *cobra.Command) (*DescribeConfig, error) {
	cfg := &DescribeConfig{}

	value, err := cmd.Flags().GetString("url")
	if err != nil {
		return nil, err
	}
	cfg.URL = strings.TrimSpace(value)

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	if cfg.URL == "" {
		return nil, newUsageError("describe: --url is required")
	}
	return cfg, nil
}

func runDescribe(ctx context.Context, cfg *DescribeConfig, out io.Writer) error {
	client := swagger.NewClient(
		swagger.WithHTTPTimeout(cfg.Timeout),
		swagger.WithLogger(newLogger(cfg.Verbose)),
	)
	defer client.Close()

	if err := client.Load(ctx, cfg.URL); err != nil {
		return friendlyClientError(err)
	}

	resources, err := client.Resources()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := resources[name]
		fmt.Fprintf(out, "%s\n", name)
		for _, nickname := range r.Nicknames() {
			op := r.GetOperation(nickname)
			spec := op.Spec()
			kind := spec.HTTPMethod
			if op.IsWebsocket() {
				kind = "WS"
			}
			line := fmt.Sprintf("  %-24s %-6s %s", nickname, kind, op.URI())
			if params := describeParams(spec); params != "" {
				line += " (" + params + ")"
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

func describeParams(spec *swagger.OperationSpec) string {
	parts := make([]string, 0, len(spec.Parameters))
	for _, p := range spec.Parameters {
		part := fmt.Sprintf("%s %s", p.ParamType, p.Name)
		if p.Required {
			part += "*"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// friendlyClientError maps structured client errors into usage errors so
// the CLI prints the message without a stack of wrapping.
func friendlyClientError(err error) error {
	var se *swagger.Error
	if errors.As(err, &se) {
		switch se.Code {
		case swagger.InputError, swagger.UsageError, swagger.LookupError,
			swagger.BindingError, swagger.UnsupportedCombination:
			return newUsageError(se.Message)
		}
	}
	return err
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
