package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	swagger "github.com/restbind/swagger-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InvokeConfig captures the options for the invoke command.
type InvokeConfig struct {
	URL       string
	Resource  string
	Operation string
	Params    []string
	Timeout   time.Duration
	Verbose   bool
}

var invokeRunner = runInvoke

func newInvokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Invoke one declared operation and print the raw response",
		Long: "Load a Swagger resource listing, bind --param arguments onto the named " +
			"operation, and invoke it. HTTP operations print the status and raw body; " +
			"websocket operations stay connected and print each message until interrupted.",
		Example: strings.TrimSpace(`  swaggerctl invoke --url http://localhost:8088/ari/api-docs/resources.json \
    --resource channels --operation originate --param endpoint=SIP/alice`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveInvokeConfig(cmd)
			if err != nil {
				return err
			}
			return invokeRunner(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("url", "", "URL of the Swagger resource listing")
	flags.String("resource", "", "Resource name (derived from the declaration filename)")
	flags.String("operation", "", "Operation nickname to invoke")
	flags.StringArray("param", nil, "Operation argument as name=value (repeatable)")
	flags.Duration("timeout", 10*time.Second, "Per-request HTTP timeout")

	return cmd
}

func resolveInvokeConfig(cmd *cobra.Command) (*InvokeConfig, error) {
	cfg := &InvokeConfig{}
	if err := applyInvokeFlags(cmd.Flags(), cfg); err != nil {
		return nil, err
	}

	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.Resource = strings.TrimSpace(cfg.Resource)
	cfg.Operation = strings.TrimSpace(cfg.Operation)

	switch {
	case cfg.URL == "":
		return nil, newUsageError("invoke: --url is required")
	case cfg.Resource == "":
		return nil, newUsageError("invoke: --resource is required")
	case cfg.Operation == "":
		return nil, newUsageError("invoke: --operation is required")
	}
	return cfg, nil
}

func applyInvokeFlags(flags *pflag.FlagSet, cfg *InvokeConfig) error {
	var err error
	if cfg.URL, err = flags.GetString("url"); err != nil {
		return err
	}
	if cfg.Resource, err = flags.GetString("resource"); err != nil {
		return err
	}
	if cfg.Operation, err = flags.GetString("operation"); err != nil {
		return err
	}
	if cfg.Params, err = flags.GetStringArray("param"); err != nil {
		return err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return err
	}
	cfg.Verbose, err = flags.GetBool("verbose")
	return err
}

// parseParams turns repeated name=value flags into an argument map.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, newUsageError(fmt.Sprintf("invoke: malformed --param %q (expected name=value)", pair))
		}
		args[name] = value
	}
	return args, nil
}

func runInvoke(ctx context.Context, cfg *InvokeConfig, out io.Writer) error {
	args, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	client := swagger.NewClient(
		swagger.WithHTTPTimeout(cfg.Timeout),
		swagger.WithLogger(newLogger(cfg.Verbose)),
	)
	defer client.Close()

	if err := client.Load(ctx, cfg.URL); err != nil {
		return friendlyClientError(err)
	}
	resource, err := client.Resource(cfg.Resource)
	if err != nil {
		return friendlyClientError(err)
	}
	op, err := resource.Operation(cfg.Operation)
	if err != nil {
		return friendlyClientError(err)
	}

	if op.IsWebsocket() {
		conn, err := op.Connect(ctx, args, func(data []byte) {
			fmt.Fprintln(out, string(data))
		})
		if err != nil {
			return friendlyClientError(err)
		}
		defer conn.Close()
		<-ctx.Done()
		return nil
	}

	resp, err := op.Invoke(ctx, args)
	if err != nil {
		return friendlyClientError(err)
	}
	fmt.Fprintf(out, "%d\n", resp.Status)
	if len(resp.Body) > 0 {
		out.Write(resp.Body)
		fmt.Fprintln(out)
	}
	return nil
}
