package cli

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AjayBarot7035/secret-santa/internal/printer"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

type generateOptions struct {
	input  string
	json   bool
	group  string
	period string
}

func newGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate assignments from a request file",
		Long: `Generate assignments from a JSON or YAML request file.

The file holds "employees" and optional "previous_assignments", in the same
shape the HTTP API accepts. Use "-" to read JSON from stdin.`,
		Example: `  secret-santa generate --input team.yaml
  secret-santa generate --input request.json --json
  secret-santa generate -c config.yaml --input team.yaml --group office --period 2025`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "request file (.json, .yaml, .yml, or - for stdin)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the response as JSON")
	cmd.Flags().StringVar(&opts.group, "group", "", "group whose history to apply and record (overrides the file)")
	cmd.Flags().StringVar(&opts.period, "period", "", "period to record under (default: current year)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *generateOptions, cmd *cobra.Command) error {
	p := printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())

	req, err := readRequest(opts.input, cmd.InOrStdin())
	if err != nil {
		return p.Error("Cannot read request", err.Error(), []string{"Check the --input path and that the file is valid JSON or YAML"})
	}
	if opts.group != "" {
		req.Group = opts.group
	}
	if opts.period != "" {
		req.Period = opts.period
	}

	a, err := newApp(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return p.Error("Invalid configuration", err.Error(), nil)
	}
	defer a.Close()

	svc, err := a.exchange()
	if err != nil {
		return p.Error("Cannot start generator", err.Error(), nil)
	}

	result, err := svc.Run(cmd.Context(), req)
	if err != nil {
		return p.Error("History failure", err.Error(), nil)
	}

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(wire.NewResponse(result, wire.GiverNamingEmployee)); err != nil {
			return err
		}
		if !result.Success {
			return result.Err
		}

		return nil
	}

	if !result.Success {
		return p.Error("Unable to generate assignments", result.ErrorMessage(), suggestionsFor(result.Err))
	}

	p.Assignments(result.Assignments)
	p.Summary(result)

	return nil
}

// readRequest decodes the request at path, choosing the format by extension.
func readRequest(path string, stdin io.Reader) (wire.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return wire.Request{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return wire.DecodeRequestYAML(data)
	default:
		return wire.DecodeRequest(data)
	}
}

func suggestionsFor(err error) []string {
	switch {
	case errors.Is(err, types.ErrDuplicateParticipant):
		return []string{"Remove the repeated names or emails", `Set generator.duplicatePolicy to "collapse"`}
	case errors.Is(err, types.ErrInfeasible):
		return []string{"Add participants", "Drop some previous assignments", `Set generator.strategy to "matching" for an exhaustive search`}
	case types.IsValidationError(err):
		return []string{"Every participant needs a name and an email, and at least two are required"}
	default:
		return nil
	}
}
