package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/soql/internal/compiler"
	"github.com/roach88/soql/internal/queryspec"
	"github.com/roach88/soql/internal/schema"
	"github.com/roach88/soql/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Subquery bool
	Database string
	Save     bool
}

// RenderResult is one rendered query document.
type RenderResult struct {
	Name     string `json:"name"`
	Entity   string `json:"entity"`
	Text     string `json:"text"`
	Subquery bool   `json:"subquery,omitempty"`
	ID       string `json:"id,omitempty"` // catalog ID when saved
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <schema-dir> <query.yaml>...",
		Short: "Render query documents as statements",
		Long: `Resolve each query document against the schema and print its statement.

With --subquery each document is rendered as a parenthesized subquery and
must not set order_by, limit or offset. With --save each statement is
stored in the catalog at --db under its document name.

Example:
  soql render ./schema ./queries/children.yaml
  soql render ./schema ./queries/*.yaml --db ./catalog.db --save`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Subquery, "subquery", false, "render as a subquery fragment")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the statement catalog")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save each statement in the catalog (requires --db)")

	return cmd
}

func runRender(opts *RenderOptions, schemaDir string, queryFiles []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Save && opts.Database == "" {
		return commandError(formatter, ErrCodeGeneric, "--save requires --db")
	}

	reg, err := loadRegistry(formatter, schemaDir)
	if err != nil {
		return err
	}

	var results []RenderResult
	for _, file := range queryFiles {
		if _, err := os.Stat(file); err != nil {
			return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("query file not found: %s", file))
		}
		doc, err := queryspec.LoadFile(file)
		if err != nil {
			return failure(formatter, ErrCodeInvalidQuery, err.Error())
		}
		if opts.Save && doc.Name == "" {
			return failure(formatter, ErrCodeInvalidQuery, fmt.Sprintf("%s: name is required to save", file))
		}

		text, err := doc.Render(reg, opts.Subquery)
		if err != nil {
			return failure(formatter, ErrCodeBuildQuery, fmt.Sprintf("%s: %v", file, err))
		}
		slog.Debug("rendered query", "file", file, "entity", doc.Entity)

		results = append(results, RenderResult{
			Name:     doc.Name,
			Entity:   doc.Entity,
			Text:     text,
			Subquery: opts.Subquery,
		})
	}

	if opts.Save {
		if err := saveResults(commandContext(cmd), opts.Database, results); err != nil {
			return commandError(formatter, ErrCodeDatabase, err.Error())
		}
	}

	return outputRenderSuccess(formatter, results)
}

// loadRegistry loads and validates a schema directory. Load failures are
// command errors; an invalid registry is a validation failure.
func loadRegistry(formatter *OutputFormatter, schemaDir string) (*schema.Registry, error) {
	loadResult, loadErrors := LoadSchema(schemaDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		return nil, loadFailure(formatter, loadErrors)
	}
	formatter.VerboseLog("Loaded %d entities from %s", len(loadResult.Entities), schemaDir)

	if errs := compiler.Validate(loadResult.Registry); len(errs) > 0 {
		return nil, failure(formatter, errs[0].Code, errs[0].Error())
	}
	return loadResult.Registry, nil
}

func saveResults(ctx context.Context, path string, results []RenderResult) error {
	slog.Info("opening catalog", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	for i := range results {
		saved, err := st.Save(ctx, store.Statement{
			Name:     results[i].Name,
			Entity:   results[i].Entity,
			Text:     results[i].Text,
			Subquery: results[i].Subquery,
		})
		if err != nil {
			return err
		}
		results[i].ID = saved.ID
		slog.Info("statement saved", "name", saved.Name, "revision", saved.Revision)
	}
	return nil
}

func outputRenderSuccess(formatter *OutputFormatter, results []RenderResult) error {
	if formatter.Format == "json" {
		return formatter.Success(results)
	}

	for _, r := range results {
		fmt.Fprintln(formatter.Writer, r.Text)
	}
	return nil
}
