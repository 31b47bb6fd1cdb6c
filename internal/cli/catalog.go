package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/soql/internal/store"
)

// CatalogOptions holds flags shared by the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	Database string
	Entity   string // list filter
}

// CatalogEntry is a saved statement as printed by the catalog commands.
type CatalogEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Entity   string `json:"entity"`
	Text     string `json:"text"`
	Subquery bool   `json:"subquery,omitempty"`
	Seq      int64  `json:"seq"`
	Revision int    `json:"revision"`
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect saved statements",
		Long: `Inspect statements saved with "soql render --save".

Examples:
  soql catalog list --db ./catalog.db
  soql catalog list --db ./catalog.db --entity Child
  soql catalog show children --db ./catalog.db
  soql catalog rm children --db ./catalog.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the statement catalog (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List saved statements in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Entity, "entity", "", "only statements selecting from this entity")

	show := &cobra.Command{
		Use:           "show <name>",
		Short:         "Print one saved statement",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], cmd)
		},
	}

	rm := &cobra.Command{
		Use:           "rm <name>",
		Short:         "Delete a saved statement",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogRemove(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(list, show, rm)
	return cmd
}

// openCatalog opens an existing catalog; it never creates one.
func openCatalog(formatter *OutputFormatter, path string) (*store.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, commandError(formatter, ErrCodeNotFound, fmt.Sprintf("catalog not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, commandError(formatter, ErrCodeDatabase, err.Error())
	}
	if version, err := st.SchemaVersion(context.Background()); err == nil {
		slog.Debug("catalog opened", "path", path, "schema_version", version)
	}
	return st, nil
}

func closeCatalog(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing catalog", "error", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	ctx := commandContext(cmd)
	var statements []store.Statement
	if opts.Entity != "" {
		statements, err = st.ListEntity(ctx, opts.Entity)
	} else {
		statements, err = st.List(ctx)
	}
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}

	entries := make([]CatalogEntry, 0, len(statements))
	for _, s := range statements {
		entries = append(entries, toCatalogEntry(s))
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No statements saved")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%-4d %-24s %-16s r%d\n", e.Seq, e.Name, e.Entity, e.Revision)
	}
	return nil
}

func runCatalogShow(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	s, err := st.Get(commandContext(cmd), name)
	if errors.Is(err, store.ErrNotFound) {
		return failure(formatter, ErrCodeNotFound, err.Error())
	}
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(toCatalogEntry(s))
	}
	fmt.Fprintln(formatter.Writer, s.Text)
	return nil
}

func runCatalogRemove(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	err = st.Delete(commandContext(cmd), name)
	if errors.Is(err, store.ErrNotFound) {
		return failure(formatter, ErrCodeNotFound, err.Error())
	}
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"deleted": name})
	}
	fmt.Fprintf(formatter.Writer, "Deleted %s\n", name)
	return nil
}

func toCatalogEntry(s store.Statement) CatalogEntry {
	return CatalogEntry{
		ID:       s.ID,
		Name:     s.Name,
		Entity:   s.Entity,
		Text:     s.Text,
		Subquery: s.Subquery,
		Seq:      s.Seq,
		Revision: s.Revision,
	}
}
