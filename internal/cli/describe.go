package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/soql/internal/path"
	"github.com/roach88/soql/internal/schema"
)

// EntityDescription summarizes one entity.
type EntityDescription struct {
	Name          string                    `json:"name"`
	Remote        string                    `json:"remote"`
	Columns       []ColumnDescription       `json:"columns"`
	Relationships []RelationshipDescription `json:"relationships,omitempty"`
}

// ColumnDescription is one default column with its rendered path.
type ColumnDescription struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Nullable bool   `json:"nullable,omitempty"`
}

// RelationshipDescription is one relationship and its target.
type RelationshipDescription struct {
	Name     string `json:"name"`
	Remote   string `json:"remote"`
	Target   string `json:"target"`
	Many     bool   `json:"many,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <schema-dir> [entity...]",
		Short: "Show entity columns and relationships",
		Long: `Show the default columns and relationships of schema entities.

Without entity names every entity is described, in declaration order.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runDescribe(opts *RootOptions, schemaDir string, names []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	reg, err := loadRegistry(formatter, schemaDir)
	if err != nil {
		return err
	}

	var entities []*schema.Entity
	if len(names) == 0 {
		entities = reg.Entities()
	}
	for _, name := range names {
		e, err := reg.Entity(name)
		if err != nil {
			return failure(formatter, ErrCodeNotFound, err.Error())
		}
		entities = append(entities, e)
	}

	descriptions := make([]EntityDescription, 0, len(entities))
	for _, e := range entities {
		descriptions = append(descriptions, describeEntity(e))
	}
	return outputDescribeSuccess(formatter, descriptions)
}

func describeEntity(e *schema.Entity) EntityDescription {
	d := EntityDescription{
		Name:    e.Name(),
		Remote:  e.RemoteName(),
		Columns: []ColumnDescription{},
	}
	for _, ref := range path.From(e).DefaultColumns() {
		col := ref.Column()
		d.Columns = append(d.Columns, ColumnDescription{
			Name:     col.Name(),
			Path:     ref.Render(),
			Kind:     col.Kind().String(),
			Nullable: col.Nullable(),
		})
	}
	for _, rel := range e.Relationships() {
		d.Relationships = append(d.Relationships, RelationshipDescription{
			Name:     rel.Name(),
			Remote:   rel.RemoteName(),
			Target:   rel.TargetName(),
			Many:     rel.Many(),
			Nullable: rel.Nullable(),
		})
	}
	return d
}

func outputDescribeSuccess(formatter *OutputFormatter, descriptions []EntityDescription) error {
	if formatter.Format == "json" {
		return formatter.Success(descriptions)
	}

	for i, d := range descriptions {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		fmt.Fprintf(formatter.Writer, "%s (%s)\n", d.Name, d.Remote)
		fmt.Fprintln(formatter.Writer, "  Columns:")
		for _, c := range d.Columns {
			fmt.Fprintf(formatter.Writer, "    %s: %s %s%s\n", c.Name, c.Path, c.Kind, nullableSuffix(c.Nullable))
		}
		if len(d.Relationships) > 0 {
			fmt.Fprintln(formatter.Writer, "  Relationships:")
			for _, r := range d.Relationships {
				arrow := "->"
				if r.Many {
					arrow = "->>"
				}
				fmt.Fprintf(formatter.Writer, "    %s: %s %s %s%s\n", r.Name, r.Remote, arrow, r.Target, nullableSuffix(r.Nullable))
			}
		}
	}
	return nil
}

func nullableSuffix(nullable bool) string {
	if nullable {
		return " (nullable)"
	}
	return ""
}
