package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gigaversity/gigaadmin/internal/export"
	"github.com/gigaversity/gigaadmin/internal/filter"
)

// filterFlags collects repeated -f key=value flags.
type filterFlags []string

func (f *filterFlags) String() string { return strings.Join(*f, ",") }

func (f *filterFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("filter %q must be key=value", v)
	}
	*f = append(*f, v)
	return nil
}

func (cli *commandLine) list(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(cli.out, "usage: list KIND [-f key=value]... [-xlsx FILE]")
		return errHelp
	}
	kind := args[0]

	fs := cli.newFlagSet("list " + kind)
	var filters filterFlags
	fs.Var(&filters, "f", "A filter as key=value. May be repeated.")
	xlsx := fs.String("xlsx", "", "Also write the results to this XLSX file.")
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}

	switch kind {
	case "institution":
		return listRecords(ctx, cli, filter.InstitutionFields, cli.institutions.List, export.InstitutionColumns, "Institutions", filters, *xlsx)
	case "admin":
		return listRecords(ctx, cli, filter.AdminFields, cli.admins.List, export.AdminColumns, "Admins", filters, *xlsx)
	case "student":
		return listRecords(ctx, cli, filter.StudentFields, cli.students.List, export.StudentColumns, "Students", filters, *xlsx)
	case "curriculum":
		return listRecords(ctx, cli, filter.CurriculumFields, cli.curricula.List, export.CurriculumColumns, "Curricula", filters, *xlsx)
	case "assessment":
		return listRecords(ctx, cli, filter.AssessmentFields, cli.assessments.List, export.AssessmentColumns, "Assessments", filters, *xlsx)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
}

func listRecords[T any](ctx context.Context, cli *commandLine, fields filter.Fields, fetch filter.FetchFunc[T],
	cols []export.Column[T], title string, filters []string, xlsx string) error {
	b := filter.New(fields, fetch)
	for _, kv := range filters {
		key, value, _ := strings.Cut(kv, "=")
		if err := b.Set(key, value); err != nil {
			return err
		}
	}

	rows, err := b.Apply(ctx)
	if err != nil {
		return err
	}

	if chips := b.Chips(); len(chips) > 0 {
		labels := make([]string, len(chips))
		for i, c := range chips {
			labels[i] = c.Label()
		}
		fmt.Fprintf(cli.out, "Filters: %s\n", strings.Join(labels, " | "))
	}

	if err := printTable(cli, cols, rows); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d %s\n", len(rows), strings.ToLower(title))

	if xlsx != "" {
		if err := export.WriteFile(xlsx, title, cols, rows); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Exported to %s\n", xlsx)
	}
	return nil
}

func printTable[T any](cli *commandLine, cols []export.Column[T], rows []T) error {
	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = strings.ToUpper(c.Header)
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
	for _, row := range rows {
		for i, c := range cols {
			cells[i] = fmt.Sprint(c.Value(row))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
