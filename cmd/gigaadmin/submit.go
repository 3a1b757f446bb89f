package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gigaversity/gigaadmin/internal/admin"
	"github.com/gigaversity/gigaadmin/internal/assessment"
	"github.com/gigaversity/gigaadmin/internal/authoring"
	"github.com/gigaversity/gigaadmin/internal/curriculum"
	"github.com/gigaversity/gigaadmin/internal/draftfile"
	"github.com/gigaversity/gigaadmin/internal/form"
	"github.com/gigaversity/gigaadmin/internal/institution"
	"github.com/gigaversity/gigaadmin/internal/student"
)

// errInvalidDrafts is returned when at least one draft was rejected.
var errInvalidDrafts = errors.New("some drafts were not submitted")

func (cli *commandLine) submit(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("submit")
	file := fs.String("file", "", "A YAML draft file.")
	dir := fs.String("dir", "", "A directory of YAML draft files.")
	dryRun := fs.Bool("dry-run", false, "Validate only, send nothing.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if (*file == "") == (*dir == "") {
		fs.Usage()
		return errHelp
	}

	var files []draftfile.File
	if *file != "" {
		f, err := draftfile.Load(*file)
		if err != nil {
			var shape *draftfile.ShapeError
			if errors.As(err, &shape) {
				cli.printErrors(*file, shape.Fields)
			}
			return err
		}
		files = append(files, f)
	} else {
		var err error
		if files, err = draftfile.LoadDir(*dir); err != nil {
			return err
		}
	}

	failed := 0
	for _, f := range files {
		if err := cli.submitFile(ctx, f, *dryRun); err != nil {
			failed++
			var invalid *authoring.InvalidError
			if errors.As(err, &invalid) {
				cli.printErrors(f.Path, invalid.Fields)
				continue
			}
			fmt.Fprintf(cli.out, "%s: %v\n", f.Path, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidDrafts, failed, len(files))
	}
	return nil
}

func (cli *commandLine) printErrors(path string, errs form.ErrorMap) {
	fmt.Fprintf(cli.out, "%s: invalid\n", path)
	for _, p := range errs.Paths() {
		fmt.Fprintf(cli.out, "  %s: %s\n", p, errs[p])
	}
}

// submitFile validates f and, unless dryRun, sends it through the authoring
// session of its kind.
func (cli *commandLine) submitFile(ctx context.Context, f draftfile.File, dryRun bool) error {
	var (
		id  int
		err error
	)
	switch f.Kind {
	case draftfile.KindCurriculum:
		id, err = runSession(ctx, cli.curricula.NewSession(f.ID), *f.Curriculum, dryRun,
			func(c curriculum.Curriculum) int { return c.ID })
	case draftfile.KindAssessment:
		id, err = runSession(ctx, cli.assessments.NewSession(f.ID), *f.Assessment, dryRun,
			func(a assessment.Assessment) int { return a.ID })
	case draftfile.KindAdmin:
		id, err = runSession(ctx, cli.admins.NewSession(f.ID), *f.Admin, dryRun,
			func(a admin.Admin) int { return a.ID })
	case draftfile.KindStudent:
		id, err = runSession(ctx, cli.students.NewSession(), *f.Student, dryRun,
			func(s student.Student) int { return s.ID })
	case draftfile.KindInstitution:
		id, err = cli.submitInstitution(ctx, f, dryRun)
	default:
		return fmt.Errorf("unsupported kind %q", f.Kind)
	}
	if err != nil {
		return err
	}

	switch {
	case dryRun:
		fmt.Fprintf(cli.out, "%s: valid %s\n", f.Path, f.Kind)
	case f.ID != 0:
		fmt.Fprintf(cli.out, "%s: updated %s %d\n", f.Path, f.Kind, id)
	default:
		fmt.Fprintf(cli.out, "%s: created %s %d\n", f.Path, f.Kind, id)
	}
	slog.Debug("draft processed", "path", f.Path, "kind", f.Kind, "id", id, "dry_run", dryRun)
	return nil
}

func (cli *commandLine) submitInstitution(ctx context.Context, f draftfile.File, dryRun bool) (int, error) {
	s := cli.institutions.NewSession()
	if f.ID != 0 {
		inst, err := cli.institutions.Get(ctx, f.ID)
		if err != nil {
			return 0, err
		}
		if s, err = cli.institutions.EditSession(inst); err != nil {
			return 0, err
		}
	}
	return runSession(ctx, s, *f.Institution, dryRun,
		func(i institution.Institution) int { return i.ID })
}

// runSession submits d, or with dryRun only validates it.
func runSession[D, R any](ctx context.Context, s *authoring.Session[D, R], d D, dryRun bool, idOf func(R) int) (int, error) {
	if dryRun {
		defer s.Cancel()
		errs, err := s.Check(d)
		if err != nil {
			return 0, err
		}
		if !errs.Valid() {
			return 0, &authoring.InvalidError{Fields: errs}
		}
		return 0, nil
	}
	r, err := s.Submit(ctx, d)
	if err != nil {
		return 0, err
	}
	return idOf(r), nil
}
