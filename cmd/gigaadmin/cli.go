package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/gigaversity/gigaadmin/internal/admin"
	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/assessment"
	"github.com/gigaversity/gigaadmin/internal/curriculum"
	"github.com/gigaversity/gigaadmin/internal/institution"
	"github.com/gigaversity/gigaadmin/internal/session"
	"github.com/gigaversity/gigaadmin/internal/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	client  *api.Client
	session *session.Manager
	out     io.Writer

	curricula    *curriculum.Service
	assessments  *assessment.Service
	institutions *institution.Service
	admins       *admin.Service
	students     *student.Service
}

func newCommandLine(client *api.Client, sess *session.Manager, out io.Writer) *commandLine {
	return &commandLine{
		client:       client,
		session:      sess,
		out:          out,
		curricula:    curriculum.NewService(client),
		assessments:  assessment.NewService(client),
		institutions: institution.NewService(client),
		admins:       admin.NewService(client),
		students:     student.NewService(client),
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                              - log in, the password is prompted next")
	fmt.Fprintln(cli.out, "  logout                                          - forget the stored session")
	fmt.Fprintln(cli.out, "  whoami                                          - show the logged-in account")
	fmt.Fprintln(cli.out, "  list KIND [-f key=value]... [-xlsx FILE]        - list records, optionally exported to XLSX")
	fmt.Fprintln(cli.out, "  submit -file FILE | -dir DIR [-dry-run]         - create or update records from draft files")
	fmt.Fprintln(cli.out, "  delete KIND -id ID                              - delete a record")
	fmt.Fprintln(cli.out, "  activate KIND -id ID                            - activate an institution, admin or student")
	fmt.Fprintln(cli.out, "  deactivate KIND -id ID                          - deactivate an institution, admin or student")
	fmt.Fprintln(cli.out, "  rename -id ID -username NAME                    - change the username of an admin")
	fmt.Fprintln(cli.out, "  permissions -id ID [-toggle PERMISSION]         - show or toggle admin permissions")
	fmt.Fprintln(cli.out, "  profile grant -id ID [-hours N] -reason TEXT    - let a student update their profile")
	fmt.Fprintln(cli.out, "  profile disable -id ID -reason TEXT             - lock a student's profile")
	fmt.Fprintln(cli.out, "  notifications read -id ID | read-all            - mark notifications as read")
	fmt.Fprintln(cli.out, "KIND is one of: institution, admin, student, curriculum, assessment")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.logout(ctx)
	case "whoami":
		return cli.whoami(ctx)
	case "list":
		return cli.list(ctx, args[2:])
	case "submit":
		return cli.submit(ctx, args[2:])
	case "delete":
		return cli.delete(ctx, args[2:])
	case "activate":
		return cli.setActive(ctx, args[2:], true)
	case "deactivate":
		return cli.setActive(ctx, args[2:], false)
	case "rename":
		return cli.rename(ctx, args[2:])
	case "permissions":
		return cli.permissions(ctx, args[2:])
	case "profile":
		return cli.profile(ctx, args[2:])
	case "notifications":
		return cli.notifications(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// newFlagSet returns a flag set that reports to cli.out instead of exiting.
func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

// kindAndID parses "KIND -id ID".
func (cli *commandLine) kindAndID(cmd string, args []string) (string, int, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(cli.out, "usage: %s KIND -id ID\n", cmd)
		return "", 0, errHelp
	}
	kind := args[0]
	fs := cli.newFlagSet(cmd)
	id := fs.Int("id", 0, "The record id.")
	if err := parseFlags(fs, args[1:]); err != nil {
		return "", 0, err
	}
	if *id <= 0 {
		fs.Usage()
		return "", 0, errHelp
	}
	return kind, *id, nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("login")
	email := fs.String("email", "", "The super-admin email. The password will be prompted next.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *email == "" {
		fs.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if len(pwd) == 0 {
		fs.Usage()
		return errHelp
	}

	s, err := cli.session.Login(ctx, cli.client, *email, string(pwd))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s\n", s.Email)
	return nil
}

func (cli *commandLine) logout(ctx context.Context) error {
	if err := cli.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	s, err := cli.session.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s (since %s)\n", s.Email, s.CreatedAt.Format("2006-01-02 15:04"))
	switch {
	case s.Expired(time.Now()):
		fmt.Fprintln(cli.out, "Session expired, log in again")
	case !s.ExpiresAt.IsZero():
		fmt.Fprintf(cli.out, "Expires %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}

	remote, err := cli.session.CheckStore(ctx)
	switch {
	case !remote:
	case err != nil:
		fmt.Fprintf(cli.out, "Session store unreachable: %v\n", err)
	default:
		fmt.Fprintln(cli.out, "Session store reachable")
	}
	return nil
}

func (cli *commandLine) delete(ctx context.Context, args []string) error {
	kind, id, err := cli.kindAndID("delete", args)
	if err != nil {
		return err
	}

	switch kind {
	case "institution":
		err = cli.institutions.Delete(ctx, id)
	case "admin":
		err = cli.admins.Delete(ctx, id)
	case "student":
		err = cli.students.Delete(ctx, id)
	case "curriculum":
		err = cli.curricula.Delete(ctx, id)
	case "assessment":
		err = cli.assessments.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Deleted %s %d\n", kind, id)
	return nil
}

func (cli *commandLine) setActive(ctx context.Context, args []string, active bool) error {
	cmd := "deactivate"
	if active {
		cmd = "activate"
	}
	kind, id, err := cli.kindAndID(cmd, args)
	if err != nil {
		return err
	}

	switch kind {
	case "institution":
		err = cli.institutions.SetActive(ctx, id, active)
	case "admin":
		var a admin.Admin
		if a, err = cli.admins.Get(ctx, id); err == nil {
			err = cli.admins.SetActive(ctx, a, active)
		}
	case "student":
		err = cli.students.SetActive(ctx, id, active)
	default:
		return fmt.Errorf("%s is not supported for %q", cmd, kind)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s %d %sd\n", kind, id, cmd)
	return nil
}

func (cli *commandLine) rename(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("rename")
	id := fs.Int("id", 0, "The admin id.")
	username := fs.String("username", "", "The new username.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 || strings.TrimSpace(*username) == "" {
		fs.Usage()
		return errHelp
	}

	a, err := cli.admins.Rename(ctx, *id, strings.TrimSpace(*username))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Admin %d is now %s\n", a.ID, a.Username)
	return nil
}

func (cli *commandLine) permissions(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("permissions")
	id := fs.Int("id", 0, "The admin id.")
	toggle := fs.String("toggle", "", "An optional permission to switch on or off.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	a, err := cli.admins.Get(ctx, *id)
	if err != nil {
		return err
	}
	editor, err := admin.NewPermissionEditor(ctx, cli.admins, a)
	if err != nil {
		return err
	}
	if *toggle != "" {
		if err := editor.Toggle(ctx, *toggle); err != nil {
			return err
		}
	}

	for _, p := range admin.DefaultPermissions(a.Type()) {
		fmt.Fprintf(cli.out, "[x] %s (default)\n", p)
	}
	for _, p := range admin.OptionalPermissions(a.Type()) {
		mark := " "
		if editor.Enabled(p) {
			mark = "x"
		}
		fmt.Fprintf(cli.out, "[%s] %s\n", mark, p)
	}
	return nil
}

func (cli *commandLine) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cli.out, "usage: profile grant|disable -id ID -reason TEXT")
		return errHelp
	}

	fs := cli.newFlagSet("profile " + args[0])
	id := fs.Int("id", 0, "The student id.")
	reason := fs.String("reason", "", "Why the change is made.")
	hours := fs.Int("hours", student.DefaultProfileWindow, "How long the profile stays editable.")
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	switch args[0] {
	case "grant":
		req := student.ProfileRequest{DurationHours: *hours, Reason: *reason}
		if err := cli.students.GrantProfileUpdate(ctx, *id, req); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Student %d may update their profile\n", *id)
	case "disable":
		if err := cli.students.DisableProfileUpdate(ctx, *id, *reason); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Student %d profile locked\n", *id)
	default:
		fmt.Fprintln(cli.out, "usage: profile grant|disable -id ID -reason TEXT")
		return errHelp
	}
	return nil
}

func (cli *commandLine) notifications(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cli.out, "usage: notifications read -id ID | read-all")
		return errHelp
	}

	n := cli.client.Notifications()
	switch args[0] {
	case "read":
		fs := cli.newFlagSet("notifications read")
		id := fs.String("id", "", "The notification id.")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *id == "" {
			fs.Usage()
			return errHelp
		}
		if err := n.MarkRead(ctx, *id); err != nil {
			return err
		}
	case "read-all":
		if err := n.MarkAllRead(ctx); err != nil {
			return err
		}
	default:
		fmt.Fprintln(cli.out, "usage: notifications read -id ID | read-all")
		return errHelp
	}
	fmt.Fprintln(cli.out, "Notifications updated")
	return nil
}
