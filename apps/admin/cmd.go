package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/olekukonko/tablewriter"

	echoapi "github.com/trezcool/edudash/apps/api/echo"
	"github.com/trezcool/edudash/core"
)

var errHelp = errors.New("help provided")

// filterFlags collects repeated -filter key=value flags.
type filterFlags []string

func (ff *filterFlags) String() string { return strings.Join(*ff, " ") }

func (ff *filterFlags) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("filter must be of form key=value (got '%s')", value)
	}
	*ff = append(*ff, value)
	return nil
}

type commandLine struct {
	svc        echoapi.Services
	conf       *core.Config
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
	in         io.Reader
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  console [-email EMAIL] - open the interactive admin console")
	fmt.Fprintln(cli.out, "  list -email EMAIL -page PATH [-filter key=value]... [-ordering FIELDS] [-o FILE] - print or export one page")
	fmt.Fprintln(cli.out, "  routes - list the console pages")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	consoleCmd := flag.NewFlagSet("console", flag.ContinueOnError)
	consoleCmd.SetOutput(cli.out)
	consoleEmail := consoleCmd.String("email", "", "Sign in right away as this user.")

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	listCmd.SetOutput(cli.out)
	listEmail := listCmd.String("email", "", "The email to sign in with.")
	listPage := listCmd.String("page", homePath, "The page path, e.g. /schools.")
	listOrdering := listCmd.String("ordering", "", "Comma separated fields, '-' for descending.")
	listOutput := listCmd.String("o", "", "Export the table to this file (.csv or .xlsx) instead of printing it.")
	var listFilters filterFlags
	listCmd.Var(&listFilters, "filter", "A key=value page filter. Repeatable.")

	ctx := context.Background()

	switch args[1] {
	case "console":
		if err := consoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		c := newConsole(cli.svc, cli.conf, cli.logger, cli.validate, cli.translator, cli.in, cli.out)
		if *consoleEmail != "" {
			if err := c.login(ctx, *consoleEmail); err != nil {
				return err
			}
		}
		c.loop(ctx)
		return nil
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *listEmail == "" {
			listCmd.Usage()
			return errHelp
		}
		return cli.list(ctx, *listEmail, *listPage, listFilters, *listOrdering, *listOutput)
	case "routes":
		cli.routes()
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

// list renders one page without prompting; deletion is left to the console.
func (cli *commandLine) list(ctx context.Context, email, path string, filters []string, ordering, output string) error {
	c := newConsole(cli.svc, cli.conf, cli.logger, cli.validate, cli.translator, strings.NewReader(""), cli.out)
	defer c.close()

	if err := c.login(ctx, email); err != nil {
		return err
	}
	r := resolve(path, true)
	p := c.pages[r.Path]
	if !p.canView(c.usr.Role) {
		return errForbidden
	}
	c.current = r

	q := query{Ordering: ordering}
	for _, kv := range filters {
		parts := strings.SplitN(kv, "=", 2)
		q = q.with(parts[0], parts[1])
	}
	if _, _, err := p.build(q); err != nil {
		return err
	}

	st := c.store(p)
	if err := st.SetFilters(ctx, func(cur *query) error { *cur = q; return nil }); err != nil {
		return err
	}
	if err := st.Flush(ctx); err != nil {
		return err
	}
	if snap := st.Snapshot(); snap.Err != nil {
		return snap.Err
	}

	if output != "" {
		return c.export(output)
	}
	c.render(p, st.Snapshot())
	return nil
}

func (cli *commandLine) routes() {
	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"Section", "Page", "Path"})
	table.Append([]string{"", loginRoute.Title, loginRoute.Path})
	for _, r := range routes {
		table.Append([]string{r.Section, r.Title, r.Path})
	}
	table.Render()
}
