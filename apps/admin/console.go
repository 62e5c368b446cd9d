package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	echoapi "github.com/trezcool/edudash/apps/api/echo"
	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/export"
	"github.com/trezcool/edudash/core/store"
	"github.com/trezcool/edudash/core/user"
)

const prompt = "edudash> "

var (
	errSignedOut    = errors.New("sign in first: login EMAIL")
	errForbidden    = errors.New("permission denied")
	errNoDelete     = errors.New("rows of this page cannot be deleted")
	errNothingShown = errors.New("nothing to export")
	errNoForm       = errors.New("no form is open: add or edit ID")
	errQuit         = errors.New("quit")

	titleColor = color.New(color.FgCyan, color.Bold)
	cardColor  = color.New(color.FgYellow)
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed)
)

type pageStore = store.Store[query, view]

type (
	// console is an interactive session over the admin pages.
	console struct {
		users      *user.Service
		conf       *core.Config
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator
		in         *bufio.Scanner
		out        io.Writer

		pages  map[string]*page
		stores map[string]*pageStore

		usr     *user.User
		current route
		modal   *modal // the open add/edit form, if any
	}

	modal struct {
		page *page
		id   string // empty when adding
		form *form
	}
)

func newConsole(
	svc echoapi.Services,
	conf *core.Config,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
	in io.Reader,
	out io.Writer,
) *console {
	return &console{
		users:      svc.User,
		conf:       conf,
		logger:     logger,
		validate:   validate,
		translator: translator,
		in:         bufio.NewScanner(in),
		out:        out,
		pages:      newPages(svc),
		stores:     make(map[string]*pageStore),
		current:    loginRoute,
	}
}

// loop reads commands until quit or end of input.
func (c *console) loop(ctx context.Context) {
	c.printf(prompt)
	for c.in.Scan() {
		if err := c.exec(ctx, c.in.Text()); err != nil {
			if err == errQuit {
				break
			}
			c.fail(err)
		}
		c.printf(prompt)
	}
	c.close()
}

func (c *console) close() {
	for _, st := range c.stores {
		st.Close()
	}
}

func (c *console) exec(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "help", "?":
		c.help()
		return nil
	case "quit", "exit":
		return errQuit
	case "login":
		if len(args) != 1 {
			return errors.New("usage: login EMAIL")
		}
		return c.login(ctx, args[0])
	}

	if c.usr == nil {
		c.current = loginRoute
		return errSignedOut
	}

	switch cmd {
	case "logout":
		c.logout()
		return nil
	case "routes", "menu":
		c.renderSidebar()
		return nil
	case "go", "open":
		path := homePath
		if len(args) > 0 {
			path = args[0]
		}
		return c.open(ctx, path)
	case "show":
		return c.show(ctx)
	case "filters":
		return c.filters()
	case "filter":
		if len(args) < 1 {
			return errors.New("usage: filter KEY [VALUE]")
		}
		return c.filter(ctx, args[0], strings.Join(args[1:], " "))
	case "reset":
		return c.reset(ctx)
	case "sort":
		if len(args) != 1 {
			return errors.New("usage: sort FIELD")
		}
		return c.sort(ctx, args[0])
	case "delete":
		if len(args) != 1 {
			return errors.New("usage: delete ID")
		}
		return c.delete(ctx, args[0])
	case "export":
		if len(args) != 1 {
			return errors.New("usage: export FILE")
		}
		return c.export(args[0])
	case "add":
		return c.openForm(ctx, "", args)
	case "edit":
		if len(args) < 1 {
			return errors.New("usage: edit ID [KEY=VALUE]...")
		}
		return c.openForm(ctx, args[0], args[1:])
	case "set":
		if len(args) < 1 {
			return errors.New("usage: set KEY [VALUE]")
		}
		return c.setField(args[0], strings.Join(args[1:], " "))
	case "form":
		if c.modal == nil {
			return errNoForm
		}
		c.renderForm()
		return nil
	case "save":
		return c.save(ctx)
	case "cancel":
		if c.modal == nil {
			return errNoForm
		}
		c.modal = nil
		c.println("cancelled")
		return nil
	default:
		return errors.Errorf("unknown command %q, type help", cmd)
	}
}

func (c *console) help() {
	c.println("Commands:")
	c.println("  login EMAIL          sign in (any password is accepted)")
	c.println("  logout               sign out")
	c.println("  routes               list the pages")
	c.println("  go PATH              open a page, e.g. go /schools")
	c.println("  show                 refresh the current page")
	c.println("  filters              list the filters of the current page")
	c.println("  filter KEY [VALUE]   set a filter, an empty value clears it")
	c.println("  reset                clear every filter and the ordering")
	c.println("  sort FIELD           sort by FIELD, again to reverse")
	c.println("  add [KEY=VALUE]...   open the add form, saved right away when values are given")
	c.println("  edit ID [KEY=VALUE]  open the edit form of a row, same as add")
	c.println("  set KEY [VALUE]      change a field of the open form")
	c.println("  form                 show the open form")
	c.println("  save                 validate and save the open form")
	c.println("  cancel               close the open form without saving")
	c.println("  delete ID            delete a row, after confirmation")
	c.println("  export FILE          write the table to FILE (.csv or .xlsx)")
	c.println("  quit                 leave the console")
}

// =========================================================================
// Auth gate

func (c *console) login(ctx context.Context, email string) error {
	usr, err := c.users.SignIn(ctx, user.Credentials{Email: core.CleanString(email, true /* lower */)})
	if err != nil {
		return errors.Wrap(err, "signing in")
	}
	c.usr = &usr
	okColor.Fprintf(c.out, "signed in as %s (%s)\n", usr.Email, usr.Role)
	c.current = resolve(homePath, true)
	return nil
}

func (c *console) logout() {
	c.close()
	c.stores = make(map[string]*pageStore)
	c.usr = nil
	c.current = loginRoute
	c.modal = nil
	c.println("signed out")
}

// =========================================================================
// Pages

func (c *console) open(ctx context.Context, path string) error {
	r := resolve(path, c.usr != nil)
	p := c.pages[r.Path]
	if !p.canView(c.usr.Role) {
		return errForbidden
	}
	c.current = r
	c.modal = nil

	st := c.store(p)
	if err := st.Fetch(ctx); err != nil {
		return err
	}
	c.render(p, st.Snapshot())
	return nil
}

// page returns the current page; the sign-in route has none.
func (c *console) page() (*page, *pageStore, error) {
	p, ok := c.pages[c.current.Path]
	if !ok {
		return nil, nil, errors.New("open a page first: go PATH")
	}
	return p, c.store(p), nil
}

func (c *console) store(p *page) *pageStore {
	if st, ok := c.stores[p.Path]; ok {
		return st
	}
	opts := []store.Option[query, view]{
		store.WithLogger[query, view](c.logger),
		store.WithName[query, view](p.Path),
	}
	if p.debounce {
		opts = append(opts, store.WithDebounce[query, view](c.conf.Store.FacilityDebounce))
	}
	st := store.New(query{}, p.load, opts...)
	c.stores[p.Path] = st
	return st
}

func (c *console) show(ctx context.Context) error {
	p, st, err := c.page()
	if err != nil {
		return err
	}
	if st.Pending() {
		err = st.Flush(ctx)
	} else {
		err = st.Fetch(ctx)
	}
	if err != nil {
		return err
	}
	c.render(p, st.Snapshot())
	return nil
}

func (c *console) filters() error {
	p, st, err := c.page()
	if err != nil {
		return err
	}
	if p.panel == nil {
		c.println("this page has no filter panel")
		return nil
	}
	current := st.Filters().Params
	table := tablewriter.NewWriter(c.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Key", "Label", "Type", "Options", "Value"})
	for _, fld := range p.panel() {
		opts := make([]string, len(fld.Options))
		for i, opt := range fld.Options {
			opts[i] = opt.Value
		}
		table.Append([]string{fld.Key, fld.Label, fld.Type, strings.Join(opts, ", "), current[fld.Key]})
	}
	table.Render()
	return nil
}

func (c *console) filter(ctx context.Context, key, value string) error {
	p, st, err := c.page()
	if err != nil {
		return err
	}
	err = st.SetFilters(ctx, func(q *query) error {
		next := q.with(key, value)
		if _, _, err := p.build(next); err != nil {
			return err
		}
		*q = next
		return nil
	})
	if err != nil {
		return err
	}
	if st.Pending() {
		c.println("filters updated, type show to refresh now")
		return nil
	}
	c.render(p, st.Snapshot())
	return nil
}

func (c *console) reset(ctx context.Context) error {
	p, st, err := c.page()
	if err != nil {
		return err
	}
	if err := st.Reset(ctx); err != nil {
		return err
	}
	c.render(p, st.Snapshot())
	return nil
}

// sort orders by field, or reverses the order when already sorted by it.
func (c *console) sort(ctx context.Context, field string) error {
	p, st, err := c.page()
	if err != nil {
		return err
	}
	err = st.SetFilters(ctx, func(q *query) error {
		next := query{Params: q.Params, Ordering: strings.TrimPrefix(field, "-")}
		if q.Ordering == next.Ordering {
			next.Ordering = "-" + next.Ordering
		}
		if _, _, err := p.build(next); err != nil {
			return err
		}
		*q = next
		return nil
	})
	if err != nil {
		return err
	}
	if st.Pending() {
		if err := st.Flush(ctx); err != nil {
			return err
		}
	}
	c.render(p, st.Snapshot())
	return nil
}

func (c *console) delete(ctx context.Context, id string) error {
	p, st, err := c.page()
	if err != nil {
		return err
	}
	if p.remove == nil {
		return errNoDelete
	}
	if !p.canDelete(c.usr.Role) || (p.noSelfDelete && id == c.usr.ID) {
		return errForbidden
	}

	c.printf("Delete %s %s? [y/N] ", strings.ToLower(p.Title), id)
	if !c.confirm() {
		c.println("cancelled")
		return nil
	}
	if err := p.remove(ctx, id); err != nil {
		return err
	}
	okColor.Fprintf(c.out, "deleted %s\n", id)

	if err := st.Fetch(ctx); err != nil {
		return err
	}
	c.render(p, st.Snapshot())
	return nil
}

// =========================================================================
// Add/Edit

// openForm seeds the page form, empty for add or from row id for edit.
// With assignments the form is saved right away, otherwise it stays open for set and save.
func (c *console) openForm(ctx context.Context, id string, args []string) error {
	p, _, err := c.page()
	if err != nil {
		return err
	}
	if p.form == nil {
		return errNoEdit
	}
	if !p.canEdit(c.usr.Role) {
		return errForbidden
	}
	assignments, err := parseAssignments(args)
	if err != nil {
		return err
	}

	f, err := p.form(ctx, id)
	if err != nil {
		return err
	}
	c.modal = &modal{page: p, id: id, form: f}

	for _, kv := range assignments {
		if err := f.set(kv[0], kv[1]); err != nil {
			c.renderForm()
			return err
		}
	}
	if len(assignments) > 0 {
		return c.save(ctx)
	}
	c.renderForm()
	return nil
}

func (c *console) setField(key, value string) error {
	if c.modal == nil {
		return errNoForm
	}
	if err := c.modal.form.set(key, value); err != nil {
		return err
	}
	c.renderForm()
	return nil
}

// save submits the open form and refreshes the page. The form stays open on failure.
func (c *console) save(ctx context.Context) error {
	m := c.modal
	if m == nil {
		return errNoForm
	}
	id, err := m.form.save(ctx, c.validate)
	if err != nil {
		return err
	}
	c.modal = nil
	if m.id == "" {
		okColor.Fprintf(c.out, "added %s\n", id)
	} else {
		okColor.Fprintf(c.out, "updated %s\n", id)
	}

	st := c.store(m.page)
	if err := st.Fetch(ctx); err != nil {
		return err
	}
	c.render(m.page, st.Snapshot())
	return nil
}

// parseAssignments reads KEY=VALUE words; a word without "=" continues the previous value.
func parseAssignments(args []string) ([][2]string, error) {
	var kvs [][2]string
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok {
			kvs = append(kvs, [2]string{strings.ToLower(key), value})
			continue
		}
		if len(kvs) == 0 {
			return nil, errors.Errorf("expected KEY=VALUE, got %q", arg)
		}
		kvs[len(kvs)-1][1] += " " + arg
	}
	return kvs, nil
}

func (c *console) confirm() bool {
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

// export writes the table currently shown; the format follows the file extension.
func (c *console) export(filename string) error {
	_, st, err := c.page()
	if err != nil {
		return err
	}
	t := st.Data().Table
	if t == nil {
		return errNothingShown
	}

	format := export.FormatCSV
	if strings.EqualFold(filepath.Ext(filename), "."+export.FormatXLSX) {
		format = export.FormatXLSX
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	defer func() { _ = f.Close() }()

	if err := t.Write(f, format); err != nil {
		return errors.Wrap(err, "writing export")
	}
	okColor.Fprintf(c.out, "exported %d rows to %s\n", len(t.Rows), filename)
	return nil
}

// =========================================================================
// Layout

func (c *console) renderHeader() {
	title := c.conf.AppName + " | " + c.current.Title
	if c.usr != nil {
		title += " | " + c.usr.Email + " (" + c.usr.Role + ")"
	}
	c.println("")
	titleColor.Fprintln(c.out, title)
}

func (c *console) renderSidebar() {
	sections, bySection := sidebar()
	for _, section := range sections {
		titleColor.Fprintln(c.out, section)
		for _, r := range bySection[section] {
			if p := c.pages[r.Path]; p != nil && !p.canView(c.usr.Role) {
				continue
			}
			marker := "  "
			if r.Path == c.current.Path {
				marker = "> "
			}
			c.println(marker + r.Title + "  " + r.Path)
		}
	}
}

func (c *console) render(p *page, snap store.Snapshot[query, view]) {
	c.renderHeader()
	if len(snap.Filters.Params) > 0 || snap.Filters.Ordering != "" {
		c.println("filters: " + describe(snap.Filters))
	}
	if snap.Err != nil {
		c.fail(snap.Err)
	}
	for _, cd := range snap.Data.Cards {
		cardColor.Fprintf(c.out, "%s: ", cd.Label)
		c.println(cd.Value)
	}

	t := snap.Data.Table
	if t == nil {
		return
	}
	if len(t.Rows) == 0 {
		c.println("no results")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(t.Header)
	table.AppendBulk(t.Rows)
	table.Render()
	switch {
	case p.canEdit(c.usr.Role) && p.canDelete(c.usr.Role):
		c.println("add, edit ID or delete ID to change rows")
	case p.canDelete(c.usr.Role):
		c.println("delete ID to remove a row")
	}
}

func (c *console) renderForm() {
	m := c.modal
	action := "Add"
	if m.id != "" {
		action = "Edit " + m.id
	}
	titleColor.Fprintln(c.out, action+" | "+m.page.Title)

	table := tablewriter.NewWriter(c.out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Field", "Value"})
	for _, kv := range m.form.values() {
		table.Append([]string{kv[0], kv[1]})
	}
	table.Render()
	c.println("set KEY VALUE to change a field, then save or cancel")
}

func describe(q query) string {
	parts := make([]string, 0, len(q.Params)+1)
	for _, k := range sortedKeys(q.Params) {
		parts = append(parts, k+"="+q.Params[k])
	}
	if q.Ordering != "" {
		parts = append(parts, "ordering="+q.Ordering)
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fail prints err the way the API would phrase it.
func (c *console) fail(err error) {
	switch cause := errors.Cause(err).(type) {
	case *core.ValidationError:
		if len(cause.Fields) == 0 {
			errColor.Fprintln(c.out, "error: "+cause.Error())
			return
		}
		for _, fld := range cause.Fields {
			errColor.Fprintf(c.out, "error: %s: %s\n", fld.Field, fld.Error)
		}
	case validator.ValidationErrors:
		for _, fe := range cause {
			errColor.Fprintf(c.out, "error: %s: %s\n", fe.Field(), fe.Translate(c.translator))
		}
	case *core.NotFoundError:
		errColor.Fprintln(c.out, "error: "+cause.Error())
	default:
		errColor.Fprintln(c.out, "error: "+err.Error())
	}
}

func (c *console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
