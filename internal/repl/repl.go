package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"text/tabwriter"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/engine"
	"github.com/leengari/tabledb/internal/storage/manager"
)

// errExit is returned by Execute when the user asks to leave
var errExit = stderrors.New("exit")

const helpText = `Commands:
  create database <db>            drop database <db>
  databases                       use <db>
  tables
  create table <t> <col>:<type> ...   (types: string, int, float64, bool, date)
  insert <t> <v1> <v2> ...
  select <t> [<col>=<value> ...]
  count <t>                       describe <t>
  help                            exit | \q`

// Session holds the REPL state: the registry and the selected database
type Session struct {
	registry *manager.Registry
	db       *engine.Database
	out      io.Writer
}

func NewSession(registry *manager.Registry, out io.Writer) *Session {
	return &Session{registry: registry, out: out}
}

// Start reads commands from in until EOF or exit
func Start(registry *manager.Registry, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to tabledb")
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or '\\q' to quit.")

	s := NewSession(registry, out)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}

		err := s.Execute(scanner.Text())
		if stderrors.Is(err, errExit) {
			return
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// Execute runs one command line
func (s *Session) Execute(line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd := strings.ToLower(args[0])
	switch {
	case cmd == "exit" || cmd == `\q`:
		return errExit
	case cmd == "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	case cmd == "databases" || cmd == "ls" || cmd == "list":
		return s.listDatabases()
	case cmd == "create" && len(args) >= 3 && strings.EqualFold(args[1], "database"):
		return s.createDatabase(args[2])
	case cmd == "drop" && len(args) >= 3 && strings.EqualFold(args[1], "database"):
		return s.dropDatabase(args[2])
	case cmd == "use" && len(args) == 2:
		return s.use(args[1])
	}

	if s.db == nil {
		return fmt.Errorf("no database selected. Use 'use <database_name>' to select one")
	}

	switch {
	case cmd == "tables":
		for _, name := range s.db.ShowTables() {
			fmt.Fprintf(s.out, "  - %s\n", name)
		}
		return nil
	case cmd == "create" && len(args) >= 4 && strings.EqualFold(args[1], "table"):
		return s.createTable(args[2], args[3:])
	case cmd == "insert" && len(args) >= 2:
		return s.insert(args[1], args[2:])
	case cmd == "select" && len(args) >= 2:
		return s.selectRows(args[1], args[2:])
	case cmd == "count" && len(args) == 2:
		return s.count(args[1])
	case cmd == "describe" && len(args) == 2:
		return s.describe(args[1])
	}

	return fmt.Errorf("unknown command %q (type 'help')", line)
}

func (s *Session) listDatabases() error {
	dbs, err := s.registry.List()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Available databases:")
	for _, db := range dbs {
		fmt.Fprintf(s.out, "  - %s\n", db)
	}
	return nil
}

func (s *Session) createDatabase(name string) error {
	if _, err := s.registry.Create(name); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Database '%s' created\n", name)
	return nil
}

func (s *Session) dropDatabase(name string) error {
	if s.db != nil && s.db.Name() == name {
		s.db = nil
	}
	if err := s.registry.Drop(name); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Database '%s' dropped\n", name)
	return nil
}

func (s *Session) use(name string) error {
	db, err := s.registry.Get(name)
	if err != nil {
		return fmt.Errorf("failed to load database '%s': %w", name, err)
	}
	s.db = db
	fmt.Fprintf(s.out, "Switched to database '%s'\n", name)
	return nil
}

func (s *Session) table(name string) (*engine.Table, error) {
	t, ok := s.db.Table(name)
	if !ok {
		return nil, fmt.Errorf("table '%s' does not exist", name)
	}
	return t, nil
}

func (s *Session) createTable(name string, defs []string) error {
	columns := make(schema.Schema, 0, len(defs))
	for _, def := range defs {
		colName, colType, ok := strings.Cut(def, ":")
		if !ok {
			return fmt.Errorf("column definition %q must be <name>:<type>", def)
		}
		columns = append(columns, schema.Column{Name: colName, Type: schema.ColumnType(colType)})
	}

	if _, err := s.db.CreateTable(name, columns); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Table '%s' created\n", name)
	return nil
}

func (s *Session) insert(name string, raw []string) error {
	t, err := s.table(name)
	if err != nil {
		return err
	}

	columns := t.Describe()
	values := make([]any, len(raw))
	for i, text := range raw {
		if i >= len(columns) {
			// let the table report the arity error
			values[i] = text
			continue
		}
		v, err := schema.Parse(columns[i].Type, text)
		if err != nil {
			return fmt.Errorf("column '%s': %w", columns[i].Name, err)
		}
		values[i] = v
	}

	if err := t.Insert(values...); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "1 row inserted")
	return nil
}

func (s *Session) selectRows(name string, conds []string) error {
	t, err := s.table(name)
	if err != nil {
		return err
	}

	columns := t.Describe()
	filter := engine.Filter{}
	for _, cond := range conds {
		colName, text, ok := strings.Cut(cond, "=")
		if !ok {
			return fmt.Errorf("filter %q must be <column>=<value>", cond)
		}
		col, known := columns.Lookup(colName)
		if !known {
			// let the table report the unknown column
			filter[colName] = text
			continue
		}
		v, err := schema.Parse(col.Type, text)
		if err != nil {
			return fmt.Errorf("column '%s': %w", colName, err)
		}
		filter[colName] = v
	}

	rows, err := t.Query(filter)
	if err != nil {
		return err
	}
	n := PrintRows(s.out, columns, rows)
	fmt.Fprintf(s.out, "(%d rows)\n", n)
	return nil
}

func (s *Session) count(name string) error {
	t, err := s.table(name)
	if err != nil {
		return err
	}
	n, err := t.Count()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, n)
	return nil
}

func (s *Session) describe(name string) error {
	t, err := s.table(name)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\ttype")
	fmt.Fprintln(tw, "---\t---")
	for _, c := range t.Describe() {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Type)
	}
	return tw.Flush()
}

// PrintRows writes rows as an aligned table and returns how many were written
func PrintRows(w io.Writer, columns schema.Schema, rows iter.Seq[data.Row]) int {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header with types
	for i, col := range columns {
		fmt.Fprintf(tw, "%s (%s)", col.Name, col.Type)
		if i < len(columns)-1 {
			fmt.Fprintf(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	// Separator
	for i := range columns {
		fmt.Fprintf(tw, "---")
		if i < len(columns)-1 {
			fmt.Fprintf(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	n := 0
	for row := range rows {
		for i, v := range row.Values() {
			fmt.Fprintf(tw, "%v", v)
			if i < len(columns)-1 {
				fmt.Fprintf(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
		n++
	}
	tw.Flush()

	return n
}

// splitArgs splits a command line on whitespace, keeping double-quoted
// sections together with the quotes removed
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inQuote bool
		hasArg  bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case (r == ' ' || r == '\t') && !inQuote:
			if hasArg {
				args = append(args, current.String())
				current.Reset()
				hasArg = false
			}
		default:
			current.WriteRune(r)
			hasArg = true
		}
	}

	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if hasArg {
		args = append(args, current.String())
	}
	return args, nil
}
