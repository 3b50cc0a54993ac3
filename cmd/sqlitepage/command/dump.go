package command

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/joeandaverde/sqlitepage/page"
	"github.com/joeandaverde/sqlitepage/pager"
)

// DumpCommand decodes a single table-leaf page and prints each row's
// column kinds and values.
type DumpCommand struct{}

func (c *DumpCommand) Help() string {
	helpText := `
Usage: sqlitepage dump [options] <file> <page-no>

Options:

	-config=""	Optional yaml configuration file
`
	return strings.TrimSpace(helpText)
}

func (c *DumpCommand) Synopsis() string {
	return "Print the decoded rows of a table-leaf page"
}

func (c *DumpCommand) Run(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	configPath := fs.String("config", "", "yaml configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Println(c.Help())
		return 1
	}

	pageNo, err := strconv.ParseUint(rest[1], 10, 32)
	if err != nil {
		fmt.Printf("Error: invalid page number %q\n", rest[1])
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		return 1
	}
	log := newLogger(cfg)

	p, err := pager.OpenFilePager(rest[0], cfg.PageSize)
	if err != nil {
		log.WithError(err).Error("open database file")
		return 1
	}
	defer p.Close()

	raw, err := p.ReadPage(uint32(pageNo))
	if err != nil {
		log.WithError(err).Error("read page")
		return 1
	}

	pg, err := page.DecodePage(raw, cfg.PageSize, pageNo == 1)
	if err != nil {
		log.WithError(err).Error("decode page")
		return 1
	}

	for _, cell := range pg.Cells {
		fmt.Printf("row %d:", cell.RowID)
		for i, v := range cell.Record.Values {
			fmt.Printf(" %s=%v", kindName(cell.Record.Columns[i].Kind), v)
		}
		fmt.Println()
	}

	return 0
}

func kindName(k page.ColumnKind) string {
	names := []string{
		"NULL", "I8", "I16", "I24", "I32", "I48", "I64", "F64",
		"ZERO", "ONE", "RESERVED10", "RESERVED11", "BLOB", "TEXT",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UNKNOWN"
}
