package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/joeandaverde/sqlitepage/page"
	"github.com/joeandaverde/sqlitepage/pager"
)

// InspectCommand decodes and logs the database header and page 1's
// b-tree page header.
type InspectCommand struct{}

func (c *InspectCommand) Help() string {
	helpText := `
Usage: sqlitepage inspect [options] <file>

Options:

	-config=""	Optional yaml configuration file
`
	return strings.TrimSpace(helpText)
}

func (c *InspectCommand) Synopsis() string {
	return "Print the database header and page 1's b-tree header"
}

func (c *InspectCommand) Run(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	configPath := fs.String("config", "", "yaml configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Println(c.Help())
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

	raw, err := p.ReadPage(1)
	if err != nil {
		log.WithError(err).Error("read page 1")
		return 1
	}

	dbinfo, err := page.ParseDBInfo(raw)
	if err != nil {
		log.WithError(err).Error("parse database header")
		return 1
	}

	log.WithFields(logFields(dbinfo)).Info("database header")

	pg, err := page.DecodePage(raw, dbinfo.PageSize, true)
	if err != nil {
		log.WithError(err).Error("decode page 1")
		return 1
	}

	log.WithFields(map[string]interface{}{
		"node_type": pg.NodeType,
		"num_cells": pg.NumCells,
	}).Info("page 1 header")

	return 0
}

func logFields(d *page.DBInfo) map[string]interface{} {
	return map[string]interface{}{
		"page_size":           d.PageSize,
		"file_change_counter": d.FileChangeCounter,
		"size_in_pages":       d.SizeInPages,
		"schema_cookie":       d.SchemaCookie,
		"text_encoding":       d.TextEncoding,
	}
}
