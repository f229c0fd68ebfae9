package main

import (
	"bytes"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"kpa-forms-api/config"
	"kpa-forms-api/internal/database"

	"github.com/fatih/color"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq uint64

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if code := execute(root); code != 0 {
		t.Fatalf("exit code=%d", code)
	}
	if !strings.HasPrefix(out.String(), "kpa-forms dev") {
		t.Fatalf("output=%q", out.String())
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("missing subcommand %s: %v", name, err)
		}
	}
}

func TestRunMigrate_ListsTables(t *testing.T) {
	color.NoColor = true

	id := atomic.AddUint64(&testDBSeq, 1)
	db, err := database.Open(&config.Config{
		DBDriver: database.DriverSQLite,
		DBPath:   fmt.Sprintf("file:cmd_test_%d?mode=memory&cache=shared", id),
	}, gormlogger.Silent)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeDB(db)

	var out bytes.Buffer
	if err := runMigrate(&out, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, table := range []string{"wheel_specifications", "wheel_specification_fields", "bogie_checksheet_forms", "bogie_details", "bogie_checksheets", "bmbc_checksheets"} {
		if !strings.Contains(out.String(), "OK "+table) {
			t.Fatalf("output missing %s:\n%s", table, out.String())
		}
	}
}

func TestExecute_UnknownCommandFails(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"nope"})

	if code := execute(root); code != 1 {
		t.Fatalf("exit code=%d want 1", code)
	}
}
