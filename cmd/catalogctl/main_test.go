package main

import (
	"bytes"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func setEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOGGER_LEVEL", "error")
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "ctl.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
}

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResetRequiresForce(t *testing.T) {
	c := qt.New(t)

	_, err := run(t, "reset-db")
	c.Assert(err, qt.ErrorMatches, `reset-db deletes all data; pass --force to continue`)
}

func TestMigrateSeedAndReset(t *testing.T) {
	c := qt.New(t)
	setEnv(t)

	out, err := run(t, "migrate")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Applied ")

	out, err = run(t, "migrate")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Schema is up to date\n")

	out, err = run(t, "seed")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Categories added: 10\nProducts added: 8\nProducts skipped: 1\n")

	out, err = run(t, "seed")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Categories added: 0\nProducts added: 0\nProducts skipped: 0\n")

	out, err = run(t, "reset-db", "--force")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Database reset\n")

	out, err = run(t, "seed")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Categories added: 10\n")
}

func TestBootstrapAndCreateAdmin(t *testing.T) {
	c := qt.New(t)
	setEnv(t)

	out, err := run(t, "bootstrap")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Admin accounts: 1\n")

	out, err = run(t, "create-admin", "--username", "sara", "--password", "s3cret-pass")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Matches, `Created admin "sara" \(id \d+\)\n`)

	_, err = run(t, "create-admin", "--username", "sara", "--password", "s3cret-pass")
	c.Assert(err, qt.ErrorMatches, `create admin: .*`)

	_, err = run(t, "create-admin", "--username", "omar", "--password", "s3cret-pass", "--role", "owner")
	c.Assert(err, qt.ErrorMatches, `create admin: .*`)

	out, err = run(t, "bootstrap")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Admin accounts: 2\n")
}
