// Command migrate applies the versioned PostgreSQL schema and scaffolds new
// migration files.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/inventory/backend/internal/infrastructure/config"
	"github.com/inventory/backend/internal/infrastructure/logger"
	"github.com/inventory/backend/internal/infrastructure/migration"
	"github.com/inventory/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("usage")

// session is what a command runs against. m is nil for offline commands.
type session struct {
	log *zap.Logger
	dir string
	m   *migration.Migrator
}

type command struct {
	args    string
	help    string
	offline bool
	run     func(s *session, args []string) error
}

var commands = map[string]command{
	"up": {help: "Apply all pending migrations", run: func(s *session, _ []string) error {
		return s.m.Up()
	}},
	"down": {help: "Roll back every migration", run: func(s *session, _ []string) error {
		return s.m.Down()
	}},
	"steps": {args: "<n>", help: "Apply n migrations, negative n rolls back", run: func(s *session, args []string) error {
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return s.m.Steps(n)
	}},
	"goto": {args: "<version>", help: "Migrate up or down to version", run: func(s *session, args []string) error {
		v, err := versionArg(args)
		if err != nil {
			return err
		}
		return s.m.GoTo(v)
	}},
	"version": {help: "Show the applied version", run: func(s *session, _ []string) error {
		v, dirty, err := s.m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			s.log.Info("No migrations applied")
			return nil
		}
		s.log.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	}},
	"force": {args: "<version>", help: "Mark version as applied and clean the dirty flag", run: func(s *session, args []string) error {
		v, err := intArg(args)
		if err != nil {
			return err
		}
		s.log.Warn("Forcing schema version", zap.Int("version", v))
		return s.m.Force(v)
	}},
	"create": {args: "<name>", help: "Write the next up/down file pair", offline: true, run: func(s *session, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: migration name required", errUsage)
		}
		mf, err := migration.CreateMigration(s.dir, args[0])
		if err != nil {
			return err
		}
		s.log.Info("Migration created",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath))
		return nil
	}},
	"list": {help: "List migration files", offline: true, run: func(s *session, _ []string) error {
		files, err := migration.ListMigrations(s.dir)
		if err != nil {
			return err
		}
		s.log.Info("Migrations", zap.Int("count", len(files)))
		for _, f := range files {
			fmt.Println("  -", f)
		}
		return nil
	}},
}

func main() {
	dir := flag.String("path", "", "Migrations directory (default ./migrations)")
	level := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	embedded := flag.Bool("embedded", false, "Use the migrations compiled into the binary")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout", TimeFormat: "15:04:05"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	s := &session{log: log}
	if !*embedded {
		if s.dir, err = resolveMigrationsDir(*dir); err != nil {
			log.Fatal("Cannot resolve migrations directory", zap.Error(err))
		}
	}
	log.Debug("Running migration command", zap.String("command", name), zap.String("dir", s.dir))

	if !cmd.offline {
		closeAll, err := connect(s)
		if err != nil {
			log.Fatal("Cannot open migrator", zap.Error(err))
		}
		defer closeAll()
	}

	if err := cmd.run(s, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\nusage: migrate %s %s\n", err, name, cmd.args)
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
	}
}

// connect opens PostgreSQL from the server configuration and attaches a
// migrator to s. SQLite deployments build their schema on server start.
func connect(s *session) (func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if d := cfg.Database.Driver; d != "" && d != "postgres" {
		return nil, fmt.Errorf("driver %q has no versioned migrations", d)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	src := migration.Source{FS: migrations.FS, Dir: s.dir}
	if s.m, err = migration.New(db, src, s.log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return func() {
		_ = s.m.Close()
		_ = db.Close()
	}, nil
}

func intArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: argument required", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", errUsage, args[0])
	}
	return n, nil
}

func versionArg(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: version required", errUsage)
	}
	v, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a version", errUsage, args[0])
	}
	return uint(v), nil
}

// resolveMigrationsDir prefers an explicit path, then ./migrations, then
// the directory two levels above the executable.
func resolveMigrationsDir(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	candidates := []string{defaultMigrationsDir}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsDir))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return filepath.Abs(c)
		}
	}
	return filepath.Abs(defaultMigrationsDir)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: migrate [flags] <command> [argument]\n\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(os.Stderr, "  %-18s %s\n", name+" "+c.args, c.help)
	}
	fmt.Fprintln(os.Stderr, "\nflags:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nThe database is read from config.toml and INV_DATABASE_* variables.")
}
