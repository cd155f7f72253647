package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/aalemi-dev/odbcerr/kafka"
	"github.com/aalemi-dev/odbcerr/logger"
	"github.com/aalemi-dev/odbcerr/mariadb"
	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/postgres"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/aalemi-dev/odbcerr/sqlite"
)

type options struct {
	Config string `short:"c" long:"config" env:"ODBCERR_CONFIG" description:"yaml configuration file"`
	Dbg    bool   `long:"dbg" description:"debug mode"`

	ClassifyCmd struct {
		PositionalArgs struct {
			States []string `positional-arg-name:"sqlstate" required:"1" description:"SQLSTATEs to classify"`
		} `positional-args:"yes"`
	} `command:"classify" description:"classify SQLSTATEs"`

	TableCmd struct{} `command:"table" description:"print the SQLSTATE classification table"`

	ProbeCmd struct {
		Driver         string `short:"d" long:"driver" choice:"sqlite" choice:"postgres" choice:"mariadb" default:"sqlite" description:"database to run the statement on"`
		PositionalArgs struct {
			Query string `positional-arg-name:"query" required:"yes" description:"statement to run"`
		} `positional-args:"yes"`
	} `command:"probe" description:"run a statement and print its classified error"`
}

// fileConfig is the layout of the --config file.
type fileConfig struct {
	Logger   logger.Config   `yaml:"logger"`
	SQLite   sqlite.Config   `yaml:"sqlite"`
	Postgres postgres.Config `yaml:"postgres"`
	MariaDB  mariadb.Config  `yaml:"mariadb"`
	Kafka    kafka.Config    `yaml:"kafka"`
}

var revision = "latest"

var exitFunc = os.Exit

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		exitFunc(1) // can be redefined in tests
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, p, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "odbcerr %s: %v\n", revision, err)
		exitFunc(1)
	}
}

func run(ctx context.Context, p *flags.Parser, opts options, out io.Writer) error {
	if p.Active == nil {
		return errors.New("no command given")
	}
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	if opts.Dbg {
		cfg.Logger.Level = logger.Debug
	}
	log := logger.NewLoggerClient(cfg.Logger)
	defer func() { _ = log.Sync() }()

	switch p.Active.Name {
	case "classify":
		return classifyCmd(out, opts.ClassifyCmd.PositionalArgs.States)
	case "table":
		return tableCmd(out)
	case "probe":
		return probeCmd(ctx, out, log, cfg, opts.ProbeCmd.Driver, opts.ProbeCmd.PositionalArgs.Query)
	}
	return fmt.Errorf("unknown command %q", p.Active.Name)
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{Logger: logger.Config{Level: logger.Warning, ServiceName: "odbcerr"}}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return cfg, fmt.Errorf("can't read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("can't parse config %s: %w", path, err)
	}
	return cfg, nil
}

type classification struct {
	Input          string   `yaml:"input"`
	SQLState       string   `yaml:"sqlstate"`
	Class          string   `yaml:"class"`
	Kind           string   `yaml:"kind"`
	Hierarchy      []string `yaml:"hierarchy"`
	Retryable      bool     `yaml:"retryable"`
	Timeout        bool     `yaml:"timeout"`
	ConnectionLost bool     `yaml:"connection_lost"`
}

// classifyCmd prints the classification of every state. Malformed states
// are reported as HY000 and collected into the returned error.
func classifyCmd(out io.Writer, states []string) error {
	var errs *multierror.Error
	result := make([]classification, 0, len(states))
	for _, s := range states {
		if !sqlerr.SQLState(s).Valid() {
			errs = multierror.Append(errs, fmt.Errorf("%q is not a SQLSTATE, classified as %s", s, sqlerr.DefaultSQLState))
		}
		result = append(result, classify(s))
	}
	if err := yaml.NewEncoder(out).Encode(result); err != nil {
		return fmt.Errorf("can't write result: %w", err)
	}
	return errs.ErrorOrNil()
}

func classify(input string) classification {
	state := sqlerr.NormalizeSQLState(input)
	e := sqlerr.Newf(string(state), "%s", state)
	kind := sqlerr.Classify(input)
	hierarchy := []string{kind.String()}
	for k := kind; k.Parent() != k; {
		k = k.Parent()
		hierarchy = append(hierarchy, k.String())
	}
	return classification{
		Input:          input,
		SQLState:       string(state),
		Class:          state.Class(),
		Kind:           kind.String(),
		Hierarchy:      hierarchy,
		Retryable:      sqlerr.IsRetryable(e),
		Timeout:        sqlerr.IsTimeout(e),
		ConnectionLost: sqlerr.IsConnectionLost(e),
	}
}

func tableCmd(out io.Writer) error {
	type rule struct {
		Prefix string `yaml:"prefix"`
		Kind   string `yaml:"kind"`
	}
	rules := sqlerr.Classes()
	result := make([]rule, 0, len(rules)+1)
	for _, r := range rules {
		result = append(result, rule{Prefix: r.Prefix, Kind: r.Kind.String()})
	}
	result = append(result, rule{Prefix: "*", Kind: sqlerr.KindError.String()})
	if err := yaml.NewEncoder(out).Encode(result); err != nil {
		return fmt.Errorf("can't write table: %w", err)
	}
	return nil
}

type probeResult struct {
	Driver     string `yaml:"driver"`
	OK         bool   `yaml:"ok"`
	Function   string `yaml:"function,omitempty"`
	SQLState   string `yaml:"sqlstate,omitempty"`
	Kind       string `yaml:"kind,omitempty"`
	NativeCode *int32 `yaml:"native_code,omitempty"`
	Records    int    `yaml:"records,omitempty"`
	Message    string `yaml:"message,omitempty"`
	Retryable  bool   `yaml:"retryable,omitempty"`
}

// probeCmd runs query on the configured database and prints how its failure,
// if any, classifies. A failing statement is the expected outcome and not
// an error of the command.
func probeCmd(ctx context.Context, out io.Writer, log *logger.LoggerClient, cfg fileConfig, driver, query string) error {
	execErr, err := execute(ctx, log, cfg, driver, query)
	if err != nil {
		return err
	}
	res := probeResult{Driver: driver, OK: execErr == nil}
	var e *sqlerr.Error
	if errors.As(execErr, &e) {
		res.Function = e.Function()
		res.SQLState = string(e.SQLState())
		res.Kind = e.Kind().String()
		if native, ok := e.NativeCode(); ok {
			res.NativeCode = &native
		}
		res.Records = e.RecordCount()
		res.Message = e.Message()
		res.Retryable = sqlerr.IsRetryable(e)
	} else if execErr != nil {
		res.Message = execErr.Error()
	}
	log.SQLError(ctx, "statement failed", execErr, map[string]interface{}{"driver": driver})
	if execErr != nil && len(cfg.Kafka.Brokers) > 0 {
		pub, err := kafka.NewPublisher(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("can't create kafka publisher: %w", err)
		}
		pub.WithLogger(log)
		if err := report(ctx, pub, cfg.Kafka.Service, driver, execErr); err != nil {
			log.Warn("can't publish error event", err, map[string]interface{}{"topic": pub.Topic()})
		}
	}
	if err := yaml.NewEncoder(out).Encode(res); err != nil {
		return fmt.Errorf("can't write result: %w", err)
	}
	return nil
}

// report publishes the classified failure of a probe and closes pub.
func report(ctx context.Context, pub *kafka.Publisher, service, driver string, execErr error) error {
	ev, ok := kafka.NewErrorEvent(observability.OperationContext{
		Component: driver,
		Operation: "probe",
		Error:     execErr,
	}, service, time.Now())
	var errs *multierror.Error
	if ok {
		errs = multierror.Append(errs, pub.Publish(ctx, ev))
	}
	errs = multierror.Append(errs, pub.Close(ctx))
	return errs.ErrorOrNil()
}

// execute returns the statement error separately from failures to reach the
// database at all.
func execute(ctx context.Context, log *logger.LoggerClient, cfg fileConfig, driver, query string) (execErr, err error) {
	switch driver {
	case "sqlite":
		db, err := sqlite.NewSQLite(cfg.SQLite, nil)
		if err != nil {
			return nil, fmt.Errorf("can't open sqlite: %w", err)
		}
		db.WithLogger(log)
		defer func() { _ = db.Close() }()
		_, execErr = db.ExecContext(ctx, query)
		return execErr, nil
	case "postgres":
		db, err := postgres.NewPostgres(cfg.Postgres, nil)
		if err != nil {
			return nil, fmt.Errorf("can't connect to postgres: %w", err)
		}
		db.WithLogger(log)
		defer func() { _ = db.GracefulShutdown() }()
		return db.DB().WithContext(ctx).Exec(query).Error, nil
	case "mariadb":
		db, err := mariadb.NewMariaDB(cfg.MariaDB, nil)
		if err != nil {
			return nil, fmt.Errorf("can't connect to mariadb: %w", err)
		}
		db.WithLogger(log)
		defer func() { _ = db.GracefulShutdown() }()
		return db.DB().WithContext(ctx).Exec(query).Error, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", driver)
}
