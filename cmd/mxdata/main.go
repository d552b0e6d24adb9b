package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/i18n"
	"github.com/reoring/opendata/monitorinfo"
	"github.com/reoring/opendata/stackframe"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mxdata inspects MonitorInfo composite records\n\nUsage:\n  mxdata schema   [-config f] [-variant current|legacy] [-format json|yaml|jsonschema]\n  mxdata encode   [-config f] [-variant current|legacy] -class C -hash N [-depth D -method M ...]\n  mxdata validate [-config f] [-f file|-]\n\nNotes:\n  - Records are read and written in the wire JSON form.\n  - validate exits 1 when the record is rejected.")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "schema":
		err = schemaCmd(args[1:], stdout, stderr)
	case "encode":
		err = encodeCmd(args[1:], stdout, stderr)
	case "validate":
		err = validateCmd(args[1:], stdin, stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
	var rejected rejectedError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &rejected):
		return 1
	case errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(stderr, "mxdata: %v\n", err)
		return 2
	}
}

// rejectedError marks a record that failed validation; the issues were
// already written to stdout.
type rejectedError struct{ error }

type common struct {
	configPath string
	variant    string
	format     string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "TOML config file")
	fs.StringVar(&c.variant, "variant", "", "record generation: current or legacy")
	fs.StringVar(&c.format, "format", "", "schema output format: json, yaml or jsonschema")
}

// resolve layers flags over the config file over defaults.
func (c *common) resolve() (config, *zap.Logger, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return config{}, nil, err
	}
	if c.variant != "" {
		if cfg.Variant, err = parseVariant(c.variant); err != nil {
			return config{}, nil, err
		}
	}
	if c.format != "" {
		if cfg.Format, err = parseFormat(c.format); err != nil {
			return config{}, nil, err
		}
	}
	i18n.SetLanguage(cfg.Language)
	return cfg, newLogger(cfg.LogLevel), nil
}

func newLogger(level zapcore.Level) *zap.Logger {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func schemaCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := c.resolve()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ct := monitorinfo.TypeOf(cfg.Variant)
	logger.Debug("rendering schema", zap.Stringer("variant", cfg.Variant), zap.String("format", cfg.Format))

	var out []byte
	switch cfg.Format {
	case "yaml":
		out, err = opendata.MarshalTypeYAML(ct)
	case "jsonschema":
		out, err = json.MarshalIndent(opendata.JSONSchema(ct), "", "  ")
	default:
		out, err = json.MarshalIndent(ct, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("render schema: %w", err)
	}
	return writeLine(stdout, out)
}

func encodeCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	var (
		className string
		hash      int32
		depth     = monitorinfo.UnknownDepth
		frame     stackframe.Frame
	)
	frame.LineNumber = -1
	fs.StringVar(&className, "class", "", "class name of the lock object")
	fs.Var((*int32Value)(&hash), "hash", "identity hash code of the lock object")
	fs.Var((*int32Value)(&depth), "depth", "stack depth where the monitor was locked")
	fs.StringVar(&frame.ClassName, "frame-class", "", "class of the locking frame (defaults to -class)")
	fs.StringVar(&frame.MethodName, "method", "", "method of the locking frame; empty means no frame")
	fs.StringVar(&frame.FileName, "file", "", "source file of the locking frame")
	fs.Var((*int32Value)(&frame.LineNumber), "line", "line number of the locking frame")
	fs.StringVar(&frame.ModuleName, "module", "", "module of the locking frame")
	fs.StringVar(&frame.ModuleVersion, "module-version", "", "module version of the locking frame")
	fs.StringVar(&frame.ClassLoaderName, "loader", "", "class loader of the locking frame")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if className == "" {
		fs.Usage()
		return flag.ErrHelp
	}
	cfg, logger, err := c.resolve()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var fp *stackframe.Frame
	if frame.MethodName != "" {
		if frame.ClassName == "" {
			frame.ClassName = className
		}
		fp = &frame
	}
	mi, err := monitorinfo.New(className, hash, depth, fp)
	if err != nil {
		return fmt.Errorf("build record: %w", err)
	}

	cd := monitorinfo.ToCompositeData(mi)
	if cfg.Variant == monitorinfo.Legacy {
		cd = monitorinfo.ToLegacyCompositeData(mi)
	}
	logger.Debug("encoded record", zap.Stringer("record", mi), zap.Stringer("variant", cfg.Variant))

	out, err := opendata.MarshalCompositeData(cd)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return writeLine(stdout, out)
}

// int32Value is a flag.Value that rejects numbers outside the int32 range,
// matching what the wire decoder accepts for integer attributes.
type int32Value int32

func (v *int32Value) String() string { return strconv.FormatInt(int64(*v), 10) }

func (v *int32Value) Set(s string) error {
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return fmt.Errorf("%q is not a 32-bit integer", s)
	}
	*v = int32Value(n)
	return nil
}

type decoded struct {
	Variant          string            `json:"variant"`
	ClassName        string            `json:"className"`
	IdentityHashCode int32             `json:"identityHashCode"`
	LockedStackDepth int32             `json:"lockedStackDepth"`
	LockedStackFrame *stackframe.Frame `json:"lockedStackFrame"`
}

func validateCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	var path string
	fs.StringVar(&path, "f", "-", "wire JSON record to validate, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, logger, err := c.resolve()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}

	v := monitorinfo.NewValidator(monitorinfo.WithLogger(logger))
	cd, err := opendata.UnmarshalCompositeData(data)
	if err != nil {
		return reject(stdout, err)
	}
	mi, variant, err := v.Decode(cd)
	if err != nil {
		return reject(stdout, err)
	}

	out, err := json.MarshalIndent(decoded{
		Variant:          variant.String(),
		ClassName:        mi.ClassName,
		IdentityHashCode: mi.IdentityHashCode,
		LockedStackDepth: mi.LockedStackDepth,
		LockedStackFrame: mi.LockedStackFrame,
	}, "", "  ")
	if err != nil {
		return err
	}
	return writeLine(stdout, out)
}

func reject(stdout io.Writer, err error) error {
	iss, ok := opendata.AsIssues(err)
	if !ok {
		return err
	}
	out, merr := json.MarshalIndent(struct {
		Rejected bool            `json:"rejected"`
		Issues   opendata.Issues `json:"issues"`
	}{true, iss}, "", "  ")
	if merr != nil {
		return merr
	}
	if werr := writeLine(stdout, out); werr != nil {
		return werr
	}
	return rejectedError{err}
}

func writeLine(w io.Writer, b []byte) error {
	_, err := w.Write(append(bytes.TrimRight(b, "\n"), '\n'))
	return err
}
