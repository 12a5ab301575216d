// rodb compiles a structured document (YAML, JSON, MessagePack or CBOR)
// into a RODB container file.
//
// Usage:
//
//	rodb [flags] <input> <output>
//
// Either path may be "-" for stdin or stdout. With --bolt-bucket and
// --bolt-key the output path names a bbolt database and the container is
// stored under that bucket and key instead.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/arloliu/rodb"
	"github.com/arloliu/rodb/container"
	"github.com/arloliu/rodb/encoding"
	"github.com/arloliu/rodb/loader"
	"github.com/arloliu/rodb/sink"
)

const stdio = "-"

var errUsage = errors.New("usage: rodb [flags] <input> <output>")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	format     string
	compress   string
	maxDepth   int
	boltBucket string
	boltKey    string
	logLevel   string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("rodb", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.format, "format", "auto", "source format: auto, yaml, json, msgpack or cbor")
	flagSet.StringVar(&opts.compress, "compress", "none", "container compression: none, zstd, s2 or lz4")
	flagSet.IntVar(&opts.maxDepth, "max-depth", encoding.DefaultMaxDepth, "maximum nesting depth of arrays and maps, applied while loading and encoding")
	flagSet.StringVar(&opts.boltBucket, "bolt-bucket", "", "store the container in this bbolt bucket (output is the database path)")
	flagSet.StringVar(&opts.boltKey, "bolt-key", "", "key of the container inside --bolt-bucket")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet, stderr)
			return nil
		}

		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet, stderr)
		return nil
	}

	if flagSet.NArg() != 2 {
		return errUsage
	}
	input, output := flagSet.Arg(0), flagSet.Arg(1)

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", opts.logLevel)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	srcFormat, err := resolveFormat(opts.format, input)
	if err != nil {
		return err
	}

	compression, err := rodb.ParseCompression(opts.compress)
	if err != nil {
		return err
	}

	if err := opts.validateSink(output); err != nil {
		return err
	}

	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}
	logger.Debug("read input", "path", input, "format", srcFormat, "bytes", len(data))

	encoded, err := rodb.Compile(data, srcFormat, compression, container.WithMaxDepth(opts.maxDepth))
	if err != nil {
		return fmt.Errorf("compile %s: %w", input, err)
	}

	if err := writeOutput(opts, output, stdout, encoded); err != nil {
		return err
	}

	logger.Info("compiled",
		"input", input,
		"output", output,
		"format", srcFormat,
		"compress", opts.compress,
		"in_bytes", len(data),
		"out_bytes", len(encoded),
		"digest", rodb.Digest(encoded),
	)

	return nil
}

func resolveFormat(name, input string) (loader.Format, error) {
	if name == "auto" {
		if input == stdio {
			return loader.FormatYAML, nil
		}

		return loader.FormatFromPath(input), nil
	}

	return loader.ParseFormat(name)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

func (o options) validateSink(output string) error {
	if o.boltBucket == "" && o.boltKey == "" {
		return nil
	}
	if o.boltBucket == "" || o.boltKey == "" {
		return errors.New("--bolt-bucket and --bolt-key must be used together")
	}
	if output == stdio {
		return errors.New("bolt output requires a database path")
	}

	return nil
}

// writeOutput opens the destination only once the container is ready, so a
// failed compile never creates it.
func writeOutput(opts options, output string, stdout io.Writer, data []byte) error {
	switch {
	case opts.boltBucket != "":
		b, err := sink.OpenBolt(output, opts.boltBucket, opts.boltKey)
		if err != nil {
			return err
		}

		return errors.Join(b.Write(data), b.Close())
	case output == stdio:
		return sink.NewWriter(stdout).Write(data)
	default:
		return sink.NewFile(output).Write(data)
	}
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `rodb compiles a YAML, JSON, MessagePack or CBOR document into a RODB container.

Usage:
  rodb [flags] <input> <output>

Use "-" as input to read stdin and as output to write stdout.

Examples:
  # Compile a YAML file
  rodb config.yaml config.rodb

  # Compile JSON from stdin with zstd compression
  cat config.json | rodb --format json --compress zstd - config.rodb

  # Store the container in a bbolt database
  rodb --bolt-bucket configs --bolt-key app config.yaml store.db

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
