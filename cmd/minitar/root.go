package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/meigma/minitar"
	"github.com/meigma/minitar/fileset"
)

const usageLine = "minitar -c|-a|-t|-u|-x -f ARCHIVE [FILE...]"

var (
	errNoOperation   = errors.New("one of -c, -a, -t, -u or -x is required")
	errManyOperation = errors.New("only one of -c, -a, -t, -u or -x may be given")
	errNoFiles       = errors.New("no files given")
	errUnexpectedArg = errors.New("operation takes no FILE arguments")
)

type operation byte

const (
	opCreate  operation = 'c'
	opAppend  operation = 'a'
	opList    operation = 't'
	opUpdate  operation = 'u'
	opExtract operation = 'x'
)

type options struct {
	create, appendFiles, list, update, extract bool

	archive        string
	verbose        bool
	digest         bool
	digestFile     string
	directory      string
	atomic         bool
	verifyChecksum bool
	preserve       bool

	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           usageLine,
		Short:         "Create, append to, list, update and extract ustar archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	installOperationFlags(flags, opts)
	flags.StringVarP(&opts.archive, "file", "f", "", "Archive `path`")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log each entry and print long listings")
	flags.BoolVar(&opts.digest, "digest", false, "With -t, print the sha256 digest of each entry")
	flags.StringVar(&opts.digestFile, "digest-file", "", "With -t --digest, write digests to `path` instead of stdout")
	flags.StringVarP(&opts.directory, "directory", "C", "", "With -x, extract under `dir`")
	flags.BoolVar(&opts.atomic, "atomic", false, "With -a or -u, replace the archive only once the append succeeds")
	flags.BoolVar(&opts.verifyChecksum, "verify-checksum", false, "Reject headers whose checksum does not match")
	flags.BoolVarP(&opts.preserve, "preserve", "p", false, "With -x, restore recorded permissions and modification times")
	_ = cmd.MarkFlagRequired("file") //nolint:errcheck // flag is defined above

	return cmd
}

func installOperationFlags(flags *pflag.FlagSet, opts *options) {
	flags.BoolVarP(&opts.create, "create", "c", false, "Create a new archive")
	flags.BoolVarP(&opts.appendFiles, "append", "a", false, "Append files to an archive")
	flags.BoolVarP(&opts.list, "list", "t", false, "List archive contents")
	flags.BoolVarP(&opts.update, "update", "u", false, "Append new copies of files already in the archive")
	flags.BoolVarP(&opts.extract, "extract", "x", false, "Extract archive contents")
}

func (o *options) operation() (operation, error) {
	var ops []operation
	for _, f := range []struct {
		set bool
		op  operation
	}{
		{o.create, opCreate},
		{o.appendFiles, opAppend},
		{o.list, opList},
		{o.update, opUpdate},
		{o.extract, opExtract},
	} {
		if f.set {
			ops = append(ops, f.op)
		}
	}
	switch len(ops) {
	case 0:
		return 0, errNoOperation
	case 1:
		return ops[0], nil
	default:
		return 0, errManyOperation
	}
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: level}))
}

func run(opts *options, args []string) error {
	op, err := opts.operation()
	if err != nil {
		return fmt.Errorf("%w\nusage: %s", err, usageLine)
	}

	common := []minitar.Option{
		minitar.WithLogger(opts.logger()),
		minitar.WithVerifyChecksum(opts.verifyChecksum),
	}

	switch op {
	case opCreate, opAppend, opUpdate:
		if len(args) == 0 {
			return errNoFiles
		}
		files, err := fileset.New(args...)
		if err != nil {
			return err
		}
		writeOpts := append(common, minitar.WithAtomicAppend(opts.atomic))
		switch op {
		case opCreate:
			return minitar.Create(opts.archive, files, writeOpts...)
		case opAppend:
			return minitar.Append(opts.archive, files, writeOpts...)
		default:
			return minitar.Update(opts.archive, files, writeOpts...)
		}
	case opList:
		if len(args) > 0 {
			return errUnexpectedArg
		}
		return runList(opts, common)
	case opExtract:
		if len(args) > 0 {
			return errUnexpectedArg
		}
		return minitar.Extract(opts.archive, append(common,
			minitar.WithDestDir(opts.directory),
			minitar.WithPreserveMode(opts.preserve),
			minitar.WithPreserveTimes(opts.preserve),
		)...)
	}
	return fmt.Errorf("unknown operation %q", byte(op))
}

func runList(opts *options, common []minitar.Option) error {
	switch {
	case opts.digest || opts.digestFile != "":
		sums, err := minitar.Sum(opts.archive, common...)
		if err != nil {
			return err
		}
		return writeDigests(opts, sums)
	case opts.verbose:
		entries, err := minitar.Entries(opts.archive, common...)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintln(opts.stdout, formatLong(e))
		}
		return nil
	default:
		names, err := minitar.List(opts.archive, common...)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(opts.stdout, name)
		}
		return nil
	}
}
