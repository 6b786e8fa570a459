package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/moby/sys/atomicwriter"

	"github.com/meigma/minitar"
)

const digestFilePerm = 0o644

// formatLong renders e the way tar -tv does.
func formatLong(e minitar.Entry) string {
	owner := e.Uname
	if owner == "" {
		owner = strconv.FormatUint(uint64(e.UID), 10)
	}
	group := e.Gname
	if group == "" {
		group = strconv.FormatUint(uint64(e.GID), 10)
	}
	return fmt.Sprintf("%s %s/%s %8d %s %s",
		e.Mode.String(), owner, group, e.Size, e.ModTime.UTC().Format("2006-01-02 15:04"), e.Name)
}

// writeDigests prints one "digest  name" line per entry, to stdout or to
// the digest file. The digest file is replaced atomically.
func writeDigests(opts *options, sums []minitar.EntryDigest) error {
	var buf bytes.Buffer
	for _, s := range sums {
		fmt.Fprintln(&buf, s.String())
	}
	if opts.digestFile == "" {
		_, err := opts.stdout.Write(buf.Bytes())
		return err
	}
	if err := atomicwriter.WriteFile(opts.digestFile, buf.Bytes(), digestFilePerm); err != nil {
		return fmt.Errorf("write digest file: %w", err)
	}
	return nil
}
