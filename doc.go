// Package minitar creates, appends to, lists, and extracts POSIX ustar
// archives.
//
// An archive is a sequence of 512-byte blocks. Each member file is stored
// as one header block followed by its content, zero-padded to a block
// boundary. Two all-zero blocks close the archive:
//
//	[header a.txt][data ... padding][header b.bin][data][data ... padding][0...][0...]
//
// Only regular files are written. Headers carry the ustar magic, octal
// numeric fields, and the standard checksum, so archives are readable by
// tar(1) and archive/tar.
//
// # Quick Start
//
// Create an archive from an ordered set of paths and read it back:
//
//	files, err := fileset.New("a.txt", "b.bin")
//	if err != nil {
//	    return err
//	}
//	if err := minitar.Create("out.tar", files); err != nil {
//	    return err
//	}
//	names, err := minitar.List("out.tar") // ["a.txt", "b.bin"]
//
// Append to an existing archive, or replace entries that are already
// present:
//
//	err = minitar.Append("out.tar", more)
//	err = minitar.Update("out.tar", changed, minitar.WithAtomicAppend(true))
//
// Extract every entry under a directory:
//
//	err = minitar.Extract("out.tar", minitar.WithDestDir("restore"))
//
// # Failure Behavior
//
// Operations stop at the first error. Create leaves a partially written
// archive behind. Append strips the end-of-archive marker before writing,
// so a failure part way through leaves an archive without one; readers
// still list the entries written before the failure. WithAtomicAppend
// stages the result in a temporary file and replaces the archive only on
// success.
package minitar
