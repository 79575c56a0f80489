// Package logtail reads the end of ledgerdeck's log file and decodes its
// logfmt records for the in-app activity view.
//
// # Reading Log Files
//
// Read keeps a ring buffer of the last maxLines lines, so it makes one pass
// over the file and holds O(maxLines) memory regardless of file size. Lines
// come back oldest first. A missing file is not an error: the log is created
// lazily on first write.
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//	if err != nil {
//		return err
//	}
//	entries := logtail.ParseLines(lines)
//
// # Decoding
//
// Parse understands the records package logging writes:
//
//	time="2025-10-08 21:01:05" level=warn prefix=ledgerdeck msg="list fetch failed" resource=vendors
//
// time, level and msg become Entry fields, prefix is dropped and every other
// pair is kept in Fields sorted by key. Lines without any of the well-known
// keys (a stray panic trace, for example) are returned as a plain Message.
package logtail
