// Package logtail reads the end of the client's log file.
//
// The admin panel shows the most recent generation runs. Those runs are
// logged with the stdlib logger to the file configured as log_file, so the
// panel simply tails that file and keeps the lines mentioning "generate ".
//
// Read and ReadMatching use a ring buffer of maxLines entries, so memory is
// bounded by the number of lines requested rather than the file size. A
// missing file is not an error; it just means nothing has been logged yet.
//
//	lines, err := logtail.ReadMatching(cfg.LogFile, 6, "generate ")
//	if err != nil {
//		log.Printf("tail log: %v", err)
//	}
package logtail
