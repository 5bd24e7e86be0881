/*
Package status manages file reads and writes and tracks per-file outcomes for webclean.

	            +-------------+
	            |   Status    |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Outcomes|
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Loads source files and overwrites them in place
- Copies files for the backup service
- Tracks what happened to every file (cleaned, dry-run, skipped, failed)
- Reports progress and a run summary

🔄 Flow:
1. The walker reads a file through ReadFile
2. The cleaned content goes back through WriteFile unless the run is a dry run
3. The outcome is recorded with TrackFile
4. Summary aggregates outcomes and byte counts when the walk finishes

⚠️ Writes are plain overwrites. A crash mid-write can truncate a file; the
backup taken before the write is the recovery path.

🔍 Example:

	mgr := status.New(root)

	content, err := mgr.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	if err := mgr.WriteFile(ctx, path, cleaned); err != nil {
		return err
	}

	mgr.TrackFile(ctx, status.FileInfo{Path: path, Outcome: status.OutcomeCleaned})
	fmt.Print(status.FormatSummary(mgr.Summary(ctx)))
*/
package status
