/*
Package operation walks a directory tree and drives every file through backup,
cleaning and rewrite.

	+-------------+
	|  Operation  |
	|   (Walk)    |
	+------+------+
	       |
	+------+------+        +-----------+
	|  Pipeline   | -----> |  Status   |
	| (Transform) |        | (Storage) |
	+------+------+        +-----------+

🎯 Purpose:
- Discovers regular files below a root
- Dispatches each file to the pipeline registered for its extension
- Backs up originals before anything else happens to them
- Records every event in the event log

🔄 Flow per file:
1. Backup copies the original into the backup root
2. Status reads the content
3. The pipeline transforms it and prepends the watermark
4. Status overwrites the file unless the run is a dry run
5. The event log, metrics and console record the outcome

⚡ Failure handling:
- A missing root logs "Directory <dir> does not exist!" and returns ErrMissingDirectory
- A failing file logs "Error cleaning <path>: <err>" and the walk goes on
- Cancelling the context stops new files from being scheduled

🔍 Example:

	summary, err := operation.CleanDirectory(ctx, "site",
		operation.WithCleanOptions(opts),
		operation.WithBackup(backup.New(files, "backup")),
		operation.WithEventLog(log.NewEventLog("cleanup_log.txt")),
	)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
*/
package operation
