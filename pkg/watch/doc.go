/*
Package watch keeps a directory clean while it is being edited.

A Watcher registers every directory below its root with fsnotify, debounces
create and write events per file and hands each settled file to the same
CleanFile step a full walk uses. The watcher's own rewrites produce write
events too; those are ignored for a quiet window so a cleaned file is not
cleaned again in a loop.

	w := watch.New(root, op, watch.WithOnClean(report))
	err := w.Run(ctx) // returns nil once ctx is cancelled
*/
package watch
