// Package cli provides the interactive image uploader.
//
// It wires configuration, the upload service, the clipboard and the local
// history into a small REPL. A file enters either through the picker
// (the "pick" command prompts for paths) or by drag and drop (dropping a
// file onto the terminal pastes its path; "drop <paths...>" does the same
// explicitly). Both surfaces go through the same validation and upload
// path.
//
// With image paths on the command line the App uploads them once, prints
// the link and exits (see App.RunOnce).
package cli
