// Package shell turns raw command lines into operations on a vfs.Navigator.
//
// The Interpreter tokenizes a line on whitespace, dispatches the first token
// through its command table (mkdir, ls, cd, exit, wc, tac) and formats the
// outcome as display text. Every non-empty line, recognized or not, is appended
// to a Sink before Execute returns. FileJournal is the Sink used in practice:
// it keeps the whole record sequence and rewrites its file as a JSON array
// after each append.
//
// A Session is the display surface: it prints the prompt, feeds lines from a
// reader to the Interpreter, writes results, and stops on exit or end of
// input. RunScript replays a startup script through the same path.
package shell
