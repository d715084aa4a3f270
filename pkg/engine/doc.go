// Package engine instantiates a template into a new project directory.
//
// Instantiation runs in two phases. Planning walks the template depth-first
// in lexical order and computes every operation in memory: directory and
// file names have their {name} tokens replaced, and files whose extension
// the formats table recognizes have their {{name}} or <<name>> tokens
// replaced. A missing variable, an occupied destination or two template
// entries that land on the same destination path all fail here, before
// anything is written.
//
// Execution applies the plan in order. Directories are created before the
// files inside them, and every file is created exclusively, so an entry that
// appears on disk between planning and execution is reported rather than
// overwritten. An I/O failure aborts the run and leaves whatever was written
// so far in place; nothing is rolled back.
//
// Files the formats table does not recognize are copied byte-for-byte and
// never scanned, even if they contain delimiter-shaped bytes.
package engine
