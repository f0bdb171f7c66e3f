// Package commands defines the symexport CLI.
//
// # Commands
//
//   - export   Convert one mesh object from an OBJ or glTF file to SYMBRES
//   - list     Show the objects in an OBJ or glTF file
//   - info     Summarize a SYMBRES file
//   - dump     Print the arrays stored in a SYMBRES file
//   - config   Print or save the effective configuration
//
// # Implementation
//
// The root command loads the configuration (defaults, then the YAML file,
// then flags) and initializes the global logger before any subcommand runs.
// Command output goes to stdout; logs go to stderr and the optional log file.
package commands
