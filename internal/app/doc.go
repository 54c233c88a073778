// Package app contains the core application logic. It wires the registry,
// the index resolver and the topic builder together from a Config, and
// implements the inspect and validate operations independently of the CLI.
package app
