// Package main hosts the larder CLI entrypoint and command graph.
//
// The Cobra command tree maps terminal invocations onto the catalog store
// (recipes, grocery items and the staples checklist), the shopping list
// workflow, configuration
// scaffolding, and the doctor checks. Configuration, logging, and store
// lifetime are resolved once per invocation in commandContext so
// subcommands only parse arguments and render results.
package main
