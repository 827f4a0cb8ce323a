// Package pkg provides the core libraries for licenseward license auditing.
//
// # Overview
//
// Licenseward answers two questions about a Python project: do any of its
// installed dependencies carry a license the project must avoid, and does
// every source file carry the expected copyright header. The pkg directory
// is organized by concern:
//
//  1. [registry] - Installed-package metadata (site-packages discovery and parsing)
//  2. [deps] - Dependency graph resolution and license classification
//  3. [header] - Copyright header verification and repair
//  4. [report] - Aggregation and export (terminal, JSON, Graphviz)
//  5. [config], [pool], [errors], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through a check run:
//
//	python3 -m site
//	        ↓
//	registry.Local (dist-info / egg-info metadata)
//	        ↓
//	deps.Resolve (breadth-first, concurrent lookups)
//	        ↓
//	deps.Classify (deny-list verdicts)
//	        ↓
//	report.Aggregate (grouped, JSON, DOT)
//
// A format run is flat by comparison: collect files, verify each leading
// comment block against the configured template, rewrite the ones that
// drifted.
package pkg
