// Package hmc provides the public types and interfaces for the HMC REST API
// client. The management console exposes its unified object model (UOM) as
// Atom XML: ordered feeds of entries, each carrying one polymorphically-typed
// payload element. This package contains the document decoder, the generic
// entity mapper driven by per-kind attribute tables, the job and error types,
// and the client interface implemented by internal/client.
//
// Use github.com/fivetwenty-io/hmc-client/pkg/hmcclient to construct a client.
package hmc
