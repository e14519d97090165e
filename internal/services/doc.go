// Package services holds the cross-cutting helpers shared by tubeclip's
// collaborators: context helpers that stamp run IDs, stages, and correlation
// identifiers for logging, and the error markers plus Wrap helper used to
// classify failures at the command boundary and in the history ledger.
package services
