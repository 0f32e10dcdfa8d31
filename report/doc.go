// SPDX-License-Identifier: MIT

// Package report renders simulation results for people and for machines:
// aligned text tables, CSV, a JSON envelope with a run id, and a Prometheus
// textfile with the final composite metrics of each policy.
//
// Writers never close the io.Writer they are given.
package report
