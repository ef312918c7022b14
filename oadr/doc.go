// Package oadr defines the wire model for OpenADR 2.0b report payloads.
//
// OpenADR (Open Automated Demand Response) is an OASIS standard for
// demand-response signaling between a VTN (server) and VENs (clients).
// This package contains passive data types for the oadrUpdateReport
// message tree:
//
//   - ReportSet: one outgoing message (request ID, reports, VEN ID)
//   - Report: a single eiReport block with its intervals and descriptions
//   - Interval / ReportPayload: time-bounded measurement values
//
// Types here carry no behavior; rendering lives in the render package and
// model construction in the report package. Optional fields are pointers so
// absence survives into the renderer.
package oadr
