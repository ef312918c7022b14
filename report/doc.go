// Package report is the VEN-side report generation layer.
//
// Callers register report capabilities (a specifier ID, a report name, and
// one callback per r_id data stream) with Service.AddReport. StartReporting
// then samples the sources on a granularity ticker, buffers the readings,
// and on each report-back tick assembles an oadr.ReportSet, renders it via
// the render package, signs it, and pushes it to the VTN.
//
// The service is the renderer's only in-repo caller; the renderer itself
// stays a pure function of the model it is given.
package report
