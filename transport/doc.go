// Package transport pushes rendered OpenADR payloads to the VTN over the
// simple HTTP binding.
//
// The main type is Client, a Pusher that POSTs application/xml documents to
// the VTN's EiReport service. Incoming message parsing is out of scope;
// only the HTTP status is checked.
package transport
