// Package websocket pushes change notifications to dashboard clients.
//
// The server keeps no document cache. When the data file changes, a
// "document_update" message is broadcast and clients fetch their views
// again over HTTP. Clients never send commands; inbound frames are read
// only to detect disconnects and pongs.
package websocket
