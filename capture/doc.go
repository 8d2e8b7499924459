// Package capture aggregates TCP/IP packets from a pcap file into
// per-conversation traffic features and exports them as a CSV dataset
// suitable for clustering.
//
// A conversation is the pair of hosts exchanging TCP segments; the client
// is the side that sent the initial SYN, falling back to the first-seen
// source when no handshake was captured.
package capture
