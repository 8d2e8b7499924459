package capture

// Conversation accumulates traffic statistics between two hosts. The
// client is the connection initiator.
type Conversation struct {
	client string
	server string

	packetsClientServer int
	packetsServerClient int
	bytesClientServer   int
	bytesServerClient   int
}

func newConversation(client, server string) *Conversation {
	return &Conversation{client: client, server: server}
}

// Client returns the initiating host.
func (c *Conversation) Client() string { return c.client }

// Server returns the responding host.
func (c *Conversation) Server() string { return c.server }

// add records one IP packet of the given total length sent by src.
func (c *Conversation) add(src string, length int) {
	if src == c.client {
		c.packetsClientServer++
		c.bytesClientServer += length
	} else {
		c.packetsServerClient++
		c.bytesServerClient += length
	}
}

// promoteClient re-labels the client side once the SYN reveals the true
// initiator. Direction counters recorded so far swap with it.
func (c *Conversation) promoteClient(client string) {
	if client == c.client {
		return
	}
	c.client, c.server = c.server, c.client
	c.packetsClientServer, c.packetsServerClient = c.packetsServerClient, c.packetsClientServer
	c.bytesClientServer, c.bytesServerClient = c.bytesServerClient, c.bytesClientServer
}

// MeanPacketSize returns the mean IP packet size over both directions.
func (c *Conversation) MeanPacketSize() float64 {
	n := c.TotalPackets()
	if n == 0 {
		return 0
	}
	return float64(c.TotalBytes()) / float64(n)
}

// PacketsClientServer returns the client-to-server packet count.
func (c *Conversation) PacketsClientServer() int { return c.packetsClientServer }

// PacketsServerClient returns the server-to-client packet count.
func (c *Conversation) PacketsServerClient() int { return c.packetsServerClient }

// TotalPackets returns the packet count over both directions.
func (c *Conversation) TotalPackets() int {
	return c.packetsClientServer + c.packetsServerClient
}

// BytesClientServer returns the client-to-server byte count.
func (c *Conversation) BytesClientServer() int { return c.bytesClientServer }

// BytesServerClient returns the server-to-client byte count.
func (c *Conversation) BytesServerClient() int { return c.bytesServerClient }

// TotalBytes returns the byte count over both directions.
func (c *Conversation) TotalBytes() int {
	return c.bytesClientServer + c.bytesServerClient
}
