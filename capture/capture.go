package capture

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"golang.org/x/time/rate"
)

// featureNames maps the digit selectors of the CSV export format to column
// names, in the order the digits appear in the format string.
var featureNames = map[byte]string{
	'1': "mean_packet_size",
	'2': "number_packets_client_server",
	'3': "number_packets_server_client",
	'4': "total_number_packets",
	'5': "bytes_client_server",
	'6': "bytes_server_client",
	'7': "total_bytes",
}

type pairKey struct {
	a, b string
}

func keyFor(src, dst string) pairKey {
	if src < dst {
		return pairKey{a: src, b: dst}
	}
	return pairKey{a: dst, b: src}
}

// Capture is the set of TCP conversations extracted from one pcap file.
type Capture struct {
	conversations map[pairKey]*Conversation
	logger        *slog.Logger
}

// Option configures capture processing.
type Option func(*Capture)

// WithLogger sets the logger used for progress reporting.
func WithLogger(l *slog.Logger) Option {
	return func(c *Capture) {
		if l != nil {
			c.logger = l
		}
	}
}

// OpenFile reads and aggregates the pcap (or pcapng) file at path.
func OpenFile(path string, opts ...Option) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()
	return Read(f, opts...)
}

type packetSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Read aggregates all TCP-over-IPv4 packets from r into conversations.
// Non-TCP packets are skipped. Progress is logged at most once per second.
func Read(r io.Reader, opts ...Option) (*Capture, error) {
	c := &Capture{
		conversations: make(map[pairKey]*Conversation),
		logger:        slog.Default(),
	}
	for _, fn := range opts {
		fn(c)
	}

	src, err := newPacketSource(r)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Every(time.Second), 1)
	var packets int
	for {
		data, _, err := src.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read packet %d: %w", packets+1, err)
		}
		packets++
		c.addPacket(gopacket.NewPacket(data, src.LinkType(), gopacket.Lazy))

		if limiter.Allow() {
			c.logger.Info("processing capture", "packets", packets, "conversations", len(c.conversations))
		}
	}

	c.logger.Info("capture processed", "packets", packets, "conversations", len(c.conversations))
	return c, nil
}

func newPacketSource(r io.Reader) (packetSource, error) {
	// pcapng files cannot be rewound out of an arbitrary reader, so buffer
	// the magic sniff through a plain pcap attempt first.
	if rs, ok := r.(io.ReadSeeker); ok {
		if pr, err := pcapgo.NewReader(rs); err == nil {
			return pr, nil
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind capture: %w", err)
		}
		ng, err := pcapgo.NewNgReader(rs, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, fmt.Errorf("parse capture: %w", err)
		}
		return ng, nil
	}
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse capture: %w", err)
	}
	return pr, nil
}

func (c *Capture) addPacket(p gopacket.Packet) {
	ipLayer := p.Layer(layers.LayerTypeIPv4)
	tcpLayer := p.Layer(layers.LayerTypeTCP)
	if ipLayer == nil || tcpLayer == nil {
		return
	}
	ip := ipLayer.(*layers.IPv4)
	tcp := tcpLayer.(*layers.TCP)

	src := ip.SrcIP.String()
	dst := ip.DstIP.String()

	key := keyFor(src, dst)
	conv, ok := c.conversations[key]
	if !ok {
		conv = newConversation(src, dst)
		c.conversations[key] = conv
	}
	if tcp.SYN && !tcp.ACK {
		conv.promoteClient(src)
	}
	conv.add(src, int(ip.Length))
}

// Len returns the number of conversations found.
func (c *Capture) Len() int { return len(c.conversations) }

// Conversations returns all conversations ordered by client, then server.
func (c *Capture) Conversations() []*Conversation {
	out := make([]*Conversation, 0, len(c.conversations))
	for _, conv := range c.conversations {
		out = append(out, conv)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].client != out[j].client {
			return out[i].client < out[j].client
		}
		return out[i].server < out[j].server
	})
	return out
}

// WriteCSV exports one row per conversation, oriented client to server.
// The format string selects columns by digit: each digit '1'..'7' appends
// the matching feature in order. The identifier column is "client/server".
func (c *Capture) WriteCSV(w io.Writer, format string) error {
	if format == "" {
		return fmt.Errorf("empty capture export format")
	}
	for i := 0; i < len(format); i++ {
		if _, ok := featureNames[format[i]]; !ok {
			return fmt.Errorf("unknown capture export column %q", format[i])
		}
	}

	header := "index"
	for i := 0; i < len(format); i++ {
		header += ", " + featureNames[format[i]]
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, conv := range c.Conversations() {
		row := conv.Client() + "/" + conv.Server()
		for i := 0; i < len(format); i++ {
			row += ", " + conv.feature(format[i])
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

func (conv *Conversation) feature(col byte) string {
	switch col {
	case '1':
		return strconv.FormatFloat(conv.MeanPacketSize(), 'f', -1, 64)
	case '2':
		return strconv.Itoa(conv.PacketsClientServer())
	case '3':
		return strconv.Itoa(conv.PacketsServerClient())
	case '4':
		return strconv.Itoa(conv.TotalPackets())
	case '5':
		return strconv.Itoa(conv.BytesClientServer())
	case '6':
		return strconv.Itoa(conv.BytesServerClient())
	case '7':
		return strconv.Itoa(conv.TotalBytes())
	default:
		return ""
	}
}
