package announce

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	FallbackHost   = "localhost"
	ExternalHost   = "0.0.0.0"
	resolveTimeout = 2 * time.Second
)

var (
	separator = strings.Repeat("-", 58)
	bold      = color.New(color.FgHiCyan, color.Bold).SprintFunc()
	link      = color.New(color.FgHiGreen).SprintFunc()
)

// Announcer prints where LAN clients can reach the service. It fires once;
// later calls are no-ops.
type Announcer struct {
	name     string
	resolver Resolver
	out      io.Writer
	logger   *slog.Logger
	once     sync.Once
}

type Option func(*Announcer)

func WithResolver(r Resolver) Option {
	return func(a *Announcer) {
		a.resolver = r
	}
}

func WithOutput(w io.Writer) Option {
	return func(a *Announcer) {
		a.out = w
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Announcer) {
		a.logger = l
	}
}

func New(name string, opts ...Option) *Announcer {
	a := &Announcer{
		name:     name,
		resolver: NewInterfaceResolver(),
		out:      os.Stdout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Announce resolves the LAN address and prints the banner for port. A failed
// lookup is logged and replaced by localhost; it never fails startup.
func (a *Announcer) Announce(ctx context.Context, port int) {
	a.once.Do(func() {
		a.print(a.host(ctx), port)
	})
}

func (a *Announcer) host(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	ip, err := a.resolver.Resolve(ctx)
	if err != nil || ip == "" {
		a.logger.Warn("could not determine LAN IP address, falling back to localhost", "error", err)
		return FallbackHost
	}
	a.logger.Debug("resolved LAN address", "ip", ip)
	return ip
}

func (a *Announcer) print(host string, port int) {
	fmt.Fprintf(a.out, "\n%s\n", separator)
	fmt.Fprintf(a.out, "%s running at: %s\n", bold(a.name), link(URL(host, port)))
	fmt.Fprintf(a.out, "External access enabled: %s\n", link(URL(ExternalHost, port)))
	fmt.Fprintf(a.out, "%s\n\n", separator)
}

func URL(host string, port int) string {
	return fmt.Sprintf("http://%s:%d", host, port)
}
