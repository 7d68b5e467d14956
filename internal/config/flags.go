package config

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// Flags are command-line overrides layered on top of the environment.
type Flags struct {
	fs       *pflag.FlagSet
	addr     string
	store    string
	session  string
	seedFile string
	noSeed   bool
}

// RegisterFlags declares the override flags on fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.addr, "addr", "", "HTTP listen address host:port (overrides APP_HOST/APP_PORT)")
	fs.StringVar(&f.store, "store", "", "complaint store backend: memory or postgres")
	fs.StringVar(&f.session, "session", "", "session backend: memory or redis")
	fs.StringVar(&f.seedFile, "seed-file", "", "path to a YAML seed file")
	fs.BoolVar(&f.noSeed, "no-seed", false, "start without provisioning seed data")
	return f
}

// Apply copies every flag the user actually set into cfg.
func (f *Flags) Apply(cfg *Config) error {
	if f.fs.Changed("addr") {
		host, port, err := net.SplitHostPort(f.addr)
		if err != nil {
			return fmt.Errorf("invalid --addr: %w", err)
		}
		cfg.App.Host = host
		cfg.App.Port = port
	}
	if f.fs.Changed("store") {
		cfg.Store.Backend = f.store
	}
	if f.fs.Changed("session") {
		cfg.Session.Backend = f.session
	}
	if f.fs.Changed("seed-file") {
		cfg.Seed.Path = f.seedFile
	}
	if f.noSeed {
		cfg.Seed.Enabled = false
	}
	return nil
}
