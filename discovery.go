package main

import (
	"context"
	"log"

	"github.com/grandcat/zeroconf"
)

const mdnsService = "_mixxx-api._tcp"

// advertiseAPI registers the REST endpoint over mDNS so local dashboards and
// controllers can find it without configuration. Blocks until ctx is
// cancelled; a registration failure is logged and disables advertisement for
// this run without affecting the server.
func advertiseAPI(ctx context.Context, instance string, port int) {
	server, err := zeroconf.Register(instance, mdnsService, "local.", port, []string{"api=1"}, nil)
	if err != nil {
		log.Printf("mDNS: failed to register %s: %v", mdnsService, err)
		return
	}
	defer server.Shutdown()

	log.Printf("mDNS: advertising %s as %q on port %d", mdnsService, instance, port)
	<-ctx.Done()
}
