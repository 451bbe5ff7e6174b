// Package hmcclient is the constructor package for the HMC client library.
//
// It wires configuration, the HTTP transport, and session authentication on
// top of the resource interfaces and types defined in the hmc package. Most
// applications import hmcclient to build a client, then use the returned
// hmc.Client to reach resource clients.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/hmc-client/pkg/hmc"
//	  "github.com/fivetwenty-io/hmc-client/pkg/hmcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := hmcclient.New(&hmc.Config{
//	    Endpoint: "https://hmc.example.com:12443",
//	    UserID:   "hscroot",
//	    Password: "secret",
//	  })
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//	  defer cli.Close(ctx)
//
//	  systems, err := cli.ManagedSystems().List(ctx)
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//	  _ = systems
//	}
//
// The session token is acquired lazily on the first request and refreshed
// transparently once when the console rejects it; a second rejection within
// the same call surfaces as *hmc.AuthenticationError.
package hmcclient
