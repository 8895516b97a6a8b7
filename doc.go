// Package datamall provides a Go client for the LTA DataMall open-data
// service: bus arrivals and routes, train service alerts, traffic conditions,
// taxi availability, crowd density, facility maintenance and geospatial data.
//
// A Client owns an API key and a connection pool and is created once:
//
//	client, err := datamall.New(datamall.WithAPIKey(os.Getenv("DATAMALL_API_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	arrival, err := bus.NewClient(client).Arrival(ctx, "83139", "")
//
// The execution mode is chosen at construction with WithMode. ModeBlocking
// performs each exchange on the calling goroutine; ModeAsync runs exchanges on
// a bounded pool so that callers park only while network I/O is in flight.
// Both modes produce identical results for identical responses.
//
// Every failure is an *Error whose Kind is one of KindTransport, KindUpstream,
// KindDecode or KindResolve. The client never retries, caches or pages.
package datamall
