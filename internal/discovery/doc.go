// Package discovery advertises and finds landing page servers on the local
// network using mDNS (zeroconf).
//
// Servers started with advertising enabled register an "_http._tcp" service
// carrying TXT records that identify the application:
//
//	app=dealflows
//	version=dev-20261017
//	path=/
//
// Scanner browses for "_http._tcp" services and keeps only entries with
// app=dealflows, so other HTTP devices on the network are ignored.
//
// # Usage Example
//
//	adv, err := discovery.Advertise("GrayMan Dealflows", 8080, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer adv.Shutdown()
//
//	instances, err := discovery.NewScanner().Scan(ctx)
//	for _, inst := range instances {
//	    fmt.Println(inst.URL())
//	}
package discovery
