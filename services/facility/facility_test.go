package facility_test

import (
	"context"
	"testing"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/datamalltest"
	"github.com/datamall-go/datamall/services/facility"
)

func TestMaintenance(t *testing.T) {
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(facility.RouteMaintenance, `{"value":[{"Line":"NSL","StationCode":"NS1","StationName":"Jurong East","LiftID":"B1L02","LiftDesc":"Exit B street level - concourse"}]}`)
	c := facility.NewClient(srv.NewClient(t))

	lifts, err := c.Maintenance(context.Background(), "NS1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lifts) != 1 || lifts[0].LiftID != "B1L02" || lifts[0].StationName != "Jurong East" {
		t.Fatalf("unexpected lifts: %+v", lifts)
	}
	req, _ := srv.LastRequest()
	if req.Query.Get("StationCode") != "NS1" {
		t.Fatalf("expected StationCode=NS1, got %q", req.Query.Get("StationCode"))
	}
}

func TestMaintenanceAllStations(t *testing.T) {
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(facility.RouteMaintenance, `{"value":[]}`)
	c := facility.NewClient(srv.NewClient(t, datamall.WithMode(datamall.ModeAsync)))

	lifts, err := c.Maintenance(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lifts) != 0 {
		t.Fatalf("expected no lifts, got %+v", lifts)
	}
	req, _ := srv.LastRequest()
	if req.Query.Has("StationCode") {
		t.Fatalf("did not expect StationCode: %v", req.Query)
	}
}

func TestMaintenanceInvalidCode(t *testing.T) {
	srv := datamalltest.NewServer(t)
	c := facility.NewClient(srv.NewClient(t))

	if _, err := c.Maintenance(context.Background(), "NS-1"); !datamall.IsResolve(err) {
		t.Fatalf("expected resolve error, got %v", err)
	}
}

func TestMaintenanceMissingEnvelope(t *testing.T) {
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(facility.RouteMaintenance, `[{"Line":"NSL"}]`)
	c := facility.NewClient(srv.NewClient(t))

	_, err := c.Maintenance(context.Background(), "")
	if !datamall.IsDecode(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestRoutesResolve(t *testing.T) {
	for _, r := range facility.AllRoutes {
		if _, err := datamall.ResolveEndpoint(datamall.DefaultHost, datamall.APIVersion, r); err != nil {
			t.Fatalf("route %s: %v", r, err)
		}
	}
}
