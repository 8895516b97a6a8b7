package crowd_test

import (
	"context"
	"testing"
	"time"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/datamalltest"
	"github.com/datamall-go/datamall/services/crowd"
)

func TestPassengerVolume(t *testing.T) {
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(crowd.RoutePassengerVolODTrain, `{"odata.metadata":"x","value":[{"Link":"https://example.com/od_train_202403.zip"}]}`)
	c := crowd.NewClient(srv.NewClient(t))

	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	links, err := c.PassengerVolume(context.Background(), crowd.VolumeODTrain, month, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 || links[0] != "https://example.com/od_train_202403.zip" {
		t.Fatalf("unexpected links: %v", links)
	}

	req, _ := srv.LastRequest()
	if req.Query.Get("Date") != "202403" {
		t.Fatalf("expected Date=202403, got %q", req.Query.Get("Date"))
	}
	if req.Query.Has("$skip") {
		t.Fatalf("did not expect $skip with an explicit month: %v", req.Query)
	}
}

func TestPassengerVolumeLatest(t *testing.T) {
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(crowd.RoutePassengerVolBusStops, `{"value":[{"Link":"https://example.com/bus.zip"}]}`)
	c := crowd.NewClient(srv.NewClient(t, datamall.WithMode(datamall.ModeAsync)))

	links, err := c.PassengerVolume(context.Background(), crowd.VolumeBusStops, time.Time{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("unexpected links: %v", links)
	}
	req, _ := srv.LastRequest()
	if len(req.Query) != 0 {
		t.Fatalf("expected no query, got %v", req.Query)
	}
}

func TestPassengerVolumeUnknownKind(t *testing.T) {
	srv := datamalltest.NewServer(t)
	c := crowd.NewClient(srv.NewClient(t))

	_, err := c.PassengerVolume(context.Background(), crowd.VolumeKind(42), time.Time{}, 0)
	if !datamall.IsResolve(err) {
		t.Fatalf("expected resolve error, got %v", err)
	}
}

func TestVolumeKindRoundTrip(t *testing.T) {
	for _, k := range []crowd.VolumeKind{crowd.VolumeBusStops, crowd.VolumeODBusStops, crowd.VolumeTrain, crowd.VolumeODTrain} {
		got, err := crowd.ParseVolumeKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseVolumeKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := crowd.ParseVolumeKind("ferry"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRealTime(t *testing.T) {
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(crowd.RouteCrowdRealTime, `{"value":[{"Station":"EW13","StartTime":"2024-03-01T10:00:00+08:00","EndTime":"2024-03-01T10:10:00+08:00","CrowdLevel":"l"}]}`)
	c := crowd.NewClient(srv.NewClient(t))

	levels, err := c.RealTime(context.Background(), crowd.LineEWL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(levels) != 1 || levels[0].Station != "EW13" || levels[0].CrowdLevel != crowd.LevelLow {
		t.Fatalf("unexpected levels: %+v", levels)
	}
	if d := levels[0].EndTime.Sub(levels[0].StartTime); d != 10*time.Minute {
		t.Fatalf("expected 10m window, got %v", d)
	}
	req, _ := srv.LastRequest()
	if req.Query.Get("TrainLine") != "EWL" {
		t.Fatalf("expected TrainLine=EWL, got %q", req.Query.Get("TrainLine"))
	}
}

func TestForecast(t *testing.T) {
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(crowd.RouteCrowdForecast, `{"value":[{"Date":"2024-03-01T00:00:00+08:00","Station":"NS1","Interval":[{"Start":"2024-03-01T00:00:00+08:00","CrowdLevel":"l"},{"Start":"2024-03-01T00:30:00+08:00","CrowdLevel":"m"}]}]}`)
	c := crowd.NewClient(srv.NewClient(t))

	fc, err := c.Forecast(context.Background(), crowd.LineNSL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc) != 1 || len(fc[0].Interval) != 2 || fc[0].Interval[1].CrowdLevel != crowd.LevelModerate {
		t.Fatalf("unexpected forecast: %+v", fc)
	}
}

func TestInvalidLine(t *testing.T) {
	srv := datamalltest.NewServer(t)
	c := crowd.NewClient(srv.NewClient(t))

	if _, err := c.RealTime(context.Background(), "XYZ"); !datamall.IsResolve(err) {
		t.Fatalf("expected resolve error, got %v", err)
	}
	if _, err := c.Forecast(context.Background(), ""); !datamall.IsResolve(err) {
		t.Fatalf("expected resolve error, got %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestRoutesResolve(t *testing.T) {
	for _, r := range crowd.AllRoutes {
		if _, err := datamall.ResolveEndpoint(datamall.DefaultHost, datamall.APIVersion, r); err != nil {
			t.Fatalf("route %s: %v", r, err)
		}
	}
}
