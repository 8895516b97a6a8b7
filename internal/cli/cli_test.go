package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/datamalltest"
	"github.com/datamall-go/datamall/services/bus"
	"github.com/datamall-go/datamall/services/crowd"
	"github.com/datamall-go/datamall/services/traffic"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{datamall.EnvAPIKey, datamall.EnvHost, datamall.EnvMode, datamall.EnvTimeout, datamall.EnvMaxInFlight} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, srv *datamalltest.Server) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "datamall.yaml")
	body := fmt.Sprintf("api_key: %s\nhost: %s\n", datamalltest.Key, srv.URL)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// --- commands against a mock service ---

func TestBusArrival(t *testing.T) {
	clearEnv(t)
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(bus.RouteArrival, `{"BusStopCode":"83139","Services":[{"ServiceNo":"15","Operator":"GAS","NextBus":{"EstimatedArrival":"2024-03-01T10:00:00+08:00","Load":"SEA"}}]}`)

	out, err := run(t, "--config", writeConfig(t, srv), "bus", "arrival", "83139", "15", "--query", "$.Services[*].ServiceNo", "-o", "compact")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if strings.TrimSpace(out) != `["15"]` {
		t.Fatalf("unexpected output %q", out)
	}

	req, _ := srv.LastRequest()
	if req.Query.Get("BusStopCode") != "83139" || req.Query.Get("ServiceNo") != "15" {
		t.Fatalf("unexpected query %v", req.Query)
	}
}

func TestPagedCommandPassesSkip(t *testing.T) {
	clearEnv(t)
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(traffic.RouteVMS, `{"value":[{"EquipmentID":"amvms_v9104","Message":"ACCIDENT AHEAD"}]}`)

	out, err := run(t, "--config", writeConfig(t, srv), "--async", "traffic", "vms", "--skip", "500")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	var got []traffic.VMSMessage
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].Message != "ACCIDENT AHEAD" {
		t.Fatalf("unexpected output %+v", got)
	}
	req, _ := srv.LastRequest()
	if req.Query.Get("$skip") != "500" {
		t.Fatalf("expected $skip=500, got %v", req.Query)
	}
}

func TestCrowdVolumeMonth(t *testing.T) {
	clearEnv(t)
	srv := datamalltest.NewServer(t)
	srv.HandleJSON(crowd.RoutePassengerVolTrain, `{"value":[{"Link":"https://example.com/train.zip"}]}`)

	out, err := run(t, "--config", writeConfig(t, srv), "crowd", "volume", "train", "--month", "202402")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(out, "https://example.com/train.zip") {
		t.Fatalf("unexpected output %q", out)
	}
	req, _ := srv.LastRequest()
	if req.Query.Get("Date") != "202402" {
		t.Fatalf("expected Date=202402, got %v", req.Query)
	}

	if _, err := run(t, "--config", writeConfig(t, srv), "crowd", "volume", "train", "--month", "Feb"); err == nil {
		t.Fatalf("expected error for malformed month")
	}
}

func TestUpstreamErrorExitCode(t *testing.T) {
	clearEnv(t)
	srv := datamalltest.NewServer(t)
	srv.Handle(bus.RouteStops, 500, `{"message":"internal error"}`)

	_, err := run(t, "--config", writeConfig(t, srv), "bus", "stops")
	if !datamall.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if exitCode(err) != exitUpstream {
		t.Fatalf("expected exit code %d, got %d", exitUpstream, exitCode(err))
	}
}

func TestInvalidArgumentExitCode(t *testing.T) {
	clearEnv(t)
	srv := datamalltest.NewServer(t)

	_, err := run(t, "--config", writeConfig(t, srv), "crowd", "realtime", "XYZ")
	if exitCode(err) != exitResolve {
		t.Fatalf("expected exit code %d, got %d (%v)", exitResolve, exitCode(err), err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

// --- commands with a stub querier ---

type stubQuerier struct {
	calls int
	body  string
}

func (s *stubQuerier) Get(_ context.Context, _ datamall.Route, _ url.Values, dst any) error {
	s.calls++
	return json.Unmarshal([]byte(s.body), dst)
}

func (s *stubQuerier) Close() error { return nil }

func TestCallUsesInjectedQuerier(t *testing.T) {
	stub := &stubQuerier{body: `{"value":[{"TaxiCode":"A01","Name":"Katong Village"}]}`}
	o := &rootOptions{
		output: "compact",
		query:  "$[0].Name",
		newQuerier: func(*cobra.Command, *rootOptions) (datamall.QueryCloser, error) {
			return stub, nil
		},
	}
	cmd := taxiCmd(o)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"stands"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if strings.TrimSpace(out.String()) != `"Katong Village"` {
		t.Fatalf("unexpected output %q", out.String())
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 call, got %d", stub.calls)
	}
}

// --- offline commands ---

func TestRoutesCommand(t *testing.T) {
	clearEnv(t)
	out, err := run(t, "routes", "-o", "compact", "--query", "$[?(@.service == \"geo\")].endpoint")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if strings.TrimSpace(out) != `["https://datamall2.mytransport.sg/ltaodataservice/GeospatialWholeIsland"]` {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestConfigCommandMasksKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(datamall.EnvAPIKey, "abcdefgh1234")

	out, err := run(t, "config", "--timeout", "2s")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if strings.Contains(out, "abcdefgh1234") || !strings.Contains(out, "********1234") {
		t.Fatalf("expected masked key, got:\n%s", out)
	}
	if !strings.Contains(out, "timeout: 2s") {
		t.Fatalf("expected timeout override, got:\n%s", out)
	}
}

// --- helpers ---

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, map[string]int{"a": 1}, "json", ""); err != nil {
		t.Fatalf("emit error: %v", err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	if err := emit(&buf, 1, "table", ""); err == nil {
		t.Fatalf("expected error for unsupported output")
	}
	if err := emit(&buf, map[string]int{"a": 1}, "json", "$.["); err == nil {
		t.Fatalf("expected error for bad query")
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{errors.New("usage"), exitUsage},
		{&datamall.Error{Kind: datamall.KindTransport}, exitTransport},
		{&datamall.Error{Kind: datamall.KindDecode}, exitDecode},
		{fmt.Errorf("wrapped: %w", &datamall.Error{Kind: datamall.KindUpstream}), exitUpstream},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Errorf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
