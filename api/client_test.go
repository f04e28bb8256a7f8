package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

func trafficEnabledResponse(flag string) string {
	return soapResponse(`<m:GetTrafficMeterEnabledResponse xmlns:m="urn:NETGEAR-ROUTER:service:DeviceConfig:1">` +
		`<NewTrafficMeterEnable>` + flag + `</NewTrafficMeterEnable>` +
		`</m:GetTrafficMeterEnabledResponse>` + okResponseCode)
}

func TestDiscoveryRunsOnce(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("1"))
	c := newTestClient(f)

	for i := 0; i < 3; i++ {
		if _, err := c.GetTrafficMeterEnabled(context.Background()); err != nil {
			t.Fatalf("GetTrafficMeterEnabled returned error: %v", err)
		}
	}
	if got := f.settingsCalls(); got != 1 {
		t.Errorf("settings page fetched %d times, want 1", got)
	}
	if got := len(f.soapCalls()); got != 3 {
		t.Errorf("got %d SOAP calls, want 3", got)
	}
}

func TestConcurrentFirstCallsDiscoverOnce(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("1"))
	c := newTestClient(f)

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.GetTrafficMeterEnabled(context.Background())
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d returned error: %v", i, err)
		}
	}
	if got := f.settingsCalls(); got != 1 {
		t.Errorf("settings page fetched %d times, want 1", got)
	}
	if got := len(f.soapCalls()); got != 16 {
		t.Errorf("got %d SOAP calls, want 16", got)
	}
}

func TestTimeoutSurfacesAsTransportError(t *testing.T) {
	c := New("router.local", &Options{
		HTTPClient: &http.Client{Transport: stalledTransport{}},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.GetTrafficMeterEnabled(ctx)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error does not wrap the exceeded deadline: %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	c := New("router.local", nil)
	c.Close()
	c.Close()

	// A client around a caller-supplied http.Client is not torn down by
	// Close and keeps working.
	f := newFakeRouter(t)
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("1"))
	shared := newTestClient(f)
	shared.Close()
	shared.Close()
	if _, err := shared.GetTrafficMeterEnabled(context.Background()); err != nil {
		t.Fatalf("GetTrafficMeterEnabled after Close returned error: %v", err)
	}
}

func TestControlURLEncryptedPort(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("0"))
	c := newTestClient(f)

	if _, err := c.GetTrafficMeterEnabled(context.Background()); err != nil {
		t.Fatalf("GetTrafficMeterEnabled returned error: %v", err)
	}
	posts := f.soapCalls()
	if len(posts) != 1 {
		t.Fatalf("got %d SOAP calls, want 1", len(posts))
	}
	want := "https://router.local:5555/soap/server_sa/"
	if posts[0].url != want {
		t.Errorf("control URL = %q, want %q", posts[0].url, want)
	}
}

func TestControlURLPlainPort(t *testing.T) {
	f := newFakeRouter(t)
	f.settings = strings.ReplaceAll(testSettingsPage, "SOAP_HTTPs_Port=5555", "SOAP_HTTPs_Port=80")
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("0"))
	c := newTestClient(f)

	if _, err := c.GetTrafficMeterEnabled(context.Background()); err != nil {
		t.Fatalf("GetTrafficMeterEnabled returned error: %v", err)
	}
	want := "http://router.local:80/soap/server_sa/"
	if got := f.soapCalls()[0].url; got != want {
		t.Errorf("control URL = %q, want %q", got, want)
	}
}

func TestDiscoveryFailureIsRetriable(t *testing.T) {
	f := newFakeRouter(t)
	f.settingsErr = &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("1"))
	c := newTestClient(f)

	_, err := c.GetTrafficMeterEnabled(context.Background())
	var de *DiscoveryError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DiscoveryError", err)
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Errorf("discovery error does not wrap the transport failure: %v", err)
	}

	f.settingsErr = nil
	if _, err := c.GetTrafficMeterEnabled(context.Background()); err != nil {
		t.Fatalf("retry after failed discovery returned error: %v", err)
	}
	if got := f.settingsCalls(); got != 2 {
		t.Errorf("settings page fetched %d times, want 2", got)
	}
}

func TestDiscoveryBadSettingsPage(t *testing.T) {
	f := newFakeRouter(t)
	f.settings = "Firmware=V1.0.0.1\nModel=R8000\n"
	c := newTestClient(f)

	err := c.Login(context.Background(), "admin", "password")
	var de *DiscoveryError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DiscoveryError", err)
	}
}

func TestGetCurrentSettingPrimesSession(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("1"))
	c := newTestClient(f)

	settings, err := c.GetCurrentSetting(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentSetting returned error: %v", err)
	}
	if settings.Model != "R8000" || settings.SOAPPort != 5555 {
		t.Errorf("settings = %+v", settings)
	}
	if _, err := c.GetTrafficMeterEnabled(context.Background()); err != nil {
		t.Fatalf("GetTrafficMeterEnabled returned error: %v", err)
	}
	if got := f.settingsCalls(); got != 1 {
		t.Errorf("settings page fetched %d times, want 1", got)
	}
}

func TestLoginMethodTwoUsesSOAPLogin(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionLogin, soapResponse(okResponseCode))
	c := newTestClient(f)

	if err := c.Login(context.Background(), "admin", "password"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	posts := f.soapCalls()
	if len(posts) != 1 {
		t.Fatalf("got %d SOAP calls, want 1", len(posts))
	}
	if posts[0].soapAction != "urn:NETGEAR-ROUTER:service:DeviceConfig:1#SOAPLogin" {
		t.Errorf("SOAPAction = %q", posts[0].soapAction)
	}
	if !strings.Contains(posts[0].body, "<Username>admin</Username>") {
		t.Errorf("login body missing username: %q", posts[0].body)
	}
	if !strings.Contains(posts[0].body, "<SessionID>"+sessionID+"</SessionID>") {
		t.Errorf("login body missing session header: %q", posts[0].body)
	}
}

func TestLoginMethodOneUsesAuthenticate(t *testing.T) {
	f := newFakeRouter(t)
	f.settings = strings.ReplaceAll(testSettingsPage, "LoginMethod=2.0", "LoginMethod=1.0")
	f.respond(actionAuthenticate, soapResponse(okResponseCode))
	c := newTestClient(f)

	if err := c.Login(context.Background(), "admin", "password"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	posts := f.soapCalls()
	if len(posts) != 1 {
		t.Fatalf("got %d SOAP calls, want 1", len(posts))
	}
	if posts[0].soapAction != "urn:NETGEAR-ROUTER:service:ParentalControl:1#Authenticate" {
		t.Errorf("SOAPAction = %q", posts[0].soapAction)
	}
	if !strings.Contains(posts[0].body, "<NewUsername>admin</NewUsername>") {
		t.Errorf("authenticate body missing username: %q", posts[0].body)
	}
}

func TestResponseCodeFailure(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionLogin, soapResponse(`<ResponseCode>401</ResponseCode>`))
	c := newTestClient(f)

	err := c.Login(context.Background(), "admin", "wrong")
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ProtocolError", err)
	}
	if pe.Code != "401" {
		t.Errorf("ProtocolError.Code = %q, want 401", pe.Code)
	}
}

func TestNon2xxStatus(t *testing.T) {
	f := newFakeRouter(t)
	f.respondStatus(actionLogin, 500, "internal error")
	c := newTestClient(f)

	err := c.Login(context.Background(), "admin", "password")
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ProtocolError", err)
	}
	if pe.StatusCode != 500 {
		t.Errorf("ProtocolError.StatusCode = %d, want 500", pe.StatusCode)
	}
}

func TestMissingResponseCodeIsSuccess(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionGetTrafficMeterEnabled, soapResponse(`<m:GetTrafficMeterEnabledResponse xmlns:m="urn:NETGEAR-ROUTER:service:DeviceConfig:1">`+
		`<NewTrafficMeterEnable>1</NewTrafficMeterEnable>`+
		`</m:GetTrafficMeterEnabledResponse>`))
	c := newTestClient(f)

	enabled, err := c.GetTrafficMeterEnabled(context.Background())
	if err != nil {
		t.Fatalf("GetTrafficMeterEnabled returned error: %v", err)
	}
	if !enabled {
		t.Error("enabled = false, want true")
	}
}

func TestConfigActionBracket(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionConfigurationStarted, soapResponse(okResponseCode))
	f.respond(actionEnableTrafficMeter, soapResponse(okResponseCode))
	f.respond(actionConfigurationFinished, soapResponse(okResponseCode))
	c := newTestClient(f)

	if err := c.SetTrafficMeterEnabled(context.Background(), true); err != nil {
		t.Fatalf("SetTrafficMeterEnabled returned error: %v", err)
	}
	posts := f.soapCalls()
	if len(posts) != 3 {
		t.Fatalf("got %d SOAP calls, want 3", len(posts))
	}
	wantOrder := []string{
		"urn:NETGEAR-ROUTER:service:DeviceConfig:1#ConfigurationStarted",
		"urn:NETGEAR-ROUTER:service:DeviceConfig:1#EnableTrafficMeter",
		"urn:NETGEAR-ROUTER:service:DeviceConfig:1#ConfigurationFinished",
	}
	for i, want := range wantOrder {
		if posts[i].soapAction != want {
			t.Errorf("call %d SOAPAction = %q, want %q", i, posts[i].soapAction, want)
		}
	}
	if !strings.Contains(posts[1].body, "<NewTrafficMeterEnable>1</NewTrafficMeterEnable>") {
		t.Errorf("inner body missing flag: %q", posts[1].body)
	}
}

func TestConfigActionInnerErrorWins(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionConfigurationStarted, soapResponse(okResponseCode))
	f.respond(actionEnableTrafficMeter, soapResponse(`<ResponseCode>501</ResponseCode>`))
	f.respond(actionConfigurationFinished, soapResponse(okResponseCode))
	c := newTestClient(f)

	err := c.SetTrafficMeterEnabled(context.Background(), false)
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ProtocolError", err)
	}
	if pe.Code != "501" {
		t.Errorf("ProtocolError.Code = %q, want the inner 501", pe.Code)
	}
	// The bracket must still be closed after the inner failure.
	posts := f.soapCalls()
	if len(posts) != 3 {
		t.Fatalf("got %d SOAP calls, want 3", len(posts))
	}
	if posts[2].soapAction != "urn:NETGEAR-ROUTER:service:DeviceConfig:1#ConfigurationFinished" {
		t.Errorf("last call = %q, want ConfigurationFinished", posts[2].soapAction)
	}
}

func TestConfigActionOpenFailureSkipsInner(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionConfigurationStarted, soapResponse(`<ResponseCode>401</ResponseCode>`))
	c := newTestClient(f)

	err := c.SetTrafficMeterEnabled(context.Background(), true)
	if err == nil {
		t.Fatal("SetTrafficMeterEnabled returned no error")
	}
	if got := len(f.soapCalls()); got != 1 {
		t.Errorf("got %d SOAP calls after failed open, want 1", got)
	}
}

func TestProbeAcceptsErrorCode(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionNil, soapResponse(`<ResponseCode>401</ResponseCode>`))
	c := newTestClient(f)

	if err := c.Probe(context.Background()); err != nil {
		t.Fatalf("Probe returned error for reachable endpoint: %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	f := newFakeRouter(t)
	f.respond(actionGetTrafficMeterEnabled, trafficEnabledResponse("1"))
	var gotUA, gotAccept string
	c := New("router.local", &Options{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			gotUA = req.Header.Get("User-Agent")
			gotAccept = req.Header.Get("Accept")
			return f.RoundTrip(req)
		})},
	})

	if _, err := c.GetTrafficMeterEnabled(context.Background()); err != nil {
		t.Fatalf("GetTrafficMeterEnabled returned error: %v", err)
	}
	if gotUA != "netgear-exporter/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/xml" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// stalledTransport never answers, it waits for the request context to run
// out.
type stalledTransport struct{}

func (stalledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, req.Context().Err()
}
