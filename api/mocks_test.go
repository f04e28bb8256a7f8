package api

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

const testSettingsPage = "Firmware=V1.0.2.86\r\n" +
	"RegionTag=R8000_NA\r\n" +
	"Region=ww\r\n" +
	"Model=R8000\r\n" +
	"InternetConnectionStatus=Up\r\n" +
	"LoginMethod=2.0\r\n" +
	"SOAP_HTTPs_Port=5555\r\n" +
	"this line has no separator\r\n"

type fakeCall struct {
	method     string
	url        string
	soapAction string
	body       string
}

type fakeResponse struct {
	status int
	body   string
}

// fakeRouter implements http.RoundTripper and answers like a router: GET
// serves the settings page, POST is matched on the SOAPAction header. Every
// exchange is recorded for assertions; the call log is locked because clients
// may round-trip from several goroutines.
type fakeRouter struct {
	t           *testing.T
	settings    string
	settingsErr error
	responses   map[string]fakeResponse

	mu    sync.Mutex
	calls []fakeCall
}

func newFakeRouter(t *testing.T) *fakeRouter {
	return &fakeRouter{
		t:         t,
		settings:  testSettingsPage,
		responses: map[string]fakeResponse{},
	}
}

func (f *fakeRouter) respond(a action, body string) {
	f.responses[soapAction(a)] = fakeResponse{status: http.StatusOK, body: body}
}

func (f *fakeRouter) respondStatus(a action, status int, body string) {
	f.responses[soapAction(a)] = fakeResponse{status: status, body: body}
}

func (f *fakeRouter) RoundTrip(req *http.Request) (*http.Response, error) {
	call := fakeCall{
		method:     req.Method,
		url:        req.URL.String(),
		soapAction: req.Header.Get("SOAPAction"),
	}
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			f.t.Fatalf("reading request body: %v", err)
		}
		call.body = string(data)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if req.Method == http.MethodGet {
		if f.settingsErr != nil {
			return nil, f.settingsErr
		}
		return textResponse(http.StatusOK, f.settings), nil
	}
	res, ok := f.responses[call.soapAction]
	if !ok {
		f.t.Fatalf("no canned response for SOAP action %q", call.soapAction)
	}
	return textResponse(res.status, res.body), nil
}

func (f *fakeRouter) soapCalls() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []fakeCall
	for _, call := range f.calls {
		if call.method == http.MethodPost {
			posts = append(posts, call)
		}
	}
	return posts
}

func (f *fakeRouter) settingsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call.method == http.MethodGet {
			n++
		}
	}
	return n
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(f *fakeRouter) *Client {
	return New("router.local", &Options{
		HTTPClient: &http.Client{Transport: f},
	})
}

// soapResponse wraps inner elements in the envelope shape real firmwares
// return.
func soapResponse(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` +
		`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"` +
		` SOAP-ENV:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">` +
		`<SOAP-ENV:Body>` + inner + `</SOAP-ENV:Body></SOAP-ENV:Envelope>`
}

const okResponseCode = `<ResponseCode>000</ResponseCode>`
