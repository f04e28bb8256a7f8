package api

import (
	"strings"

	"github.com/valyala/fasttemplate"
)

// sessionID is the fixed session identifier NETGEAR firmwares expect in the
// SOAP header. It is not a secret and never changes.
const sessionID = "A7D88AE69687E58D9A00"

// The templates below reproduce the exact bytes the firmware is known to
// accept, odd XML prolog comment included. Do not reformat them.
const (
	envelopeTmpl = `<!--?xml version="1.0" encoding= "UTF-8" ?-->
<v:Envelope
xmlns:v="http://schemas.xmlsoap.org/soap/envelope/">
<v:Header>
<SessionID>{sessionID}</SessionID>
</v:Header>
<v:Body>
{body}
</v:Body>
</v:Envelope>`

	soapActionTmpl = `urn:NETGEAR-ROUTER:service:{service}:1#{action}`

	callBodyTmpl = `<M1:{action} xmlns:M1="urn:NETGEAR-ROUTER:service:{service}:1" />`

	paramsBodyTmpl = `<M1:{action} xmlns:M1="urn:NETGEAR-ROUTER:service:{service}:1">{params}</M1:{action}>`

	loginBodyTmpl = `<M1:SOAPLogin xmlns:M1="urn:NETGEAR-ROUTER:service:DeviceConfig:1">
<Username>{username}</Username><Password>{password}</Password></M1:SOAPLogin>`

	authenticateBodyTmpl = `<Authenticate>
<NewUsername>{username}</NewUsername>
<NewPassword>{password}</NewPassword>
</Authenticate>`

	configurationStartedBodyTmpl = `<M1:ConfigurationStarted xmlns:M1="urn:NETGEAR-ROUTER:service:DeviceConfig:1">
<NewSessionID>{sessionID}</NewSessionID>
</M1:ConfigurationStarted>`
)

const (
	configurationFinishedBody = `<M1:ConfigurationFinished xmlns:M1="urn:NETGEAR-ROUTER:service:DeviceConfig:1">
<NewStatus>ChangesApplied</NewStatus>
</M1:ConfigurationFinished>`

	// Two bodies skip the namespaced wrapper on purpose: old parental-control
	// firmwares only answer the enable-status query in this exact shape, and
	// the reachability probe posts an empty body.
	parentalControlStatusBody = `<v:Body><GetEnableStatus></GetEnableStatus></v:Body>`
	nilBody                   = ``
)

var (
	envelopeT             = fasttemplate.New(envelopeTmpl, "{", "}")
	soapActionT           = fasttemplate.New(soapActionTmpl, "{", "}")
	callBodyT             = fasttemplate.New(callBodyTmpl, "{", "}")
	paramsBodyT           = fasttemplate.New(paramsBodyTmpl, "{", "}")
	loginBodyT            = fasttemplate.New(loginBodyTmpl, "{", "}")
	authenticateBodyT     = fasttemplate.New(authenticateBodyTmpl, "{", "}")
	configurationStartedT = fasttemplate.New(configurationStartedBodyTmpl, "{", "}")
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// envelope wraps an action body in the fixed SOAP envelope.
func envelope(body string) string {
	return envelopeT.ExecuteString(map[string]interface{}{
		"sessionID": sessionID,
		"body":      body,
	})
}

// soapAction renders the SOAPAction header value for an action.
func soapAction(a action) string {
	return soapActionT.ExecuteString(map[string]interface{}{
		"service": string(a.service),
		"action":  a.name,
	})
}

// callBody renders the self-closing body used by parameterless actions.
func callBody(a action) string {
	return callBodyT.ExecuteString(map[string]interface{}{
		"service": string(a.service),
		"action":  a.name,
	})
}

type soapParam struct {
	Key   string
	Value string
}

// paramsBody renders an action body with parameter elements, in order.
func paramsBody(a action, params ...soapParam) string {
	var sb strings.Builder
	for _, p := range params {
		sb.WriteString("<")
		sb.WriteString(p.Key)
		sb.WriteString(">")
		sb.WriteString(xmlEscaper.Replace(p.Value))
		sb.WriteString("</")
		sb.WriteString(p.Key)
		sb.WriteString(">")
	}
	return paramsBodyT.ExecuteString(map[string]interface{}{
		"service": string(a.service),
		"action":  a.name,
		"params":  sb.String(),
	})
}

func loginBody(username, password string) string {
	return loginBodyT.ExecuteString(map[string]interface{}{
		"username": xmlEscaper.Replace(username),
		"password": xmlEscaper.Replace(password),
	})
}

func authenticateBody(username, password string) string {
	return authenticateBodyT.ExecuteString(map[string]interface{}{
		"username": xmlEscaper.Replace(username),
		"password": xmlEscaper.Replace(password),
	})
}

func configurationStartedBody() string {
	return configurationStartedT.ExecuteString(map[string]interface{}{
		"sessionID": sessionID,
	})
}
