package api

// Service names one of the SOAP services exposed under
// urn:NETGEAR-ROUTER:service:*:1. The set is fixed by the firmware.
type Service string

const (
	ServiceDeviceConfig          Service = "DeviceConfig"
	ServiceTime                  Service = "Time"
	ServiceLANConfigSecurity     Service = "LANConfigSecurity"
	ServiceWANIPConnection       Service = "WANIPConnection"
	ServiceWANEthernetLinkConfig Service = "WANEthernetLinkConfig"
	ServiceParentalControl       Service = "ParentalControl"
	ServiceDeviceInfo            Service = "DeviceInfo"
	ServiceAdvancedQoS           Service = "AdvancedQoS"
	ServiceWLANConfiguration     Service = "WLANConfiguration"
)

// action pairs a service with one of its operations. Only the table below
// creates them, which keeps combinations the firmware does not know out of
// the wire path.
type action struct {
	service Service
	name    string
}

func (a action) String() string {
	return string(a.service) + "#" + a.name
}

var (
	actionLogin                     = action{ServiceDeviceConfig, "SOAPLogin"}
	actionLogout                    = action{ServiceDeviceConfig, "SOAPLogout"}
	actionAuthenticate              = action{ServiceParentalControl, "Authenticate"}
	actionReboot                    = action{ServiceDeviceConfig, "Reboot"}
	actionCheckNewFirmware          = action{ServiceDeviceConfig, "CheckNewFirmware"}
	actionConfigurationStarted      = action{ServiceDeviceConfig, "ConfigurationStarted"}
	actionConfigurationFinished     = action{ServiceDeviceConfig, "ConfigurationFinished"}
	actionGetTrafficMeterStatistics = action{ServiceDeviceConfig, "GetTrafficMeterStatistics"}
	actionGetTrafficMeterEnabled    = action{ServiceDeviceConfig, "GetTrafficMeterEnabled"}
	actionEnableTrafficMeter        = action{ServiceDeviceConfig, "EnableTrafficMeter"}
	actionGetInfo                   = action{ServiceDeviceInfo, "GetInfo"}
	actionGetSystemInfo             = action{ServiceDeviceInfo, "GetSystemInfo"}
	actionGetAttachDevice           = action{ServiceDeviceInfo, "GetAttachDevice"}
	actionGetAttachDevice2          = action{ServiceDeviceInfo, "GetAttachDevice2"}
	actionGetEnableStatus           = action{ServiceParentalControl, "GetEnableStatus"}
	actionEnableParentalControl     = action{ServiceParentalControl, "EnableParentalControl"}
	actionGetQoSEnableStatus        = action{ServiceAdvancedQoS, "GetQoSEnableStatus"}
	actionSetQoSEnableStatus        = action{ServiceAdvancedQoS, "SetQoSEnableStatus"}
	actionGetGuestAccessEnabled     = action{ServiceWLANConfiguration, "GetGuestAccessEnabled"}
	actionSetGuestAccessEnabled     = action{ServiceWLANConfiguration, "SetGuestAccessEnabled"}
	actionGet5GGuestAccessEnabled   = action{ServiceWLANConfiguration, "Get5GGuestAccessEnabled"}
	actionSet5GGuestAccessEnabled   = action{ServiceWLANConfiguration, "Set5GGuestAccessEnabled"}
	actionIsSmartConnectEnabled     = action{ServiceWLANConfiguration, "IsSmartConnectEnabled"}
	actionSetSmartConnectEnable     = action{ServiceWLANConfiguration, "SetSmartConnectEnable"}
	actionGetChannelInfo            = action{ServiceWLANConfiguration, "GetChannelInfo"}
	actionSetChannel                = action{ServiceWLANConfiguration, "SetChannel"}
	actionGet5GChannelInfo          = action{ServiceWLANConfiguration, "Get5GChannelInfo"}
	actionSet5GChannel              = action{ServiceWLANConfiguration, "Set5GChannel"}
	actionGetWPASecurityKeys        = action{ServiceWLANConfiguration, "GetWPASecurityKeys"}
	actionGetEthernetLinkStatus     = action{ServiceWANEthernetLinkConfig, "GetEthernetLinkStatus"}
	actionNil                       = action{ServiceDeviceConfig, "Nil"}
)
