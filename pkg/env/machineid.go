package env

import (
	"github.com/denisbrodbeck/machineid"
)

const appID = "fpgabridge"

// MachineID retrieves an ID identifying this machine for the bridge
// application. It falls back to "unknown" when unavailable.
func MachineID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return "unknown"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// ClientID returns the default MQTT client id.
func ClientID(role string) string {
	return appID + "-" + role + "-" + MachineID()
}
