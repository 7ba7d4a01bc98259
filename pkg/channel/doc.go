// Package channel provides byte channels towards the bridge.
package channel
