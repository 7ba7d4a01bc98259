//go:build !linux
// +build !linux

package spidev

import (
	"errors"
	"os"
)

func openDevice(conf Config) (*os.File, error) {
	return nil, errors.New("spidev is only supported on linux")
}
