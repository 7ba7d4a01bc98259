//go:build linux
// +build linux

package spidev

import (
	"os"
	"unsafe"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// ioctl requests from linux/spi/spidev.h.
const (
	spiIocWrMode        = 0x40016b01
	spiIocWrBitsPerWord = 0x40016b03
	spiIocWrMaxSpeedHz  = 0x40046b04
	spiIocRdMaxSpeedHz  = 0x80046b04
)

func openDevice(conf Config) (*os.File, error) {
	f, err := os.OpenFile(conf.Path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	fd := f.Fd()
	if conf.Mode != 0 {
		if err = ioctlByte(fd, spiIocWrMode, byte(conf.Mode)); err != nil {
			f.Close()
			return nil, os.NewSyscallError("SPI_IOC_WR_MODE", err)
		}
	}
	if conf.BitsPerWord != 0 {
		if err = ioctlByte(fd, spiIocWrBitsPerWord, byte(conf.BitsPerWord)); err != nil {
			f.Close()
			return nil, os.NewSyscallError("SPI_IOC_WR_BITS_PER_WORD", err)
		}
	}
	if conf.SpeedHz != 0 {
		speed := conf.SpeedHz
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, spiIocWrMaxSpeedHz, uintptr(unsafe.Pointer(&speed))); errno != 0 {
			f.Close()
			return nil, os.NewSyscallError("SPI_IOC_WR_MAX_SPEED_HZ", errno)
		}
	}
	if speed, err := unix.IoctlGetUint32(int(fd), spiIocRdMaxSpeedHz); err == nil {
		glog.V(1).Infof("spidev %s: mode %d, max speed %d Hz", conf.Path, conf.Mode, speed)
	}
	return f, nil
}

func ioctlByte(fd uintptr, req uintptr, val byte) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(unsafe.Pointer(&val))); errno != 0 {
		return errno
	}
	return nil
}
