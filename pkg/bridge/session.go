package bridge

import (
	"fmt"
	"io/ioutil"

	"github.com/golang/glog"
)

// DefaultRAMBlockWordSize transfers RAM word by word.
const DefaultRAMBlockWordSize = 1

// Option configures a Session.
type Option func(*Session)

// WithRAMBlockWordSize sets the number of words per RAM transfer.
// Values less than 1 are ignored.
func WithRAMBlockWordSize(n int) Option {
	return func(s *Session) {
		if n >= 1 {
			s.blockWordSize = n
		}
	}
}

// WithBlockHandler registers a func called after each RAM block transfer.
func WithBlockHandler(fn BlockHandler) Option {
	return func(s *Session) {
		s.onBlock = fn
	}
}

// BlockHandler observes RAM block progress: words done of total.
type BlockHandler func(done, total int)

// Session issues commands and RAM transfers to the bridge.
// It holds no channel; control and data traffic may use different channels.
// A Session must not be used by multiple goroutines at the same time.
type Session struct {
	blockWordSize int
	onBlock       BlockHandler
	last          Transaction
}

// New creates a Session.
func New(opts ...Option) *Session {
	s := &Session{blockWordSize: DefaultRAMBlockWordSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRAMBlockWordSize changes the number of words per RAM transfer.
func (s *Session) SetRAMBlockWordSize(n int) error {
	if n < 1 {
		return ErrInvalidBlockSize
	}
	s.blockWordSize = n
	return nil
}

// RAMBlockWordSize returns the number of words per RAM transfer.
func (s *Session) RAMBlockWordSize() int {
	return s.blockWordSize
}

// LastTransaction returns the bytes of the most recent transferring operation.
func (s *Session) LastTransaction() Transaction {
	return s.last
}

// BootLoader sends the whole firmware image in one transfer.
func (s *Session) BootLoader(ch Channel, firmware []byte) (Transaction, error) {
	return s.boot(ch, "", firmware)
}

// BootLoaderFile reads the firmware image from file and sends it.
func (s *Session) BootLoaderFile(ch Channel, fileName string) (Transaction, error) {
	firmware, err := ioutil.ReadFile(fileName)
	if err != nil {
		glog.Warningf("FPGA boot file %q could not be opened: %v", fileName, err)
		return Transaction{}, fmt.Errorf("open boot file: %w", err)
	}
	return s.boot(ch, fileName, firmware)
}

func (s *Session) boot(ch Channel, name string, firmware []byte) (Transaction, error) {
	s.last = Transaction{}
	n, err := ch.Write(firmware)
	if n > 0 {
		s.last.Sent = firmware[:n]
	}
	if n != len(firmware) {
		bootErr := &IOError{Name: name, Want: len(firmware), Got: n, Err: err}
		glog.Warning(bootErr)
		return s.last, bootErr
	}
	if name == "" {
		name = "firmware"
	}
	glog.Infof("FPGA %s was sent successfully (%d bytes)", name, n)
	return s.last, nil
}

// ExecCommand sends cmd and, for read commands, reads the response frame.
// Non-read commands return a nil response.
func (s *Session) ExecCommand(ch Channel, cmd Command, params []byte) ([]byte, Transaction, error) {
	if !ch.IsOpen() {
		glog.Warningf("exec %s: %v", cmd, ErrChannelNotOpen)
		return nil, Transaction{}, ErrChannelNotOpen
	}
	s.last = Transaction{}
	if err := s.sendFrame(ch, "send command "+cmd.String(), EncodeCommand(cmd, params)); err != nil {
		return nil, s.last, err
	}
	if !cmd.IsRead() {
		return nil, s.last, nil
	}
	buf := make([]byte, FrameLen)
	n, err := ch.Read(buf)
	if n > 0 {
		s.last.Received = buf[:n]
	}
	if n != FrameLen {
		readErr := &TransferError{
			Step:  "read response " + cmd.String(),
			Kind:  ErrShortRead,
			Block: -1,
			Want:  FrameLen,
			Got:   n,
			Err:   err,
		}
		glog.Warning(readErr)
		return nil, s.last, readErr
	}
	resp, _ := DecodeResponse(buf)
	glog.V(2).Infof("exec %s: % x -> % x", cmd, s.last.Sent, buf)
	return resp.Bytes(), s.last, nil
}

// PrepareRAMAccess sets the RAM address and direction for following
// WriteRAM or ReadRAM calls.
func (s *Session) PrepareRAMAccess(ch Channel, addr uint32, writeEnable bool) (Transaction, error) {
	s.last = Transaction{}
	step := "prepare RAM read"
	if writeEnable {
		step = "prepare RAM write"
	}
	err := s.sendFrame(ch, step, SetupFrame(addr, writeEnable))
	return s.last, err
}

// PrepareWriteRAM is PrepareRAMAccess with write access.
func (s *Session) PrepareWriteRAM(ch Channel, addr uint32) (Transaction, error) {
	return s.PrepareRAMAccess(ch, addr, true)
}

// PrepareReadRAM is PrepareRAMAccess with read access.
func (s *Session) PrepareReadRAM(ch Channel, addr uint32) (Transaction, error) {
	return s.PrepareRAMAccess(ch, addr, false)
}

// WriteRAM streams words starting at the prepared address.
func (s *Session) WriteRAM(ch Channel, words []int16) (Transaction, error) {
	s.last = Transaction{}
	tx, err := WriteBlocks(s.observe(ch, len(words)), words, s.blockWordSize)
	s.last = tx
	if err != nil {
		glog.Warning(err)
		return tx, err
	}
	glog.V(2).Infof("wrote %d RAM words in blocks of %d", len(words), s.blockWordSize)
	return tx, nil
}

// ReadRAM reads wordCount words starting at the prepared address.
func (s *Session) ReadRAM(ch Channel, wordCount int) ([]int16, Transaction, error) {
	s.last = Transaction{}
	words, tx, err := ReadBlocks(s.observe(ch, wordCount), wordCount, s.blockWordSize)
	s.last = tx
	if err != nil {
		glog.Warning(err)
		return nil, tx, err
	}
	glog.V(2).Infof("read %d RAM words in blocks of %d", wordCount, s.blockWordSize)
	return words, tx, nil
}

// ReadVersion reads the bridge version frame.
func (s *Session) ReadVersion(ch Channel) ([]byte, error) {
	resp, _, err := s.ExecCommand(ch, CmdReadVersion, nil)
	return resp, err
}

// ReadPcb1 reads the first PCB identification frame.
func (s *Session) ReadPcb1(ch Channel) ([]byte, error) {
	resp, _, err := s.ExecCommand(ch, CmdReadPcb1, nil)
	return resp, err
}

// ReadPcb2 reads the second PCB identification frame.
func (s *Session) ReadPcb2(ch Channel) ([]byte, error) {
	resp, _, err := s.ExecCommand(ch, CmdReadPcb2, nil)
	return resp, err
}

// ReadDevice reads the device identification frame.
func (s *Session) ReadDevice(ch Channel) ([]byte, error) {
	resp, _, err := s.ExecCommand(ch, CmdReadDevice, nil)
	return resp, err
}

func (s *Session) sendFrame(ch Channel, step string, f Frame) error {
	b := f.Bytes()
	n, err := ch.Write(b)
	if n > 0 {
		s.last.Sent = b[:n]
	}
	if n != FrameLen {
		writeErr := &TransferError{
			Step:  step,
			Kind:  ErrShortWrite,
			Block: -1,
			Want:  FrameLen,
			Got:   n,
			Err:   err,
		}
		glog.Warning(writeErr)
		return writeErr
	}
	return nil
}

func (s *Session) observe(ch Channel, total int) Channel {
	if s.onBlock == nil {
		return ch
	}
	return &blockObserver{Channel: ch, total: total, fn: s.onBlock}
}

type blockObserver struct {
	Channel
	total int
	done  int
	fn    BlockHandler
}

func (o *blockObserver) Write(p []byte) (int, error) {
	n, err := o.Channel.Write(p)
	o.report(n)
	return n, err
}

func (o *blockObserver) Read(p []byte) (int, error) {
	n, err := o.Channel.Read(p)
	o.report(n)
	return n, err
}

func (o *blockObserver) report(n int) {
	o.done += n / WordSize
	o.fn(o.done, o.total)
}
