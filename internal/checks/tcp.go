package checks

import (
	"net"
	"time"

	tcpshaker "github.com/tevino/tcp-shaker"
)

type TCPChecker struct {
	*RoundTripper
	addr    string
	timeout time.Duration
}

type TCPFullChecker struct {
	TCPChecker
}

func NewTCPFullChecker(addr string, timeout time.Duration) *TCPFullChecker {
	return &TCPFullChecker{
		TCPChecker: TCPChecker{
			RoundTripper: NewRoundtripper(),
			addr:         addr,
			timeout:      timeout,
		},
	}
}

func (tf *TCPFullChecker) Check() error {
	tf.startRecording()
	conn, err := net.DialTimeout("tcp", tf.addr, tf.timeout)
	if err != nil {
		return err
	}
	tf.endRecording()
	conn.Close()
	return nil
}

// TCPHalfChecker probes with a half-open handshake, the target never sees
// an accepted connection.
type TCPHalfChecker struct {
	TCPChecker
}

func NewTCPHalfChecker(addr string, timeout time.Duration) *TCPHalfChecker {
	return &TCPHalfChecker{
		TCPChecker: TCPChecker{
			RoundTripper: NewRoundtripper(),
			addr:         addr,
			timeout:      timeout,
		},
	}
}

func (th *TCPHalfChecker) Check() error {
	checker := tcpshaker.DefaultChecker()

	th.startRecording()
	if err := checker.CheckAddr(th.addr, th.timeout); err != nil {
		return err
	}
	th.endRecording()

	return nil
}
