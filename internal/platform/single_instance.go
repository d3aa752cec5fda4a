package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another SetBeast window is already open.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateCommand = "show"
	activateTimeout = 2 * time.Second
)

// InstanceGuard holds the single-instance lock. Two timers driving the same
// settings file would overwrite each other's last used interval, so a second
// launch asks the running one to show its window instead.
type InstanceGuard struct {
	mu       sync.Mutex
	listener net.Listener
	address  string
	serving  sync.WaitGroup
}

// AcquireSingleInstance binds a localhost port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve accepts activation requests from later launches and calls onActivate
// for each one. It returns immediately; the loop stops on Release.
func (guard *InstanceGuard) Serve(onActivate func()) {
	guard.mu.Lock()
	listener := guard.listener
	guard.mu.Unlock()
	if listener == nil {
		return
	}

	guard.serving.Add(1)
	go func() {
		defer guard.serving.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			if readActivation(conn) && onActivate != nil {
				onActivate()
			}
		}
	}()
}

// Release frees the lock and stops Serve.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}
	guard.mu.Lock()
	listener := guard.listener
	guard.listener = nil
	guard.mu.Unlock()
	if listener == nil {
		return nil
	}
	err := listener.Close()
	guard.serving.Wait()
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// ActivateRunningInstance asks the instance holding appName's lock to bring
// its window forward.
func ActivateRunningInstance(appName string) error {
	address := instanceAddress(appName)
	conn, err := net.DialTimeout("tcp", address, activateTimeout)
	if err != nil {
		return fmt.Errorf("dial running instance %s: %w", address, err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(activateTimeout))
	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return fmt.Errorf("activate running instance %s: %w", address, err)
	}
	return nil
}

func readActivation(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(activateTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		slog.Debug("ignored instance connection", "remote", conn.RemoteAddr(), "error", err)
		return false
	}
	return strings.TrimSpace(line) == activateCommand
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(strings.ToLower(strings.TrimSpace(appName))))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
