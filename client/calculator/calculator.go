package calculator

import (
	"fmt"
	"log"
	"net"
	"net/rpc"
	"os"
	"strconv"

	"multicalc.com/server/icalc"
	"multicalc.com/server/render"
	"multicalc.com/server/shared"
)

// Calculator evaluates requests for a terminal front end.
type Calculator interface {
	Evaluate(args shared.EvaluateArgs) (shared.EvaluateReply, error)
	Modes() ([]render.ModeInfo, error)
	Close() error
}

// Remote talks to a calculator server over net/rpc.
type Remote struct {
	addr   string
	client *rpc.Client
	name   string
}

// Dial connects to the server at host:port and pings it once.
func Dial(host string, port int) (*Remote, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	client, err := rpc.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to server at %s: %w", addr, err)
	}
	hostname, _ := os.Hostname()
	r := &Remote{addr: addr, client: client, name: hostname}
	if _, err := r.Modes(); err != nil {
		client.Close()
		return nil, err
	}
	log.Printf("Connected to server at %s", addr)
	return r, nil
}

func (r *Remote) Evaluate(args shared.EvaluateArgs) (shared.EvaluateReply, error) {
	var reply shared.EvaluateReply
	if err := r.client.Call("CalcRPC.Evaluate", &args, &reply); err != nil {
		return reply, fmt.Errorf("unable to call CalcRPC.Evaluate: %w", err)
	}
	return reply, nil
}

// Modes pings the server and returns the modes it offers.
func (r *Remote) Modes() ([]render.ModeInfo, error) {
	var reply shared.PingReply
	if err := r.client.Call("CalcRPC.Ping", &shared.PingArgs{Client: r.name}, &reply); err != nil {
		return nil, fmt.Errorf("unable to call CalcRPC.Ping: %w", err)
	}
	return reply.Modes, nil
}

func (r *Remote) Close() error { return r.client.Close() }

func (r *Remote) String() string { return "rpc://" + r.addr }

// Local evaluates in process through the same handler the server exposes.
type Local struct {
	rpc *shared.CalcRPC
}

func NewLocal(calc *icalc.Calc) *Local {
	return &Local{rpc: shared.NewCalcRPC(calc)}
}

func (l *Local) Evaluate(args shared.EvaluateArgs) (shared.EvaluateReply, error) {
	var reply shared.EvaluateReply
	err := l.rpc.Evaluate(&args, &reply)
	return reply, err
}

func (l *Local) Modes() ([]render.ModeInfo, error) { return render.Infos(), nil }

func (l *Local) Close() error { return nil }

func (l *Local) String() string { return "local" }
