package shared

import (
	"log"
	"time"

	"github.com/google/uuid"

	"multicalc.com/server/icalc"
	"multicalc.com/server/render"
)

// CalcInterface defines the methods required by CalcRPC
type CalcInterface interface {
	EvaluateInput(in icalc.Input) icalc.Result
}

// CalcRPC exposes the calculator to terminal clients over net/rpc
type CalcRPC struct {
	calc CalcInterface
}

// NewCalcRPC creates a new CalcRPC instance
func NewCalcRPC(calc CalcInterface) *CalcRPC {
	return &CalcRPC{
		calc: calc,
	}
}

// Ping answers client health checks
func (c *CalcRPC) Ping(args *PingArgs, reply *PingReply) error {
	reply.Status = "ok"
	reply.Modes = render.Infos()
	log.Printf("Ping from %s", args.Client)
	return nil
}

// Evaluate runs one calculation. Evaluation failures travel inside the
// Display; only an unknown mode is returned as an RPC error.
func (c *CalcRPC) Evaluate(args *EvaluateArgs, reply *EvaluateReply) error {
	mode, err := icalc.ParseMode(args.Mode)
	if err != nil {
		return err
	}
	reply.RequestID = uuid.NewString()
	if mode == icalc.ModeNone {
		reply.Display = render.Welcome()
		return nil
	}

	start := time.Now()
	in := icalc.Input{Mode: mode, Expression: args.Expression, Params: args.Params}
	res := c.calc.EvaluateInput(in)
	reply.Display = render.FromResult(mode, res)
	log.Printf("[%s] RPC evaluate %s -> %s in %s", reply.RequestID, in, res.ResultKind(), time.Since(start))
	return nil
}
