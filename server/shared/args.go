package shared

import "multicalc.com/server/render"

// EvaluateArgs are passed to the Evaluate method. Mode is a mode slug or
// title; Params holds the mode's named inputs as typed by the user.
type EvaluateArgs struct {
	Mode       string
	Expression string
	Params     map[string]string
}

// EvaluateReply is returned from an Evaluate method call
type EvaluateReply struct {
	RequestID string
	Display   render.Display
}

// PingArgs are passed to the Ping method
type PingArgs struct {
	Client string
}

// PingReply lists the modes the server offers
type PingReply struct {
	Status string
	Modes  []render.ModeInfo
}
