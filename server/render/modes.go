package render

import "multicalc.com/server/icalc"

// ModeInfo carries the static texts of a calculator page.
type ModeInfo struct {
	Mode    icalc.Mode    `json:"mode"`
	Slug    string        `json:"slug"`
	Title   string        `json:"title"`
	Heading string        `json:"heading"`
	Intro   string        `json:"intro"`
	Action  string        `json:"action"`
	Fields  []icalc.Field `json:"fields,omitempty"`
}

var modeInfo = map[icalc.Mode]ModeInfo{
	icalc.ModeNone: {
		Heading: "Welcome to the Multi-Mode Calculator!",
		Intro:   "Use the navigation to switch between the different calculators.",
	},
	icalc.ModeGraph: {
		Heading: "📈 Graphing Calculator",
		Intro:   "Enter a mathematical function to plot its graph.",
		Action:  "Plot Graph",
	},
	icalc.ModeIndefiniteIntegral: {
		Heading: "∫ Integration Calculator",
		Intro:   "Calculate definite and indefinite integrals of a mathematical function.",
		Action:  "Calculate Indefinite Integral",
	},
	icalc.ModeDefiniteIntegral: {
		Heading: "∫ Integration Calculator",
		Intro:   "Calculate definite and indefinite integrals of a mathematical function.",
		Action:  "Calculate Definite Integral",
	},
	icalc.ModeDerivative: {
		Heading: "𝑓'(x) Derivative Calculator",
		Intro:   "Calculate the derivative of a mathematical function.",
		Action:  "Calculate Derivative",
	},
	icalc.ModeTrigonometric: {
		Heading: "📐 Trigonometric Calculator",
		Intro:   "Calculate the values of sin, cos, tan, cot, cosec, and sec for a given angle.",
		Action:  "Calculate Trigonometric Values",
	},
	icalc.ModeArithmetic: {
		Heading: "🧮 Simple Calculator",
		Intro:   "Perform basic arithmetic operations: addition, subtraction, multiplication, and division.",
		Action:  "Calculate",
	},
}

// Info returns the page texts and form fields of mode.
func Info(mode icalc.Mode) ModeInfo {
	info := modeInfo[mode]
	info.Mode = mode
	info.Slug = mode.String()
	info.Title = mode.Title()
	info.Fields = icalc.Fields(mode)
	return info
}

// Infos returns Info for every mode in menu order.
func Infos() []ModeInfo {
	out := make([]ModeInfo, len(icalc.Modes))
	for i, m := range icalc.Modes {
		out[i] = Info(m)
	}
	return out
}

// Welcome is the Display shown before a calculator is chosen.
func Welcome() Display {
	info := Info(icalc.ModeNone)
	return Display{
		Mode:  icalc.ModeNone,
		Title: info.Heading,
		Lines: []string{info.Intro},
	}
}
