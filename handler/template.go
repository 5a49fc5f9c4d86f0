package handler

import (
	"strconv"
	"text/template"
)

// Point is a screen coordinate.
type Point struct {
	X, Y int
}

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Palette is the layout of the diagnostic handler's output.
type Palette struct {
	// LocationAt and MessageAt are where the failure location and the failure
	// message are drawn.
	LocationAt, MessageAt Point

	Foreground, Background Color
}

// DiagnosticPalette is the fixed palette of the diagnostic handler: red on
// white, location below the message.
var DiagnosticPalette = Palette{
	LocationAt: Point{X: 0, Y: 40},
	MessageAt:  Point{X: 0, Y: 0},
	Foreground: Color{R: 255, G: 0, B: 0},
	Background: Color{R: 255, G: 255, B: 255},
}

type templateData struct {
	Options

	Runtime                            string
	Handler, Wrapper, Describe, Locate string
	Palette                            Palette
}

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

// wrapperSource is shared by both variants.
const wrapperSource = `
// {{.Wrapper}} is the application entry point called by the loader.
//
//export {{.Symbol}}
func {{.Wrapper}}() {
	defer func() {
		if r := recover(); r != nil {
			{{.Handler}}({{.Locate}}({{quote .Location}}), {{.Describe}}(r))
		}
	}()

	{{.EntryFunc}}()
}

// {{.Locate}} returns the file and line the current panic was raised at.  It
// returns fallback when the call stack is not available.
func {{.Locate}}(fallback string) string {
	pcs := make([]uintptr, 32)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(3, pcs)])
	for {
		frame, more := frames.Next()
		if frame.File != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			return frame.File + ":" + strconv.Itoa(frame.Line)
		}

		if !more {
			return fallback
		}
	}
}

func {{.Describe}}(r interface{}) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case interface{ String() string }:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uintptr:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return "panic"
	}
}
`

var diagnosticTemplate = template.Must(template.New("diagnostic").Funcs(funcs).Parse(`
// {{.Handler}} draws the failure to the display and idles forever.
func {{.Handler}}(location, message string) {
	{{- with .Palette}}
	{{$.Runtime}}.DrawString([]byte(location), {{$.Runtime}}.Point{X: {{.LocationAt.X}}, Y: {{.LocationAt.Y}}}, false, {{$.Runtime}}.RGB({{.Foreground.R}}, {{.Foreground.G}}, {{.Foreground.B}}), {{$.Runtime}}.RGB({{.Background.R}}, {{.Background.G}}, {{.Background.B}}))
	{{$.Runtime}}.DrawString([]byte(message), {{$.Runtime}}.Point{X: {{.MessageAt.X}}, Y: {{.MessageAt.Y}}}, false, {{$.Runtime}}.RGB({{.Foreground.R}}, {{.Foreground.G}}, {{.Foreground.B}}), {{$.Runtime}}.RGB({{.Background.R}}, {{.Background.G}}, {{.Background.B}}))
	{{- end}}

	for {
	}
}
` + wrapperSource))

var silentTemplate = template.Must(template.New("silent").Funcs(funcs).Parse(`
// {{.Handler}} idles forever.
func {{.Handler}}(location, message string) {
	for {
	}
}
` + wrapperSource))
