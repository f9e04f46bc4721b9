package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/rnelson/sterilizer-prop/internal/status"
	"github.com/rnelson/sterilizer-prop/internal/supervisor"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"connClass": func(s supervisor.ConnState) string {
		if s == supervisor.Connected {
			return "connected"
		}
		return "disconnected"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Device}}</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.solved { color: green; font-weight: bold; }
.running { color: #06c; }
.initializing { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>{{.Device}}</h1>

<h2>Puzzle</h2>
<table>
<tr><th>State</th><td class="{{.Puzzle}}">{{.Puzzle}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>Link</th><td class="{{connClass .LinkState}}">{{.LinkState}}</td></tr>
<tr><th>Bus</th><td class="{{connClass .BusState}}">{{.BusState}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Inbox</th><td>{{.Config.InboxTopic}}</td></tr>
<tr><th>Host</th><td>{{.Config.HostTopic}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Link timeout</th><td>{{.Config.LinkTimeoutMs}}ms</td></tr>
<tr><th>Bus timeout</th><td>{{.Config.BusTimeoutMs}}ms</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
