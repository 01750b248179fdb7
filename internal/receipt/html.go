package receipt

import (
	_ "embed"
)

//go:embed static/index.html
var indexHTML []byte

// statsPageHTML is the fmt template for the counters page; the verbs are
// total files, success count and failed count in that order.
const statsPageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Receipt Extract Stats</title>
  <style>
    body { font-family: system-ui, sans-serif; background: #020617; color: #e5e7eb;
           display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; }
    .card { background: #0f172a; border-radius: 16px; padding: 24px 28px;
            border: 1px solid rgba(148,163,184,0.25); min-width: 260px; }
    h1 { font-size: 18px; margin: 0 0 16px; }
    .row { display: flex; justify-content: space-between; margin: 4px 0; font-size: 14px; }
    .label { color: #9ca3af; }
    .val { font-weight: 600; }
  </style>
</head>
<body>
  <div class="card">
    <h1>Receipt Extract Stats</h1>
    <div class="row"><span class="label">Total files</span><span class="val">%d</span></div>
    <div class="row"><span class="label">Success</span><span class="val">%d</span></div>
    <div class="row"><span class="label">Failed</span><span class="val">%d</span></div>
  </div>
</body>
</html>
`
