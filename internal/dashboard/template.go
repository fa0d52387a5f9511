package dashboard

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AWS Cost Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; background: #f7f7f9; color: #222; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #666; margin-bottom: 1.5rem; }
  .banner { background: #fdecea; border-left: 4px solid #d93025; padding: 0.75rem 1rem; margin-bottom: 1.5rem; }
  .banner .hint { color: #555; font-size: 0.9rem; margin-top: 0.25rem; }
  .cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 2rem; }
  .card { background: #fff; border-radius: 8px; padding: 1rem 1.5rem; box-shadow: 0 1px 3px rgba(0,0,0,0.1); min-width: 180px; }
  .card .label { color: #666; font-size: 0.85rem; }
  .card .value { font-size: 1.6rem; font-weight: 600; }
  .card .delta { color: #888; font-size: 0.8rem; }
  .charts { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; margin-bottom: 2rem; }
  .panel { background: #fff; border-radius: 8px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.4rem 0.75rem; border-bottom: 1px solid #eee; }
  td.num { text-align: right; }
  .downloads a { margin-right: 1rem; }
  button { padding: 0.4rem 0.9rem; border: none; border-radius: 6px; background: #2463eb; color: #fff; cursor: pointer; }
</style>
</head>
<body>
<h1>AWS Cost Dashboard</h1>
<div class="meta">
  {{- if not .FetchedAt.IsZero }}
  Fetched {{ .FetchedAt.Format "2006-01-02 15:04:05" }}{{ if .Stale }} (stale){{ end }}
  {{- end }}
  <button onclick="forceRefresh()">Refresh</button>
</div>

{{ if .Error }}
<div class="banner">
  <div>{{ .Error }}</div>
  {{ if .Hint }}<div class="hint">{{ .Hint }}</div>{{ end }}
</div>
{{ end }}

{{ if .Report }}
<div class="cards">
  <div class="card">
    <div class="label">Last {{ len .Report.Daily }} Days Total</div>
    <div class="value">${{ printf "%.2f" .Report.WindowTotal }}</div>
    <div class="delta">${{ printf "%.2f" .Report.WindowAverage }}/day avg</div>
  </div>
  <div class="card">
    <div class="label">Previous Month ({{ .Report.Previous.Label }})</div>
    <div class="value">${{ printf "%.2f" .Report.Previous.Amount }}</div>
  </div>
  <div class="card">
    <div class="label">Month To Date ({{ .Report.Current.Label }})</div>
    <div class="value">${{ printf "%.2f" .Report.Current.Amount }}</div>
    <div class="delta">{{ .Report.Projection.DaysElapsed }}/{{ .Report.Projection.DaysInMonth }} days</div>
  </div>
  <div class="card">
    <div class="label">Month Estimate</div>
    <div class="value">${{ printf "%.2f" .Report.Projection.Estimated }}</div>
    {{ if .Report.Projection.HasPrevious }}
    <div class="delta">{{ printf "%+.1f" .Report.Projection.ChangePercent }}% vs last month</div>
    {{ end }}
  </div>
</div>

<div class="charts">
  <div class="panel"><canvas id="dailyChart"></canvas></div>
  <div class="panel"><canvas id="monthChart"></canvas></div>
  <div class="panel"><canvas id="serviceChart"></canvas></div>
  <div class="panel">
    <table>
      <thead><tr><th>Service</th><th>Cost</th><th>%</th></tr></thead>
      <tbody>
        {{ range .Report.Services }}
        <tr><td>{{ .Service }}</td><td class="num">${{ printf "%.2f" .Amount }}</td><td class="num">{{ printf "%.1f" .Percent }}%</td></tr>
        {{ else }}
        <tr><td colspan="3">No service breakdown data available.</td></tr>
        {{ end }}
      </tbody>
    </table>
  </div>
</div>

<div class="downloads">
  <a href="/download/daily.csv">Daily costs CSV</a>
  <a href="/download/services.csv">Service breakdown CSV</a>
  <a href="/download/summary.csv">Summary report CSV</a>
</div>

<script>
const report = {{ .ReportJSON }};

new Chart(document.getElementById('dailyChart'), {
  type: 'line',
  data: {
    labels: report.daily.map(d => d.date.slice(0, 10)),
    datasets: [{ label: 'Daily cost ($)', data: report.daily.map(d => d.amount), borderColor: '#ff6b6b', tension: 0.2 }]
  },
  options: { plugins: { title: { display: true, text: 'Daily Cost Trend' } } }
});

new Chart(document.getElementById('monthChart'), {
  type: 'bar',
  data: {
    labels: ['Previous month', 'Current month (est.)'],
    datasets: [{ data: [report.previous_month.amount, report.projection.estimated], backgroundColor: ['#36a2eb', '#ff6b6b'] }]
  },
  options: { plugins: { legend: { display: false }, title: { display: true, text: 'Monthly Comparison' } } }
});

const topServices = report.services.slice(0, 10);
new Chart(document.getElementById('serviceChart'), {
  type: 'pie',
  data: {
    labels: topServices.map(s => s.service),
    datasets: [{ data: topServices.map(s => s.amount) }]
  },
  options: { plugins: { title: { display: true, text: 'Service Distribution (Top ' + topServices.length + ')' } } }
});
</script>
{{ end }}

<script>
function forceRefresh() {
  fetch('/api/refresh', { method: 'POST' }).finally(() => location.reload());
}
</script>
</body>
</html>
`
