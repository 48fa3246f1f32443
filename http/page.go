package http

import "net/http"

func RegisterPageHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleDashboardPage)
}

func handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardPage))
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Employee Attrition Prediction</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
  header { background: #273c75; color: #fff; padding: 16px 24px; }
  main { max-width: 960px; margin: 24px auto; padding: 0 16px; display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
  section { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  label { display: block; margin: 8px 0 2px; font-size: 13px; }
  input, select { width: 100%; padding: 6px; box-sizing: border-box; }
  button { margin-top: 12px; padding: 8px 14px; border: 0; border-radius: 4px; background: #273c75; color: #fff; cursor: pointer; }
  button.secondary { background: #718093; margin-right: 6px; }
  .risk-low { color: #218c74; } .risk-medium { color: #e1a106; } .risk-high { color: #c0392b; }
  .bar { height: 18px; background: #dcdde1; border-radius: 4px; overflow: hidden; margin: 4px 0 10px; }
  .bar > div { height: 100%; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  td, th { padding: 4px 6px; border-bottom: 1px solid #eee; text-align: left; }
  #result h3 { margin: 4px 0; }
  ul { margin: 6px 0; padding-left: 18px; }
</style>
</head>
<body>
<header><h2>Employee Attrition Prediction</h2></header>
<main>
  <section>
    <h3>Employee Details</h3>
    <form id="predict-form">
      <label>Age</label><input name="age" type="number" min="18" max="65" value="30">
      <label>Monthly Income</label><input name="monthly_income" type="number" min="1000" max="50000" value="5000">
      <label>Years at Company</label><input name="years_at_company" type="number" min="0" max="40" value="5">
      <label>OverTime</label>
      <select name="overtime"><option>No</option><option>Yes</option></select>
      <label>Job Satisfaction (1=Low, 4=High)</label>
      <select name="job_satisfaction"><option>1</option><option>2</option><option selected>3</option><option>4</option></select>
      <label>Work-Life Balance (1=Poor, 4=Excellent)</label>
      <select name="work_life_balance"><option>1</option><option>2</option><option selected>3</option><option>4</option></select>
      <button type="submit">Predict Attrition</button>
    </form>
    <div id="exports" style="display:none; margin-top:10px">
      <button class="secondary" onclick="exportAs('report','attrition_report.txt')">Text Report</button>
      <button class="secondary" onclick="exportAs('csv','attrition_prediction.csv')">CSV</button>
      <button class="secondary" onclick="exportAs('json','attrition_prediction.json')">JSON</button>
    </div>
  </section>

  <section id="result">
    <h3>Prediction Result</h3>
    <div id="outcome">Submit the form to run a prediction.</div>
    <div class="bar"><div id="prob-bar" style="width:0;background:#218c74"></div></div>
    <div id="insights"></div>
    <h4>Contribution Breakdown</h4>
    <div id="contributions"></div>
  </section>

  <section>
    <h3>Risk Distribution</h3>
    <div id="distribution"></div>
  </section>

  <section>
    <h3>Recent Predictions</h3>
    <table id="history"><thead><tr><th>Age</th><th>Income</th><th>OT</th><th>Prob.</th><th>Risk</th></tr></thead><tbody></tbody></table>
  </section>
</main>
<script>
const colors = { low: "#218c74", medium: "#e1a106", high: "#c0392b" };
let lastProfile = null;

function formProfile() {
  const f = document.getElementById("predict-form");
  return {
    age: parseInt(f.age.value, 10),
    monthly_income: parseInt(f.monthly_income.value, 10),
    years_at_company: parseInt(f.years_at_company.value, 10),
    overtime: f.overtime.value,
    job_satisfaction: parseInt(f.job_satisfaction.value, 10),
    work_life_balance: parseInt(f.work_life_balance.value, 10)
  };
}

async function post(path, body) {
  const res = await fetch(path, { method: "POST", headers: { "Content-Type": "application/json" }, body: JSON.stringify(body) });
  if (!res.ok) throw new Error((await res.json()).error || res.statusText);
  return res;
}

document.getElementById("predict-form").addEventListener("submit", async (e) => {
  e.preventDefault();
  lastProfile = formProfile();
  try {
    const data = await (await post("/api/predict", lastProfile)).json();
    const cls = "risk-" + data.risk_level;
    document.getElementById("outcome").innerHTML =
      "<h3 class='" + cls + "'>" + data.prediction + " &mdash; " + data.risk_label + "</h3>" +
      "Probability of attrition: <b>" + data.probability.toFixed(2) + "</b>";
    const bar = document.getElementById("prob-bar");
    bar.style.width = (data.probability * 100).toFixed(0) + "%";
    bar.style.background = colors[data.risk_level];
    document.getElementById("insights").innerHTML =
      "<h4>Insights</h4><ul>" + data.insights.map(i => "<li>" + i + "</li>").join("") + "</ul>" +
      "<h4>Recommended Actions</h4><ul>" + data.actions.map(a => "<li>" + a + "</li>").join("") + "</ul>";
    document.getElementById("exports").style.display = "block";
    loadExplain();
    loadHistory();
    loadDistribution();
  } catch (err) {
    document.getElementById("outcome").innerHTML = "<span class='risk-high'>" + err.message + "</span>";
  }
});

async function loadExplain() {
  const el = document.getElementById("contributions");
  try {
    const data = await (await post("/api/predict/explain", lastProfile)).json();
    el.innerHTML = data.contributions.map(c => {
      const pct = Math.min(Math.abs(c.score) * 50, 100).toFixed(0);
      const color = c.score > 0 ? colors.high : colors.low;
      return c.feature + "<div class='bar'><div style='width:" + pct + "%;background:" + color + "'></div></div>";
    }).join("");
  } catch (err) {
    el.innerHTML = "<span class='risk-medium'>Explanation unavailable: " + err.message + "</span>";
  }
}

async function exportAs(kind, filename) {
  const res = await post("/api/export/" + kind, lastProfile);
  const blob = await res.blob();
  const a = document.createElement("a");
  a.href = URL.createObjectURL(blob);
  a.download = filename;
  a.click();
}

async function loadHistory() {
  const data = await (await fetch("/api/history?limit=10")).json();
  document.querySelector("#history tbody").innerHTML = data.records.map(r =>
    "<tr><td>" + r.profile.age + "</td><td>" + r.profile.monthly_income + "</td><td>" + r.profile.overtime +
    "</td><td>" + r.probability.toFixed(2) + "</td><td class='risk-" + r.risk_level + "'>" + r.risk_level + "</td></tr>"
  ).join("");
}

async function loadDistribution() {
  const data = await (await fetch("/api/history/distribution")).json();
  const total = Math.max(data.total, 1);
  document.getElementById("distribution").innerHTML = ["low", "medium", "high"].map(level => {
    const count = data.distribution[level] || 0;
    const pct = (count / total * 100).toFixed(0);
    return level + " (" + count + ")<div class='bar'><div style='width:" + pct + "%;background:" + colors[level] + "'></div></div>";
  }).join("");
}

function connectFeed() {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/api/ws/dashboard");
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type === "prediction" || msg.type === "artifacts_reloaded") {
      loadHistory();
      loadDistribution();
    }
  };
  ws.onclose = () => setTimeout(connectFeed, 3000);
}

loadHistory();
loadDistribution();
connectFeed();
</script>
</body>
</html>
`
